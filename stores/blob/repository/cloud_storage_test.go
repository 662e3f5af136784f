package repository

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"testing"
	"time"

	"cloud.google.com/go/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/xerrors"
	"google.golang.org/api/iterator"

	bCtx "github.com/neonflick/goapi/base/ctx"
	"github.com/neonflick/goapi/domain"
)

type cloudStorageTestSuite struct {
	suite.Suite
	client        *storage.Client
	bucketName    string
	bucketUrl     string
	testingImage  []byte
	testingFolder string
}

func (suite *cloudStorageTestSuite) SetupSuite() {
	ctx := bCtx.Background()
	client, err := storage.NewClient(ctx)
	suite.NoError(err)

	suite.client = client
	suite.bucketName = "dev-storage.neonflick.io"
	suite.bucketUrl = "https://dev-storage.neonflick.io"
	suite.testingImage = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)
	suite.testingFolder = "testing"
}

func (suite *cloudStorageTestSuite) TearDownSuite() {
	ctx := bCtx.Background()
	query := &storage.Query{Prefix: suite.testingFolder}
	bucket := suite.client.Bucket(suite.bucketName)
	it := bucket.Objects(ctx, query)
	for {
		attr, err := it.Next()
		if err == iterator.Done {
			break
		}
		suite.NoError(err)
		err = bucket.Object(attr.Name).Delete(ctx)
		suite.NoError(err)
	}
	err := suite.client.Close()
	suite.NoError(err)
}

func TestCloudStorageRepo(t *testing.T) {
	t.Skip("requires google cloud storage auth")
	suite.Run(t, new(cloudStorageTestSuite))
}

func (suite *cloudStorageTestSuite) Test_cloudStorageRepo_Lifecycle() {
	req := require.New(suite.T())
	ctx := bCtx.Background()

	key := fmt.Sprintf("%s/listing-id/image.png", suite.testingFolder)
	expectedUrl := fmt.Sprintf("%s/%s", suite.bucketUrl, key)
	cs, err := NewCloudStorageRepo(&CloudStorageRepoCfg{
		Client:     suite.client,
		BucketName: suite.bucketName,
		Timeout:    10 * time.Second,
		Url:        suite.bucketUrl,
	})
	req.NoError(err)

	url, err := cs.Put(ctx, key, suite.testingImage, "image/png")
	req.NoError(err)
	req.Equal(expectedUrl, url)

	body, err := httpGet(ctx, url)
	req.NoError(err)
	req.Equal(suite.testingImage, body)

	exists, err := cs.Exists(ctx, key)
	req.NoError(err)
	req.True(exists)

	req.NoError(cs.Delete(ctx, key))
	req.Equal(domain.ErrNotFound, cs.Delete(ctx, key))

	exists, err = cs.Exists(ctx, key)
	req.NoError(err)
	req.False(exists)
}

func TestPublicUrl(t *testing.T) {
	base, err := url.Parse("https://cdn.neonflick.io/")
	require.NoError(t, err)

	res, err := publicUrl(base, "listings/a1/b2.png")
	assert.NoError(t, err)
	assert.Equal(t, "https://cdn.neonflick.io/listings/a1/b2.png", res)

	bare, err := url.Parse("https://cdn.neonflick.io")
	require.NoError(t, err)
	res, err = publicUrl(bare, "listings/a1/b2.png")
	assert.NoError(t, err)
	assert.Equal(t, "https://cdn.neonflick.io/listings/a1/b2.png", res)
}

func httpGet(ctx bCtx.Ctx, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, xerrors.Errorf("resp.StatusCode != 200")
	}
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return body, nil
}
