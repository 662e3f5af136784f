package query

import (
	"os"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/neonflick/goapi/base/ctx"
	"github.com/neonflick/goapi/base/database/mongoclient"
	"github.com/neonflick/goapi/domain"
)

var (
	mockCTX = ctx.Background()
)

const (
	mockTable = domain.Table("query_test")
	dbName    = "testdb"
)

type dummy struct {
	Id     string   `bson:"_id"`
	Owner  string   `bson:"owner"`
	Count  int      `bson:"count"`
	Hashes []string `bson:"hashes"`
}

type querySuite struct {
	suite.Suite
	im       *impl
	mongoURI string
}

func (q *querySuite) SetupSuite() {
	q.im = &impl{
		client: mongoclient.MustConnectMongoClient(mongoclient.MongoParam{
			URI:        q.mongoURI,
			AuthDBName: "admin",
			DBName:     dbName,
			SetSafe:    true,
		}),
	}
}

func (q *querySuite) SetupTest() {
	q.Require().NoError(q.im.coll(mockTable).Drop(mockCTX))
}

func (q *querySuite) TestInsertAndFindOne() {
	q.Require().NoError(q.im.Insert(mockCTX, mockTable, dummy{Id: "a", Owner: "o1"}))
	q.Equal(ErrDuplicateKey, q.im.Insert(mockCTX, mockTable, dummy{Id: "a", Owner: "o2"}))

	res := dummy{}
	q.Require().NoError(q.im.FindOne(mockCTX, mockTable, bson.M{"_id": "a"}, &res))
	q.Equal("o1", res.Owner)

	q.Equal(ErrNotFound, q.im.FindOne(mockCTX, mockTable, bson.M{"_id": "b"}, &res))
}

func (q *querySuite) TestFindOneAndPatch() {
	q.Require().NoError(q.im.Insert(mockCTX, mockTable, dummy{Id: "a", Hashes: []string{}}))

	selector := bson.M{"_id": "a", "hashes": bson.M{"$ne": "h1"}}
	update := bson.M{"$inc": bson.M{"count": 1}, "$push": bson.M{"hashes": "h1"}}

	res := dummy{}
	q.Require().NoError(q.im.FindOneAndPatch(mockCTX, mockTable, selector, update, &res))
	q.Equal(1, res.Count)
	q.Equal([]string{"h1"}, res.Hashes)

	// predicate no longer holds
	q.Equal(ErrNotFound, q.im.FindOneAndPatch(mockCTX, mockTable, selector, update, &res))

	stored := dummy{}
	q.Require().NoError(q.im.FindOne(mockCTX, mockTable, bson.M{"_id": "a"}, &stored))
	q.Equal(1, stored.Count)
}

func (q *querySuite) TestSearchAndRemove() {
	q.Require().NoError(q.im.Insert(mockCTX, mockTable, dummy{Id: "a", Owner: "o", Count: 2}))
	q.Require().NoError(q.im.Insert(mockCTX, mockTable, dummy{Id: "b", Owner: "o", Count: 1}))
	q.Require().NoError(q.im.EnsureIndexes(mockCTX, mockTable, []Index{{Keys: bson.D{{Key: "owner", Value: 1}}}}))

	res := []dummy{}
	q.Require().NoError(q.im.Search(mockCTX, mockTable, 0, 0, "count", bson.M{"owner": "o"}, &res))
	q.Require().Len(res, 2)
	q.Equal("b", res[0].Id)

	n, err := q.im.Count(mockCTX, mockTable, bson.M{"owner": "o"})
	q.Require().NoError(err)
	q.Equal(2, n)

	q.NoError(q.im.Remove(mockCTX, mockTable, bson.M{"_id": "a"}))
	q.Equal(ErrNotFound, q.im.Remove(mockCTX, mockTable, bson.M{"_id": "a"}))
}

func (q *querySuite) TestPatch() {
	q.Require().NoError(q.im.Insert(mockCTX, mockTable, dummy{Id: "a", Owner: "o"}))
	q.NoError(q.im.Patch(mockCTX, mockTable, bson.M{"_id": "a"}, bson.M{"owner": "p"}))
	q.Equal(ErrNotFound, q.im.Patch(mockCTX, mockTable, bson.M{"_id": "z"}, bson.M{"owner": "p"}))
}

func TestGetSortOption(t *testing.T) {
	suite.Run(t, &sortSuite{})
}

type sortSuite struct {
	suite.Suite
}

func (s *sortSuite) TestSort() {
	s.Equal(bson.D{{Key: "expiresAt", Value: 1}}, getSortOption("expiresAt"))
	s.Equal(bson.D{{Key: "createdAt", Value: -1}}, getSortOption("-createdAt"))
	s.Equal(bson.D{}, getSortOption(""))
}

func TestQuerySuite(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	suite.Run(t, &querySuite{mongoURI: uri})
}
