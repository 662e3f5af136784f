package repository

import (
	"bytes"
	"io"
	"net/url"
	"time"

	"cloud.google.com/go/storage"

	bCtx "github.com/neonflick/goapi/base/ctx"
	"github.com/neonflick/goapi/base/log"
	"github.com/neonflick/goapi/base/metrics"
	"github.com/neonflick/goapi/domain"
)

var met = metrics.New("blob")

type CloudStorageRepoCfg struct {
	Timeout    time.Duration
	Client     *storage.Client
	BucketName string
	// Url is the public base url objects are served from
	Url string
}

type cloudStorageRepo struct {
	client     *storage.Client
	bucketName string
	ctxTimeout time.Duration
	baseUrl    *url.URL
}

func NewCloudStorageRepo(cfg *CloudStorageRepoCfg) (domain.BlobRepo, error) {
	baseUrl, err := url.Parse(cfg.Url)
	if err != nil {
		return nil, err
	}
	return &cloudStorageRepo{
		client:     cfg.Client,
		bucketName: cfg.BucketName,
		ctxTimeout: cfg.Timeout,
		baseUrl:    baseUrl,
	}, nil
}

func (r *cloudStorageRepo) Put(c bCtx.Ctx, key string, body []byte, contentType string) (string, error) {
	defer met.BumpTime("put.time").End()

	objectUrl, err := publicUrl(r.baseUrl, key)
	if err != nil {
		c.WithFields(log.Fields{
			"key": key,
			"err": err,
		}).Error("failed to parse key")
		return "", err
	}

	ctx, cancel := bCtx.WithTimeout(c, r.ctxTimeout)
	defer cancel()
	w := r.object(key).NewWriter(ctx)
	if len(contentType) > 0 {
		w.ObjectAttrs.ContentType = contentType
	}
	if _, err := io.Copy(w, bytes.NewReader(body)); err != nil {
		ctx.WithFields(log.Fields{
			"key": key,
			"err": err,
		}).Error("failed to copy")
		w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		ctx.WithFields(log.Fields{
			"key": key,
			"err": err,
		}).Error("failed to close writer")
		return "", err
	}
	return objectUrl, nil
}

func (r *cloudStorageRepo) Delete(c bCtx.Ctx, key string) error {
	ctx, cancel := bCtx.WithTimeout(c, r.ctxTimeout)
	defer cancel()

	if err := r.object(key).Delete(ctx); err == storage.ErrObjectNotExist {
		return domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"key": key,
			"err": err,
		}).Error("object.Delete failed")
		return err
	}
	return nil
}

func (r *cloudStorageRepo) Exists(c bCtx.Ctx, key string) (bool, error) {
	ctx, cancel := bCtx.WithTimeout(c, r.ctxTimeout)
	defer cancel()

	if _, err := r.object(key).Attrs(ctx); err == storage.ErrObjectNotExist {
		return false, nil
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"key": key,
			"err": err,
		}).Error("object.Attrs failed")
		return false, err
	}
	return true, nil
}

func (r *cloudStorageRepo) object(key string) *storage.ObjectHandle {
	return r.client.Bucket(r.bucketName).Object(key)
}

func publicUrl(base *url.URL, key string) (string, error) {
	contentPath, err := url.Parse(key)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(contentPath).String(), nil
}
