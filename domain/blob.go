package domain

import (
	"github.com/neonflick/goapi/base/ctx"
)

// BlobRepo stores listing images under opaque keys
type BlobRepo interface {
	// Put writes body under key and returns its public url
	Put(c ctx.Ctx, key string, body []byte, contentType string) (string, error)
	// Delete returns ErrNotFound if key does not exist
	Delete(c ctx.Ctx, key string) error
	Exists(c ctx.Ctx, key string) (bool, error)
}
