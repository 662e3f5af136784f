package redis

import (
	"errors"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/neonflick/goapi/base/ctx"
)

const (
	// Forever is the ttl of keys without expiration
	Forever = time.Duration(-1)
)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = redis.ErrNil
	// ErrNoPool is returned when the service has no pool to serve the command
	ErrNoPool = errors.New("no redis pool")
)

// Service wraps a redigo pool with metrics and logging
type Service interface {
	// Get returns ErrNotFound if key does not exist
	Get(context ctx.Ctx, key string) ([]byte, error)
	Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error
	// SetNX reports whether the key was set, false means it already existed
	SetNX(context ctx.Ctx, key string, val []byte, expire time.Duration) (bool, error)
	Del(context ctx.Ctx, keys ...string) (int, error)
	Exists(context ctx.Ctx, key string) (bool, error)
	// TTL returns the remaining time to live in seconds, -1 for keys without
	// expiration and ErrNotFound if key does not exist
	TTL(context ctx.Ctx, key string) (int, error)
	Ping(context ctx.Ctx) error
	Name() string
}
