package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/neonflick/goapi/base/ctx"
	mockQuery "github.com/neonflick/goapi/service/query/mocks"
	mockRedis "github.com/neonflick/goapi/service/redis/mocks"
)

func TestPing(t *testing.T) {
	q := mockQuery.NewMongo(t)
	r := mockRedis.NewService(t)
	im := New(q, r)

	q.On("Ping", mock.Anything).Return(nil).Once()
	assert.NoError(t, im.PingDB(ctx.Background()))

	r.On("Set", mock.Anything, "healthcheck:testset", []byte("1"), 30*time.Second).Return(nil).Once()
	assert.NoError(t, im.PingCache(ctx.Background()))

	errDown := errors.New("i/o timeout")
	q.On("Ping", mock.Anything).Return(errDown).Once()
	assert.Equal(t, errDown, im.PingDB(ctx.Background()))
}
