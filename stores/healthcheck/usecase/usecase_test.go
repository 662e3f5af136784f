package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/neonflick/goapi/base/ctx"
	"github.com/neonflick/goapi/domain/healthcheck/mocks"
)

func TestCheck(t *testing.T) {
	errDown := errors.New("no reachable servers")

	repo := mocks.NewHealthCheckRepo(t)
	repo.On("PingDB", mock.Anything).Return(nil).Once()
	repo.On("PingCache", mock.Anything).Return(nil).Once()
	assert.NoError(t, New(repo).Check(ctx.Background()))

	repo = mocks.NewHealthCheckRepo(t)
	repo.On("PingDB", mock.Anything).Return(errDown).Once()
	err := New(repo).Check(ctx.Background())
	assert.ErrorIs(t, err, errDown)
	assert.Contains(t, err.Error(), "mongo")

	repo = mocks.NewHealthCheckRepo(t)
	repo.On("PingDB", mock.Anything).Return(nil).Once()
	repo.On("PingCache", mock.Anything).Return(errDown).Once()
	err = New(repo).Check(ctx.Background())
	assert.ErrorIs(t, err, errDown)
	assert.Contains(t, err.Error(), "redis")
}
