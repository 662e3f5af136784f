package usecase

import (
	"golang.org/x/xerrors"

	"github.com/neonflick/goapi/base/ctx"
	"github.com/neonflick/goapi/base/metrics"
	hcdomain "github.com/neonflick/goapi/domain/healthcheck"
)

var met = metrics.New("healthcheck")

type impl struct {
	repo hcdomain.HealthCheckRepo
}

// New checks the listing store first and the lease store second
func New(repo hcdomain.HealthCheckRepo) hcdomain.HealthCheckUsecase {
	return &impl{
		repo: repo,
	}
}

func (im *impl) Check(context ctx.Ctx) error {
	if err := im.repo.PingDB(context); err != nil {
		met.BumpSum("fail", 1, "dependency", "mongo")
		return xerrors.Errorf("mongo: %w", err)
	}
	if err := im.repo.PingCache(context); err != nil {
		met.BumpSum("fail", 1, "dependency", "redis")
		return xerrors.Errorf("redis: %w", err)
	}
	return nil
}
