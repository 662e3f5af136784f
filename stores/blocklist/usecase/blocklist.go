package usecase

import (
	"time"

	"github.com/neonflick/goapi/base/ctx"
	"github.com/neonflick/goapi/domain"
	"github.com/neonflick/goapi/domain/blocklist"
	"github.com/neonflick/goapi/service/cache"
)

type impl struct {
	blocklist blocklist.Repo
	cache     cache.Service
}

// New caches IsBlocked answers in c. Other processes see a change only
// after their cached answer expires.
func New(blocklist blocklist.Repo, c cache.Service) blocklist.Usecase {
	return &impl{blocklist, c}
}

func (im *impl) FindAll(c ctx.Ctx) ([]*blocklist.Entry, error) {
	return im.blocklist.FindAll(c)
}

func (im *impl) IsBlocked(c ctx.Ctx, address domain.Address) (bool, error) {
	var blocked bool
	err := im.cache.GetByFunc(c, string(address), &blocked, func() (interface{}, error) {
		res, err := im.blocklist.FindOne(c, address)
		if err != nil {
			return nil, err
		}
		found := res != nil
		return &found, nil
	})
	if err != nil {
		c.WithField("err", err).Error("blocklist.FindOne failed")
		return false, err
	}
	return blocked, nil
}

func (im *impl) Block(c ctx.Ctx, address domain.Address, reason string, by domain.Address) error {
	if !address.IsValid() {
		return domain.ErrInvalidAddress
	}

	entry := blocklist.Entry{
		Address:   address,
		Reason:    reason,
		BlockedBy: by,
		CreatedAt: time.Now(),
	}
	if err := im.blocklist.Create(c, entry); err != nil {
		c.WithField("err", err).Error("blocklist.Create failed")
		return err
	}
	im.forget(c, address)
	return nil
}

func (im *impl) Unblock(c ctx.Ctx, address domain.Address) error {
	if err := im.blocklist.Delete(c, address); err != nil {
		c.WithField("err", err).Error("blocklist.Delete failed")
		return err
	}
	im.forget(c, address)
	return nil
}

func (im *impl) forget(c ctx.Ctx, address domain.Address) {
	if err := im.cache.Del(c, string(address)); err != nil {
		c.WithField("err", err).WithField("address", address).Warn("cache.Del failed")
	}
}
