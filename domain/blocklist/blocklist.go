package blocklist

import (
	"time"

	"github.com/neonflick/goapi/base/ctx"
	"github.com/neonflick/goapi/domain"
)

type Entry struct {
	Address   domain.Address `json:"address" bson:"address"`
	Reason    string         `json:"reason" bson:"reason"`
	BlockedBy domain.Address `json:"blockedBy" bson:"blockedBy"`
	CreatedAt time.Time      `json:"createdAt" bson:"createdAt"`
}

type Repo interface {
	FindAll(c ctx.Ctx) ([]*Entry, error)
	FindOne(c ctx.Ctx, address domain.Address) (*Entry, error)
	Create(c ctx.Ctx, value Entry) error
	Delete(c ctx.Ctx, address domain.Address) error
	EnsureIndexes(c ctx.Ctx) error
}

type Usecase interface {
	FindAll(c ctx.Ctx) ([]*Entry, error)
	Block(c ctx.Ctx, address domain.Address, reason string, by domain.Address) error
	Unblock(c ctx.Ctx, address domain.Address) error
	IsBlocked(c ctx.Ctx, address domain.Address) (bool, error)
}
