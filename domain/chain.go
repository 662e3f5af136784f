package domain

import (
	"github.com/neonflick/goapi/base/ctx"
)

// ChainClient is the only chain interaction needed: a recent block reference for unsigned transactions.
type ChainClient interface {
	LatestBlockhash(c ctx.Ctx) (string, error)
}
