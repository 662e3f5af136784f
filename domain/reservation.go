package domain

import (
	"time"

	"github.com/neonflick/goapi/base/ctx"
)

// ReservationRepo holds short lived leases on listings while a payment is in flight.
// A held listing is skipped by the reaper.
type ReservationRepo interface {
	Hold(c ctx.Ctx, listingId string, ttl time.Duration) error
	IsHeld(c ctx.Ctx, listingId string) (bool, error)
	Release(c ctx.Ctx, listingId string) error
}
