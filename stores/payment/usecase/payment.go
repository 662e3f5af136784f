package usecase

import (
	"time"

	"golang.org/x/xerrors"

	"github.com/neonflick/goapi/base/ctx"
	"github.com/neonflick/goapi/base/log"
	"github.com/neonflick/goapi/base/metrics"
	"github.com/neonflick/goapi/domain"
	"github.com/neonflick/goapi/domain/blocklist"
	"github.com/neonflick/goapi/domain/listing"
	"github.com/neonflick/goapi/domain/payment"
)

const (
	// DefaultSafetyMargin is the least time a buyer needs to sign and land a payment
	DefaultSafetyMargin   = 30 * time.Second
	DefaultReservationTTL = 2 * time.Minute
)

var met = metrics.New("payment")

type UsecaseCfg struct {
	Listing     listing.Repo
	Blocklist   blocklist.Usecase
	Chain       domain.ChainClient
	Reservation domain.ReservationRepo

	PlatformAddress domain.Address
	SafetyMargin    time.Duration
	ReservationTTL  time.Duration

	Now func() time.Time
}

// Validate rejects settings that would make every payment descriptor unusable
func (cfg *UsecaseCfg) Validate() error {
	if !cfg.PlatformAddress.IsValid() {
		return xerrors.Errorf("platform address %q: %w", cfg.PlatformAddress, domain.ErrInvalidAddress)
	}
	return nil
}

type impl struct {
	listing     listing.Repo
	blocklist   blocklist.Usecase
	chain       domain.ChainClient
	reservation domain.ReservationRepo

	platformAddress domain.Address
	safetyMargin    time.Duration
	reservationTTL  time.Duration
	now             func() time.Time
}

func New(cfg *UsecaseCfg) payment.Usecase {
	im := &impl{
		listing:         cfg.Listing,
		blocklist:       cfg.Blocklist,
		chain:           cfg.Chain,
		reservation:     cfg.Reservation,
		platformAddress: cfg.PlatformAddress,
		safetyMargin:    cfg.SafetyMargin,
		reservationTTL:  cfg.ReservationTTL,
		now:             cfg.Now,
	}
	if im.safetyMargin <= 0 {
		im.safetyMargin = DefaultSafetyMargin
	}
	if im.reservationTTL <= 0 {
		im.reservationTTL = DefaultReservationTTL
	}
	if im.now == nil {
		im.now = time.Now
	}
	return im
}

func (im *impl) Prepare(c ctx.Ctx, listingId string, buyer domain.Address) (*payment.Descriptor, error) {
	c = ctx.WithValue(c, "listing", listingId)

	res, err := im.prepare(c, listingId, buyer)
	if err != nil {
		met.BumpSum("prepare.err", 1, "reason", reasonOf(err))
		return nil, err
	}
	return res, nil
}

func (im *impl) prepare(c ctx.Ctx, listingId string, buyer domain.Address) (*payment.Descriptor, error) {
	if !buyer.IsValid() {
		return nil, domain.ErrInvalidAddress
	}

	l, err := im.listing.Get(c, listingId)
	if err != nil {
		if err != domain.ErrNotFound {
			c.WithField("err", err).Error("listing.Get failed")
		}
		return nil, err
	}

	if blocked, err := im.blocklist.IsBlocked(c, l.Owner); err != nil {
		c.WithField("err", err).Error("blocklist.IsBlocked failed")
		return nil, err
	} else if blocked {
		return nil, listing.ErrOwnerBlocked
	}

	now := im.now()
	remaining := l.Remaining(now)
	if l.IsExpired(now) {
		return nil, listing.ErrListingExpired
	}
	if remaining < im.safetyMargin {
		return nil, listing.ErrTooLate
	}

	transfers, cur, err := im.transfers(c, l)
	if err != nil {
		return nil, err
	}

	blockhash, err := im.chain.LatestBlockhash(c)
	if err != nil {
		c.WithField("err", err).Error("chain.LatestBlockhash failed")
		return nil, domain.ErrUnavailable
	}

	// held past expiry so the reaper leaves the listing alone while the buyer pays
	lease := remaining + im.reservationTTL
	if err := im.reservation.Hold(c, l.Id, lease); err != nil {
		// without the lease the reaper may retire the listing mid payment
		c.WithField("err", err).Warn("reservation.Hold failed")
	}

	return &payment.Descriptor{
		ListingId:            l.Id,
		FeePayer:             buyer,
		RecentBlockReference: blockhash,
		Currency:             cur,
		Transfers:            transfers,
		ExpiresInSeconds:     int64(remaining / time.Second),
		Listing:              l,
	}, nil
}

var prepareReasons = []struct {
	err    error
	reason string
}{
	{domain.ErrInvalidAddress, "invalid_buyer"},
	{domain.ErrNotFound, "not_found"},
	{listing.ErrOwnerBlocked, "owner_blocked"},
	{listing.ErrListingExpired, "expired"},
	{listing.ErrTooLate, "too_late"},
	{listing.ErrInvalidConfiguration, "invalid_configuration"},
	{domain.ErrUnavailable, "chain_unavailable"},
}

// reasonOf keeps the metric tag set bounded
func reasonOf(err error) string {
	for _, r := range prepareReasons {
		if xerrors.Is(err, r.err) {
			return r.reason
		}
	}
	return "internal"
}

// transfers splits the price into commission for the platform and the rest for the owner
func (im *impl) transfers(c ctx.Ctx, l *listing.Listing) ([]payment.Transfer, listing.Currency, error) {
	invalid := func(reason string, err error) ([]payment.Transfer, listing.Currency, error) {
		c.WithFields(log.Fields{"reason": reason, "err": err}).Error("invalid listing configuration")
		return nil, listing.Currency{}, listing.ErrInvalidConfiguration
	}

	if !l.NetAmount.IsPositive() {
		return invalid("net amount not positive", nil)
	}
	cur, err := listing.LookupCurrency(l.Currency)
	if err != nil {
		return invalid("unknown currency", err)
	}
	if !l.Owner.IsValid() {
		return invalid("invalid owner", nil)
	}

	res := []payment.Transfer{}
	if l.Commission != nil && l.Commission.IsPositive() {
		units, err := cur.ToUnits(*l.Commission)
		if err != nil {
			return invalid("commission", err)
		}
		if units > 0 {
			res = append(res, payment.Transfer{Destination: im.platformAddress, Amount: units})
		}
	}

	units, err := cur.ToUnits(l.NetAmount)
	if err != nil {
		return invalid("net amount", err)
	}
	if units == 0 {
		return invalid("net amount below one unit", nil)
	}
	res = append(res, payment.Transfer{Destination: l.Owner, Amount: units})

	return res, cur, nil
}

func (im *impl) Record(c ctx.Ctx, listingId string, txHash domain.TxHash) (*listing.Listing, error) {
	c = ctx.WithValue(c, "listing", listingId)

	if !txHash.IsValid() {
		return nil, domain.ErrInvalidSignature
	}

	used := listing.StatusUsed
	res, err := im.listing.ConditionalUpdate(c, listingId,
		listing.Predicate{WithoutTransaction: &txHash},
		listing.Mutation{
			Status:          &used,
			IncConsumption:  1,
			PushTransaction: &listing.Transaction{Hash: txHash, RecordedAt: im.now()},
		},
	)
	if err == listing.ErrConditionNotMet {
		met.BumpSum("record.duplicate", 1)
		c.WithField("txHash", txHash).Info("transaction already recorded")
		return nil, listing.ErrDuplicateTransaction
	} else if err != nil {
		if err != domain.ErrNotFound {
			c.WithField("err", err).Error("listing.ConditionalUpdate failed")
		}
		return nil, err
	}

	if err := im.reservation.Release(c, listingId); err != nil {
		c.WithField("err", err).Warn("reservation.Release failed")
	}

	met.BumpSum("recorded", 1, "currency", res.Currency)
	return res, nil
}
