package usecase

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/neonflick/goapi/base/backoff"
	"github.com/neonflick/goapi/base/ctx"
	"github.com/neonflick/goapi/base/log"
	"github.com/neonflick/goapi/base/metrics"
	"github.com/neonflick/goapi/base/ptr"
	"github.com/neonflick/goapi/domain"
	"github.com/neonflick/goapi/domain/blocklist"
	"github.com/neonflick/goapi/domain/keys"
	"github.com/neonflick/goapi/domain/listing"
)

const (
	defaultCallTimeout = 10 * time.Second
	defaultRetries     = 3
)

var met = metrics.New("listing")

type UsecaseCfg struct {
	Repo      listing.Repo
	Blob      domain.BlobRepo
	Blocklist blocklist.Usecase

	DefaultDuration time.Duration
	MinDuration     time.Duration
	MaxDuration     time.Duration
	// MaxImageSize in bytes, 0 means unlimited
	MaxImageSize int

	// CallTimeout and Retries bound every store call made while retiring a listing
	CallTimeout time.Duration
	Retries     int

	Now func() time.Time
}

type impl struct {
	repo      listing.Repo
	blob      domain.BlobRepo
	blocklist blocklist.Usecase

	defaultDuration time.Duration
	minDuration     time.Duration
	maxDuration     time.Duration
	maxImageSize    int
	callTimeout     time.Duration
	retries         int
	now             func() time.Time
}

func New(cfg *UsecaseCfg) listing.Usecase {
	im := &impl{
		repo:            cfg.Repo,
		blob:            cfg.Blob,
		blocklist:       cfg.Blocklist,
		defaultDuration: cfg.DefaultDuration,
		minDuration:     cfg.MinDuration,
		maxDuration:     cfg.MaxDuration,
		maxImageSize:    cfg.MaxImageSize,
		callTimeout:     cfg.CallTimeout,
		retries:         cfg.Retries,
		now:             cfg.Now,
	}
	if im.callTimeout <= 0 {
		im.callTimeout = defaultCallTimeout
	}
	if im.retries <= 0 {
		im.retries = defaultRetries
	}
	if im.now == nil {
		im.now = time.Now
	}
	return im
}

func (im *impl) Create(c ctx.Ctx, owner domain.Address, p listing.CreateParams) (*listing.Listing, error) {
	if !owner.IsValid() {
		return nil, domain.ErrInvalidAddress
	}
	if err := im.checkOwner(c, owner); err != nil {
		return nil, err
	}

	title, err := validateTitle(p.Title)
	if err != nil {
		return nil, err
	}
	if err := validateDescription(p.Description); err != nil {
		return nil, err
	}
	cur, err := listing.LookupCurrency(p.Currency)
	if err != nil {
		return nil, err
	}
	commission, net, err := listing.ComputeFees(p.Price, cur)
	if err != nil {
		return nil, err
	}
	duration, err := im.duration(p.Duration)
	if err != nil {
		return nil, err
	}
	if p.Image == nil {
		return nil, listing.ErrInvalidImage
	}
	contentType, ext, err := im.sniffImage(p.Image)
	if err != nil {
		return nil, err
	}

	now := im.now()
	id := uuid.New().String()
	key := imageKey(id, ext)
	url, err := im.blob.Put(c, key, p.Image.Body, contentType)
	if err != nil {
		c.WithField("err", err).WithField("key", key).Error("blob.Put failed")
		return nil, err
	}

	l := &listing.Listing{
		Id:           id,
		Owner:        owner,
		Title:        title,
		Description:  p.Description,
		Price:        p.Price,
		Commission:   commission,
		NetAmount:    net,
		Currency:     cur.Ticker,
		ImageKey:     key,
		ImageUrl:     url,
		Status:       listing.StatusNew,
		Transactions: []listing.Transaction{},
		CreatedAt:    now,
		UpdatedAt:    now,
		ExpiresAt:    now.Add(duration),
	}
	if err := im.repo.Insert(c, l); err != nil {
		c.WithField("err", err).WithField("id", id).Error("repo.Insert failed")
		im.dropBlob(c, key)
		return nil, err
	}

	met.BumpSum("created", 1, "currency", cur.Ticker)
	return l, nil
}

func (im *impl) Update(c ctx.Ctx, owner domain.Address, id string, p listing.UpdateParams) (*listing.Listing, error) {
	l, err := im.ownedListing(c, owner, id)
	if err != nil {
		return nil, err
	}
	now := im.now()
	if l.IsExpired(now) {
		return nil, listing.ErrListingExpired
	}

	m := listing.Mutation{UpdatedAt: ptr.Time(now)}
	if p.Title != nil {
		title, err := validateTitle(*p.Title)
		if err != nil {
			return nil, err
		}
		m.Title = ptr.String(title)
	}
	if p.Description != nil {
		if err := validateDescription(*p.Description); err != nil {
			return nil, err
		}
		m.Description = p.Description
	}
	if err := applyPricing(l, p, &m); err != nil {
		return nil, err
	}

	var (
		pred   listing.Predicate
		newKey string
	)
	if p.Image != nil {
		contentType, ext, err := im.sniffImage(p.Image)
		if err != nil {
			return nil, err
		}
		newKey = imageKey(id, ext)
		url, err := im.blob.Put(c, newKey, p.Image.Body, contentType)
		if err != nil {
			c.WithField("err", err).WithField("key", newKey).Error("blob.Put failed")
			return nil, err
		}
		m.ImageKey = ptr.String(newKey)
		m.ImageUrl = ptr.String(url)
		// the swap only lands if nobody replaced the image in between
		pred.ImageKey = &l.ImageKey
	}

	res, err := im.repo.ConditionalUpdate(c, id, pred, m)
	if err != nil {
		c.WithField("err", err).WithField("id", id).Error("repo.ConditionalUpdate failed")
		if newKey != "" {
			im.dropBlob(c, newKey)
		}
		return nil, err
	}

	if newKey != "" && l.ImageKey != "" {
		im.dropBlob(c, l.ImageKey)
	}
	return res, nil
}

// applyPricing recomputes the fees only when price or currency changed
func applyPricing(l *listing.Listing, p listing.UpdateParams, m *listing.Mutation) error {
	price := l.Price
	ticker := l.Currency
	if p.Price != nil {
		price = *p.Price
	}
	if p.Currency != nil {
		ticker = *p.Currency
	}
	if price.Equal(l.Price) && strings.EqualFold(ticker, l.Currency) {
		return nil
	}

	cur, err := listing.LookupCurrency(ticker)
	if err != nil {
		return err
	}
	commission, net, err := listing.ComputeFees(price, cur)
	if err != nil {
		return err
	}

	m.Price = ptr.Decimal(price)
	m.Currency = ptr.String(cur.Ticker)
	m.NetAmount = ptr.Decimal(net)
	if commission != nil {
		m.Commission = commission
	} else if l.Commission != nil {
		m.UnsetCommission = true
	}
	return nil
}

func (im *impl) Delete(c ctx.Ctx, owner domain.Address, id string) error {
	l, err := im.ownedListing(c, owner, id)
	if err != nil {
		return err
	}
	return im.Retire(c, l)
}

func (im *impl) Retire(c ctx.Ctx, l *listing.Listing) error {
	c = ctx.WithValue(c, "listing", l.Id)

	if l.ImageKey != "" {
		var exists bool
		if err := im.retry(c, func(cc ctx.Ctx) (err error) {
			exists, err = im.blob.Exists(cc, l.ImageKey)
			return err
		}); err != nil {
			c.WithField("err", err).Error("blob.Exists failed")
			return err
		}

		if exists {
			err := im.retry(c, func(cc ctx.Ctx) error {
				return im.blob.Delete(cc, l.ImageKey)
			})
			if err != nil && err != domain.ErrNotFound {
				c.WithField("err", err).Error("blob.Delete failed")
				return err
			}
		}
	}

	// the record goes only after its image, and only if the image was not swapped meanwhile
	err := im.retry(c, func(cc ctx.Ctx) error {
		return im.repo.Delete(cc, l.Id, listing.Predicate{ImageKey: &l.ImageKey})
	})
	if err == domain.ErrNotFound {
		c.Info("listing already gone")
		return nil
	} else if err == listing.ErrConditionNotMet {
		c.Warn("image replaced while retiring")
		return err
	} else if err != nil {
		c.WithField("err", err).Error("repo.Delete failed")
		return err
	}

	met.BumpSum("retired", 1)
	return nil
}

func (im *impl) Get(c ctx.Ctx, id string) (*listing.Listing, error) {
	return im.repo.Get(c, id)
}

func (im *impl) FindByOwner(c ctx.Ctx, owner domain.Address) ([]*listing.Listing, error) {
	if !owner.IsValid() {
		return nil, domain.ErrInvalidAddress
	}
	return im.repo.FindByOwner(c, owner)
}

func (im *impl) FindExpired(c ctx.Ctx, now time.Time, limit int) ([]*listing.Listing, error) {
	var res []*listing.Listing
	if err := im.retry(c, func(cc ctx.Ctx) (err error) {
		res, err = im.repo.FindExpired(cc, now, limit)
		return err
	}); err != nil {
		c.WithField("err", err).Error("repo.FindExpired failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) ownedListing(c ctx.Ctx, owner domain.Address, id string) (*listing.Listing, error) {
	l, err := im.repo.Get(c, id)
	if err != nil {
		if err != domain.ErrNotFound {
			c.WithField("err", err).WithField("id", id).Error("repo.Get failed")
		}
		return nil, err
	}
	if !l.Owner.Equals(owner) {
		c.WithFields(log.Fields{"id": id, "owner": l.Owner, "caller": owner}).Warn("not the listing owner")
		return nil, domain.ErrForbidden
	}
	return l, nil
}

func (im *impl) checkOwner(c ctx.Ctx, owner domain.Address) error {
	blocked, err := im.blocklist.IsBlocked(c, owner)
	if err != nil {
		c.WithField("err", err).Error("blocklist.IsBlocked failed")
		return err
	} else if blocked {
		return listing.ErrOwnerBlocked
	}
	return nil
}

func (im *impl) duration(d time.Duration) (time.Duration, error) {
	if d == 0 {
		d = im.defaultDuration
	}
	if d <= 0 || (im.minDuration > 0 && d < im.minDuration) || (im.maxDuration > 0 && d > im.maxDuration) {
		return 0, listing.ErrInvalidDuration
	}
	return d, nil
}

// retry runs fn with a per call timeout and a bounded exponential backoff.
// Missing records and unmet conditions are answers, not failures.
func (im *impl) retry(c ctx.Ctx, fn func(ctx.Ctx) error) error {
	b := backoff.NewExponential(100*time.Millisecond, 2*time.Second)
	return backoff.Retry(c, b, im.retries, func() error {
		cc, cancel := ctx.WithTimeout(c, im.callTimeout)
		defer cancel()
		err := fn(cc)
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, listing.ErrConditionNotMet) {
			return backoff.Permanent(err)
		}
		return err
	})
}

// dropBlob removes an orphaned image, failures only leave garbage behind
func (im *impl) dropBlob(c ctx.Ctx, key string) {
	dc, cancel := ctx.WithTimeout(ctx.Detach(c), im.callTimeout)
	defer cancel()
	if err := im.blob.Delete(dc, key); err != nil && err != domain.ErrNotFound {
		met.BumpSum("orphan_blob", 1)
		c.WithField("err", err).WithField("key", key).Warn("blob.Delete failed")
	}
}

func imageKey(id, ext string) string {
	return keys.BlobKey(keys.PfxListingBlob, id, uuid.New().String()+ext)
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" || utf8.RuneCountInString(title) > listing.MaxTitleLen {
		return "", listing.ErrInvalidTitle
	}
	return title, nil
}

func validateDescription(desc string) error {
	if utf8.RuneCountInString(desc) > listing.MaxDescriptionLen {
		return listing.ErrInvalidDescription
	}
	return nil
}
