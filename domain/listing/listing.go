package listing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/neonflick/goapi/base/ctx"
	"github.com/neonflick/goapi/domain"
)

type Status string

const (
	StatusNew  Status = "new"
	StatusUsed Status = "used"
)

const (
	MaxTitleLen       = 50
	MaxDescriptionLen = 500
)

type Transaction struct {
	Hash       domain.TxHash `json:"hash" bson:"hash"`
	RecordedAt time.Time     `json:"recordedAt" bson:"recordedAt"`
}

type Listing struct {
	Id               string           `json:"id"`
	Owner            domain.Address   `json:"owner"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	Price            decimal.Decimal  `json:"price"`
	Commission       *decimal.Decimal `json:"commission,omitempty"`
	NetAmount        decimal.Decimal  `json:"netAmount"`
	Currency         string           `json:"currency"`
	ImageKey         string           `json:"-"`
	ImageUrl         string           `json:"imageUrl"`
	Status           Status           `json:"status"`
	ConsumptionCount int              `json:"consumptionCount"`
	Transactions     []Transaction    `json:"transactions"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
	ExpiresAt        time.Time        `json:"expiresAt"`
}

// Remaining returns the time left before the listing expires, negative once expired.
func (l *Listing) Remaining(now time.Time) time.Duration {
	return l.ExpiresAt.Sub(now)
}

func (l *Listing) IsExpired(now time.Time) bool {
	return now.After(l.ExpiresAt)
}

func (l *Listing) HasTransaction(hash domain.TxHash) bool {
	for _, tx := range l.Transactions {
		if tx.Hash == hash {
			return true
		}
	}
	return false
}

// Predicate is matched against the stored document in the same operation as the mutation.
// Nil fields are not checked.
type Predicate struct {
	Status             *Status
	WithoutTransaction *domain.TxHash
	ImageKey           *string
}

type Mutation struct {
	Status          *Status
	IncConsumption  int
	PushTransaction *Transaction

	Title           *string
	Description     *string
	Price           *decimal.Decimal
	Commission      *decimal.Decimal
	UnsetCommission bool
	NetAmount       *decimal.Decimal
	Currency        *string
	ImageKey        *string
	ImageUrl        *string
	UpdatedAt       *time.Time
}

type Image struct {
	Filename string
	Body     []byte
}

type CreateParams struct {
	Title       string
	Description string
	Price       decimal.Decimal
	Currency    string
	// zero means the configured default
	Duration time.Duration
	Image    *Image
}

type UpdateParams struct {
	Title       *string
	Description *string
	Price       *decimal.Decimal
	Currency    *string
	Image       *Image
}

type Repo interface {
	Get(c ctx.Ctx, id string) (*Listing, error)
	Insert(c ctx.Ctx, l *Listing) error
	// ConditionalUpdate applies m only if p holds, atomically, and returns the updated listing.
	// It returns domain.ErrNotFound if the listing is gone and ErrConditionNotMet if p does not hold.
	ConditionalUpdate(c ctx.Ctx, id string, p Predicate, m Mutation) (*Listing, error)
	// Delete returns domain.ErrNotFound if the listing is gone and ErrConditionNotMet if p does not hold.
	Delete(c ctx.Ctx, id string, p Predicate) error
	// FindExpired returns listings with expiresAt <= now, oldest first.
	FindExpired(c ctx.Ctx, now time.Time, limit int) ([]*Listing, error)
	FindByOwner(c ctx.Ctx, owner domain.Address) ([]*Listing, error)
	EnsureIndexes(c ctx.Ctx) error
}

type Usecase interface {
	Create(c ctx.Ctx, owner domain.Address, p CreateParams) (*Listing, error)
	Update(c ctx.Ctx, owner domain.Address, id string, p UpdateParams) (*Listing, error)
	Delete(c ctx.Ctx, owner domain.Address, id string) error
	// Retire removes the listing image and then the listing record.
	Retire(c ctx.Ctx, l *Listing) error
	Get(c ctx.Ctx, id string) (*Listing, error)
	FindByOwner(c ctx.Ctx, owner domain.Address) ([]*Listing, error)
	FindExpired(c ctx.Ctx, now time.Time, limit int) ([]*Listing, error)
}
