package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/neonflick/goapi/domain"
	"github.com/neonflick/goapi/domain/listing"
)

// listingDoc is the stored shape of a listing. Money is kept as Decimal128 so
// values round trip without float error.
type listingDoc struct {
	Id               string                `bson:"_id"`
	Owner            domain.Address        `bson:"owner"`
	Title            string                `bson:"title"`
	Description      string                `bson:"description"`
	Price            primitive.Decimal128  `bson:"price"`
	Commission       *primitive.Decimal128 `bson:"commission,omitempty"`
	NetAmount        primitive.Decimal128  `bson:"netAmount"`
	Currency         string                `bson:"currency"`
	ImageKey         string                `bson:"imageKey"`
	ImageUrl         string                `bson:"imageUrl"`
	Status           listing.Status        `bson:"status"`
	ConsumptionCount int                   `bson:"consumptionCount"`
	Transactions     []listing.Transaction `bson:"transactions"`
	CreatedAt        time.Time             `bson:"createdAt"`
	UpdatedAt        time.Time             `bson:"updatedAt"`
	ExpiresAt        time.Time             `bson:"expiresAt"`
}

// setDoc holds the `$set` part of a mutation, nil fields are left untouched
type setDoc struct {
	Status      *listing.Status       `bson:"status"`
	Title       *string               `bson:"title"`
	Description *string               `bson:"description"`
	Price       *primitive.Decimal128 `bson:"price"`
	Commission  *primitive.Decimal128 `bson:"commission"`
	NetAmount   *primitive.Decimal128 `bson:"netAmount"`
	Currency    *string               `bson:"currency"`
	ImageKey    *string               `bson:"imageKey"`
	ImageUrl    *string               `bson:"imageUrl"`
	UpdatedAt   *time.Time            `bson:"updatedAt"`
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	return primitive.ParseDecimal128(d.String())
}

func toDecimal128Ptr(d *decimal.Decimal) (*primitive.Decimal128, error) {
	if d == nil {
		return nil, nil
	}
	v, err := toDecimal128(*d)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func fromDecimal128(d primitive.Decimal128) (decimal.Decimal, error) {
	return decimal.NewFromString(d.String())
}

func toDoc(l *listing.Listing) (*listingDoc, error) {
	price, err := toDecimal128(l.Price)
	if err != nil {
		return nil, err
	}
	commission, err := toDecimal128Ptr(l.Commission)
	if err != nil {
		return nil, err
	}
	net, err := toDecimal128(l.NetAmount)
	if err != nil {
		return nil, err
	}
	txs := l.Transactions
	if txs == nil {
		txs = []listing.Transaction{}
	}

	return &listingDoc{
		Id:               l.Id,
		Owner:            l.Owner,
		Title:            l.Title,
		Description:      l.Description,
		Price:            price,
		Commission:       commission,
		NetAmount:        net,
		Currency:         l.Currency,
		ImageKey:         l.ImageKey,
		ImageUrl:         l.ImageUrl,
		Status:           l.Status,
		ConsumptionCount: l.ConsumptionCount,
		Transactions:     txs,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
		ExpiresAt:        l.ExpiresAt,
	}, nil
}

func (d *listingDoc) toListing() (*listing.Listing, error) {
	price, err := fromDecimal128(d.Price)
	if err != nil {
		return nil, err
	}
	net, err := fromDecimal128(d.NetAmount)
	if err != nil {
		return nil, err
	}
	var commission *decimal.Decimal
	if d.Commission != nil {
		v, err := fromDecimal128(*d.Commission)
		if err != nil {
			return nil, err
		}
		commission = &v
	}

	return &listing.Listing{
		Id:               d.Id,
		Owner:            d.Owner,
		Title:            d.Title,
		Description:      d.Description,
		Price:            price,
		Commission:       commission,
		NetAmount:        net,
		Currency:         d.Currency,
		ImageKey:         d.ImageKey,
		ImageUrl:         d.ImageUrl,
		Status:           d.Status,
		ConsumptionCount: d.ConsumptionCount,
		Transactions:     d.Transactions,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
		ExpiresAt:        d.ExpiresAt,
	}, nil
}

func toSetDoc(m listing.Mutation) (*setDoc, error) {
	price, err := toDecimal128Ptr(m.Price)
	if err != nil {
		return nil, err
	}
	commission, err := toDecimal128Ptr(m.Commission)
	if err != nil {
		return nil, err
	}
	net, err := toDecimal128Ptr(m.NetAmount)
	if err != nil {
		return nil, err
	}

	return &setDoc{
		Status:      m.Status,
		Title:       m.Title,
		Description: m.Description,
		Price:       price,
		Commission:  commission,
		NetAmount:   net,
		Currency:    m.Currency,
		ImageKey:    m.ImageKey,
		ImageUrl:    m.ImageUrl,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}
