package payment

import (
	"github.com/neonflick/goapi/base/ctx"
	"github.com/neonflick/goapi/domain"
	"github.com/neonflick/goapi/domain/listing"
)

// Transfer amounts are in the currency's smallest unit, string encoded for json clients.
type Transfer struct {
	Destination domain.Address `json:"destination"`
	Amount      uint64         `json:"amount,string"`
}

// Descriptor is the unsigned payment a buyer's wallet has to build, sign and broadcast.
// It is never persisted.
type Descriptor struct {
	ListingId            string           `json:"listingId"`
	FeePayer             domain.Address   `json:"feePayer"`
	RecentBlockReference string           `json:"recentBlockReference"`
	Currency             listing.Currency `json:"currency"`
	Transfers            []Transfer       `json:"transfers"`
	ExpiresInSeconds     int64            `json:"expiresInSeconds"`

	// Listing is the listing the descriptor was priced from
	Listing *listing.Listing `json:"-"`
}

type Usecase interface {
	Prepare(c ctx.Ctx, listingId string, buyer domain.Address) (*Descriptor, error)
	Record(c ctx.Ctx, listingId string, txHash domain.TxHash) (*listing.Listing, error)
}
