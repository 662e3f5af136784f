package domain

import (
	"github.com/mr-tron/base58"
)

const (
	// base58 encoded ed25519 public key
	addressLen = 32
	// base58 encoded ed25519 signature
	signatureLen = 64
)

// Address is a base58 encoded wallet address. It is case sensitive.
type Address string

func (a Address) String() string {
	return string(a)
}

func (a Address) Equals(b Address) bool {
	return string(a) == string(b)
}

// IsValid reports whether a decodes into a 32 byte public key.
func (a Address) IsValid() bool {
	return isBase58Of(string(a), addressLen)
}

// TxHash is a base58 encoded transaction signature.
type TxHash string

func (h TxHash) String() string {
	return string(h)
}

func (h TxHash) IsValid() bool {
	return isBase58Of(string(h), signatureLen)
}

func isBase58Of(s string, n int) bool {
	if len(s) == 0 {
		return false
	}
	b, err := base58.Decode(s)
	if err != nil {
		return false
	}
	return len(b) == n
}

// Table is a mongo collection name
type Table string

const (
	TableListings  = Table("listings")
	TableBlocklist = Table("blocklist")
)
