package listing

import "errors"

var (
	ErrConditionNotMet      = errors.New("listing condition not met")
	ErrListingExpired       = errors.New("listing expired")
	ErrTooLate              = errors.New("too late to pay for listing")
	ErrOwnerBlocked         = errors.New("listing owner is blocked")
	ErrInvalidConfiguration = errors.New("invalid listing configuration")
	ErrDuplicateTransaction = errors.New("duplicate transaction")
	ErrPriceOutOfRange      = errors.New("price out of range")
	ErrPricePrecision       = errors.New("price has too many fractional digits")
	ErrNetAmountNotPositive = errors.New("net amount must be positive")
	ErrInvalidDuration      = errors.New("invalid listing duration")
	ErrInvalidTitle         = errors.New("invalid title")
	ErrInvalidDescription   = errors.New("invalid description")
	ErrInvalidImage         = errors.New("invalid image")
	ErrImageTooLarge        = errors.New("image too large")
)
