package domain

import "errors"

var (
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("Your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("Given Param is not valid")
	// ErrForbidden will throw if the caller does not own the requested item
	ErrForbidden = errors.New("Forbidden")
	// ErrUnavailable will throw if a backing store or the chain can not be reached
	ErrUnavailable = errors.New("Service unavailable")

	ErrInvalidJsonFormat   = errors.New("invalid JSON format")
	ErrInvalidNumberFormat = errors.New("invalid number format")
	ErrInvalidCurrency     = errors.New("invalid currency")

	// request error
	ErrInvalidAddress   = errors.New("Invalid address")
	ErrInvalidSignature = errors.New("Invalid signature")
	ErrWalletBlocked    = errors.New("wallet_blocked")
)
