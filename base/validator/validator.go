package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/neonflick/goapi/domain"
)

const (
	tagWallet = "wallet"
	tagTxHash = "txhash"
)

// IsValidAddress returns is a base58 wallet address valid or not
func IsValidAddress(address string) bool {
	return domain.Address(address).IsValid()
}

// IsValidTxHash returns is a base58 transaction signature valid or not
func IsValidTxHash(hash string) bool {
	return domain.TxHash(hash).IsValid()
}

// NewCustomValidator registers the `wallet` and `txhash` tags on v
func NewCustomValidator(v *validator.Validate) echo.Validator {
	_ = v.RegisterValidation(tagWallet, func(fl validator.FieldLevel) bool {
		return IsValidAddress(fl.Field().String())
	})
	_ = v.RegisterValidation(tagTxHash, func(fl validator.FieldLevel) bool {
		return IsValidTxHash(fl.Field().String())
	})
	return &CustomValidator{v}
}

type CustomValidator struct {
	validator *validator.Validate
}

func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return err
	}
	return nil
}
