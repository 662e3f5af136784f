package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/neonflick/goapi/domain"
	"github.com/neonflick/goapi/domain/listing"
	"github.com/neonflick/goapi/service/query"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
}

var errStatus = []struct {
	errs   []error
	status int
}{
	{
		errs:   []error{domain.ErrNotFound, query.ErrNotFound},
		status: http.StatusNotFound,
	},
	{
		errs: []error{
			domain.ErrBadParamInput,
			domain.ErrInvalidAddress,
			domain.ErrInvalidSignature,
			domain.ErrInvalidCurrency,
			domain.ErrInvalidNumberFormat,
			domain.ErrInvalidJsonFormat,
			listing.ErrPriceOutOfRange,
			listing.ErrPricePrecision,
			listing.ErrNetAmountNotPositive,
			listing.ErrInvalidDuration,
			listing.ErrInvalidTitle,
			listing.ErrInvalidDescription,
			listing.ErrInvalidImage,
		},
		status: http.StatusBadRequest,
	},
	{
		errs:   []error{listing.ErrImageTooLarge},
		status: http.StatusRequestEntityTooLarge,
	},
	{
		errs:   []error{domain.ErrForbidden, domain.ErrWalletBlocked, listing.ErrOwnerBlocked},
		status: http.StatusForbidden,
	},
	{
		errs: []error{
			domain.ErrConflict,
			query.ErrDuplicateKey,
			listing.ErrDuplicateTransaction,
			listing.ErrListingExpired,
			listing.ErrTooLate,
			listing.ErrConditionNotMet,
			listing.ErrInvalidConfiguration,
		},
		status: http.StatusConflict,
	},
	{
		errs:   []error{domain.ErrUnavailable},
		status: http.StatusServiceUnavailable,
	},
}

// StatusOf maps err to an http status, fallback is used for unknown errors
func StatusOf(err error, fallback int) int {
	for _, es := range errStatus {
		for _, e := range es.errs {
			if errors.Is(err, e) {
				return es.status
			}
		}
	}
	return fallback
}

func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		status = StatusOf(err, status)
		data = err.Error()
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusFail})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusSuccess})
	}

	return c.JSON(status, data)
}
