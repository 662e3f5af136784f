package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/neonflick/goapi/base/ctx"
	"github.com/neonflick/goapi/base/delivery"
	customValidator "github.com/neonflick/goapi/base/validator"
	"github.com/neonflick/goapi/domain"
	"github.com/neonflick/goapi/domain/listing"
	"github.com/neonflick/goapi/domain/payment"
	mockPayment "github.com/neonflick/goapi/domain/payment/mocks"
)

var (
	buyer  = domain.Address("CiwjEStzDKR8j1uQgVvU6hFtt8thAK3aZMDN3X6yzW5q")
	txHash = domain.TxHash("2soASZVz6NaEUZtRyCbf3hAdpPAAiecRovUSi99FFw9GJGQTbdoPFaFctNx1Nzt2FzPMLj5JjBnkXJm6CGofULNX")
)

type handlerSuite struct {
	suite.Suite
	e       *echo.Echo
	payment *mockPayment.Usecase
}

func (s *handlerSuite) SetupTest() {
	s.e = echo.New()
	s.e.Validator = customValidator.NewCustomValidator(validator.New())
	s.e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", ctx.Background())
			return next(c)
		}
	})
	s.payment = mockPayment.NewUsecase(s.T())
	New(s.e, s.payment)
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(handlerSuite))
}

func (s *handlerSuite) do(method, target, body string) (*httptest.ResponseRecorder, delivery.JsonResponse) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	resp := delivery.JsonResponse{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func (s *handlerSuite) TestPrepare() {
	desc := &payment.Descriptor{
		ListingId:        "a1",
		FeePayer:         buyer,
		Transfers:        []payment.Transfer{{Destination: buyer, Amount: 10}},
		ExpiresInSeconds: 60,
		Listing:          &listing.Listing{Id: "a1", Title: "poster"},
	}
	s.payment.On("Prepare", mock.Anything, "a1", buyer).Return(desc, nil).Once()

	rec, resp := s.do(http.MethodGet, "/api/pay/a1?buyer="+string(buyer), "")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(delivery.JsonResponseStatusSuccess, resp.Status)
	s.Contains(rec.Body.String(), `"amount":"10"`)
	s.Contains(rec.Body.String(), `"expiresInSeconds":60`)

	data := resp.Data.(map[string]interface{})
	s.Equal("poster", data["listing"].(map[string]interface{})["title"])
	s.NotContains(data["payment"], "listing", "listing is not repeated inside the descriptor")
}

func (s *handlerSuite) TestPrepareErrors() {
	cases := []struct {
		Desc string
		Err  error
		Code int
	}{
		{Desc: "not found", Err: domain.ErrNotFound, Code: http.StatusNotFound},
		{Desc: "blocked owner", Err: listing.ErrOwnerBlocked, Code: http.StatusForbidden},
		{Desc: "expired", Err: listing.ErrListingExpired, Code: http.StatusConflict},
		{Desc: "too late", Err: listing.ErrTooLate, Code: http.StatusConflict},
		{Desc: "misconfigured", Err: listing.ErrInvalidConfiguration, Code: http.StatusConflict},
		{Desc: "chain down", Err: domain.ErrUnavailable, Code: http.StatusServiceUnavailable},
	}

	for _, c := range cases {
		s.payment.On("Prepare", mock.Anything, "a1", buyer).Return(nil, c.Err).Once()

		rec, resp := s.do(http.MethodGet, "/api/pay/a1?buyer="+string(buyer), "")
		s.Equal(c.Code, rec.Code, c.Desc)
		s.Equal(delivery.JsonResponseStatusFail, resp.Status, c.Desc)
		s.Equal(c.Err.Error(), resp.Data, c.Desc)
	}
}

func (s *handlerSuite) TestPrepareInvalidBuyer() {
	rec, _ := s.do(http.MethodGet, "/api/pay/a1?buyer=0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d", "")
	s.Equal(http.StatusBadRequest, rec.Code)

	rec, _ = s.do(http.MethodGet, "/api/pay/a1", "")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *handlerSuite) TestRecord() {
	s.payment.On("Record", mock.Anything, "a1", txHash).Return(&listing.Listing{Id: "a1", Status: listing.StatusUsed}, nil).Once()

	rec, resp := s.do(http.MethodPost, "/api/pay/a1/transactions", `{"txHash":"`+string(txHash)+`"}`)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(delivery.JsonResponseStatusSuccess, resp.Status)
	s.Contains(rec.Body.String(), `"status":"used"`)
}

func (s *handlerSuite) TestRecordDuplicate() {
	s.payment.On("Record", mock.Anything, "a1", txHash).Return(nil, listing.ErrDuplicateTransaction).Once()

	rec, resp := s.do(http.MethodPost, "/api/pay/a1/transactions", `{"txHash":"`+string(txHash)+`"}`)
	s.Equal(http.StatusConflict, rec.Code)
	s.Equal(listing.ErrDuplicateTransaction.Error(), resp.Data)
}

func (s *handlerSuite) TestRecordInvalidHash() {
	rec, _ := s.do(http.MethodPost, "/api/pay/a1/transactions", `{"txHash":"digV8pagvk3RLY3XA2q927Hk3S8"}`)
	s.Equal(http.StatusBadRequest, rec.Code)
}
