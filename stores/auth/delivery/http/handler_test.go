package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/neonflick/goapi/base/ctx"
	"github.com/neonflick/goapi/domain"
	mockDomain "github.com/neonflick/goapi/domain/mocks"
	authMiddleware "github.com/neonflick/goapi/stores/auth/delivery/http/middleware"
)

const wallet = domain.Address("wEcAGYdbSdzDR79BvijKdgHDPfFJT4gKEj8wptE16UL")

func newServer(t *testing.T) (*echo.Echo, *mockDomain.AuthUsecase) {
	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", ctx.Background())
			return next(c)
		}
	})
	auth := mockDomain.NewAuthUsecase(t)
	New(e, auth, authMiddleware.New(auth, nil))
	return e, auth
}

func post(e *echo.Echo, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth/wallet", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestWallet(t *testing.T) {
	e, auth := newServer(t)
	auth.On("SignToken", mock.Anything, wallet).Return("signed", nil).Once()

	rec := post(e, `{"wallet":"`+string(wallet)+`"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":"signed"`)
}

func TestWalletBlocked(t *testing.T) {
	e, auth := newServer(t)
	auth.On("SignToken", mock.Anything, wallet).Return("", domain.ErrWalletBlocked).Once()

	rec := post(e, `{"wallet":"`+string(wallet)+`"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":"wallet_blocked"`)
}

func TestWalletInvalid(t *testing.T) {
	e, auth := newServer(t)
	auth.On("SignToken", mock.Anything, domain.Address("nope")).Return("", domain.ErrInvalidAddress).Once()

	rec := post(e, `{"wallet":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMe(t *testing.T) {
	e, auth := newServer(t)
	auth.On("ParseToken", mock.Anything, "good").Return(string(wallet), nil).Once()
	auth.On("ParseToken", mock.Anything, "bad").Return("", domain.ErrInvalidSignature).Once()

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer good")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"wallet":"`+string(wallet)+`"`)

	req = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer bad")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
