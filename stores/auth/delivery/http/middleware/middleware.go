package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/neonflick/goapi/base/ctx"
	"github.com/neonflick/goapi/base/delivery"
	"github.com/neonflick/goapi/domain"
)

type AuthMiddleware struct {
	auth           domain.AuthUsecase
	adminAddresses []string
}

func New(auth domain.AuthUsecase, adminAddresses []string) *AuthMiddleware {
	return &AuthMiddleware{
		auth:           auth,
		adminAddresses: adminAddresses,
	}
}

// Auth requires a bearer token and sets "address" in the echo context
func (m *AuthMiddleware) Auth() echo.MiddlewareFunc {
	return middleware.KeyAuth(m.validateAuthToken)
}

// IsAdmin must run after Auth
func (m *AuthMiddleware) IsAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			address, ok := c.Get("address").(domain.Address)
			if !ok || !m.isAdmin(address) {
				return delivery.MakeJsonResp(c, http.StatusForbidden, "require admin privilege")
			}
			return next(c)
		}
	}
}

func (m *AuthMiddleware) isAdmin(address domain.Address) bool {
	for _, admin := range m.adminAddresses {
		if address.Equals(domain.Address(admin)) {
			return true
		}
	}
	return false
}

// validateAuthToken also tags the request logger with the wallet
func (m *AuthMiddleware) validateAuthToken(key string, c echo.Context) (bool, error) {
	cont := c.Get("ctx").(ctx.Ctx)
	wallet, err := m.auth.ParseToken(cont, key)
	if err != nil {
		cont.WithField("err", err).Warn("auth.ParseToken failed")
		return false, nil
	}

	address := domain.Address(wallet)
	c.Set("address", address)
	c.Set("ctx", ctx.WithValue(cont, "wallet", wallet))
	return true, nil
}
