package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/neonflick/goapi/base/ctx"
	customValidator "github.com/neonflick/goapi/base/validator"
	"github.com/neonflick/goapi/domain"
	"github.com/neonflick/goapi/domain/blocklist"
	mockBlocklist "github.com/neonflick/goapi/domain/blocklist/mocks"
	mockDomain "github.com/neonflick/goapi/domain/mocks"
	authMiddleware "github.com/neonflick/goapi/stores/auth/delivery/http/middleware"
)

var (
	admin  = domain.Address("Dvp1m56zzPV28v86BxMnSrHKNu94mJeiohtppqQNHbqZ")
	user   = domain.Address("CiwjEStzDKR8j1uQgVvU6hFtt8thAK3aZMDN3X6yzW5q")
	wallet = domain.Address("wEcAGYdbSdzDR79BvijKdgHDPfFJT4gKEj8wptE16UL")
)

type handlerSuite struct {
	suite.Suite
	e         *echo.Echo
	blocklist *mockBlocklist.Usecase
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
	auth := mockDomain.NewAuthUsecase(s.T())
	auth.On("ParseToken", mock.Anything, "admin").Return(string(admin), nil).Maybe()
	auth.On("ParseToken", mock.Anything, "user").Return(string(user), nil).Maybe()
	s.blocklist = mockBlocklist.NewUsecase(s.T())
	New(s.e, s.blocklist, authMiddleware.New(auth, []string{string(admin)}))
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(handlerSuite))
}

func (s *handlerSuite) do(method, target, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *handlerSuite) TestRequireAdmin() {
	rec := s.do(http.MethodGet, "/admin/blocklist", "user", "")
	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *handlerSuite) TestGetAll() {
	s.blocklist.On("FindAll", mock.Anything).Return([]*blocklist.Entry{{Address: wallet}}, nil).Once()

	rec := s.do(http.MethodGet, "/admin/blocklist", "admin", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), string(wallet))
}

func (s *handlerSuite) TestAdd() {
	s.blocklist.On("Block", mock.Anything, wallet, "fraud", admin).Return(nil).Once()

	rec := s.do(http.MethodPost, "/admin/blocklist", "admin", `{"address":"`+string(wallet)+`","reason":"fraud"}`)
	s.Equal(http.StatusCreated, rec.Code)
}

func (s *handlerSuite) TestAddInvalid() {
	rec := s.do(http.MethodPost, "/admin/blocklist", "admin", `{"address":"0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d"}`)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *handlerSuite) TestAddDuplicate() {
	s.blocklist.On("Block", mock.Anything, wallet, "", admin).Return(domain.ErrConflict).Once()

	rec := s.do(http.MethodPost, "/admin/blocklist", "admin", `{"address":"`+string(wallet)+`"}`)
	s.Equal(http.StatusConflict, rec.Code)
}

func (s *handlerSuite) TestRemove() {
	s.blocklist.On("Unblock", mock.Anything, wallet).Return(nil).Once()
	rec := s.do(http.MethodDelete, "/admin/blocklist/"+string(wallet), "admin", "")
	s.Equal(http.StatusOK, rec.Code)

	s.blocklist.On("Unblock", mock.Anything, user).Return(domain.ErrNotFound).Once()
	rec = s.do(http.MethodDelete, "/admin/blocklist/"+string(user), "admin", "")
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *handlerSuite) TestRemoveInvalidAddress() {
	rec := s.do(http.MethodDelete, "/admin/blocklist/not-a-wallet", "admin", "")
	s.Equal(http.StatusBadRequest, rec.Code)
}
