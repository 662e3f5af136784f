package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/neonflick/goapi/base/ctx"
	"github.com/neonflick/goapi/base/delivery"
	"github.com/neonflick/goapi/domain"
	authMiddleware "github.com/neonflick/goapi/stores/auth/delivery/http/middleware"
)

type authHandler struct {
	auth domain.AuthUsecase
}

func New(e *echo.Echo, auth domain.AuthUsecase, authMiddleware *authMiddleware.AuthMiddleware) {
	handler := &authHandler{
		auth: auth,
	}
	g := e.Group("/auth")
	g.POST("/wallet", handler.wallet)
	g.GET("/me", handler.me, authMiddleware.Auth())
}

// wallet
//
//	@Summary		Get access token
//	@Description	Create access token for given wallet
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			params	body		http.wallet.params	true	"params"
//	@Success		201		{object}	object{data=string}
//	@Failure		400
//	@Failure		403		{object}	object{data=string}	"wallet_blocked"
//	@Failure		500
//	@Router			/auth/wallet [post]
func (h *authHandler) wallet(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Wallet domain.Address `json:"wallet" description:"wallet address" example:"wEcAGYdbSdzDR79BvijKdgHDPfFJT4gKEj8wptE16UL"` // wallet address
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	if tkn, err := h.auth.SignToken(ctx, p.Wallet); err != nil {
		ctx.WithField("err", err).Error("auth.SignToken failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusCreated, tkn)
	}
}

// me
//
//	@Summary		Current wallet
//	@Tags			auth
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Success		200	{object}	object{data=object{wallet=string}}
//	@Failure		401
//	@Router			/auth/me [get]
func (h *authHandler) me(c echo.Context) error {
	address := c.Get("address").(domain.Address)

	res := struct {
		Wallet domain.Address `json:"wallet"`
	}{
		Wallet: address,
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
