package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/neonflick/goapi/base/ctx"
	"github.com/neonflick/goapi/base/delivery"
	"github.com/neonflick/goapi/domain"
	"github.com/neonflick/goapi/domain/blocklist"
	"github.com/neonflick/goapi/middleware"
	authMiddleware "github.com/neonflick/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	blocklist blocklist.Usecase
}

func New(e *echo.Echo, blocklist blocklist.Usecase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{blocklist}

	g := e.Group("/admin/blocklist", authMiddleware.Auth(), authMiddleware.IsAdmin())
	g.GET("", h.getAll)
	g.POST("", h.add)
	g.DELETE("/:address", h.remove, middleware.IsValidAddress("address"))
}

// getAll
//
//	@Summary	List blocked wallets
//	@Tags		admin
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Success	200	{object}	object{data=[]blocklist.Entry}
//	@Failure	403
//	@Router		/admin/blocklist [get]
func (h *handler) getAll(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	if res, err := h.blocklist.FindAll(ctx); err != nil {
		ctx.WithField("err", err).Error("blocklist.FindAll failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

// add
//
//	@Summary	Block wallet
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		params	body	http.add.payload	true	"params"
//	@Success	201
//	@Failure	400
//	@Failure	409
//	@Router		/admin/blocklist [post]
func (h *handler) add(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	admin := c.Get("address").(domain.Address)

	type payload struct {
		Address domain.Address `json:"address" validate:"required,wallet"`
		Reason  string         `json:"reason"`
	}

	p := &payload{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidAddress)
	}

	if err := h.blocklist.Block(ctx, p.Address, p.Reason, admin); err != nil {
		ctx.WithField("err", err).Error("blocklist.Block failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusCreated, nil)
}

// remove
//
//	@Summary	Unblock wallet
//	@Tags		admin
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		address	path	string	true	"wallet address"
//	@Success	200
//	@Failure	404
//	@Router		/admin/blocklist/{address} [delete]
func (h *handler) remove(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	if err := h.blocklist.Unblock(ctx, domain.Address(c.Param("address"))); err != nil {
		ctx.WithField("err", err).Error("blocklist.Unblock failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}
