package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/neonflick/goapi/base/ctx"
	"github.com/neonflick/goapi/base/delivery"
	"github.com/neonflick/goapi/domain"
	"github.com/neonflick/goapi/domain/listing"
	"github.com/neonflick/goapi/domain/payment"
)

type handler struct {
	payment payment.Usecase
}

func New(e *echo.Echo, payment payment.Usecase) {
	h := &handler{payment}

	g := e.Group("/api/pay")
	g.GET("/:id", h.prepare)
	g.POST("/:id/transactions", h.record)
}

type prepareResp struct {
	Payment *payment.Descriptor `json:"payment"`
	Listing *listing.Listing    `json:"listing"`
}

// prepare
//
//	@Summary		Prepare payment
//	@Description	Returns the unsigned transfers the buyer has to sign and broadcast
//	@Tags			payment
//	@Produce		json
//	@Param			id		path		string	true	"listing id"
//	@Param			buyer	query		string	true	"buyer wallet, pays the network fee"
//	@Success		200		{object}	object{data=http.prepareResp}
//	@Failure		400
//	@Failure		403
//	@Failure		404
//	@Failure		409		{object}	object{data=string}	"expired or too late"
//	@Failure		503
//	@Router			/api/pay/{id} [get]
func (h *handler) prepare(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Id    string         `param:"id"`
		Buyer domain.Address `query:"buyer" validate:"required,wallet"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Warn("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidAddress)
	}

	desc, err := h.payment.Prepare(ctx, p.Id, p.Buyer)
	if err != nil {
		ctx.WithField("err", err).Warn("payment.Prepare failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, prepareResp{desc, desc.Listing})
}

// record
//
//	@Summary		Record payment
//	@Description	Records a confirmed transaction against the listing, once per transaction
//	@Tags			payment
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"listing id"
//	@Param			params	body		http.record.params	true	"params"
//	@Success		200		{object}	object{data=listing.Listing}
//	@Failure		400
//	@Failure		404
//	@Failure		409		{object}	object{data=string}	"duplicate transaction"
//	@Router			/api/pay/{id}/transactions [post]
func (h *handler) record(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Id     string        `param:"id"`
		TxHash domain.TxHash `json:"txHash" validate:"required,txhash"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Warn("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidSignature)
	}

	res, err := h.payment.Record(ctx, p.Id, p.TxHash)
	if err != nil {
		ctx.WithField("err", err).Warn("payment.Record failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
