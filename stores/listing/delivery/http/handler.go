package http

import (
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/neonflick/goapi/base/ctx"
	"github.com/neonflick/goapi/base/delivery"
	"github.com/neonflick/goapi/domain"
	"github.com/neonflick/goapi/domain/listing"
	authMiddleware "github.com/neonflick/goapi/stores/auth/delivery/http/middleware"
)

const imageField = "image"

type handler struct {
	listing listing.Usecase
}

func New(e *echo.Echo, listing listing.Usecase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{listing}

	g := e.Group("/listings")
	g.POST("", h.create, authMiddleware.Auth())
	g.GET("/mine", h.mine, authMiddleware.Auth())
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update, authMiddleware.Auth())
	g.DELETE("/:id", h.delete, authMiddleware.Auth())
}

// create
//
//	@Summary		Create listing
//	@Description	Multipart form with the listing fields and its image
//	@Tags			listings
//	@Accept			mpfd
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			title		formData	string	true	"at most 50 characters"
//	@Param			description	formData	string	false	"at most 500 characters"
//	@Param			price		formData	string	true	"decimal, 0.001 to 9999999"
//	@Param			currency	formData	string	true	"currency ticker"	example(SOL)
//	@Param			duration	formData	string	false	"listing lifetime"	example(24h)
//	@Param			image		formData	file	true	"listing image"
//	@Success		201			{object}	object{data=listing.Listing}
//	@Failure		400
//	@Failure		403
//	@Failure		413
//	@Router			/listings [post]
func (h *handler) create(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	owner := c.Get("address").(domain.Address)

	price, err := decimal.NewFromString(c.FormValue("price"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidNumberFormat)
	}
	duration, err := parseDuration(c.FormValue("duration"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, listing.ErrInvalidDuration)
	}
	img, err := readImage(c)
	if err != nil {
		ctx.WithField("err", err).Warn("readImage failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, listing.ErrInvalidImage)
	}

	res, err := h.listing.Create(ctx, owner, listing.CreateParams{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Price:       price,
		Currency:    c.FormValue("currency"),
		Duration:    duration,
		Image:       img,
	})
	if err != nil {
		ctx.WithField("err", err).Error("listing.Create failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}

// update
//
//	@Summary		Update listing
//	@Description	Only the given fields change. A new image replaces the old one.
//	@Tags			listings
//	@Accept			mpfd
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			id			path		string	true	"listing id"
//	@Param			title		formData	string	false	"at most 50 characters"
//	@Param			description	formData	string	false	"at most 500 characters"
//	@Param			price		formData	string	false	"decimal, 0.001 to 9999999"
//	@Param			currency	formData	string	false	"currency ticker"
//	@Param			image		formData	file	false	"listing image"
//	@Success		200			{object}	object{data=listing.Listing}
//	@Failure		400
//	@Failure		403
//	@Failure		404
//	@Failure		409
//	@Router			/listings/{id} [put]
func (h *handler) update(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	owner := c.Get("address").(domain.Address)

	p := listing.UpdateParams{}
	if form, err := c.MultipartForm(); err == nil {
		if v, ok := form.Value["title"]; ok && len(v) > 0 {
			p.Title = &v[0]
		}
		if v, ok := form.Value["description"]; ok && len(v) > 0 {
			p.Description = &v[0]
		}
		if v, ok := form.Value["currency"]; ok && len(v) > 0 {
			p.Currency = &v[0]
		}
		if v, ok := form.Value["price"]; ok && len(v) > 0 {
			price, err := decimal.NewFromString(v[0])
			if err != nil {
				return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidNumberFormat)
			}
			p.Price = &price
		}
		if _, ok := form.File[imageField]; ok {
			img, err := readImage(c)
			if err != nil {
				ctx.WithField("err", err).Warn("readImage failed")
				return delivery.MakeJsonResp(c, http.StatusBadRequest, listing.ErrInvalidImage)
			}
			p.Image = img
		}
	} else if err != http.ErrNotMultipart {
		ctx.WithField("err", err).Warn("c.MultipartForm failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	res, err := h.listing.Update(ctx, owner, c.Param("id"), p)
	if err != nil {
		ctx.WithField("err", err).Error("listing.Update failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

// delete
//
//	@Summary		Delete listing
//	@Description	Removes the listing image and then the listing
//	@Tags			listings
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			id	path	string	true	"listing id"
//	@Success		200
//	@Failure		403
//	@Failure		404
//	@Router			/listings/{id} [delete]
func (h *handler) delete(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	owner := c.Get("address").(domain.Address)

	if err := h.listing.Delete(ctx, owner, c.Param("id")); err != nil {
		ctx.WithField("err", err).Error("listing.Delete failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}

// get
//
//	@Summary		Get listing
//	@Tags			listings
//	@Produce		json
//	@Param			id	path		string	true	"listing id"
//	@Success		200	{object}	object{data=listing.Listing}
//	@Failure		404
//	@Router			/listings/{id} [get]
func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.listing.Get(ctx, c.Param("id"))
	if err != nil {
		if err != domain.ErrNotFound {
			ctx.WithField("err", err).Error("listing.Get failed")
		}
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

// mine
//
//	@Summary		List own listings
//	@Tags			listings
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Success		200	{object}	object{data=[]listing.Listing}
//	@Router			/listings/mine [get]
func (h *handler) mine(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	owner := c.Get("address").(domain.Address)

	res, err := h.listing.FindByOwner(ctx, owner)
	if err != nil {
		ctx.WithField("err", err).Error("listing.FindByOwner failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func readImage(c echo.Context) (*listing.Image, error) {
	fh, err := c.FormFile(imageField)
	if err != nil {
		return nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	body, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &listing.Image{Filename: fh.Filename, Body: body}, nil
}

// parseDuration accepts an empty value for the default lifetime
func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}
