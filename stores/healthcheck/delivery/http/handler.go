package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/neonflick/goapi/base/ctx"
	hcdomain "github.com/neonflick/goapi/domain/healthcheck"
)

type status struct {
	Healthy string `json:"healthy"`
	Message string `json:"message,omitempty"`
}

type healthCheckHandler struct {
	healthCheck hcdomain.HealthCheckUsecase
}

// New serves GET /health, used by the load balancer and the reaper's platform health check alike
func New(e *echo.Echo, us hcdomain.HealthCheckUsecase) {
	handler := &healthCheckHandler{
		healthCheck: us,
	}
	e.GET("/health", handler.check)
}

func (h *healthCheckHandler) check(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	if err := h.healthCheck.Check(context); err != nil {
		context.WithField("err", err).Warn("healthCheck.Check failed")
		return c.JSON(http.StatusServiceUnavailable, status{Healthy: "fail", Message: err.Error()})
	}
	return c.JSON(http.StatusOK, status{Healthy: "ok"})
}
