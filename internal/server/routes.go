package server

import (
	"net/http"

	"app/internal/config"

	"github.com/labstack/echo/v4"
)

func registerRoutes(e *echo.Echo, cfg config.Config, registrars ...RouteRegistrar) {
	//死活監視用。認証なし
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	for _, r := range registrars {
		r.RegisterRoutes(e, cfg)
	}
}
