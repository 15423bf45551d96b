package server

import (
	"app/internal/config"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// RouteRegistrarはルートを登録できるhandler
type RouteRegistrar interface {
	RegisterRoutes(e *echo.Echo, cfg config.Config)
}

// NewはechoインスタンスにミドルウェアとルートをセットしてStart可能な状態で返す
func New(cfg config.Config, registrars ...RouteRegistrar) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.FEURL},
		AllowCredentials: true,
	}))

	registerRoutes(e, cfg, registrars...)

	return e
}

func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
