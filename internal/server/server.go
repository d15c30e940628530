package server

import (
	"app/internal/config"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Handlers struct {
	Order         RouteRegistrar
	Cart          RouteRegistrar
	Checkout      RouteRegistrar
	Review        RouteRegistrar
	Address       RouteRegistrar
	PaymentMethod RouteRegistrar
}

type RouteRegistrar interface {
	RegisterRoutes(e *echo.Echo, cfg config.Config)
}

func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	RegisterRoutes(e, cfg, h)
	return e
}

func Start(e *echo.Echo, cfg config.Config) error {
	return e.Start(":" + cfg.Port)
}
