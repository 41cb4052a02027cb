package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"famcal/cmd/internal/config"
)

// DefaultStatusRoute reports which backend is active so clients can show
// the demo-mode banner. Presence booleans only, never config values.
type DefaultStatusRoute struct {
	Cfg config.Config
}

func NewStatusDefault(cfg config.Config) *DefaultStatusRoute {
	return &DefaultStatusRoute{Cfg: cfg}
}

func (s *DefaultStatusRoute) GetStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"remote": s.Cfg.Remote(),
		"config": s.Cfg.Status(),
	})
}
