package router

import (
	"gestimmo-api/core/middleware"
	"gestimmo-api/modules/availability/controller"

	"github.com/labstack/echo/v4"
)

// AvailabilityRouter handles availability routes.
type AvailabilityRouter struct {
	AvailabilityController *controller.AvailabilityController
}

func NewAvailabilityRouter(ctrl *controller.AvailabilityController) *AvailabilityRouter {
	return &AvailabilityRouter{AvailabilityController: ctrl}
}

// Setup registers availability routes.
func (r *AvailabilityRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	routes := privateRoutes.Group("/interventions", mw.AuthMiddleware())
	routes.PUT("/:id/availabilities", r.AvailabilityController.Submit)
	routes.GET("/:id/availabilities", r.AvailabilityController.List)
}
