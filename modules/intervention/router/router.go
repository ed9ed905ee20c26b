package router

import (
	"gestimmo-api/core/middleware"
	"gestimmo-api/modules/intervention/controller"

	"github.com/labstack/echo/v4"
)

// InterventionRouter handles intervention routes.
type InterventionRouter struct {
	InterventionController *controller.InterventionController
}

func NewInterventionRouter(ctrl *controller.InterventionController) *InterventionRouter {
	return &InterventionRouter{InterventionController: ctrl}
}

// Setup registers intervention routes.
func (r *InterventionRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	routes := privateRoutes.Group("/interventions", mw.AuthMiddleware())

	routes.POST("", r.InterventionController.Create)
	routes.GET("", r.InterventionController.ListMine)
	routes.GET("/:id", r.InterventionController.Get)
	routes.PUT("/:id", r.InterventionController.Update)
	routes.DELETE("/:id", r.InterventionController.Cancel)

	routes.POST("/:id/assign", r.InterventionController.AssignProvider)
	routes.DELETE("/:id/assign/:userId", r.InterventionController.UnassignProvider)
}
