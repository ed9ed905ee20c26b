package router

import (
	"gestimmo-api/core/middleware"
	"gestimmo-api/modules/matching/controller"

	"github.com/labstack/echo/v4"
)

// MatchingRouter handles matching routes.
type MatchingRouter struct {
	MatchingController *controller.MatchingController
}

func NewMatchingRouter(ctrl *controller.MatchingController) *MatchingRouter {
	return &MatchingRouter{MatchingController: ctrl}
}

// Setup registers matching routes.
func (r *MatchingRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	routes := privateRoutes.Group("/interventions", mw.AuthMiddleware())
	routes.POST("/:id/match", r.MatchingController.ComputeMatches)
	routes.GET("/:id/matches", r.MatchingController.GetMatches)
}
