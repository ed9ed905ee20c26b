package availability

import (
	"gestimmo-api/core/database"
	"gestimmo-api/core/middleware"
	"gestimmo-api/modules/availability/controller"
	"gestimmo-api/modules/availability/repository"
	"gestimmo-api/modules/availability/router"
	"gestimmo-api/modules/availability/service"
	interventionrepository "gestimmo-api/modules/intervention/repository"
	matchingservice "gestimmo-api/modules/matching/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the availability module and registers routes. The matching
// service is injected so submissions can trigger rematching in-process.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, matchingSvc matchingservice.MatchingServiceInterface) {
	repo := repository.NewAvailabilityRepository(db)
	interventionRepo := interventionrepository.NewInterventionRepository(db)
	svc := service.NewAvailabilityService(repo, interventionRepo, matchingSvc)
	ctrl := controller.NewAvailabilityController(svc)
	rtr := router.NewAvailabilityRouter(ctrl)

	rtr.Setup(e, mw)
}
