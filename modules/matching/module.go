package matching

import (
	"gestimmo-api/core/database"
	"gestimmo-api/core/lock"
	"gestimmo-api/core/middleware"
	"gestimmo-api/core/tasks"
	availrepository "gestimmo-api/modules/availability/repository"
	interventionrepository "gestimmo-api/modules/intervention/repository"
	"gestimmo-api/modules/matching/controller"
	"gestimmo-api/modules/matching/repository"
	"gestimmo-api/modules/matching/router"
	"gestimmo-api/modules/matching/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the matching module and registers routes. Returns the
// service so the availability module can trigger rematching in-process.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, locker *lock.Locker, tasksClient *tasks.Client) service.MatchingServiceInterface {
	repo := repository.NewMatchingRepository(db)
	availRepo := availrepository.NewAvailabilityRepository(db)
	interventionRepo := interventionrepository.NewInterventionRepository(db)

	svc := service.NewMatchingService(repo, availRepo, interventionRepo, locker, tasksClient)
	ctrl := controller.NewMatchingController(svc)
	rtr := router.NewMatchingRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
