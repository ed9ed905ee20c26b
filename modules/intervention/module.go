package intervention

import (
	"gestimmo-api/core/database"
	"gestimmo-api/core/middleware"
	authrepository "gestimmo-api/modules/auth/repository"
	"gestimmo-api/modules/intervention/controller"
	"gestimmo-api/modules/intervention/repository"
	"gestimmo-api/modules/intervention/router"
	"gestimmo-api/modules/intervention/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the intervention module and registers routes.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) {
	repo := repository.NewInterventionRepository(db)
	userRepo := authrepository.NewUserRepository(db)
	svc := service.NewInterventionService(repo, userRepo)
	ctrl := controller.NewInterventionController(svc)
	rtr := router.NewInterventionRouter(ctrl)

	rtr.Setup(e, mw)
}
