package auth

import (
	"gestimmo-api/core/config"
	"gestimmo-api/core/database"
	"gestimmo-api/core/middleware"
	"gestimmo-api/modules/auth/controller"
	"gestimmo-api/modules/auth/repository"
	"gestimmo-api/modules/auth/router"
	"gestimmo-api/modules/auth/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the auth module and registers routes.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, cfg *config.Config) {
	repo := repository.NewUserRepository(db)
	svc := service.NewAuthService(repo, cfg)
	ctrl := controller.NewAuthController(svc)
	rtr := router.NewAuthRouter(ctrl)

	rtr.Setup(e, mw)
}
