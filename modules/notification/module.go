package notification

import (
	"gestimmo-api/core/database"
	"gestimmo-api/core/middleware"
	"gestimmo-api/modules/notification/controller"
	"gestimmo-api/modules/notification/repository"
	"gestimmo-api/modules/notification/router"
	"gestimmo-api/modules/notification/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the notification module and registers routes. The service
// is returned so the task worker can deliver match notifications through it.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) service.NotificationServiceInterface {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo)
	ctrl := controller.NewNotificationController(svc)
	rtr := router.NewNotificationRouter(ctrl)

	rtr.Setup(e, mw)

	return svc
}
