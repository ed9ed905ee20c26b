package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gestimmo-api/core/config"
	"gestimmo-api/core/database"
	"gestimmo-api/core/lock"
	"gestimmo-api/core/logger"
	"gestimmo-api/core/middleware"
	"gestimmo-api/core/tasks"
	"gestimmo-api/modules/auth"
	"gestimmo-api/modules/availability"
	"gestimmo-api/modules/intervention"
	"gestimmo-api/modules/matching"
	"gestimmo-api/modules/notification"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 10 * time.Second

// Validator adapts go-playground/validator to echo's Validator interface.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

func (v *Validator) Validate(i any) error {
	return v.validate.Struct(i)
}

// Run boots the API server: config, logger, database, redis, modules and the
// background task worker. Blocks until an interrupt triggers shutdown.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger.Init(cfg.Server.Env)
	defer logger.Sync()

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return err
	}

	if err := db.Migrate(); err != nil {
		return err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = NewValidator()

	mw := middleware.NewMiddleware(cfg)
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(mw.RequestLogger())

	locker := lock.NewLocker(rdb)
	redisOpt := tasks.RedisOpt(cfg.Redis)
	tasksClient := tasks.NewClient(redisOpt)

	auth.Init(e, db, mw, cfg)
	intervention.Init(e, db, mw)
	notifSvc := notification.Init(e, db, mw)
	matchingSvc := matching.Init(e, db, mw, locker, tasksClient)
	availability.Init(e, db, mw, matchingSvc)

	worker := tasks.StartWorker(redisOpt, notifSvc)

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		logger.Info("Server:Start", "addr", addr, "env", cfg.Server.Env)
		if err := e.Start(addr); err != nil {
			logger.Info("Server:Stopped", "reason", err.Error())
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Server:Shutdown:Start")

	ctx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	worker.Shutdown()
	if err := tasksClient.Close(); err != nil {
		logger.Error("Server:Shutdown:TasksClient", "error", err)
	}
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server:Shutdown:HTTP", "error", err)
		return err
	}
	if err := rdb.Close(); err != nil {
		logger.Error("Server:Shutdown:Redis", "error", err)
	}

	logger.Info("Server:Shutdown:Done")
	return nil
}
