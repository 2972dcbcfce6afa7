package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fleet-rental/internal/listeners"
	"fleet-rental/internal/repositories"
	"fleet-rental/internal/routes"
	"fleet-rental/internal/services"
	"fleet-rental/pkg/config"
	"fleet-rental/pkg/database/postgresql"
	apperrors "fleet-rental/pkg/errors"
	"fleet-rental/pkg/eventbus"
	applogger "fleet-rental/pkg/logger"
	appmiddleware "fleet-rental/pkg/middleware"
	"fleet-rental/pkg/service"
	"fleet-rental/pkg/utils"
	"fleet-rental/pkg/validation"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	cfg := config.New()

	e := echo.New()
	e.HideBanner = true
	logger := applogger.NewLogger()
	defer logger.Sync()

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("panic recovered",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "internal server error", err, nil)
				_ = utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders: []string{"Content-Disposition"},
	}))
	e.Use(appmiddleware.RequestLogger(logger))

	e.Validator = validation.New()

	ctx := context.Background()

	dbConn, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN)
	if err != nil {
		logger.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer dbConn.Close()

	if err := postgresql.Migrate(ctx, dbConn); err != nil {
		logger.Fatal("failed to apply migrations", zap.Error(err))
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
	}

	bus := eventbus.New(logger)
	notificationRepo := repositories.NewRedisNotificationRepository(redisClient)
	listeners.NewNotificationListener(notificationRepo, logger).Register(bus)

	tariffs := services.DefaultTariffs()
	if cfg.Fleet.TariffFile != "" {
		tariffs, err = services.LoadTariffs(cfg.Fleet.TariffFile)
		if err != nil {
			logger.Fatal("failed to load tariff table", zap.Error(err), zap.String("file", cfg.Fleet.TariffFile))
		}
		logger.Info("tariff table loaded", zap.String("file", cfg.Fleet.TariffFile))
	}

	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL)
	policy := repositories.RetryPolicy{
		Timeout: cfg.Postgres.QueryTimeout,
		Backoff: cfg.Postgres.RetryBackoff,
		Retries: cfg.Postgres.RetryLimit,
	}

	svcs := routes.NewServices(dbConn, redisClient, bus, jwtSvc, tariffs, policy, logger)
	routes.InitRouter(e, svcs, jwtSvc, logger)

	digest, err := services.NewAlertDigest(svcs.Stats, svcs.Notifier, logger).Schedule(cfg.Fleet.AlertDigestCron)
	if err != nil {
		logger.Fatal("failed to schedule alert digest", zap.Error(err))
	}

	go func() {
		addr := ":" + cfg.Server.Port
		logger.Info("server started", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	if digest != nil {
		<-digest.Stop().Done()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	bus.Wait()
}
