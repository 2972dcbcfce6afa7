package routes

import (
	"fleet-rental/internal/controllers"
	"fleet-rental/internal/entities"
	"fleet-rental/internal/repositories"
	"fleet-rental/internal/services"
	"fleet-rental/pkg/eventbus"
	"fleet-rental/pkg/middleware"
	"fleet-rental/pkg/service"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Services is everything the HTTP layer calls into.
type Services struct {
	Auth         services.AuthServiceInterface
	Units        services.UnitServiceInterface
	Sites        services.SiteServiceInterface
	Bookings     services.BookingServiceInterface
	Maintenance  services.MaintenanceServiceInterface
	Faults       services.FaultServiceInterface
	Stats        services.StatsServiceInterface
	AuditLogs    services.AuditLogServiceInterface
	Notification services.NotificationServiceInterface
	Export       services.ExportServiceInterface
	Notifier     services.Notifier
}

func NewServices(
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	bus *eventbus.Bus,
	jwtSvc service.JWTService,
	tariffs *services.TariffTable,
	policy repositories.RetryPolicy,
	logger *zap.Logger,
) *Services {
	txManager := repositories.NewTxManager(dbConn, policy, logger)

	unitRepo := repositories.NewUnitRepository(dbConn)
	siteRepo := repositories.NewSiteRepository(dbConn)
	bookingRepo := repositories.NewBookingRepository(dbConn)
	maintenanceRepo := repositories.NewMaintenanceRepository(dbConn)
	faultRepo := repositories.NewFaultRepository(dbConn)
	auditRepo := repositories.NewAuditLogRepository(dbConn)
	userRepo := repositories.NewUserRepository(dbConn)
	statsRepo := repositories.NewStatsRepository(dbConn, logger)
	notificationRepo := repositories.NewRedisNotificationRepository(redisClient)

	notifier := services.NewEventBusNotifier(bus, logger)
	base := services.NewBaseService(txManager, auditRepo, notifier, logger)

	bookingService := services.NewBookingService(base, unitRepo, siteRepo, bookingRepo)
	maintenanceService := services.NewMaintenanceService(base, unitRepo, maintenanceRepo, tariffs)

	return &Services{
		Auth:         services.NewAuthService(userRepo, jwtSvc, logger),
		Units:        services.NewUnitService(base, unitRepo),
		Sites:        services.NewSiteService(base, siteRepo),
		Bookings:     bookingService,
		Maintenance:  maintenanceService,
		Faults:       services.NewFaultService(base, unitRepo, faultRepo),
		Stats:        services.NewStatsService(txManager, statsRepo, unitRepo, bookingRepo, logger),
		AuditLogs:    services.NewAuditLogService(txManager, auditRepo),
		Notification: services.NewNotificationService(notificationRepo, logger),
		Export:       services.NewExportService(bookingService, maintenanceService),
		Notifier:     notifier,
	}
}

var (
	managers  = []string{string(entities.RoleAdmin), string(entities.RoleManager)}
	adminOnly = []string{string(entities.RoleAdmin)}
	anyRole   = []string{string(entities.RoleAdmin), string(entities.RoleManager), string(entities.RoleObserver)}
)

// InitRouter mounts the API under /api. Reads are public except the audit
// trail and exports; every write needs a bearer token.
func InitRouter(e *echo.Echo, svcs *Services, jwtSvc service.JWTService, logger *zap.Logger) {
	logger.Info("InitRouter: registering routes")

	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)

	runAuthRouter(api, controllers.NewAuthController(svcs.Auth, logger))
	runUnitRouter(api, controllers.NewUnitController(svcs.Units, logger), authMW)
	runSiteRouter(api, controllers.NewSiteController(svcs.Sites, logger), authMW)
	runBookingRouter(api, controllers.NewBookingController(svcs.Bookings, svcs.Export, logger), authMW)
	runMaintenanceRouter(api, controllers.NewMaintenanceController(svcs.Maintenance, svcs.Export, logger), authMW)
	runFaultRouter(api, controllers.NewFaultController(svcs.Faults, logger), authMW)
	runDashboardRouter(api, controllers.NewDashboardController(svcs.Stats, svcs.AuditLogs, svcs.Notification, logger), authMW)

	logger.Info("InitRouter: routes registered")
}
