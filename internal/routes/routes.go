package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-system/internal/listeners"
	"maintenance-system/internal/repositories"
	"maintenance-system/internal/services"
	"maintenance-system/pkg/config"
	"maintenance-system/pkg/eventbus"
	"maintenance-system/pkg/filestorage"
	"maintenance-system/pkg/middleware"
	"maintenance-system/pkg/service"
)

func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	jwtSvc service.JWTService,
	bus *eventbus.Bus,
	logger *zap.Logger,
	cfg *config.Config,
) {
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)

	fileStorage, err := filestorage.NewLocalFileStorage(cfg.Upload.BasePath)
	if err != nil {
		logger.Fatal("не удалось создать файловое хранилище", zap.Error(err))
	}
	txManager := repositories.NewTxManager(dbConn)

	// --- РЕПОЗИТОРИИ ---
	userRepo := repositories.NewUserRepository(dbConn)
	requestRepo := repositories.NewRequestRepository(dbConn, logger)
	logRepo := repositories.NewMaintenanceLogRepository(dbConn)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn)
	technicianRepo := repositories.NewTechnicianRepository(dbConn)
	teamRepo := repositories.NewTeamRepository(dbConn)
	departmentRepo := repositories.NewDepartmentRepository(dbConn)
	categoryRepo := repositories.NewEquipmentCategoryRepository(dbConn)
	attachmentRepo := repositories.NewAttachmentRepository(dbConn)
	dashboardRepo := repositories.NewDashboardRepository(dbConn, logger)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// Каскад списания оборудования слушает шину событий.
	listeners.NewEquipmentListener(equipmentRepo, logger).Register(bus)

	// --- СЕРВИСЫ ---
	authService := services.NewAuthService(userRepo, technicianRepo, cacheRepo, jwtSvc, logger)
	requestService := services.NewRequestService(
		requestRepo, logRepo, equipmentRepo, technicianRepo, attachmentRepo,
		txManager, bus, fileStorage, logger,
	)
	assignmentService := services.NewAssignmentService(
		requestRepo, logRepo, technicianRepo, dashboardRepo, txManager, logger,
	)
	dashboardService := services.NewDashboardService(dashboardRepo, cacheRepo, cfg.Dashboard.CacheTTL, logger)
	reportService := services.NewReportService(dashboardRepo)
	equipmentService := services.NewEquipmentService(equipmentRepo, logger)
	technicianService := services.NewTechnicianService(technicianRepo, userRepo, teamRepo)
	teamService := services.NewTeamService(teamRepo, departmentRepo)
	departmentService := services.NewDepartmentService(departmentRepo)
	categoryService := services.NewEquipmentCategoryService(categoryRepo)
	attachmentService := services.NewAttachmentService(attachmentRepo, requestRepo, fileStorage, logger)

	// --- РОУТЕРЫ ---
	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, secureGroup, authService, logger)
	runRequestRouter(secureGroup, requestService, attachmentService, logger, authMW)
	runAssignmentRouter(secureGroup, assignmentService, logger, authMW)
	runDashboardRouter(secureGroup, dashboardService, reportService, logger, authMW)
	runEquipmentRouter(secureGroup, equipmentService, logger, authMW)
	runTechnicianRouter(secureGroup, technicianService, logger, authMW)
	runMasterDataRouter(secureGroup, teamService, departmentService, categoryService, logger, authMW)
	runAttachmentRouter(secureGroup, attachmentService, logger)

	logger.Info("Маршруты успешно зарегистрированы")
}
