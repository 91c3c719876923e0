package main

import (
	"context"
	"database/sql"
	"net/http"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"maintenance-system/internal/routes"
	"maintenance-system/migrations"
	"maintenance-system/pkg/config"
	"maintenance-system/pkg/customvalidator"
	"maintenance-system/pkg/database/postgresql"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/eventbus"
	applogger "maintenance-system/pkg/logger"
	"maintenance-system/pkg/middleware"
	"maintenance-system/pkg/service"
	"maintenance-system/pkg/utils"
)

func main() {
	e := echo.New()
	logger := applogger.NewLogger()
	cfg := config.New()

	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("Паника в обработчике запроса",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "внутренняя ошибка сервера", err)
				_ = utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))

	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		ExposeHeaders:    []string{"Content-Disposition"},
	}))

	e.Use(middleware.RequestLogger(logger))

	absPath, err := filepath.Abs(cfg.Upload.BasePath)
	if err != nil {
		logger.Fatal("не удалось получить абсолютный путь к uploads", zap.Error(err))
	}
	e.Static("/uploads", absPath)

	v := validator.New()
	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		logger.Fatal("Ошибка регистрации кастомных правил валидации", zap.Error(err))
	}
	e.Validator = utils.NewValidator(v)

	runMigrations(cfg.Postgres.DSN, logger)

	dbConn := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbConn.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logger.Fatal("не удалось подключиться к Redis",
			zap.Error(err), zap.String("address", cfg.Redis.Address))
	}

	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL, logger)
	bus := eventbus.New(logger)

	routes.InitRouter(e, dbConn, redisClient, jwtSvc, bus, logger, cfg)

	logger.Info("Сервер запущен", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Ошибка запуска сервера", zap.Error(err))
	}
}

// runMigrations прогоняет встроенные goose-миграции через database/sql
// поверх pgx stdlib драйвера.
func runMigrations(dsn string, logger *zap.Logger) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		logger.Fatal("не удалось открыть соединение для миграций", zap.Error(err))
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		logger.Fatal("не удалось выбрать диалект goose", zap.Error(err))
	}
	if err := goose.Up(db, "."); err != nil {
		logger.Fatal("не удалось применить миграции", zap.Error(err))
	}
	logger.Info("Миграции применены")
}
