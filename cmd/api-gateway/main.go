package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/entu-dev/timetable-api/api/swagger"
	"github.com/entu-dev/timetable-api/internal/handler"
	"github.com/entu-dev/timetable-api/internal/middleware"
	"github.com/entu-dev/timetable-api/internal/repository"
	"github.com/entu-dev/timetable-api/internal/service"
	"github.com/entu-dev/timetable-api/pkg/cache"
	"github.com/entu-dev/timetable-api/pkg/config"
	"github.com/entu-dev/timetable-api/pkg/database"
	"github.com/entu-dev/timetable-api/pkg/logger"
	corsmiddleware "github.com/entu-dev/timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/entu-dev/timetable-api/pkg/middleware/requestid"
)

// @title Timetable API
// @version 0.1.0
// @description Course catalog and automatic timetable generation
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	var redisClient *redis.Client
	if client, err := cache.NewRedis(cfg.Redis); err != nil {
		logr.Sugar().Warnw("redis unavailable, catalog cache disabled", "error", err)
	} else {
		redisClient = client
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	timetableRepo := repository.NewTimetableRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "timetable-api",
	})
	catalogSvc := service.NewCatalogService(courseRepo, cacheRepo, cfg.Catalog.CacheTTL, logr, metricsSvc)
	generatorSvc := service.NewTimetableGeneratorService(catalogSvc, service.DefaultAreaProfiles(), validate, logr, metricsSvc)
	timetableSvc := service.NewTimetableService(timetableRepo, cfg.Generator.Semester, validate, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	courseHandler := handler.NewCourseHandler(catalogSvc)
	generatorHandler := handler.NewGeneratorHandler(generatorSvc)
	timetableHandler := handler.NewTimetableHandler(timetableSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", middleware.JWT(authSvc), authHandler.Logout)
	auth.GET("/me", middleware.JWT(authSvc), authHandler.Me)

	courses := api.Group("/courses")
	courses.GET("", courseHandler.List)
	courses.POST("/import", middleware.JWT(authSvc), middleware.RequireAdmin(), courseHandler.Import)

	timetables := api.Group("/timetables", middleware.JWT(authSvc))
	timetables.POST("/generate", generatorHandler.Generate)
	timetables.POST("", timetableHandler.Save)
	timetables.GET("", timetableHandler.List)
	timetables.GET("/:id", timetableHandler.Get)
	timetables.DELETE("/:id", timetableHandler.Delete)
	timetables.GET("/:id/export", timetableHandler.Export)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
