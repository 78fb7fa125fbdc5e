package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/plumecms/plume-backend/internal/config"
	"github.com/plumecms/plume-backend/internal/handler"
	"github.com/plumecms/plume-backend/internal/middleware"
	"github.com/plumecms/plume-backend/internal/migration"
	"github.com/plumecms/plume-backend/internal/repository"
	"github.com/plumecms/plume-backend/internal/routes"
	"github.com/plumecms/plume-backend/internal/service"
	"github.com/plumecms/plume-backend/pkg/jwt"
	pkglogger "github.com/plumecms/plume-backend/pkg/logger"
)

// @title           Plume Backend API
// @version         1.0
// @description     Plume blogging platform backend
//
// @host            localhost:8080
// @BasePath        /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv()

	cfg, err := config.Load(getConfigPath())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pkglogger.InitStructured(cfg.App.Env)
	zlog := pkglogger.GetLogger()
	zlog.Info().Strs("env_files", dotenvFiles).Str("env", cfg.App.Env).Msg("starting")

	db, err := gorm.Open(mysql.Open(cfg.GetDSN()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := migration.Run(db); err != nil {
		zlog.Fatal().Err(err).Msg("migration failed")
	}
	zlog.Info().Msg("connected to MySQL")

	jwtManager := jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)

	// Repositories
	revisionRepo := repository.NewRevisionRepository(db)
	postRepo := repository.NewPostRepository(db, revisionRepo)
	termRepo := repository.NewTermRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// Services
	settingService := service.NewSettingService(settingRepo, cfg.Revision.Retention)
	slugResolver := service.NewSlugResolver(postRepo)
	postService := service.NewPostService(postRepo, revisionRepo, termRepo, slugResolver, settingService)

	// Handlers
	postHandler := handler.NewPostHandler(postService)
	settingHandler := handler.NewSettingHandler(settingService)

	if cfg.App.Env != "development" && cfg.App.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(cors.Default())

	routes.Setup(router, postHandler, settingHandler, jwtManager)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	zlog.Info().Str("addr", addr).Msg("listening")
	if err := router.Run(addr); err != nil {
		zlog.Fatal().Err(err).Msg("server stopped")
	}
}
