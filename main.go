package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/talentbridge/backend/internal/di"
	"github.com/talentbridge/backend/internal/domain"
	"github.com/talentbridge/backend/internal/mail"
	"github.com/talentbridge/backend/internal/middleware"
	"github.com/talentbridge/backend/internal/storage"
	"github.com/talentbridge/backend/internal/token"
	"github.com/talentbridge/backend/migrations"
	"github.com/talentbridge/backend/pkg/config"
	"github.com/talentbridge/backend/pkg/database"
	"github.com/talentbridge/backend/pkg/logger"
	"github.com/talentbridge/backend/pkg/redis"
	"github.com/talentbridge/backend/pkg/telemetry"
)

const serviceName = "talentbridge-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(&logger.Config{
		Level:       "info",
		ServiceName: serviceName,
		Development: cfg.IsDevelopment(),
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	appLog := logger.Get()
	appLog.Info("Starting TalentBridge API...")

	ctx := context.Background()

	if _, err := telemetry.Init(ctx, &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    serviceName,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
		SampleRatio:    cfg.OTel.SampleRatio,
	}); err != nil {
		appLog.Warn("Failed to initialize telemetry", zap.Error(err))
	}
	defer telemetry.Shutdown(ctx)

	dbCfg := &database.PostgresConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
		ConnectTimeout:  5 * time.Second,
		MaxRetries:      3,
		RetryInterval:   time.Second,
		EnableTracing:   cfg.OTel.Enabled,
	}
	db, err := database.NewPostgres(ctx, dbCfg)
	if err != nil {
		appLog.Fatal("Database connection failed", zap.Error(err))
	}
	defer db.Close()
	appLog.Info("Database connected",
		zap.Int32("min_conns", dbCfg.MinConns), zap.Int32("max_conns", dbCfg.MaxConns))

	if err := database.RunMigrations(ctx, dbCfg, migrations.Migrations); err != nil {
		appLog.Fatal("Migrations failed", zap.Error(err))
	}

	rdb, err := redis.NewClient(ctx, &redis.Config{
		Host:          cfg.Redis.Host,
		Port:          cfg.Redis.Port,
		Password:      cfg.Redis.Password,
		DB:            cfg.Redis.DB,
		PoolSize:      cfg.Redis.PoolSize,
		MinIdleConns:  cfg.Redis.MinIdleConns,
		DialTimeout:   5 * time.Second,
		ReadTimeout:   3 * time.Second,
		WriteTimeout:  3 * time.Second,
		MaxRetries:    3,
		RetryInterval: time.Second,
	})
	if err != nil {
		appLog.Fatal("Redis connection failed", zap.Error(err))
	}
	defer rdb.Close()
	appLog.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))

	jwtSecret := cfg.JWT.Secret
	if jwtSecret == "" {
		// Validate() already rejects this outside development.
		jwtSecret = "dev-only-secret-key-do-not-use-in-production"
		appLog.Warn("JWT_SECRET not set, using dev-only default (NEVER use in production)")
	}
	tokens, err := token.NewService(jwtSecret, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL)
	if err != nil {
		appLog.Fatal("Token service init failed", zap.Error(err))
	}

	var mailer mail.Mailer
	mailer, err = mail.NewSendGridMailer(&mail.Config{
		APIKey:     cfg.Mail.SendGridAPIKey,
		SenderName: cfg.Mail.SenderName,
		Sender:     cfg.Mail.SenderEmail,
		ResetURL:   cfg.Mail.ResetURL,
	})
	if err != nil {
		if !cfg.IsDevelopment() {
			appLog.Fatal("Mailer init failed", zap.Error(err))
		}
		appLog.Warn("Mailer not configured, emails will only be logged", zap.Error(err))
		mailer = mail.LogMailer{}
	}

	var store *storage.Service
	if cfg.AWS.Bucket != "" {
		store, err = storage.NewService(ctx, &cfg.AWS)
		if err != nil {
			appLog.Fatal("Object storage init failed", zap.Error(err))
		}
	} else {
		appLog.Warn("AWS_S3_BUCKET_NAME not set, file endpoints disabled")
	}

	container := di.NewContainer(&di.ContainerConfig{
		DB:      db,
		Redis:   rdb,
		Tokens:  tokens,
		Mailer:  mailer,
		Storage: store,
		Version: cfg.App.Version,
	})

	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.OTel.Enabled {
		router.Use(telemetry.TracingMiddleware(serviceName))
	}

	router.GET("/health", container.HealthHandler.Health)
	router.GET("/ready", container.HealthHandler.Ready)

	accessGuard := middleware.AccessGuard(tokens, container.UserRepo)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(rdb, middleware.DefaultRateLimitConfig()))
		{
			auth.POST("/register", container.AuthHandler.Register)
			auth.POST("/verify-account", container.AuthHandler.VerifyAccount)
			auth.POST("/login", container.AuthHandler.Login)
			auth.POST("/forgot-password", container.AuthHandler.ForgotPassword)
			auth.POST("/reset-password", container.AuthHandler.ResetPassword)
			auth.POST("/resend-code", container.AuthHandler.ResendCode)
			auth.POST("/resend-email", container.AuthHandler.ResendEmail)
			auth.POST("/refresh-token", container.AuthHandler.RefreshToken)
		}

		users := v1.Group("/users")
		users.Use(accessGuard, middleware.RequireRoles(domain.RoleAdmin))
		{
			users.GET("", container.UserHandler.List)
			users.GET("/:id", container.UserHandler.GetByID)
			users.PATCH("/:id", container.UserHandler.Update)
			users.DELETE("/:id", container.UserHandler.Delete)
		}

		if store != nil {
			files := v1.Group("/files")
			files.Use(accessGuard)
			{
				files.POST("", container.FileHandler.Upload)
				files.DELETE("", container.FileHandler.Delete)
			}
		}
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 2 * time.Second,
	}

	go func() {
		appLog.Info("TalentBridge API listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Fatal("Server forced to shutdown", zap.Error(err))
	}

	appLog.Info("Server exited gracefully")
}
