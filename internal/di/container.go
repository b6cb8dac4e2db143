// Package di wires repositories, services and handlers into a single
// container so main stays a thin bootstrap.
package di

import (
	"github.com/talentbridge/backend/internal/handler"
	"github.com/talentbridge/backend/internal/mail"
	"github.com/talentbridge/backend/internal/repository"
	"github.com/talentbridge/backend/internal/service"
	"github.com/talentbridge/backend/internal/storage"
	"github.com/talentbridge/backend/internal/token"
	"github.com/talentbridge/backend/pkg/database"
	"github.com/talentbridge/backend/pkg/redis"
)

// ContainerConfig carries the externally constructed dependencies.
type ContainerConfig struct {
	DB      *database.PostgresDB
	Redis   *redis.Client
	Tokens  *token.Service
	Mailer  mail.Mailer
	Storage *storage.Service
	Version string
}

// Container holds every wired component of the application.
type Container struct {
	UserRepo repository.UserRepository

	AuthService service.AuthService
	UserService service.UserService

	AuthHandler   *handler.AuthHandler
	UserHandler   *handler.UserHandler
	FileHandler   *handler.FileHandler
	HealthHandler *handler.HealthHandler
}

// NewContainer builds the dependency graph bottom-up: repositories, then
// services, then handlers.
func NewContainer(cfg *ContainerConfig) *Container {
	userRepo := repository.NewPostgresUserRepository(cfg.DB.Pool())

	authService := service.NewAuthService(userRepo, cfg.Tokens, cfg.Mailer)
	userService := service.NewUserService(userRepo)

	return &Container{
		UserRepo:      userRepo,
		AuthService:   authService,
		UserService:   userService,
		AuthHandler:   handler.NewAuthHandler(authService),
		UserHandler:   handler.NewUserHandler(userService),
		FileHandler:   handler.NewFileHandler(cfg.Storage),
		HealthHandler: handler.NewHealthHandler(cfg.DB, cfg.Redis, cfg.Version),
	}
}
