// Package di provides dependency injection factories for creating application components.
package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"users_backend/internal/feature/users/adapters"
	"users_backend/internal/feature/users/domain/repository"
	"users_backend/internal/feature/users/domain/service"
	"users_backend/internal/feature/users/transport/handler"
	"users_backend/internal/feature/users/usecase"
	"users_backend/internal/platform/cache"
	jwtmw "users_backend/internal/platform/jwt"
)

// NewUserRepository creates a UserRepository implementation.
// If Redis is available, reads by id and the user list go through a Redis cache.
// Otherwise, it talks to the database directly.
func NewUserRepository(rdb *redis.Client, db *gorm.DB) repository.UserRepository {
	base := adapters.NewUserRepository(db)
	if rdb == nil {
		return base
	}
	return cache.NewCachingUserRepository(rdb, cache.TTLFromEnv(), base, "users")
}

// NewUserHandler builds every users use case on top of the given stores and returns the HTTP handler.
func NewUserHandler(users repository.UserRepository, db *gorm.DB, hasher service.PasswordHasher, jwtCfg jwtmw.Config) *handler.UserHandler {
	events := adapters.NewEventStore(db)

	creation := service.NewUserCreationService(users, hasher)
	authentication := service.NewUserAuthenticationService(users, hasher)
	validation := service.NewUserValidationService(users)

	return handler.NewUserHandler(handler.Usecases{
		Create:     usecase.NewCreateUserHandler(creation, users, events),
		Login:      usecase.NewLoginUserHandler(authentication, jwtmw.NewGenerator(), jwtCfg.Settings()),
		Update:     usecase.NewUpdateUserHandler(users, validation, hasher, events),
		Delete:     usecase.NewDeleteUserHandler(users, events),
		GetByID:    usecase.NewGetUserByIDHandler(users),
		GetByEmail: usecase.NewGetUserByEmailHandler(users),
		List:       usecase.NewListUsersHandler(users),
		Events:     usecase.NewListUserEventsHandler(events),
	})
}
