//go:build wireinject
// +build wireinject

package di

import (
	"asteria/config"
	"asteria/infras/jwt"
	"asteria/infras/otel"
	"asteria/infras/postgres"
	"asteria/infras/redis"
	"asteria/infras/s3"
	"asteria/permissions"
	"asteria/shared/cache"
	"asteria/shared/constant"
	"asteria/transport/http"
	"asteria/transport/http/middleware"
	"asteria/transport/http/router"

	"asteria/internal/domains/quote/display"
	"asteria/internal/domains/quote/export"
	quoteRepository "asteria/internal/domains/quote/repository"
	quoteService "asteria/internal/domains/quote/service"
	quoteHandler "asteria/internal/handlers/quote"

	userRepository "asteria/internal/domains/user/repository"
	userService "asteria/internal/domains/user/service"
	userHandler "asteria/internal/handlers/user"

	authService "asteria/internal/domains/auth/service"
	authHandler "asteria/internal/handlers/auth"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	provideDatabase,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var quoteDomain = wire.NewSet(
	provideQuoteRepository,
	display.NewStore,
	export.New,
	quoteService.New,
)

var userDomain = wire.NewSet(
	provideUserRepository,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var domains = wire.NewSet(
	quoteDomain,
	userDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	quoteHandler.New,
	userHandler.New,
	authHandler.New,
	router.New,
)

// provideDatabase only dials postgres when it is the selected backend, the
// memory backend runs without a database connection.
func provideDatabase(cfg *config.Config) *postgres.Connection {
	if cfg.Storage.Backend == constant.StorageBackendMemory {
		return nil
	}

	return postgres.New(cfg)
}

func provideQuoteRepository(cfg *config.Config, db *postgres.Connection, otl otel.Otel) quoteRepository.Quote {
	if cfg.Storage.Backend == constant.StorageBackendMemory {
		return quoteRepository.NewMemory()
	}

	return quoteRepository.New(db, otl)
}

func provideUserRepository(cfg *config.Config, db *postgres.Connection, otl otel.Otel) userRepository.User {
	if cfg.Storage.Backend == constant.StorageBackendMemory {
		return userRepository.NewMemory()
	}

	return userRepository.New(db, otl)
}

func InitializeService() (*http.HTTP, error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}, nil
}
