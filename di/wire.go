//go:build wireinject
// +build wireinject

package di

import (
	"dwell/config"
	"dwell/infras/jwt"
	"dwell/infras/otel"
	"dwell/infras/postgres"
	"dwell/infras/redis"
	"dwell/permissions"
	"dwell/shared/cache"
	"dwell/transport/http"
	"dwell/transport/http/middleware"
	"dwell/transport/http/router"

	authService "dwell/internal/domains/auth/service"
	bookingRepository "dwell/internal/domains/booking/repository"
	bookingService "dwell/internal/domains/booking/service"
	hostelRepository "dwell/internal/domains/hostel/repository"
	hostelService "dwell/internal/domains/hostel/service"
	roomRepository "dwell/internal/domains/room/repository"
	roomService "dwell/internal/domains/room/service"
	userRepository "dwell/internal/domains/user/repository"
	userService "dwell/internal/domains/user/service"

	authHandler "dwell/internal/handlers/auth"
	bookingHandler "dwell/internal/handlers/booking"
	healthHandler "dwell/internal/handlers/health"
	hostelHandler "dwell/internal/handlers/hostel"
	roomHandler "dwell/internal/handlers/room"
	userHandler "dwell/internal/handlers/user"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var hostelDomain = wire.NewSet(
	hostelRepository.New,
	hostelService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var domains = wire.NewSet(
	userDomain,
	authDomain,
	hostelDomain,
	roomDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	hostelHandler.New,
	roomHandler.New,
	bookingHandler.New,
	healthHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
