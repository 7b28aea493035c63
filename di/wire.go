//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"bazaar/config"
	"bazaar/infras/jwt"
	"bazaar/infras/kafka"
	"bazaar/infras/otel"
	"bazaar/infras/postgres"
	"bazaar/infras/redis"
	"bazaar/internal/domains/booking/availability"
	bookingRepository "bazaar/internal/domains/booking/repository"
	bookingService "bazaar/internal/domains/booking/service"
	categoryRepository "bazaar/internal/domains/category/repository"
	categoryService "bazaar/internal/domains/category/service"
	listingRepository "bazaar/internal/domains/listing/repository"
	listingService "bazaar/internal/domains/listing/service"
	negotiationRepository "bazaar/internal/domains/negotiation/repository"
	negotiationService "bazaar/internal/domains/negotiation/service"
	"bazaar/internal/events"
	bookingHandler "bazaar/internal/handlers/booking"
	healthHandler "bazaar/internal/handlers/health"
	negotiationHandler "bazaar/internal/handlers/negotiation"
	"bazaar/permissions"
	"bazaar/shared/cache"
	"bazaar/transport/http"
	"bazaar/transport/http/middleware"
	"bazaar/transport/http/router"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	events.NewPublisher,
)

var catalogDomain = wire.NewSet(
	categoryRepository.New,
	categoryService.New,
	listingRepository.New,
	listingRepository.NewBusiness,
	listingService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	availability.New,
	bookingService.New,
)

var negotiationDomain = wire.NewSet(
	negotiationRepository.NewRequest,
	negotiationRepository.NewOffer,
	negotiationService.New,
)

var domains = wire.NewSet(
	catalogDomain,
	bookingDomain,
	negotiationDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	bookingHandler.New,
	negotiationHandler.New,
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
