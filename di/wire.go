//go:build wireinject
// +build wireinject

package di

import (
	"arcade/config"
	"arcade/infras/customerapi"
	"arcade/infras/kafka"
	"arcade/infras/otel"
	"arcade/infras/postgres"
	"arcade/infras/redis"
	"arcade/shared/cache"
	"arcade/transport/http"
	"arcade/transport/http/middleware"
	"arcade/transport/http/router"

	customerRepository "arcade/internal/domains/customer/repository"
	customerService "arcade/internal/domains/customer/service"
	drinkRepository "arcade/internal/domains/drink/repository"
	drinkService "arcade/internal/domains/drink/service"
	historyRepository "arcade/internal/domains/history/repository"
	historyService "arcade/internal/domains/history/service"
	stationRepository "arcade/internal/domains/station/repository"
	stationService "arcade/internal/domains/station/service"

	customerHandler "arcade/internal/handlers/customer"
	drinkHandler "arcade/internal/handlers/drink"
	historyHandler "arcade/internal/handlers/history"
	stationHandler "arcade/internal/handlers/station"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	kafka.New,
	customerapi.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	ProvideClock,
)

var stationDomain = wire.NewSet(
	ProvideFloor,
	stationRepository.New,
	stationService.New,
)

var drinkDomain = wire.NewSet(
	drinkRepository.New,
	drinkService.New,
)

var customerDomain = wire.NewSet(
	customerRepository.New,
	customerService.New,
)

var historyDomain = wire.NewSet(
	historyRepository.New,
	historyService.New,
)

var domains = wire.NewSet(
	stationDomain,
	drinkDomain,
	customerDomain,
	historyDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	stationHandler.New,
	drinkHandler.New,
	customerHandler.New,
	historyHandler.New,
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
