//go:build wireinject
// +build wireinject

package di

import (
	"patientflow/config"
	"patientflow/infras/kafka"
	"patientflow/infras/otel"
	"patientflow/infras/postgres"
	"patientflow/infras/redis"
	"patientflow/internal/events"
	"patientflow/shared/cache"
	"patientflow/transport/http"
	"patientflow/transport/http/middleware"
	"patientflow/transport/http/router"

	bookingRepository "patientflow/internal/domains/booking/repository"
	bookingService "patientflow/internal/domains/booking/service"
	flowService "patientflow/internal/domains/flow/service"
	queueRepository "patientflow/internal/domains/queue/repository"
	queueService "patientflow/internal/domains/queue/service"

	bookingHandler "patientflow/internal/handlers/booking"
	queueHandler "patientflow/internal/handlers/queue"

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
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var queueDomain = wire.NewSet(
	queueRepository.New,
	queueService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var flowDomain = wire.NewSet(
	events.NewPublisher,
	flowService.New,
)

var domains = wire.NewSet(
	queueDomain,
	bookingDomain,
	flowDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	queueHandler.New,
	bookingHandler.New,
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
