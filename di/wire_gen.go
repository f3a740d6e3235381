// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package di

import (
	"github.com/google/wire"
	"patientflow/config"
	"patientflow/infras/kafka"
	"patientflow/infras/otel"
	"patientflow/infras/postgres"
	"patientflow/infras/redis"
	repository2 "patientflow/internal/domains/booking/repository"
	service2 "patientflow/internal/domains/booking/service"
	service3 "patientflow/internal/domains/flow/service"
	"patientflow/internal/domains/queue/repository"
	"patientflow/internal/domains/queue/service"
	"patientflow/internal/events"
	"patientflow/internal/handlers/booking"
	"patientflow/internal/handlers/queue"
	"patientflow/shared/cache"
	"patientflow/transport/http"
	"patientflow/transport/http/middleware"
	"patientflow/transport/http/router"
)

// Injectors from wire.go:

func InitializeService() *http.HTTP {
	configConfig := config.Get()
	connection := postgres.New(configConfig)
	otelOtel := otel.New(configConfig)
	visitQueue := repository.New(connection, otelOtel)
	client := redis.New(configConfig)
	redisCache := cache.NewRedisCache(client, otelOtel)
	serviceVisitQueue := service.New(visitQueue, configConfig, redisCache, otelOtel)
	roomBooking := repository2.New(connection, otelOtel)
	serviceRoomBooking := service2.New(roomBooking, configConfig, redisCache, otelOtel)
	kafkaClient := kafka.New(configConfig)
	publisher := events.NewPublisher(kafkaClient, configConfig, otelOtel)
	patientFlow := service3.New(serviceVisitQueue, serviceRoomBooking, publisher, otelOtel)
	handler := queue.New(patientFlow, serviceVisitQueue, otelOtel)
	bookingHandler := booking.New(serviceRoomBooking, patientFlow, otelOtel)
	domainHandlers := router.DomainHandlers{
		Queue:   handler,
		Booking: bookingHandler,
	}
	routerRouter := router.New(domainHandlers)
	appMiddleware := middleware.NewAppMiddleware(otelOtel, configConfig, redisCache)
	httpHTTP := http.New(configConfig, routerRouter, appMiddleware)
	return httpHTTP
}

// wire.go:

var configurations = wire.NewSet(config.Get)

var infrastructures = wire.NewSet(postgres.New, otel.New, redis.New, kafka.New)

var middlewares = wire.NewSet(middleware.NewAppMiddleware)

var sharedHelpers = wire.NewSet(cache.NewRedisCache)

var queueDomain = wire.NewSet(repository.New, service.New)

var bookingDomain = wire.NewSet(repository2.New, service2.New)

var flowDomain = wire.NewSet(events.NewPublisher, service3.New)

var domains = wire.NewSet(
	queueDomain,
	bookingDomain,
	flowDomain,
)

var routing = wire.NewSet(wire.Struct(new(router.DomainHandlers), "*"), queue.New, booking.New, router.New)
