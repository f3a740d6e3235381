package router

import (
	"patientflow/internal/handlers/booking"
	"patientflow/internal/handlers/queue"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Queue   queue.Handler
	Booking booking.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Queue.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
