package router

import (
	"github.com/go-chi/chi/v5"

	"arcade/internal/handlers/customer"
	"arcade/internal/handlers/drink"
	"arcade/internal/handlers/history"
	"arcade/internal/handlers/station"
)

type DomainHandlers struct {
	Station  station.Handler
	Drink    drink.Handler
	Customer customer.Handler
	History  history.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Station.Router(routerGroup)
		r.DomainHandlers.Drink.Router(routerGroup)
		r.DomainHandlers.Customer.Router(routerGroup)
		r.DomainHandlers.History.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
