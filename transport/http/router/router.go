package router

import (
	"dwell/internal/handlers/auth"
	"dwell/internal/handlers/booking"
	"dwell/internal/handlers/health"
	"dwell/internal/handlers/hostel"
	"dwell/internal/handlers/room"
	"dwell/internal/handlers/user"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "dwell/docs"
)

type DomainHandlers struct {
	Auth    auth.Handler
	User    user.Handler
	Hostel  hostel.Handler
	Room    room.Handler
	Booking booking.Handler
	Health  health.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	r.DomainHandlers.Health.Router(router)

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Hostel.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
