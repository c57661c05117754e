package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/theEquinoxDev/LocalLoop/pkg/errhttp"
	"github.com/theEquinoxDev/LocalLoop/services/item/application/handlers"
	appsvcs "github.com/theEquinoxDev/LocalLoop/services/item/application/services"
)

// ItemRoutes registers item endpoints under /items, all behind requireAuth.
func ItemRoutes(r chi.Router, svcs *appsvcs.Services, errs *errhttp.Responder, requireAuth func(http.Handler) http.Handler) {
	r.Route("/items", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", handlers.NewListItemsHandler(svcs, errs).Execute)
		r.Post("/", handlers.NewPostItemHandler(svcs, errs).Execute)
		r.Get("/nearby", handlers.NewNearbyItemsHandler(svcs, errs).Execute)
		r.Get("/{id}", handlers.NewGetItemHandler(svcs, errs).Execute)
		r.Patch("/{id}/claim", handlers.NewClaimItemHandler(svcs, errs).Execute)
		r.Patch("/{id}/resolve", handlers.NewResolveItemHandler(svcs, errs).Execute)
	})
}
