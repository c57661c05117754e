package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/theEquinoxDev/LocalLoop/pkg/errhttp"
	"github.com/theEquinoxDev/LocalLoop/pkg/httpx"
	"github.com/theEquinoxDev/LocalLoop/services/user/application/handlers"
	appsvcs "github.com/theEquinoxDev/LocalLoop/services/user/application/services"
)

// UserRoutes registers user endpoints under /users. Register and login are
// public and rate limited per client IP; /me runs behind requireAuth.
func UserRoutes(r chi.Router, svcs *appsvcs.Services, errs *errhttp.Responder, requireAuth func(http.Handler) http.Handler, authRPM int) {
	r.Route("/users", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(httpx.AuthRateLimit(authRPM))
			r.Post("/register", handlers.NewRegisterHandler(svcs, errs).Execute)
			r.Post("/login", handlers.NewLoginHandler(svcs, errs).Execute)
		})
		r.With(requireAuth).Get("/me", handlers.NewMeHandler(svcs, errs).Execute)
	})
}
