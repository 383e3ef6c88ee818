package administrativos

import (
	"net/http"

	"github.com/ClinicaVital/CV-Portal/internal/auth"
	"github.com/ClinicaVital/CV-Portal/internal/middleware"
	"github.com/ClinicaVital/CV-Portal/internal/session"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	sessionFetcher := session.Store{}

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))
		r.Get("/", ListHandler)

		// Staff management is admin-only.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RoleMiddleware(auth.AdminRole))
			r.Post("/", CreateHandler)
		})
	})

	return r
}
