package dashboard

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
		r.Get("/", MedicoHandler)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RoleMiddleware(auth.AdminRole))
			r.Get("/admin", AdminHandler)
		})
	})

	return r
}
