package auth

import (
	"net/http"

	"github.com/ClinicaVital/CV-Portal/internal/middleware"
	"github.com/ClinicaVital/CV-Portal/internal/session"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(loginRate float64) http.Handler {
	r := chi.NewRouter()
	sessionFetcher := session.Store{}

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimitMiddleware(loginRate))
		r.Post("/login", LoginHandler)
	})
	r.Post("/registro", RegistroHandler)
	r.Post("/recuperar-clave", RecuperarClaveHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))
		r.Post("/logout", LogoutHandler)
		r.Get("/me", MeHandler)
	})

	return r
}
