package citas

import (
	"net/http"

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
		r.Get("/todas", ListAllHandler)
		r.Post("/", CreateHandler)
		r.Put("/{id}", UpdateHandler)
		r.Put("/{id}/estado", EstadoHandler)
		r.Put("/{id}/cancelar", CancelHandler)
	})

	return r
}
