package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/ClinicaVital/CV-Portal/internal/administrativos"
	"github.com/ClinicaVital/CV-Portal/internal/auth"
	"github.com/ClinicaVital/CV-Portal/internal/backend"
	"github.com/ClinicaVital/CV-Portal/internal/citas"
	"github.com/ClinicaVital/CV-Portal/internal/config"
	"github.com/ClinicaVital/CV-Portal/internal/consultas"
	"github.com/ClinicaVital/CV-Portal/internal/dashboard"
	"github.com/ClinicaVital/CV-Portal/internal/db"
	"github.com/ClinicaVital/CV-Portal/internal/medicos"
	"github.com/ClinicaVital/CV-Portal/internal/middleware"
	"github.com/ClinicaVital/CV-Portal/internal/notificaciones"
	"github.com/ClinicaVital/CV-Portal/internal/pacientes"
	"github.com/ClinicaVital/CV-Portal/internal/pagos"
	"github.com/ClinicaVital/CV-Portal/internal/session"
	"github.com/ClinicaVital/CV-Portal/internal/tratamientos"
	"github.com/ClinicaVital/CV-Portal/internal/usuarios"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "Portal is up!")
}

func main() {
	_ = godotenv.Load(".env.local")

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	db.Connect(cfg.DatabaseURL)
	session.Init()

	client := backend.NewClient(cfg.Backend, log)
	repo := session.Store{}

	auth.Init(client, repo)
	citas.Init(client)
	medicos.Init(client)
	usuarios.Init(client)
	pacientes.Init(client)
	consultas.Init(client)
	tratamientos.Init(client)
	administrativos.Init(client)
	notificaciones.Init(client, repo)
	pagos.Init(client)
	dashboard.Init(client, repo)

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Get("/", RootHandler)

	r.Mount("/auth", auth.SetupRoutes(cfg.LoginRateLimit))
	r.Mount("/citas", citas.SetupRoutes())
	r.Mount("/medicos", medicos.SetupRoutes())
	r.Mount("/usuarios", usuarios.SetupRoutes())
	r.Mount("/pacientes", pacientes.SetupRoutes())
	r.Mount("/consultas", consultas.SetupRoutes())
	r.Mount("/tratamientos", tratamientos.SetupRoutes())
	r.Mount("/administrativos", administrativos.SetupRoutes())
	r.Mount("/notificaciones", notificaciones.SetupRoutes())
	r.Mount("/pagos", pagos.SetupRoutes())
	r.Mount("/dashboard", dashboard.SetupRoutes())

	log.Info().Str("port", cfg.Port).Msg("Portal listening")

	if err := http.ListenAndServe("0.0.0.0:"+cfg.Port, r); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}
