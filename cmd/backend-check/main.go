package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ClinicaVital/CV-Portal/internal/backend"
	"github.com/ClinicaVital/CV-Portal/internal/config"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// backend-check logs in against the configured clinic API and walks the
// read-only listing endpoints, printing row counts. Useful to confirm the
// backend is reachable and the token works before starting the portal.
func main() {
	cedula := flag.String("cedula", "", "cédula to log in with")
	password := flag.String("password", "", "password for the cédula")
	flag.Parse()

	if err := godotenv.Load(".env.local"); err != nil {
		log.Printf("Warning: .env.local not found, using system environment variables")
	}

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	if *cedula == "" || *password == "" {
		log.Fatal("Usage: backend-check -cedula <cedula> -password <password>")
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	client := backend.NewClient(cfg.Backend, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	token, err := client.Login(ctx, *cedula, *password)
	if err != nil {
		log.Fatalf("Login failed: %v", err)
	}
	fmt.Println("✓ Login OK")

	rol, err := client.ObtenerRol(ctx, *cedula)
	if err != nil {
		log.Fatalf("Role lookup failed: %v", err)
	}
	fmt.Printf("✓ Rol: %s\n", rol)

	checks := []struct {
		name string
		run  func() (int, error)
	}{
		{"medicos", func() (int, error) {
			v, err := client.ListarMedicos(ctx, token)
			return len(v), err
		}},
		{"pacientes", func() (int, error) {
			v, err := client.ListarPacientes(ctx, token)
			return len(v), err
		}},
		{"citas", func() (int, error) {
			v, err := client.ListarCitas(ctx, token)
			return len(v), err
		}},
		{"consultas", func() (int, error) {
			v, err := client.ListarConsultas(ctx, token)
			return len(v), err
		}},
		{"administrativos", func() (int, error) {
			v, err := client.ListarAdministrativos(ctx, token)
			return len(v), err
		}},
		{"notificaciones", func() (int, error) {
			v, err := client.ListarNotificaciones(ctx, token)
			return len(v), err
		}},
		{"pagos", func() (int, error) {
			v, err := client.ListarPagos(ctx, token)
			return len(v), err
		}},
	}

	for _, c := range checks {
		n, err := c.run()
		if err != nil {
			fmt.Printf("✗ %s: %v\n", c.name, err)
			continue
		}
		fmt.Printf("✓ %s: %d rows\n", c.name, n)
	}
}
