package citas_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ClinicaVital/CV-Portal/internal/backend"
	"github.com/ClinicaVital/CV-Portal/internal/citas"
	"github.com/ClinicaVital/CV-Portal/internal/config"
	"github.com/ClinicaVital/CV-Portal/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

func setupCitas(t *testing.T, handler http.Handler) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.BackendConfig{
		BaseURL:             srv.URL,
		AdminBaseURL:        srv.URL,
		CitasBaseURL:        srv.URL,
		PagosBaseURL:        srv.URL,
		TratamientosBaseURL: srv.URL,
	}
	citas.Init(backend.NewClient(cfg, zerolog.Nop()))
}

// request builds an authenticated request with the id URL param set.
func request(method, target, id, body string) *http.Request {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)

	ctx := utils.WithSession(req.Context(), utils.SessionData{
		SessionID: "sess-1",
		Cedula:    "1102354789",
		Token:     "tok",
	})
	if id != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

// TestCancelHandler verifies cancelling writes the cancelled estado, not a
// reschedule.
func TestCancelHandler(t *testing.T) {
	var wrote string
	setupCitas(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/Citas/ActualizarEstadoCitaxId/") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var body struct {
			Estado string `json:"estado"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		wrote = body.Estado
		w.Write([]byte(`{"esCorrecto": true, "mensaje": "ok", "valor": "1"}`))
	}))

	rec := httptest.NewRecorder()
	citas.CancelHandler(rec, request(http.MethodPut, "/7/cancelar", "7", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body: %s", rec.Code, rec.Body.String())
	}
	if wrote != backend.EstadoCancelada {
		t.Errorf("expected estado %q written, got %q", backend.EstadoCancelada, wrote)
	}
}

// TestCreateHandler verifies defaults (estado, agendadoPor), the PascalCase
// write shape, and that the response is the re-fetched list.
func TestCreateHandler(t *testing.T) {
	var registered map[string]any
	setupCitas(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/Citas/RegistrarCita":
			json.NewDecoder(r.Body).Decode(&registered)
			w.Write([]byte(`{"esCorrecto": true, "mensaje": "ok", "valor": "1"}`))
		case "/Citas/ObtenerCitasxCedula/1102354789":
			w.Write([]byte(`{"esCorrecto": true, "mensaje": "", "valor": [{"idCita": 9, "estado": "pendiente"}]}`))
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	body := `{"cedulaPaciente": "5", "cedulaMedico": "1102354789", "fechaCita": "2026-09-01", "horaCita": "10:00"}`
	rec := httptest.NewRecorder()
	citas.CreateHandler(rec, request(http.MethodPost, "/", "", body))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d; body: %s", rec.Code, rec.Body.String())
	}

	if registered["Estado"] != "Pendiente" {
		t.Errorf("expected default estado Pendiente, got %v", registered["Estado"])
	}
	if registered["AgendadoPor"] != "1102354789" {
		t.Errorf("expected agendadoPor defaulted to session cédula, got %v", registered["AgendadoPor"])
	}
	if _, camel := registered["cedulaPaciente"]; camel {
		t.Error("write shape should use PascalCase keys")
	}

	var refreshed []backend.Cita
	if err := json.Unmarshal(rec.Body.Bytes(), &refreshed); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(refreshed) != 1 || refreshed[0].Estado != backend.EstadoPendiente {
		t.Errorf("expected normalized re-fetched list, got %+v", refreshed)
	}
}

// TestCreateHandler_MissingFields verifies required-field validation happens
// before any backend call.
func TestCreateHandler_MissingFields(t *testing.T) {
	setupCitas(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend should not be called")
	}))

	rec := httptest.NewRecorder()
	citas.CreateHandler(rec, request(http.MethodPost, "/", "", `{"cedulaPaciente": "5"}`))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

// TestListHandler verifies listing normalizes estado synonyms.
func TestListHandler(t *testing.T) {
	setupCitas(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"esCorrecto": true, "mensaje": "", "valor": [
			{"idCita": 1, "estado": "realizada"},
			{"idCita": 2, "estado": "agendada"}
		]}`))
	}))

	rec := httptest.NewRecorder()
	citas.ListHandler(rec, request(http.MethodGet, "/", "", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got []backend.Cita
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got[0].Estado != backend.EstadoCompletada || got[1].Estado != backend.EstadoProgramada {
		t.Errorf("estados not normalized: %+v", got)
	}
}
