package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ClinicaVital/CV-Portal/internal/config"
	"github.com/rs/zerolog"
)

// newTestClient points every endpoint group at the given fake backend.
func newTestClient(serverURL string) *Client {
	cfg := config.BackendConfig{
		BaseURL:             serverURL,
		AdminBaseURL:        serverURL,
		CitasBaseURL:        serverURL,
		PagosBaseURL:        serverURL,
		TratamientosBaseURL: serverURL,
	}
	return NewClient(cfg, zerolog.Nop())
}

// TestClientLogin verifies that the token is lifted out of the envelope's
// mensaje field and that the credentials body uses the accented key.
func TestClientLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/Usuarios/Login" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var body map[string]string
		if err := jsonDecode(r, &body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["contraseña"] == "" {
			t.Error("expected accented password key in body")
		}
		w.Write([]byte(`{"esCorrecto": true, "mensaje": "tok-abc123", "valor": null}`))
	}))
	defer srv.Close()

	token, err := newTestClient(srv.URL).Login(context.Background(), "1102354789", "secreto")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "tok-abc123" {
		t.Errorf("got token %q", token)
	}
}

// TestClientLogin_Rejected verifies that esCorrecto:false surfaces the
// backend's message instead of treating it as a token.
func TestClientLogin_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"esCorrecto": false, "mensaje": "Credenciales inválidas", "valor": null}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Login(context.Background(), "1102354789", "mala")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Mensaje != "Credenciales inválidas" {
		t.Errorf("got message %q", apiErr.Mensaje)
	}
}

// TestClientBearerInjection verifies that list calls replay the stored token as
// a bearer header.
func TestClientBearerInjection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-abc123" {
			t.Errorf("expected bearer header, got %q", got)
		}
		w.Write([]byte(`{"esCorrecto": true, "mensaje": "", "valor": []}`))
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL).ListarPacientes(context.Background(), "tok-abc123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestClientTrailingCommaRepair verifies that a payload with trailing commas
// still yields usable rows.
func TestClientTrailingCommaRepair(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"esCorrecto": true, "mensaje": "", "valor": [{"cedula": "7", "nombre": "Ana",},]}`))
	}))
	defer srv.Close()

	pacientes, err := newTestClient(srv.URL).ListarPacientes(context.Background(), "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pacientes) != 1 || pacientes[0].Nombre != "Ana" {
		t.Errorf("got %+v", pacientes)
	}
}

// TestClientBareArrayList verifies that a list endpoint returning a naked array
// (no envelope) still produces rows. The notification list does this.
func TestClientBareArrayList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"idNotificacion": 1, "descripcion": "Cita programada"}]`))
	}))
	defer srv.Close()

	notifs, err := newTestClient(srv.URL).ListarNotificaciones(context.Background(), "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notifs) != 1 || notifs[0].DisplayMensaje() != "Cita programada" {
		t.Errorf("got %+v", notifs)
	}
}

// TestClientStatusError verifies that a non-2xx response becomes a StatusError
// carrying the envelope's message when one is present.
func TestClientStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"esCorrecto": false, "mensaje": "Token expirado", "valor": null}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ListarCitas(context.Background(), "stale")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.Code != http.StatusUnauthorized || statusErr.Mensaje != "Token expirado" {
		t.Errorf("got %+v", statusErr)
	}
}

// TestClientEsCorrectoFalse verifies that a 2xx envelope with esCorrecto false
// is a logical failure, not a decode error.
func TestClientEsCorrectoFalse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"esCorrecto": false, "mensaje": "No hay registros", "valor": null}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ListarCitas(context.Background(), "tok")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
}

// TestClientUnreachable verifies that a closed server maps to ErrUnreachable.
func TestClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := newTestClient(srv.URL).ListarCitas(context.Background(), "tok")
	if !errors.Is(err, ErrUnreachable) {
		t.Errorf("expected ErrUnreachable, got %v", err)
	}
}

// TestClientMalformedBody verifies that an HTML error page maps to ErrMalformed.
func TestClientMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>gateway error</html>`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ListarCitas(context.Background(), "tok")
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed, got %v", err)
	}
}

func jsonDecode(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
