package webutil

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ClinicaVital/CV-Portal/internal/backend"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// BackendError maps the client's error taxonomy onto portal responses:
// unreachable and malformed bodies become 502s, backend HTTP failures keep
// their status where it is meaningful, and backend-signaled failures surface
// the backend's own mensaje. Nothing is retried.
func BackendError(w http.ResponseWriter, err error) {
	var statusErr *backend.StatusError
	var apiErr *backend.APIError

	switch {
	case errors.Is(err, backend.ErrUnreachable):
		JSON(w, http.StatusBadGateway, errorBody{Error: "No se pudo conectar con el servidor"})
	case errors.Is(err, backend.ErrMalformed):
		JSON(w, http.StatusBadGateway, errorBody{Error: "Respuesta ilegible del servidor"})
	case errors.As(err, &statusErr):
		msg := statusErr.Mensaje
		switch {
		case statusErr.Code == http.StatusUnauthorized:
			if msg == "" {
				msg = "Credenciales o sesión rechazadas por el servidor"
			}
			JSON(w, http.StatusUnauthorized, errorBody{Error: msg})
		case statusErr.Code == http.StatusNotFound:
			if msg == "" {
				msg = "Recurso no encontrado"
			}
			JSON(w, http.StatusNotFound, errorBody{Error: msg})
		default:
			if msg == "" {
				msg = "Error del servidor"
			}
			JSON(w, http.StatusBadGateway, errorBody{Error: msg})
		}
	case errors.As(err, &apiErr):
		JSON(w, http.StatusUnprocessableEntity, errorBody{Error: apiErr.Error()})
	default:
		JSON(w, http.StatusInternalServerError, errorBody{Error: "Error inesperado"})
	}
}

func BadRequest(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusBadRequest, errorBody{Error: msg})
}
