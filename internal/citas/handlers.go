package citas

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ClinicaVital/CV-Portal/internal/backend"
	"github.com/ClinicaVital/CV-Portal/internal/utils"
	"github.com/ClinicaVital/CV-Portal/internal/webutil"
	"github.com/go-chi/chi/v5"
)

var client *backend.Client

func Init(c *backend.Client) {
	client = c
}

// ListHandler returns the appointments tied to the logged-in cédula, with the
// estado normalized for display.
func ListHandler(w http.ResponseWriter, r *http.Request) {
	data, _ := utils.GetSessionFromContext(r.Context())

	citas, err := client.CitasPorCedula(r.Context(), data.Token, data.Cedula)
	if err != nil {
		if !backend.IsNoData(err) {
			webutil.BackendError(w, err)
			return
		}
		citas = nil
	}

	webutil.JSON(w, http.StatusOK, normalizar(citas))
}

// ListAllHandler returns every appointment in the system (admin screens).
func ListAllHandler(w http.ResponseWriter, r *http.Request) {
	data, _ := utils.GetSessionFromContext(r.Context())

	citas, err := client.ListarCitas(r.Context(), data.Token)
	if err != nil {
		if !backend.IsNoData(err) {
			webutil.BackendError(w, err)
			return
		}
		citas = nil
	}

	webutil.JSON(w, http.StatusOK, normalizar(citas))
}

func normalizar(citas []backend.Cita) []backend.Cita {
	if citas == nil {
		return []backend.Cita{}
	}
	for i := range citas {
		citas[i].Estado = backend.NormalizeEstado(citas[i].Estado)
	}
	return citas
}

func toRequest(c backend.Cita) backend.CitaRequest {
	return backend.CitaRequest{
		IdCita:         c.IdCita,
		CedulaPaciente: c.CedulaPaciente,
		CedulaMedico:   c.CedulaMedico,
		FechaCita:      c.FechaCita,
		HoraCita:       c.HoraCita,
		Motivo:         c.Motivo,
		Estado:         c.Estado,
		AgendadoPor:    c.AgendadoPor,
	}
}

// CreateHandler schedules a new appointment and responds with the re-fetched
// list; the local copy is never authoritative.
func CreateHandler(w http.ResponseWriter, r *http.Request) {
	data, _ := utils.GetSessionFromContext(r.Context())

	var cita backend.Cita
	if err := json.NewDecoder(r.Body).Decode(&cita); err != nil {
		webutil.BadRequest(w, "Formato de solicitud inválido")
		return
	}
	if cita.CedulaPaciente == "" || cita.CedulaMedico == "" || cita.FechaCita == "" {
		webutil.BadRequest(w, "Paciente, médico y fecha son obligatorios")
		return
	}
	if cita.Estado == "" {
		cita.Estado = backend.EstadoPendiente
	}
	if cita.AgendadoPor == "" {
		cita.AgendadoPor = data.Cedula
	}
	cita.IdCita = 0

	if err := client.RegistrarCita(r.Context(), data.Token, toRequest(cita)); err != nil {
		webutil.BackendError(w, err)
		return
	}

	refreshed, err := client.CitasPorCedula(r.Context(), data.Token, data.Cedula)
	if err != nil {
		if !backend.IsNoData(err) {
			webutil.BackendError(w, err)
			return
		}
		refreshed = nil
	}
	webutil.JSON(w, http.StatusCreated, normalizar(refreshed))
}

// UpdateHandler overwrites an appointment. Any estado string can be written
// here; the lifecycle is not enforced client-side.
func UpdateHandler(w http.ResponseWriter, r *http.Request) {
	data, _ := utils.GetSessionFromContext(r.Context())

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		webutil.BadRequest(w, "Id de cita inválido")
		return
	}

	var cita backend.Cita
	if err := json.NewDecoder(r.Body).Decode(&cita); err != nil {
		webutil.BadRequest(w, "Formato de solicitud inválido")
		return
	}
	cita.IdCita = id

	if err := client.ActualizarCita(r.Context(), data.Token, toRequest(cita)); err != nil {
		webutil.BackendError(w, err)
		return
	}

	refreshed, err := client.CitasPorCedula(r.Context(), data.Token, data.Cedula)
	if err != nil {
		if !backend.IsNoData(err) {
			webutil.BackendError(w, err)
			return
		}
		refreshed = nil
	}
	webutil.JSON(w, http.StatusOK, normalizar(refreshed))
}

type estadoRequest struct {
	Estado string `json:"estado"`
}

// EstadoHandler overwrites just the estado field of an appointment.
func EstadoHandler(w http.ResponseWriter, r *http.Request) {
	data, _ := utils.GetSessionFromContext(r.Context())

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		webutil.BadRequest(w, "Id de cita inválido")
		return
	}

	var req estadoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		webutil.BadRequest(w, "Formato de solicitud inválido")
		return
	}
	if req.Estado == "" {
		webutil.BadRequest(w, "El estado es obligatorio")
		return
	}

	if err := client.ActualizarEstadoCita(r.Context(), data.Token, id, req.Estado); err != nil {
		webutil.BackendError(w, err)
		return
	}

	webutil.JSON(w, http.StatusOK, map[string]string{"estado": backend.NormalizeEstado(req.Estado)})
}

// CancelHandler cancels an appointment. Always writes the cancelled estado;
// writing anything else here would silently re-activate the cita.
func CancelHandler(w http.ResponseWriter, r *http.Request) {
	data, _ := utils.GetSessionFromContext(r.Context())

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		webutil.BadRequest(w, "Id de cita inválido")
		return
	}

	if err := client.ActualizarEstadoCita(r.Context(), data.Token, id, backend.EstadoCancelada); err != nil {
		webutil.BackendError(w, err)
		return
	}

	webutil.JSON(w, http.StatusOK, map[string]string{"estado": backend.EstadoCancelada})
}
