package pacientes

import (
	"encoding/json"
	"net/http"

	"github.com/ClinicaVital/CV-Portal/internal/backend"
	"github.com/ClinicaVital/CV-Portal/internal/utils"
	"github.com/ClinicaVital/CV-Portal/internal/webutil"
	"github.com/go-chi/chi/v5"
)

var client *backend.Client

func Init(c *backend.Client) {
	client = c
}

type pacienteView struct {
	backend.Paciente
	NombreCompleto string `json:"nombreCompleto"`
}

func toViews(pacientes []backend.Paciente) []pacienteView {
	views := make([]pacienteView, 0, len(pacientes))
	for _, p := range pacientes {
		views = append(views, pacienteView{Paciente: p, NombreCompleto: p.DisplayName()})
	}
	return views
}

// ListHandler returns every patient, optionally filtered with ?q=. The search
// is accent- and case-insensitive so "perez" finds "Pérez".
func ListHandler(w http.ResponseWriter, r *http.Request) {
	data, _ := utils.GetSessionFromContext(r.Context())

	pacientes, err := client.ListarPacientes(r.Context(), data.Token)
	if err != nil {
		if !backend.IsNoData(err) {
			webutil.BackendError(w, err)
			return
		}
		pacientes = nil
	}

	query := r.URL.Query().Get("q")
	filtered := pacientes[:0]
	for _, p := range pacientes {
		if backend.MatchesSearch(query, p.Nombre, p.Nombres, p.Apellidos, p.Cedula) {
			filtered = append(filtered, p)
		}
	}

	webutil.JSON(w, http.StatusOK, toViews(filtered))
}

// MisPacientesHandler returns only the patients that have an appointment with
// the logged-in médico. The backend has no endpoint for this, so the
// citas-to-pacientes join happens here.
func MisPacientesHandler(w http.ResponseWriter, r *http.Request) {
	data, _ := utils.GetSessionFromContext(r.Context())

	citas, err := client.CitasPorCedula(r.Context(), data.Token, data.Cedula)
	if err != nil {
		if !backend.IsNoData(err) {
			webutil.BackendError(w, err)
			return
		}
		citas = nil
	}

	cedulas := make(map[string]struct{}, len(citas))
	for _, c := range citas {
		if c.CedulaPaciente != "" {
			cedulas[c.CedulaPaciente] = struct{}{}
		}
	}

	pacientes, err := client.ListarPacientes(r.Context(), data.Token)
	if err != nil {
		webutil.BackendError(w, err)
		return
	}

	propios := pacientes[:0]
	for _, p := range pacientes {
		if _, ok := cedulas[p.Cedula]; ok {
			propios = append(propios, p)
		}
	}

	webutil.JSON(w, http.StatusOK, toViews(propios))
}

// CreateHandler registers a patient and responds with the re-fetched list.
func CreateHandler(w http.ResponseWriter, r *http.Request) {
	data, _ := utils.GetSessionFromContext(r.Context())

	var p backend.Paciente
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		webutil.BadRequest(w, "Formato de solicitud inválido")
		return
	}
	if p.Cedula == "" {
		webutil.BadRequest(w, "La cédula es obligatoria")
		return
	}

	if err := client.RegistrarPaciente(r.Context(), data.Token, p); err != nil {
		webutil.BackendError(w, err)
		return
	}

	refreshed, err := client.ListarPacientes(r.Context(), data.Token)
	if err != nil {
		webutil.BackendError(w, err)
		return
	}
	webutil.JSON(w, http.StatusCreated, toViews(refreshed))
}

// UpdateHandler overwrites a patient record.
func UpdateHandler(w http.ResponseWriter, r *http.Request) {
	data, _ := utils.GetSessionFromContext(r.Context())

	var p backend.Paciente
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		webutil.BadRequest(w, "Formato de solicitud inválido")
		return
	}
	p.Cedula = chi.URLParam(r, "cedula")

	if err := client.ActualizarPaciente(r.Context(), data.Token, p); err != nil {
		webutil.BackendError(w, err)
		return
	}

	refreshed, err := client.ListarPacientes(r.Context(), data.Token)
	if err != nil {
		webutil.BackendError(w, err)
		return
	}
	webutil.JSON(w, http.StatusOK, toViews(refreshed))
}
