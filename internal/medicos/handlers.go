package medicos

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

type medicoView struct {
	backend.Medico
	NombreCompleto string `json:"nombreCompleto"`
}

func toViews(medicos []backend.Medico) []medicoView {
	views := make([]medicoView, 0, len(medicos))
	for _, m := range medicos {
		views = append(views, medicoView{Medico: m, NombreCompleto: m.DisplayName()})
	}
	return views
}

// ListHandler returns the médico roster, optionally filtered with ?q=.
func ListHandler(w http.ResponseWriter, r *http.Request) {
	data, _ := utils.GetSessionFromContext(r.Context())

	medicos, err := client.ListarMedicos(r.Context(), data.Token)
	if err != nil {
		if !backend.IsNoData(err) {
			webutil.BackendError(w, err)
			return
		}
		medicos = nil
	}

	query := r.URL.Query().Get("q")
	filtered := medicos[:0]
	for _, m := range medicos {
		if backend.MatchesSearch(query, m.Nombre, m.Nombres, m.Apellidos, m.Especialidad, m.Cedula) {
			filtered = append(filtered, m)
		}
	}

	webutil.JSON(w, http.StatusOK, toViews(filtered))
}

// PerfilHandler returns the logged-in médico's own roster entry.
func PerfilHandler(w http.ResponseWriter, r *http.Request) {
	data, _ := utils.GetSessionFromContext(r.Context())

	medicos, err := client.ListarMedicos(r.Context(), data.Token)
	if err != nil {
		webutil.BackendError(w, err)
		return
	}

	for _, m := range medicos {
		if m.Cedula == data.Cedula {
			webutil.JSON(w, http.StatusOK, medicoView{Medico: m, NombreCompleto: m.DisplayName()})
			return
		}
	}
	webutil.JSON(w, http.StatusNotFound, map[string]string{"error": "Médico no encontrado"})
}

// UpdateHandler overwrites a médico's profile and responds with the re-fetched
// roster.
func UpdateHandler(w http.ResponseWriter, r *http.Request) {
	data, _ := utils.GetSessionFromContext(r.Context())

	var m backend.Medico
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		webutil.BadRequest(w, "Formato de solicitud inválido")
		return
	}
	m.Cedula = chi.URLParam(r, "cedula")

	if err := client.ActualizarMedico(r.Context(), data.Token, m); err != nil {
		webutil.BackendError(w, err)
		return
	}

	refreshed, err := client.ListarMedicos(r.Context(), data.Token)
	if err != nil {
		webutil.BackendError(w, err)
		return
	}
	webutil.JSON(w, http.StatusOK, toViews(refreshed))
}
