package tratamientos

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

// ListByConsultaHandler returns the treatments attached to a consultation.
func ListByConsultaHandler(w http.ResponseWriter, r *http.Request) {
	data, _ := utils.GetSessionFromContext(r.Context())

	idConsulta, err := strconv.Atoi(chi.URLParam(r, "idConsulta"))
	if err != nil {
		webutil.BadRequest(w, "Id de consulta inválido")
		return
	}

	// "No hay registros" comes back as a logical failure; to the browser it
	// is just an empty list.
	tratamientos, err := client.TratamientosPorConsulta(r.Context(), data.Token, idConsulta)
	if err != nil {
		if !backend.IsNoData(err) {
			webutil.BackendError(w, err)
			return
		}
		tratamientos = []backend.Tratamiento{}
	}

	webutil.JSON(w, http.StatusOK, tratamientos)
}

type createRequest struct {
	IdConsulta  int     `json:"idConsulta"`
	Descripcion string  `json:"descripcion"`
	Costo       float64 `json:"costo"`
	Sesiones    int     `json:"sesiones"`
}

// CreateHandler registers a treatment plan. A consultation holds at most one
// treatment, so an existing one blocks the registration.
func CreateHandler(w http.ResponseWriter, r *http.Request) {
	data, _ := utils.GetSessionFromContext(r.Context())

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		webutil.BadRequest(w, "Formato de solicitud inválido")
		return
	}
	if req.IdConsulta == 0 {
		webutil.BadRequest(w, "La consulta es obligatoria")
		return
	}

	existentes, err := client.TratamientosPorConsulta(r.Context(), data.Token, req.IdConsulta)
	if err != nil {
		if !backend.IsNoData(err) {
			webutil.BackendError(w, err)
			return
		}
		existentes = nil
	}
	for _, t := range existentes {
		if t.IdConsulta == req.IdConsulta {
			webutil.JSON(w, http.StatusConflict, map[string]string{
				"error": "Ya existe un tratamiento registrado para esta consulta",
			})
			return
		}
	}

	tratamiento := backend.Tratamiento{
		IdConsulta:  req.IdConsulta,
		Descripcion: req.Descripcion,
		Costo:       req.Costo,
		Sesiones:    req.Sesiones,
	}
	if err := client.RegistrarTratamiento(r.Context(), data.Token, tratamiento); err != nil {
		webutil.BackendError(w, err)
		return
	}

	refreshed, err := client.TratamientosPorConsulta(r.Context(), data.Token, req.IdConsulta)
	if err != nil {
		webutil.BackendError(w, err)
		return
	}
	webutil.JSON(w, http.StatusCreated, refreshed)
}
