package consultas

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/ClinicaVital/CV-Portal/internal/backend"
	"github.com/ClinicaVital/CV-Portal/internal/utils"
	"github.com/ClinicaVital/CV-Portal/internal/webutil"
	"github.com/go-chi/chi/v5"
)

var client *backend.Client

func Init(c *backend.Client) {
	client = c
}

// ListHandler returns all consultations.
func ListHandler(w http.ResponseWriter, r *http.Request) {
	data, _ := utils.GetSessionFromContext(r.Context())

	consultas, err := client.ListarConsultas(r.Context(), data.Token)
	if err != nil {
		if !backend.IsNoData(err) {
			webutil.BackendError(w, err)
			return
		}
		consultas = []backend.Consulta{}
	}

	webutil.JSON(w, http.StatusOK, consultas)
}

// ProgramadasHandler feeds the consultation form: only the logged-in médico's
// appointments currently in estado Programada can become a consultation.
func ProgramadasHandler(w http.ResponseWriter, r *http.Request) {
	data, _ := utils.GetSessionFromContext(r.Context())

	citas, err := client.CitasPorCedula(r.Context(), data.Token, data.Cedula)
	if err != nil {
		if !backend.IsNoData(err) {
			webutil.BackendError(w, err)
			return
		}
		citas = []backend.Cita{}
	}

	programadas := citas[:0]
	for _, c := range citas {
		if backend.EstadoEquals(c.Estado, backend.EstadoProgramada) {
			programadas = append(programadas, c)
		}
	}

	webutil.JSON(w, http.StatusOK, programadas)
}

type createRequest struct {
	IdCita            int     `json:"idCita"`
	Fecha             string  `json:"fecha"`
	Notas             string  `json:"notas"`
	PrecioBase        float64 `json:"precioBase"`
	AceptoTratamiento bool    `json:"aceptoTratamiento"`
}

// CreateHandler registers a consultation, marks its cita Completada, and
// responds with the re-fetched consultation list.
func CreateHandler(w http.ResponseWriter, r *http.Request) {
	data, _ := utils.GetSessionFromContext(r.Context())

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		webutil.BadRequest(w, "Formato de solicitud inválido")
		return
	}
	if req.IdCita == 0 || req.PrecioBase == 0 {
		webutil.BadRequest(w, "ID Cita y Precio Base son obligatorios")
		return
	}
	if req.Fecha == "" {
		req.Fecha = time.Now().UTC().Format(time.RFC3339)
	}

	consulta := backend.Consulta{
		IdCita:            req.IdCita,
		Fecha:             req.Fecha,
		Notas:             req.Notas,
		PrecioBase:        req.PrecioBase,
		AceptoTratamiento: req.AceptoTratamiento,
	}
	if err := client.RegistrarConsulta(r.Context(), data.Token, consulta); err != nil {
		webutil.BackendError(w, err)
		return
	}

	// The cita moves to Completada once its consultation exists. A failure
	// here leaves the consultation registered, so it is reported but does
	// not undo anything.
	if err := client.ActualizarEstadoCita(r.Context(), data.Token, req.IdCita, backend.EstadoCompletada); err != nil {
		webutil.BackendError(w, err)
		return
	}

	refreshed, err := client.ListarConsultas(r.Context(), data.Token)
	if err != nil {
		webutil.BackendError(w, err)
		return
	}
	webutil.JSON(w, http.StatusCreated, refreshed)
}

// UpdateHandler overwrites a consultation.
func UpdateHandler(w http.ResponseWriter, r *http.Request) {
	data, _ := utils.GetSessionFromContext(r.Context())

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		webutil.BadRequest(w, "Id de consulta inválido")
		return
	}

	var consulta backend.Consulta
	if err := json.NewDecoder(r.Body).Decode(&consulta); err != nil {
		webutil.BadRequest(w, "Formato de solicitud inválido")
		return
	}
	consulta.IdConsulta = id

	if err := client.ActualizarConsulta(r.Context(), data.Token, consulta); err != nil {
		webutil.BackendError(w, err)
		return
	}

	refreshed, err := client.ListarConsultas(r.Context(), data.Token)
	if err != nil {
		webutil.BackendError(w, err)
		return
	}
	webutil.JSON(w, http.StatusOK, refreshed)
}
