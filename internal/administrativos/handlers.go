package administrativos

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ClinicaVital/CV-Portal/internal/backend"
	"github.com/ClinicaVital/CV-Portal/internal/utils"
	"github.com/ClinicaVital/CV-Portal/internal/webutil"
)

var client *backend.Client

func Init(c *backend.Client) {
	client = c
}

type administrativoView struct {
	backend.Administrativo
	NombreCompleto string `json:"nombreCompleto"`
}

func toViews(items []backend.Administrativo) []administrativoView {
	views := make([]administrativoView, 0, len(items))
	for _, a := range items {
		views = append(views, administrativoView{Administrativo: a, NombreCompleto: a.DisplayName()})
	}
	return views
}

// ListHandler returns the administrative staff roster.
func ListHandler(w http.ResponseWriter, r *http.Request) {
	data, _ := utils.GetSessionFromContext(r.Context())

	items, err := client.ListarAdministrativos(r.Context(), data.Token)
	if err != nil {
		if !backend.IsNoData(err) {
			webutil.BackendError(w, err)
			return
		}
		items = nil
	}

	webutil.JSON(w, http.StatusOK, toViews(items))
}

// CreateHandler registers a staff member; every field is required.
func CreateHandler(w http.ResponseWriter, r *http.Request) {
	data, _ := utils.GetSessionFromContext(r.Context())

	var a backend.Administrativo
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		webutil.BadRequest(w, "Formato de solicitud inválido")
		return
	}
	if a.Cedula == "" || a.Nombres == "" || a.Apellidos == "" ||
		a.Telefono == "" || a.Email == "" || a.Direccion == "" {
		webutil.BadRequest(w, "Todos los campos son obligatorios")
		return
	}
	if a.FechaIngreso == "" {
		a.FechaIngreso = time.Now().UTC().Format(time.RFC3339)
	}

	if err := client.RegistrarAdministrativo(r.Context(), data.Token, a); err != nil {
		webutil.BackendError(w, err)
		return
	}

	refreshed, err := client.ListarAdministrativos(r.Context(), data.Token)
	if err != nil {
		webutil.BackendError(w, err)
		return
	}
	webutil.JSON(w, http.StatusCreated, toViews(refreshed))
}
