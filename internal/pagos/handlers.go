package pagos

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

// ListHandler returns all payments.
func ListHandler(w http.ResponseWriter, r *http.Request) {
	data, _ := utils.GetSessionFromContext(r.Context())

	pagos, err := client.ListarPagos(r.Context(), data.Token)
	if err != nil {
		if !backend.IsNoData(err) {
			webutil.BackendError(w, err)
			return
		}
		pagos = []backend.Pago{}
	}

	webutil.JSON(w, http.StatusOK, pagos)
}

// CreateHandler registers a payment against a consultation.
func CreateHandler(w http.ResponseWriter, r *http.Request) {
	data, _ := utils.GetSessionFromContext(r.Context())

	var p backend.Pago
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		webutil.BadRequest(w, "Formato de solicitud inválido")
		return
	}
	if p.IdConsulta == 0 || p.Monto <= 0 {
		webutil.BadRequest(w, "Consulta y monto son obligatorios")
		return
	}
	if p.Fecha == "" {
		p.Fecha = time.Now().UTC().Format(time.RFC3339)
	}
	p.IdPago = 0

	if err := client.RegistrarPago(r.Context(), data.Token, p); err != nil {
		webutil.BackendError(w, err)
		return
	}

	refreshed, err := client.ListarPagos(r.Context(), data.Token)
	if err != nil {
		webutil.BackendError(w, err)
		return
	}
	webutil.JSON(w, http.StatusCreated, refreshed)
}
