package dashboard

import (
	"net/http"
	"time"

	"github.com/ClinicaVital/CV-Portal/internal/backend"
	"github.com/ClinicaVital/CV-Portal/internal/session"
	"github.com/ClinicaVital/CV-Portal/internal/utils"
	"github.com/ClinicaVital/CV-Portal/internal/webutil"
)

var (
	client   *backend.Client
	sessions session.Repository
)

func Init(c *backend.Client, repo session.Repository) {
	client = c
	sessions = repo
}

type medicoResumen struct {
	Medico         string             `json:"medico"`
	TotalPacientes int                `json:"totalPacientes"`
	Recientes      []PacienteReciente `json:"pacientesRecientes"`
	Citas          ResumenCitas       `json:"citas"`
}

// MedicoHandler builds the médico landing page: patient counts, the newest
// patients, and today's/pending/completed appointment buckets. The médico's
// display name is resolved from the roster on first visit and cached on the
// session afterwards.
func MedicoHandler(w http.ResponseWriter, r *http.Request) {
	data, _ := utils.GetSessionFromContext(r.Context())

	nombre := data.DisplayName
	if nombre == "" {
		medicos, err := client.ListarMedicos(r.Context(), data.Token)
		if err != nil {
			webutil.BackendError(w, err)
			return
		}
		for _, m := range medicos {
			if m.Cedula == data.Cedula {
				nombre = m.DisplayName()
				break
			}
		}
		if nombre != "" {
			// Cache miss is not fatal; the next visit resolves it again.
			_ = sessions.SetDisplayName(data.SessionID, nombre)
		}
	}

	pacientes, err := client.ListarPacientes(r.Context(), data.Token)
	if err != nil {
		if !backend.IsNoData(err) {
			webutil.BackendError(w, err)
			return
		}
		pacientes = nil
	}

	citas, err := client.CitasPorCedula(r.Context(), data.Token, data.Cedula)
	if err != nil {
		if !backend.IsNoData(err) {
			webutil.BackendError(w, err)
			return
		}
		citas = nil
	}

	webutil.JSON(w, http.StatusOK, medicoResumen{
		Medico:         nombre,
		TotalPacientes: len(pacientes),
		Recientes:      PacientesRecientes(pacientes, 5),
		Citas:          ClasificarCitas(citas, time.Now()),
	})
}

type adminResumen struct {
	TotalUsuarios  int          `json:"totalUsuarios"`
	TotalMedicos   int          `json:"totalMedicos"`
	TotalPacientes int          `json:"totalPacientes"`
	TotalCitas     int          `json:"totalCitas"`
	CitasHoy       ResumenCitas `json:"citasHoy"`
	Semana         []DiaSerie   `json:"semana"`
}

// AdminHandler builds the administrator dashboard: entity counts, today's
// appointment status split and the seven-day activity series.
func AdminHandler(w http.ResponseWriter, r *http.Request) {
	data, _ := utils.GetSessionFromContext(r.Context())

	usuarios, err := client.ListarUsuarios(r.Context(), data.Token)
	if err != nil {
		if !backend.IsNoData(err) {
			webutil.BackendError(w, err)
			return
		}
		usuarios = nil
	}
	medicos, err := client.ListarMedicos(r.Context(), data.Token)
	if err != nil {
		if !backend.IsNoData(err) {
			webutil.BackendError(w, err)
			return
		}
		medicos = nil
	}
	pacientes, err := client.ListarPacientes(r.Context(), data.Token)
	if err != nil {
		if !backend.IsNoData(err) {
			webutil.BackendError(w, err)
			return
		}
		pacientes = nil
	}
	citas, err := client.ListarCitas(r.Context(), data.Token)
	if err != nil {
		if !backend.IsNoData(err) {
			webutil.BackendError(w, err)
			return
		}
		citas = nil
	}

	now := time.Now()
	webutil.JSON(w, http.StatusOK, adminResumen{
		TotalUsuarios:  len(usuarios),
		TotalMedicos:   len(medicos),
		TotalPacientes: len(pacientes),
		TotalCitas:     len(citas),
		CitasHoy:       ClasificarCitas(citas, now),
		Semana:         SerieSemanal(citas, now),
	})
}
