package pacientes

import (
	"net/http"
	"sort"

	"github.com/ClinicaVital/CV-Portal/internal/backend"
	"github.com/ClinicaVital/CV-Portal/internal/utils"
	"github.com/ClinicaVital/CV-Portal/internal/webutil"
	"github.com/go-chi/chi/v5"
)

// EvolucionPunto is one consultation in a patient's history: the stats screen
// charts price and acceptance over time.
type EvolucionPunto struct {
	IdConsulta        int     `json:"idConsulta"`
	IdCita            int     `json:"idCita"`
	Fecha             string  `json:"fecha"`
	Motivo            string  `json:"motivo,omitempty"`
	PrecioBase        float64 `json:"precioBase"`
	AceptoTratamiento bool    `json:"aceptoTratamiento"`
}

type Evolucion struct {
	Cedula         string           `json:"cedula"`
	NombreCompleto string           `json:"nombreCompleto"`
	Consultas      []EvolucionPunto `json:"consultas"`
	TotalConsultas int              `json:"totalConsultas"`
	TotalFacturado float64          `json:"totalFacturado"`
}

// BuildEvolucion joins a patient's citas with the consultations created from
// them. The backend keys consultas only by idCita, so the join goes
// paciente → citas → consultas.
func BuildEvolucion(p backend.Paciente, citas []backend.Cita, consultas []backend.Consulta) Evolucion {
	propias := make(map[int]backend.Cita)
	for _, c := range citas {
		if c.CedulaPaciente == p.Cedula {
			propias[c.IdCita] = c
		}
	}

	ev := Evolucion{
		Cedula:         p.Cedula,
		NombreCompleto: p.DisplayName(),
		Consultas:      []EvolucionPunto{},
	}
	for _, con := range consultas {
		cita, ok := propias[con.IdCita]
		if !ok {
			continue
		}
		fecha := con.Fecha
		if fecha == "" {
			fecha = cita.FechaCita
		}
		ev.Consultas = append(ev.Consultas, EvolucionPunto{
			IdConsulta:        con.IdConsulta,
			IdCita:            con.IdCita,
			Fecha:             fecha,
			Motivo:            cita.Motivo,
			PrecioBase:        con.PrecioBase,
			AceptoTratamiento: con.AceptoTratamiento,
		})
		ev.TotalFacturado += con.PrecioBase
	}

	sort.Slice(ev.Consultas, func(i, j int) bool {
		return ev.Consultas[i].Fecha < ev.Consultas[j].Fecha
	})
	ev.TotalConsultas = len(ev.Consultas)
	return ev
}

// EvolucionHandler serves the per-patient consultation history.
func EvolucionHandler(w http.ResponseWriter, r *http.Request) {
	data, _ := utils.GetSessionFromContext(r.Context())
	cedula := chi.URLParam(r, "cedula")

	pacientes, err := client.ListarPacientes(r.Context(), data.Token)
	if err != nil {
		webutil.BackendError(w, err)
		return
	}

	var paciente backend.Paciente
	found := false
	for _, p := range pacientes {
		if p.Cedula == cedula {
			paciente = p
			found = true
			break
		}
	}
	if !found {
		webutil.JSON(w, http.StatusNotFound, map[string]string{"error": "Paciente no encontrado"})
		return
	}

	citas, err := client.ListarCitas(r.Context(), data.Token)
	if err != nil {
		if !backend.IsNoData(err) {
			webutil.BackendError(w, err)
			return
		}
		citas = nil
	}

	consultas, err := client.ListarConsultas(r.Context(), data.Token)
	if err != nil {
		if !backend.IsNoData(err) {
			webutil.BackendError(w, err)
			return
		}
		consultas = nil
	}

	webutil.JSON(w, http.StatusOK, BuildEvolucion(paciente, citas, consultas))
}
