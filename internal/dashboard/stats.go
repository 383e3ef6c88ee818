package dashboard

import (
	"sort"
	"strings"
	"time"

	"github.com/ClinicaVital/CV-Portal/internal/backend"
)

// ParseFecha accepts the date formats the backend emits for citas: RFC 3339
// with or without offset, or a bare date. Only the calendar day matters for
// the dashboard buckets.
func ParseFecha(fecha string) (time.Time, bool) {
	if fecha == "" {
		return time.Time{}, false
	}
	if i := strings.IndexByte(fecha, 'T'); i > 0 {
		fecha = fecha[:i]
	}
	t, err := time.Parse("2006-01-02", fecha)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// calendarDay anchors a timestamp to its own calendar date. Cita dates parse
// as UTC midnights, so the comparison day must come from the wall-clock date,
// not a UTC truncation: truncating 20:00 in UTC-5 would land on tomorrow.
func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ResumenCitas buckets a médico's appointments for the dashboard cards.
type ResumenCitas struct {
	Hoy         []backend.Cita `json:"hoy"`
	Pendientes  []backend.Cita `json:"pendientes"`
	Completadas int            `json:"completadas"`
	Canceladas  int            `json:"canceladas"`
	Total       int            `json:"total"`
}

// ClasificarCitas sorts appointments into today's schedule, the upcoming
// backlog and completion counts. "Hoy" means programada on the given day;
// "pendiente" today or later, and "programada" strictly later, are backlog.
func ClasificarCitas(citas []backend.Cita, hoy time.Time) ResumenCitas {
	dia := calendarDay(hoy)

	resumen := ResumenCitas{
		Hoy:        []backend.Cita{},
		Pendientes: []backend.Cita{},
		Total:      len(citas),
	}
	for _, c := range citas {
		estado := backend.NormalizeEstado(c.Estado)
		fecha, ok := ParseFecha(c.FechaCita)

		switch estado {
		case backend.EstadoCompletada:
			resumen.Completadas++
		case backend.EstadoCancelada:
			resumen.Canceladas++
		case backend.EstadoProgramada:
			if !ok {
				continue
			}
			if fecha.Equal(dia) {
				resumen.Hoy = append(resumen.Hoy, c)
			} else if fecha.After(dia) {
				resumen.Pendientes = append(resumen.Pendientes, c)
			}
		case backend.EstadoPendiente:
			if ok && !fecha.Before(dia) {
				resumen.Pendientes = append(resumen.Pendientes, c)
			}
		}
	}
	return resumen
}

// DiaSerie is one day of the admin activity chart.
type DiaSerie struct {
	Fecha       string `json:"fecha"`
	Completadas int    `json:"completadas"`
	Pendientes  int    `json:"pendientes"`
}

// SerieSemanal counts completed and pending appointments per day over the
// seven days ending at hoy.
func SerieSemanal(citas []backend.Cita, hoy time.Time) []DiaSerie {
	dia := calendarDay(hoy)

	porDia := make(map[string]*DiaSerie, 7)
	serie := make([]DiaSerie, 0, 7)
	for i := 6; i >= 0; i-- {
		fecha := dia.AddDate(0, 0, -i).Format("2006-01-02")
		serie = append(serie, DiaSerie{Fecha: fecha})
		porDia[fecha] = &serie[len(serie)-1]
	}

	for _, c := range citas {
		fecha, ok := ParseFecha(c.FechaCita)
		if !ok {
			continue
		}
		bucket, ok := porDia[fecha.Format("2006-01-02")]
		if !ok {
			continue
		}
		switch backend.NormalizeEstado(c.Estado) {
		case backend.EstadoCompletada:
			bucket.Completadas++
		case backend.EstadoPendiente:
			bucket.Pendientes++
		}
	}
	return serie
}

// PacienteReciente is a row of the dashboard's latest-patients table.
type PacienteReciente struct {
	Cedula         string `json:"cedula"`
	NombreCompleto string `json:"nombreCompleto"`
	FechaRegistro  string `json:"fechaRegistro,omitempty"`
}

// PacientesRecientes returns the newest patients first, up to limit.
func PacientesRecientes(pacientes []backend.Paciente, limit int) []PacienteReciente {
	ordenados := make([]backend.Paciente, len(pacientes))
	copy(ordenados, pacientes)
	sort.SliceStable(ordenados, func(i, j int) bool {
		return ordenados[i].FechaRegistro > ordenados[j].FechaRegistro
	})

	if limit > 0 && len(ordenados) > limit {
		ordenados = ordenados[:limit]
	}

	recientes := make([]PacienteReciente, 0, len(ordenados))
	for _, p := range ordenados {
		recientes = append(recientes, PacienteReciente{
			Cedula:         p.Cedula,
			NombreCompleto: p.DisplayName(),
			FechaRegistro:  p.FechaRegistro,
		})
	}
	return recientes
}
