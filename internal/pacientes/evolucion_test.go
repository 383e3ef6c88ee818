package pacientes_test

import (
	"testing"

	"github.com/ClinicaVital/CV-Portal/internal/backend"
	"github.com/ClinicaVital/CV-Portal/internal/pacientes"
)

// TestBuildEvolucion verifies the paciente → citas → consultas join, the fecha
// fallback and the billing total.
func TestBuildEvolucion(t *testing.T) {
	p := backend.Paciente{Cedula: "5", Nombres: "Ana", Apellidos: "Pérez"}

	citas := []backend.Cita{
		{IdCita: 1, CedulaPaciente: "5", FechaCita: "2026-01-10", Motivo: "Limpieza"},
		{IdCita: 2, CedulaPaciente: "5", FechaCita: "2026-02-10", Motivo: "Control"},
		{IdCita: 3, CedulaPaciente: "9", FechaCita: "2026-01-15", Motivo: "Otro paciente"},
	}
	consultas := []backend.Consulta{
		{IdConsulta: 10, IdCita: 2, Fecha: "2026-02-11", PrecioBase: 80, AceptoTratamiento: true},
		{IdConsulta: 11, IdCita: 1, PrecioBase: 50},
		{IdConsulta: 12, IdCita: 3, Fecha: "2026-01-16", PrecioBase: 999},
		{IdConsulta: 13, IdCita: 99, Fecha: "2026-03-01", PrecioBase: 10},
	}

	ev := pacientes.BuildEvolucion(p, citas, consultas)

	if ev.NombreCompleto != "Ana Pérez" {
		t.Errorf("nombre: got %q", ev.NombreCompleto)
	}
	if ev.TotalConsultas != 2 {
		t.Fatalf("expected 2 consultas (others belong elsewhere), got %d", ev.TotalConsultas)
	}
	if ev.TotalFacturado != 130 {
		t.Errorf("total facturado: got %v, want 130", ev.TotalFacturado)
	}

	// Sorted by fecha ascending; consulta 11 inherits the cita date.
	if ev.Consultas[0].IdConsulta != 11 || ev.Consultas[0].Fecha != "2026-01-10" {
		t.Errorf("first point wrong: %+v", ev.Consultas[0])
	}
	if ev.Consultas[0].Motivo != "Limpieza" {
		t.Errorf("motivo should come from the cita, got %q", ev.Consultas[0].Motivo)
	}
	if ev.Consultas[1].IdConsulta != 10 || !ev.Consultas[1].AceptoTratamiento {
		t.Errorf("second point wrong: %+v", ev.Consultas[1])
	}
}

// TestBuildEvolucion_Empty verifies a patient with no consultas yields an empty
// but well-formed history.
func TestBuildEvolucion_Empty(t *testing.T) {
	p := backend.Paciente{Cedula: "5", Nombre: "Ana"}

	ev := pacientes.BuildEvolucion(p, nil, nil)

	if ev.TotalConsultas != 0 || ev.TotalFacturado != 0 {
		t.Errorf("expected zero totals, got %+v", ev)
	}
	if ev.Consultas == nil {
		t.Error("consultas should encode as [] not null")
	}
}
