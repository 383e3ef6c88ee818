package backend

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Placeholders shown when no variant of a field is present.
const (
	SinNombre  = "Sin nombre"
	SinMensaje = "Sin mensaje"
	SinEstado  = "Sin estado"
)

// Canonical cita states. The backend stores whatever string it was last sent,
// so comparisons are always case-insensitive.
const (
	EstadoPendiente  = "Pendiente"
	EstadoProgramada = "Programada"
	EstadoCompletada = "Completada"
	EstadoCancelada  = "Cancelada"
)

// DisplayName resolves a person's name from its shape variants: a single
// "nombre" wins, then the "nombres apellidos" pair, then the placeholder.
func DisplayName(nombre, nombres, apellidos string) string {
	if s := strings.TrimSpace(nombre); s != "" {
		return s
	}
	full := strings.TrimSpace(strings.TrimSpace(nombres) + " " + strings.TrimSpace(apellidos))
	if full != "" {
		return full
	}
	return SinNombre
}

func (p Paciente) DisplayName() string {
	return DisplayName(p.Nombre, p.Nombres, p.Apellidos)
}

func (m Medico) DisplayName() string {
	return DisplayName(m.Nombre, m.Nombres, m.Apellidos)
}

func (a Administrativo) DisplayName() string {
	return DisplayName(a.Nombre, a.Nombres, a.Apellidos)
}

// DisplayMensaje resolves the notification text. The backend uses three
// different keys for it depending on the endpoint.
func (n Notificacion) DisplayMensaje() string {
	for _, s := range []string{n.Mensaje, n.Descripcion, n.MensajeNotificacion} {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return SinMensaje
}

// NormalizeEstado maps the stored estado string onto the canonical set.
// Synonyms seen in the wild ("realizada", "agendada", "programado") are folded
// in; anything unrecognized is returned as-is rather than dropped.
func NormalizeEstado(estado string) string {
	s := strings.ToLower(strings.TrimSpace(estado))
	switch {
	case s == "":
		return SinEstado
	case strings.Contains(s, "completada") || strings.Contains(s, "realizada"):
		return EstadoCompletada
	case strings.Contains(s, "programad") || strings.Contains(s, "agendada"):
		return EstadoProgramada
	case strings.Contains(s, "cancelada"):
		return EstadoCancelada
	case strings.Contains(s, "pendiente"):
		return EstadoPendiente
	}
	return estado
}

// EstadoEquals compares a stored estado against a canonical one.
func EstadoEquals(estado, canonical string) bool {
	return NormalizeEstado(estado) == canonical
}

var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldSearch lowercases a string and strips diacritics so that patient search
// matches "Pérez" against "perez" and vice versa.
func FoldSearch(s string) string {
	folded, _, err := transform.String(foldDiacritics, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// MatchesSearch reports whether any of the given fields contains the query,
// accent- and case-insensitively. An empty query matches everything.
func MatchesSearch(query string, fields ...string) bool {
	q := FoldSearch(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(FoldSearch(f), q) {
			return true
		}
	}
	return false
}
