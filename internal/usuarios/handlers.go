package usuarios

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

type usuarioView struct {
	CedulaUsuario  string  `json:"cedulaUsuario"`
	NombreUsuario  string  `json:"nombreUsuario"`
	Activo         bool    `json:"activo"`
	Bloqueado      bool    `json:"bloqueado"`
	Rol            string  `json:"rol"`
	BloqueadoHasta *string `json:"bloqueadoHasta,omitempty"`
}

// ListHandler returns the login accounts for the admin user screen. Password
// hashes never leave the portal.
func ListHandler(w http.ResponseWriter, r *http.Request) {
	data, _ := utils.GetSessionFromContext(r.Context())

	usuarios, err := client.ListarUsuarios(r.Context(), data.Token)
	if err != nil {
		if !backend.IsNoData(err) {
			webutil.BackendError(w, err)
			return
		}
		usuarios = nil
	}

	views := make([]usuarioView, 0, len(usuarios))
	for _, u := range usuarios {
		views = append(views, usuarioView{
			CedulaUsuario:  u.CedulaUsuario,
			NombreUsuario:  u.NombreUsuario,
			Activo:         u.Activo,
			Bloqueado:      u.BloqueadoHasta != nil && *u.BloqueadoHasta != "",
			Rol:            u.Rol,
			BloqueadoHasta: u.BloqueadoHasta,
		})
	}

	webutil.JSON(w, http.StatusOK, views)
}

type estadoRequest struct {
	Activo bool `json:"activo"`
}

// EstadoHandler activates or deactivates a login account. Deactivation is the
// admin-side lockout; the backend's own attempt-based lock stays untouched.
func EstadoHandler(w http.ResponseWriter, r *http.Request) {
	data, _ := utils.GetSessionFromContext(r.Context())
	cedula := chi.URLParam(r, "cedula")

	var req estadoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		webutil.BadRequest(w, "Formato de solicitud inválido")
		return
	}

	usuarios, err := client.ListarUsuarios(r.Context(), data.Token)
	if err != nil {
		webutil.BackendError(w, err)
		return
	}

	var usuario backend.Usuario
	found := false
	for _, u := range usuarios {
		if u.CedulaUsuario == cedula {
			usuario = u
			found = true
			break
		}
	}
	if !found {
		webutil.JSON(w, http.StatusNotFound, map[string]string{"error": "Usuario no encontrado"})
		return
	}

	usuario.Activo = req.Activo
	if err := client.ActualizarUsuario(r.Context(), data.Token, usuario); err != nil {
		webutil.BackendError(w, err)
		return
	}

	webutil.JSON(w, http.StatusOK, map[string]bool{"activo": req.Activo})
}
