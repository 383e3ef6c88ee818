package auth

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/ClinicaVital/CV-Portal/internal/backend"
	"github.com/ClinicaVital/CV-Portal/internal/middleware"
	"github.com/ClinicaVital/CV-Portal/internal/session"
	"github.com/ClinicaVital/CV-Portal/internal/utils"
	"github.com/ClinicaVital/CV-Portal/internal/webutil"
	"github.com/google/uuid"
)

var (
	client   *backend.Client
	sessions session.Repository
)

func Init(c *backend.Client, repo session.Repository) {
	client = c
	sessions = repo
}

// AdminRole is the only role with its own dashboard; everyone else lands on
// the médico one.
const AdminRole = "administrador"

// DispatchRoute decides where a fresh login lands, matching the role
// case-insensitively.
func DispatchRoute(rol string) string {
	if strings.EqualFold(strings.TrimSpace(rol), AdminRole) {
		return "/dashboard-admin"
	}
	return "/dashboard"
}

func validCedula(cedula string) bool {
	if cedula == "" || len(cedula) > 10 {
		return false
	}
	for _, r := range cedula {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

type loginRequest struct {
	Cedula     string `json:"cedula"`
	Contrasena string `json:"contraseña"`
}

// The display name is not known yet at login; the dashboard resolves it from
// the roster and caches it on the session, after which /me serves it.
type loginResponse struct {
	Cedula   string `json:"cedula"`
	Rol      string `json:"rol"`
	Redirect string `json:"redirect"`
}

// LoginHandler authenticates against the clinic backend, then resolves the
// account's role for the post-login dispatch. The session row (token + role)
// is only written once both steps succeed, so a half-logged-in state — token
// saved but role unknown — cannot exist.
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		webutil.BadRequest(w, "Formato de solicitud inválido")
		return
	}
	if req.Cedula == "" || req.Contrasena == "" {
		webutil.BadRequest(w, "Completa todos los campos requeridos")
		return
	}
	if !validCedula(req.Cedula) {
		webutil.BadRequest(w, "La cédula debe ser numérica, máximo 10 dígitos")
		return
	}

	token, err := client.Login(r.Context(), req.Cedula, req.Contrasena)
	if err != nil {
		webutil.BackendError(w, err)
		return
	}

	rol, err := client.ObtenerRol(r.Context(), req.Cedula)
	if err != nil {
		// Navigation aborts: without a role there is no dashboard to send
		// the user to, and no session is persisted.
		webutil.BackendError(w, err)
		return
	}

	s := session.Session{
		SessionID: uuid.NewString(),
		Cedula:    req.Cedula,
		Token:     token,
		Rol:       rol,
	}
	if err := sessions.Save(s); err != nil {
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    s.SessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   false,
	})

	webutil.JSON(w, http.StatusOK, loginResponse{
		Cedula:   req.Cedula,
		Rol:      rol,
		Redirect: DispatchRoute(rol),
	})
}

type registroRequest struct {
	Cedula       string `json:"cedula"`
	Nombres      string `json:"nombres"`
	Apellidos    string `json:"apellidos"`
	Especialidad string `json:"especialidad"`
	Telefono     string `json:"telefono"`
	Email        string `json:"email"`
	Direccion    string `json:"direccion"`
	Password     string `json:"password"`
}

// RegistroHandler performs the two-step sign-up: the médico record first, then
// the login account tied to the same cédula. A failure on the second step is
// reported as-is; the médico record is backend-owned and not rolled back.
func RegistroHandler(w http.ResponseWriter, r *http.Request) {
	var req registroRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		webutil.BadRequest(w, "Formato de solicitud inválido")
		return
	}
	if req.Cedula == "" || req.Nombres == "" || req.Apellidos == "" ||
		req.Especialidad == "" || req.Telefono == "" || req.Email == "" ||
		req.Direccion == "" || req.Password == "" {
		webutil.BadRequest(w, "Completa todos los campos")
		return
	}
	if !validCedula(req.Cedula) {
		webutil.BadRequest(w, "La cédula debe ser numérica, máximo 10 dígitos")
		return
	}

	medico := backend.Medico{
		Cedula:       req.Cedula,
		Nombres:      req.Nombres,
		Apellidos:    req.Apellidos,
		Especialidad: req.Especialidad,
		Telefono:     req.Telefono,
		Email:        req.Email,
		Direccion:    req.Direccion,
		FechaIngreso: time.Now().UTC().Format(time.RFC3339),
	}
	if err := client.RegistrarMedico(r.Context(), "", medico); err != nil {
		webutil.BackendError(w, err)
		return
	}

	usuario := backend.Usuario{
		CedulaUsuario: req.Cedula,
		NombreUsuario: req.Nombres + " " + req.Apellidos,
		PasswordHash:  req.Password,
		Activo:        true,
		Rol:           "medico",
	}
	if err := client.RegistrarUsuario(r.Context(), "", usuario); err != nil {
		webutil.BackendError(w, err)
		return
	}

	webutil.JSON(w, http.StatusCreated, map[string]string{
		"mensaje": "Registro exitoso. Ahora puedes iniciar sesión.",
	})
}

type recoveryRequest struct {
	Cedula string `json:"cedula"`
}

// RecuperarClaveHandler asks the backend for the account's password. Works
// without a session; an existing token is forwarded when present.
func RecuperarClaveHandler(w http.ResponseWriter, r *http.Request) {
	var req recoveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		webutil.BadRequest(w, "Formato de solicitud inválido")
		return
	}
	if req.Cedula == "" {
		webutil.BadRequest(w, "Por favor, ingresa la cédula")
		return
	}

	var token string
	if cookie, err := r.Cookie(middleware.SessionCookie); err == nil {
		if data, err := sessions.Load(cookie.Value); err == nil {
			token = data.Token
		}
	}

	clave, err := client.ObtenerNuevaClave(r.Context(), token, req.Cedula)
	if err != nil {
		webutil.BackendError(w, err)
		return
	}

	webutil.JSON(w, http.StatusOK, map[string]string{"valor": clave})
}

// LogoutHandler destroys the session row and expires the cookie.
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	data, ok := utils.GetSessionFromContext(r.Context())
	if !ok {
		http.Error(w, "Couldn't find session", http.StatusUnauthorized)
		return
	}

	if err := sessions.Clear(data.SessionID); err != nil {
		http.Error(w, "Failed to clear session", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:   middleware.SessionCookie,
		Value:  "",
		MaxAge: -1,
		Path:   "/",
	})

	webutil.JSON(w, http.StatusOK, map[string]string{"mensaje": "Sesión cerrada"})
}

type meResponse struct {
	Cedula      string `json:"cedula"`
	Rol         string `json:"rol"`
	DisplayName string `json:"displayName"`
}

func MeHandler(w http.ResponseWriter, r *http.Request) {
	data, ok := utils.GetSessionFromContext(r.Context())
	if !ok {
		http.Error(w, "Couldn't find session", http.StatusUnauthorized)
		return
	}

	webutil.JSON(w, http.StatusOK, meResponse{
		Cedula:      data.Cedula,
		Rol:         data.Rol,
		DisplayName: data.DisplayName,
	})
}
