package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Credentials is the login request body. The backend expects the accented
// field name as-is.
type Credentials struct {
	Cedula     string `json:"cedula"`
	Contrasena string `json:"contraseña"`
}

// Login exchanges credentials for a bearer token. The backend returns the
// token in the envelope's mensaje field; a 2xx without it is a failure.
func (c *Client) Login(ctx context.Context, cedula, contrasena string) (string, error) {
	env, err := c.send(ctx, http.MethodPost, c.cfg.BaseURL, "/Usuarios/Login", "", Credentials{
		Cedula:     cedula,
		Contrasena: contrasena,
	})
	if err != nil {
		return "", err
	}
	if !env.EsCorrecto || env.Mensaje == "" {
		return "", &APIError{Mensaje: env.Mensaje}
	}
	return env.Mensaje, nil
}

// ObtenerRol fetches the role string for a cédula.
func (c *Client) ObtenerRol(ctx context.Context, cedula string) (string, error) {
	env, err := c.get(ctx, c.cfg.BaseURL, "/Usuarios/ObtenerRolxCedula/"+url.PathEscape(cedula), "")
	if err != nil {
		return "", err
	}
	var rol string
	if err := valorInto(env, &rol); err != nil {
		return "", err
	}
	return rol, nil
}

// ObtenerNuevaClave recovers the password for a cédula.
func (c *Client) ObtenerNuevaClave(ctx context.Context, token, cedula string) (string, error) {
	env, err := c.send(ctx, http.MethodPut, c.cfg.BaseURL, "/Usuarios/ObtenerNuevaClave/"+url.PathEscape(cedula), token, nil)
	if err != nil {
		return "", err
	}
	var clave string
	if err := valorInto(env, &clave); err != nil {
		return "", err
	}
	return clave, nil
}

func (c *Client) ListarUsuarios(ctx context.Context, token string) ([]Usuario, error) {
	env, err := c.get(ctx, c.cfg.BaseURL, "/Usuarios/ListarTodosUsuarios", token)
	if err != nil {
		return nil, err
	}
	var usuarios []Usuario
	if err := valorInto(env, &usuarios); err != nil {
		return nil, err
	}
	return usuarios, nil
}

func (c *Client) RegistrarUsuario(ctx context.Context, token string, u Usuario) error {
	env, err := c.send(ctx, http.MethodPost, c.cfg.BaseURL, "/Usuarios/RegistrarUsuario", token, u)
	if err != nil {
		return err
	}
	if !env.EsCorrecto {
		return &APIError{Mensaje: env.Mensaje}
	}
	return nil
}

func (c *Client) ActualizarUsuario(ctx context.Context, token string, u Usuario) error {
	env, err := c.send(ctx, http.MethodPut, c.cfg.BaseURL, "/Usuarios/ActualizarUsuario", token, u)
	if err != nil {
		return err
	}
	if !env.EsCorrecto {
		return &APIError{Mensaje: env.Mensaje}
	}
	return nil
}

func (c *Client) ListarMedicos(ctx context.Context, token string) ([]Medico, error) {
	env, err := c.get(ctx, c.cfg.BaseURL, "/Medicos/ListarTodosMedicos", token)
	if err != nil {
		return nil, err
	}
	var medicos []Medico
	if err := valorInto(env, &medicos); err != nil {
		return nil, err
	}
	return medicos, nil
}

func (c *Client) RegistrarMedico(ctx context.Context, token string, m Medico) error {
	env, err := c.send(ctx, http.MethodPost, c.cfg.BaseURL, "/Medicos/Registrarmedico", token, m)
	if err != nil {
		return err
	}
	if !env.EsCorrecto {
		return &APIError{Mensaje: env.Mensaje}
	}
	return nil
}

func (c *Client) ActualizarMedico(ctx context.Context, token string, m Medico) error {
	env, err := c.send(ctx, http.MethodPut, c.cfg.BaseURL, "/Medicos/ActualizarMedico", token, m)
	if err != nil {
		return err
	}
	if !env.EsCorrecto {
		return &APIError{Mensaje: env.Mensaje}
	}
	return nil
}

func (c *Client) ListarPacientes(ctx context.Context, token string) ([]Paciente, error) {
	env, err := c.get(ctx, c.cfg.BaseURL, "/Pacientes/ListarTodosPacientes", token)
	if err != nil {
		return nil, err
	}
	var pacientes []Paciente
	if err := valorInto(env, &pacientes); err != nil {
		return nil, err
	}
	return pacientes, nil
}

func (c *Client) RegistrarPaciente(ctx context.Context, token string, p Paciente) error {
	env, err := c.send(ctx, http.MethodPost, c.cfg.BaseURL, "/Pacientes/RegistrarPaciente", token, p)
	if err != nil {
		return err
	}
	if !env.EsCorrecto {
		return &APIError{Mensaje: env.Mensaje}
	}
	return nil
}

func (c *Client) ActualizarPaciente(ctx context.Context, token string, p Paciente) error {
	env, err := c.send(ctx, http.MethodPut, c.cfg.BaseURL, "/Pacientes/ActualizarPaciente", token, p)
	if err != nil {
		return err
	}
	if !env.EsCorrecto {
		return &APIError{Mensaje: env.Mensaje}
	}
	return nil
}

// CitasPorCedula lists the appointments tied to a cédula (either side of the
// appointment, the backend resolves it).
func (c *Client) CitasPorCedula(ctx context.Context, token, cedula string) ([]Cita, error) {
	env, err := c.get(ctx, c.cfg.CitasBaseURL, "/Citas/ObtenerCitasxCedula/"+url.PathEscape(cedula), token)
	if err != nil {
		return nil, err
	}
	var citas []Cita
	if err := valorInto(env, &citas); err != nil {
		return nil, err
	}
	return citas, nil
}

func (c *Client) ListarCitas(ctx context.Context, token string) ([]Cita, error) {
	env, err := c.get(ctx, c.cfg.CitasBaseURL, "/Citas/ListarTodasCitas", token)
	if err != nil {
		return nil, err
	}
	var citas []Cita
	if err := valorInto(env, &citas); err != nil {
		return nil, err
	}
	return citas, nil
}

func (c *Client) RegistrarCita(ctx context.Context, token string, cita CitaRequest) error {
	env, err := c.send(ctx, http.MethodPost, c.cfg.CitasBaseURL, "/Citas/RegistrarCita", token, cita)
	if err != nil {
		return err
	}
	if !env.EsCorrecto {
		return &APIError{Mensaje: env.Mensaje}
	}
	return nil
}

func (c *Client) ActualizarCita(ctx context.Context, token string, cita CitaRequest) error {
	env, err := c.send(ctx, http.MethodPut, c.cfg.CitasBaseURL, "/Citas/ActualizarCita", token, cita)
	if err != nil {
		return err
	}
	if !env.EsCorrecto {
		return &APIError{Mensaje: env.Mensaje}
	}
	return nil
}

// ActualizarEstadoCita overwrites a single appointment's estado.
func (c *Client) ActualizarEstadoCita(ctx context.Context, token string, idCita int, estado string) error {
	path := fmt.Sprintf("/Citas/ActualizarEstadoCitaxId/%d", idCita)
	env, err := c.send(ctx, http.MethodPut, c.cfg.CitasBaseURL, path, token, map[string]string{"estado": estado})
	if err != nil {
		return err
	}
	if !env.EsCorrecto {
		return &APIError{Mensaje: env.Mensaje}
	}
	return nil
}

func (c *Client) ListarConsultas(ctx context.Context, token string) ([]Consulta, error) {
	env, err := c.get(ctx, c.cfg.BaseURL, "/Consultas/ListarTodasconsultas", token)
	if err != nil {
		return nil, err
	}
	var consultas []Consulta
	if err := valorInto(env, &consultas); err != nil {
		return nil, err
	}
	return consultas, nil
}

func (c *Client) RegistrarConsulta(ctx context.Context, token string, consulta Consulta) error {
	env, err := c.send(ctx, http.MethodPost, c.cfg.BaseURL, "/Consultas/RegistrarConsulta", token, consulta)
	if err != nil {
		return err
	}
	if !env.EsCorrecto {
		return &APIError{Mensaje: env.Mensaje}
	}
	return nil
}

func (c *Client) ActualizarConsulta(ctx context.Context, token string, consulta Consulta) error {
	env, err := c.send(ctx, http.MethodPut, c.cfg.BaseURL, "/Consultas/ActualizarConsulta", token, consulta)
	if err != nil {
		return err
	}
	if !env.EsCorrecto {
		return &APIError{Mensaje: env.Mensaje}
	}
	return nil
}

func (c *Client) TratamientosPorConsulta(ctx context.Context, token string, idConsulta int) ([]Tratamiento, error) {
	path := fmt.Sprintf("/Tratamientos/ObtenerTratamientosxIdConsulta/%d", idConsulta)
	env, err := c.get(ctx, c.cfg.TratamientosBaseURL, path, token)
	if err != nil {
		return nil, err
	}
	var tratamientos []Tratamiento
	if err := valorInto(env, &tratamientos); err != nil {
		return nil, err
	}
	return tratamientos, nil
}

func (c *Client) RegistrarTratamiento(ctx context.Context, token string, t Tratamiento) error {
	env, err := c.send(ctx, http.MethodPost, c.cfg.TratamientosBaseURL, "/Tratamientos/RegistrarTratamiento", token, t)
	if err != nil {
		return err
	}
	if !env.EsCorrecto {
		return &APIError{Mensaje: env.Mensaje}
	}
	return nil
}

func (c *Client) ListarAdministrativos(ctx context.Context, token string) ([]Administrativo, error) {
	env, err := c.get(ctx, c.cfg.AdminBaseURL, "/Administrativos/ListarTodosAdministrativos", token)
	if err != nil {
		return nil, err
	}
	var administrativos []Administrativo
	if err := valorInto(env, &administrativos); err != nil {
		return nil, err
	}
	return administrativos, nil
}

func (c *Client) RegistrarAdministrativo(ctx context.Context, token string, a Administrativo) error {
	env, err := c.send(ctx, http.MethodPost, c.cfg.AdminBaseURL, "/Administrativos/RegistrarAdministrativo", token, a)
	if err != nil {
		return err
	}
	if !env.EsCorrecto {
		return &APIError{Mensaje: env.Mensaje}
	}
	return nil
}

// ListarNotificaciones is the endpoint the tolerant decoder exists for: the
// list sometimes arrives with trailing commas, and sometimes as a bare array
// instead of the envelope. Both decode here.
func (c *Client) ListarNotificaciones(ctx context.Context, token string) ([]Notificacion, error) {
	env, err := c.get(ctx, c.cfg.BaseURL, "/Notificaciones/ListarTodasNotificaciones", token)
	if err != nil {
		return nil, err
	}
	var notificaciones []Notificacion
	if err := valorInto(env, &notificaciones); err != nil {
		return nil, err
	}
	return notificaciones, nil
}

func (c *Client) RegistrarNotificacion(ctx context.Context, token string, n Notificacion) error {
	env, err := c.send(ctx, http.MethodPost, c.cfg.BaseURL, "/Notificaciones/RegistrarNotificacion", token, n)
	if err != nil {
		return err
	}
	if !env.EsCorrecto {
		return &APIError{Mensaje: env.Mensaje}
	}
	return nil
}

func (c *Client) ListarPagos(ctx context.Context, token string) ([]Pago, error) {
	env, err := c.get(ctx, c.cfg.PagosBaseURL, "/Pagos/ListarTodosPagos", token)
	if err != nil {
		return nil, err
	}
	var pagos []Pago
	if err := valorInto(env, &pagos); err != nil {
		return nil, err
	}
	return pagos, nil
}

func (c *Client) RegistrarPago(ctx context.Context, token string, p Pago) error {
	env, err := c.send(ctx, http.MethodPost, c.cfg.PagosBaseURL, "/Pagos/RegistrarPago", token, p)
	if err != nil {
		return err
	}
	if !env.EsCorrecto {
		return &APIError{Mensaje: env.Mensaje}
	}
	return nil
}
