package backend

// Entity records mirror the clinic backend's JSON. Field names follow the
// backend's casing, and shapes are inconsistent between endpoints (a name can
// arrive as a single "nombre" or split "nombres"/"apellidos"), so the structs
// carry every variant and normalize.go picks the field to display.

type Paciente struct {
	Cedula          string `json:"cedula"`
	Nombre          string `json:"nombre,omitempty"`
	Nombres         string `json:"nombres,omitempty"`
	Apellidos       string `json:"apellidos,omitempty"`
	FechaNacimiento string `json:"fechaNacimiento,omitempty"`
	Genero          string `json:"genero,omitempty"`
	Telefono        string `json:"telefono,omitempty"`
	Email           string `json:"email,omitempty"`
	Direccion       string `json:"direccion,omitempty"`
	FechaRegistro   string `json:"fechaRegistro,omitempty"`
}

type Medico struct {
	Cedula       string `json:"cedula"`
	Nombre       string `json:"nombre,omitempty"`
	Nombres      string `json:"nombres,omitempty"`
	Apellidos    string `json:"apellidos,omitempty"`
	Especialidad string `json:"especialidad,omitempty"`
	Telefono     string `json:"telefono,omitempty"`
	Email        string `json:"email,omitempty"`
	Direccion    string `json:"direccion,omitempty"`
	FechaIngreso string `json:"fechaIngreso,omitempty"`
}

type Administrativo struct {
	Cedula       string `json:"cedula"`
	Nombre       string `json:"nombre,omitempty"`
	Nombres      string `json:"nombres,omitempty"`
	Apellidos    string `json:"apellidos,omitempty"`
	Telefono     string `json:"telefono,omitempty"`
	Email        string `json:"email,omitempty"`
	Direccion    string `json:"direccion,omitempty"`
	FechaIngreso string `json:"fechaIngreso,omitempty"`
}

type Cita struct {
	IdCita         int    `json:"idCita"`
	CedulaPaciente string `json:"cedulaPaciente"`
	CedulaMedico   string `json:"cedulaMedico"`
	FechaCita      string `json:"fechaCita"`
	HoraCita       string `json:"horaCita,omitempty"`
	Motivo         string `json:"motivo,omitempty"`
	Estado         string `json:"estado,omitempty"`
	AgendadoPor    string `json:"agendadoPor,omitempty"`
}

// CitaRequest is the write shape for RegistrarCita/ActualizarCita. The write
// endpoints expect PascalCase keys while the read endpoints return camelCase.
type CitaRequest struct {
	IdCita         int    `json:"IdCita"`
	CedulaPaciente string `json:"CedulaPaciente"`
	CedulaMedico   string `json:"CedulaMedico"`
	FechaCita      string `json:"FechaCita"`
	HoraCita       string `json:"HoraCita"`
	Motivo         string `json:"Motivo"`
	Estado         string `json:"Estado"`
	AgendadoPor    string `json:"AgendadoPor"`
}

type Consulta struct {
	IdConsulta        int     `json:"idConsulta"`
	IdCita            int     `json:"idCita"`
	Fecha             string  `json:"fecha,omitempty"`
	Notas             string  `json:"notas,omitempty"`
	PrecioBase        float64 `json:"precioBase"`
	AceptoTratamiento bool    `json:"aceptoTratamiento"`
}

type Tratamiento struct {
	IdTratamiento int     `json:"idTratamiento"`
	IdConsulta    int     `json:"idConsulta"`
	Descripcion   string  `json:"descripcion"`
	Costo         float64 `json:"costo"`
	Sesiones      int     `json:"sesiones"`
}

type Notificacion struct {
	IdNotificacion      int    `json:"idNotificacion,omitempty"`
	Titulo              string `json:"titulo,omitempty"`
	Mensaje             string `json:"mensaje,omitempty"`
	Descripcion         string `json:"descripcion,omitempty"`
	MensajeNotificacion string `json:"mensajeNotificacion,omitempty"`
	Fecha               string `json:"fecha,omitempty"`
}

type Usuario struct {
	CedulaUsuario  string  `json:"cedulaUsuario"`
	NombreUsuario  string  `json:"nombreUsuario"`
	PasswordHash   string  `json:"passwordHash,omitempty"`
	Activo         bool    `json:"activo"`
	BloqueadoHasta *string `json:"bloqueadoHasta,omitempty"`
	Rol            string  `json:"rol"`
}

type Pago struct {
	IdPago     int     `json:"idPago"`
	IdConsulta int     `json:"idConsulta"`
	Monto      float64 `json:"monto"`
	Fecha      string  `json:"fecha,omitempty"`
	Metodo     string  `json:"metodo,omitempty"`
}
