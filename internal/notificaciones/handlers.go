package notificaciones

import (
	"encoding/json"
	"net/http"
	"strconv"
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

type notificacionView struct {
	backend.Notificacion
	Texto string `json:"texto"`
	Vista bool   `json:"vista"`
}

// ListHandler returns the notification feed with the message field resolved
// across its shape variants and the per-session seen flag for the badge.
func ListHandler(w http.ResponseWriter, r *http.Request) {
	data, _ := utils.GetSessionFromContext(r.Context())

	items, err := client.ListarNotificaciones(r.Context(), data.Token)
	if err != nil {
		if !backend.IsNoData(err) {
			webutil.BackendError(w, err)
			return
		}
		items = nil
	}

	seen := make(map[string]struct{})
	if s, err := sessions.Load(data.SessionID); err == nil {
		for _, id := range s.SeenNotifications {
			seen[id] = struct{}{}
		}
	}

	views := make([]notificacionView, 0, len(items))
	for _, n := range items {
		_, vista := seen[strconv.Itoa(n.IdNotificacion)]
		views = append(views, notificacionView{
			Notificacion: n,
			Texto:        n.DisplayMensaje(),
			Vista:        vista,
		})
	}

	webutil.JSON(w, http.StatusOK, views)
}

type createRequest struct {
	Titulo  string `json:"titulo"`
	Mensaje string `json:"mensaje"`
}

// CreateHandler publishes a notification and responds with the re-fetched feed.
func CreateHandler(w http.ResponseWriter, r *http.Request) {
	data, _ := utils.GetSessionFromContext(r.Context())

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		webutil.BadRequest(w, "Formato de solicitud inválido")
		return
	}
	if req.Titulo == "" || req.Mensaje == "" {
		webutil.BadRequest(w, "Título y mensaje son obligatorios")
		return
	}

	n := backend.Notificacion{
		Titulo:  req.Titulo,
		Mensaje: req.Mensaje,
		Fecha:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := client.RegistrarNotificacion(r.Context(), data.Token, n); err != nil {
		webutil.BackendError(w, err)
		return
	}

	refreshed, err := client.ListarNotificaciones(r.Context(), data.Token)
	if err != nil {
		webutil.BackendError(w, err)
		return
	}

	views := make([]notificacionView, 0, len(refreshed))
	for _, item := range refreshed {
		views = append(views, notificacionView{Notificacion: item, Texto: item.DisplayMensaje()})
	}
	webutil.JSON(w, http.StatusCreated, views)
}

type vistasRequest struct {
	Ids []string `json:"ids"`
}

// MarcarVistasHandler records which notifications this session has seen.
func MarcarVistasHandler(w http.ResponseWriter, r *http.Request) {
	data, _ := utils.GetSessionFromContext(r.Context())

	var req vistasRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		webutil.BadRequest(w, "Formato de solicitud inválido")
		return
	}
	if len(req.Ids) == 0 {
		webutil.BadRequest(w, "Sin notificaciones que marcar")
		return
	}

	if err := sessions.MarkNotificationsSeen(data.SessionID, req.Ids); err != nil {
		http.Error(w, "Failed to update session", http.StatusInternalServerError)
		return
	}

	webutil.JSON(w, http.StatusOK, map[string]int{"marcadas": len(req.Ids)})
}
