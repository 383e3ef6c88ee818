package utils

import (
	"context"
)

// SessionData is the authenticated identity carried through request context:
// who is logged in, the bearer token replayed to the clinic backend, and the
// role/display name cached at login time.
type SessionData struct {
	SessionID   string
	Cedula      string
	Token       string
	Rol         string
	DisplayName string
}

type contextKey string

const ContextSessionKey contextKey = "session"

// WithSession returns a context carrying the session, as the session
// middleware installs it.
func WithSession(ctx context.Context, data SessionData) context.Context {
	return context.WithValue(ctx, ContextSessionKey, data)
}

func GetSessionFromContext(ctx context.Context) (SessionData, bool) {
	data, ok := ctx.Value(ContextSessionKey).(SessionData)
	return data, ok
}
