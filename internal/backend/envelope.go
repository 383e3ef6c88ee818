package backend

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Envelope is the backend's standard response wrapper. Not every endpoint
// honors it: some return the payload bare, and valor's shape varies per
// endpoint, so it is kept raw until the caller decodes it.
type Envelope struct {
	EsCorrecto bool            `json:"esCorrecto"`
	Mensaje    string          `json:"mensaje"`
	Valor      json.RawMessage `json:"valor"`
}

// ErrUnreachable wraps transport-level failures: the backend could not be
// reached at all.
var ErrUnreachable = errors.New("backend unreachable")

// ErrMalformed marks a body that did not parse even after the tolerant repair.
var ErrMalformed = errors.New("malformed backend response")

// StatusError is a non-2xx HTTP response from the backend. Mensaje is filled
// when the failing response still carried a decodable envelope.
type StatusError struct {
	Code    int
	Mensaje string
}

func (e *StatusError) Error() string {
	if e.Mensaje != "" {
		return fmt.Sprintf("backend status %d: %s", e.Code, e.Mensaje)
	}
	return fmt.Sprintf("backend status %d", e.Code)
}

// APIError is a backend-signaled logical failure: esCorrecto false, or an
// expected field missing from an otherwise valid response.
type APIError struct {
	Mensaje string
}

func (e *APIError) Error() string {
	if e.Mensaje == "" {
		return "backend rejected the operation"
	}
	return e.Mensaje
}

// IsNoData reports whether err is a backend-signaled logical failure. List
// endpoints use esCorrecto:false to say "no rows", so read paths treat this
// as an empty result rather than an error.
func IsNoData(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// decodeEnvelope parses a response body that should carry the standard
// wrapper. A body that is a bare JSON array is accepted and wrapped as a
// successful envelope, matching what some list endpoints actually return.
func decodeEnvelope(raw []byte) (Envelope, error) {
	var env Envelope
	if err := DecodeTolerant(raw, &env); err == nil {
		return env, nil
	}

	var list json.RawMessage
	if err := DecodeTolerant(raw, &list); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(list) > 0 && list[0] == '[' {
		return Envelope{EsCorrecto: true, Valor: list}, nil
	}
	return Envelope{}, ErrMalformed
}
