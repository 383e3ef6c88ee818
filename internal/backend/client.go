package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ClinicaVital/CV-Portal/internal/config"
	"github.com/rs/zerolog"
)

// Client is the single HTTP client for the clinic backend. Every view used to
// reimplement its own fetch/parse/auth-header stack; this is the one shared
// implementation: bearer injection when a token is held, envelope decoding,
// and the tolerant JSON repair.
type Client struct {
	cfg        config.BackendConfig
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a clinic backend client.
func NewClient(cfg config.BackendConfig, log zerolog.Logger) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log.With().Str("component", "backend").Logger(),
	}
}

// get issues a GET and decodes the enveloped response.
func (c *Client) get(ctx context.Context, base, path, token string) (Envelope, error) {
	return c.do(ctx, http.MethodGet, base, path, token, nil)
}

// send issues a POST/PUT with a JSON body and decodes the enveloped response.
func (c *Client) send(ctx context.Context, method, base, path, token string, body any) (Envelope, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return Envelope{}, fmt.Errorf("encode request: %w", err)
		}
	}
	return c.do(ctx, method, base, path, token, payload)
}

func (c *Client) do(ctx context.Context, method, base, path, token string, payload []byte) (Envelope, error) {
	fullURL := base + path

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return Envelope{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("method", method).Str("url", fullURL).Msg("request failed")
		return Envelope{}, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	c.log.Debug().
		Str("method", method).
		Str("url", fullURL).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("backend call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// A failing status often still carries an envelope with the reason.
		if env, decErr := decodeEnvelope(raw); decErr == nil && env.Mensaje != "" {
			return Envelope{}, &StatusError{Code: resp.StatusCode, Mensaje: env.Mensaje}
		}
		return Envelope{}, &StatusError{Code: resp.StatusCode}
	}

	env, err := decodeEnvelope(raw)
	if err != nil {
		c.log.Error().Err(err).Str("url", fullURL).Msg("undecodable body")
		return Envelope{}, err
	}
	return env, nil
}

// valorInto rejects backend-signaled failures and decodes valor into out.
func valorInto(env Envelope, out any) error {
	if !env.EsCorrecto {
		return &APIError{Mensaje: env.Mensaje}
	}
	if len(env.Valor) == 0 {
		return &APIError{Mensaje: env.Mensaje}
	}
	if err := DecodeTolerant(env.Valor, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}
