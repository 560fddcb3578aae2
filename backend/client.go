package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/jrsteele09/hospital-portal/credentials"
	"github.com/jrsteele09/hospital-portal/internal/config"
	apperrors "github.com/jrsteele09/hospital-portal/internal/errors"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Config is the part of the portal configuration the client needs
type Config interface {
	config.BackendConfig
	config.SecurityConfig
}

// Recorder receives one call per request sent to the backend
type Recorder interface {
	BackendRequest(method string, status int)
}

// Client talks to the hospital backend. Calls that need a user carry the
// access token held in the credential store and refresh it when it is about
// to expire.
type Client struct {
	baseURL  string
	http     *http.Client
	store    *credentials.Store
	leeway   time.Duration
	recorder Recorder

	// refreshMu stops concurrent requests from refreshing the same token twice
	refreshMu sync.Mutex
}

type Option func(*Client)

func WithRecorder(recorder Recorder) Option {
	return func(c *Client) {
		c.recorder = recorder
	}
}

// WithHTTPClient replaces the default client, its Transport is kept as the base for authorised calls
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

func New(cfg Config, store *credentials.Store, opts ...Option) *Client {
	c := &Client{
		baseURL: cfg.GetBackendURL(),
		http:    &http.Client{Timeout: cfg.GetBackendTimeout()},
		store:   store,
		leeway:  cfg.GetTokenRefreshLeeway(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out, true)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out, true)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out, true)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, authorised bool) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "Client.do marshal request")
		}
		reader = bytes.NewReader(data)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return errors.Wrap(err, "Client.do new request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	hc := c.http
	if authorised {
		hc = c.authorisedClient(ctx)
	}

	resp, err := hc.Do(req)
	if err != nil {
		c.record(method, 0)
		if IsAuthFailure(err) {
			return errors.Wrapf(err, "Client.do %s %s", method, path)
		}
		log.Err(err).Str("method", method).Str("path", path).Msg("Backend request failed")
		return errors.Wrapf(apperrors.ErrBackendUnavailable, "Client.do %s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	c.record(method, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newAPIError(resp)
		log.Debug().Int("status", resp.StatusCode).Str("path", path).Str("message", apiErr.Message).Msg("Backend returned an error")
		return errors.Wrapf(apiErr, "Client.do %s %s", method, path)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "Client.do decode %s %s", method, path)
	}
	return nil
}

func (c *Client) record(method string, status int) {
	if c.recorder != nil {
		c.recorder.BackendRequest(method, status)
	}
}
