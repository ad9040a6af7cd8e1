package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/tripcal/internal/client/models"
	"github.com/dmitrijs2005/tripcal/internal/common"
	"github.com/dmitrijs2005/tripcal/internal/logging"
)

const maxBodySize = 4 << 20

type HTTPClient struct {
	baseURL   *url.URL
	http      *http.Client
	timeout   time.Duration
	logger    logging.Logger
	requestID func() string
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithTimeout bounds every call; zero means only the caller's context applies.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse server url: unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse server url: missing host in %q", baseURL)
	}

	c := &HTTPClient{
		baseURL:   u,
		http:      &http.Client{},
		logger:    logging.Nop(),
		requestID: uuid.NewString,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

type call struct {
	method string
	path   string
	query  url.Values
	token  string
	body   any
}

type response struct {
	status  int
	message string
	payload json.RawMessage
}

func (c *HTTPClient) do(ctx context.Context, in call) (*response, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	u := c.baseURL.JoinPath(in.path)
	if len(in.query) > 0 {
		u.RawQuery = in.query.Encode()
	}

	var body io.Reader
	if in.body != nil {
		b, err := json.Marshal(in.body)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", in.path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, in.method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", in.path, err)
	}
	reqID := c.requestID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, reqID)
	if in.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if in.token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+in.token)
	}

	log := c.logger.With("method", in.method, "path", in.path, "request_id", reqID)
	started := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		log.Warn(ctx, "reading response failed", "status", resp.StatusCode, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	log.Debug(ctx, "request done", "status", resp.StatusCode, "elapsed", time.Since(started))

	env, perr := parseEnvelope(raw)

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		msg := env.errText
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	}

	if perr != nil {
		if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode < http.StatusBadRequest {
			return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, in.path, perr)
		}
		return nil, &ServerError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	if env.failed() {
		return nil, &ServerError{Status: resp.StatusCode, Message: env.errText}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		msg := env.message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &ServerError{Status: resp.StatusCode, Message: msg}
	}

	return &response{status: resp.StatusCode, message: env.message, payload: env.payload}, nil
}

// decode unmarshals a payload into out. A missing or null payload leaves out
// untouched.
func decode(path string, payload json.RawMessage, out any) error {
	if isNull(payload) {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrUnavailable, path, err)
	}
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (string, error) {
	resp, err := c.do(ctx, call{method: http.MethodPost, path: "/auth/login", body: creds})
	if err != nil {
		return "", err
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := decode("/auth/login", resp.payload, &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", ErrMissingToken
	}
	return out.Token, nil
}

func (c *HTTPClient) Register(ctx context.Context, reg models.Registration) (*models.RegistrationResult, error) {
	resp, err := c.do(ctx, call{method: http.MethodPost, path: "/auth/register", body: reg})
	if err != nil {
		return nil, err
	}

	if isNull(resp.payload) {
		msg := resp.message
		if msg == "" {
			msg = "Registration failed"
		}
		return nil, &ServerError{Status: resp.status, Message: msg}
	}

	var out models.RegistrationResult
	if err := decode("/auth/register", resp.payload, &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, ErrMissingToken
	}
	return &out, nil
}

func (c *HTTPClient) Logout(ctx context.Context, token string) error {
	_, err := c.do(ctx, call{method: http.MethodPost, path: "/auth/logout", token: token})
	return err
}

func (c *HTTPClient) GetProfile(ctx context.Context, token string) (*models.Profile, error) {
	resp, err := c.do(ctx, call{method: http.MethodGet, path: "/auth/me", token: token})
	if err != nil {
		return nil, err
	}
	return decodeProfile("/auth/me", resp.payload)
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, token string, patch models.ProfilePatch) (*models.Profile, error) {
	resp, err := c.do(ctx, call{method: http.MethodPut, path: "/auth/me", token: token, body: patch})
	if err != nil {
		return nil, err
	}
	return decodeProfile("/auth/me", resp.payload)
}

func decodeProfile(path string, payload json.RawMessage) (*models.Profile, error) {
	payload = unwrap(payload, "profile")
	if isNull(payload) {
		return nil, fmt.Errorf("%w: %s: empty profile", ErrUnavailable, path)
	}
	var p models.Profile
	if err := decode(path, payload, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) UpdatePassword(ctx context.Context, token string, change models.PasswordChange) error {
	_, err := c.do(ctx, call{method: http.MethodPut, path: "/auth/me/password", token: token, body: change})
	return err
}

func (c *HTTPClient) VerifyEmail(ctx context.Context, token, code string) (bool, error) {
	resp, err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/auth/verifystatus",
		query:  url.Values{"code": {code}},
		token:  token,
	})
	if err != nil {
		return false, err
	}

	var out struct {
		Success bool `json:"success"`
	}
	if err := decode("/auth/verifystatus", resp.payload, &out); err != nil {
		return false, err
	}
	return out.Success, nil
}

func (c *HTTPClient) ResendVerification(ctx context.Context, token, email, language string) (string, error) {
	body := struct {
		Email    string `json:"email"`
		Language string `json:"language,omitempty"`
	}{Email: email, Language: language}

	resp, err := c.do(ctx, call{method: http.MethodPost, path: "/auth/verifyemail", token: token, body: body})
	if err != nil {
		return "", err
	}

	// Some builds put the message inside data, others only at the top level.
	msg := resp.message
	if p := bytes.TrimSpace(resp.payload); len(p) > 0 && p[0] == '{' {
		var out struct {
			Message string `json:"message"`
		}
		if err := decode("/auth/verifyemail", p, &out); err != nil {
			return "", err
		}
		if out.Message != "" {
			msg = out.Message
		}
	}
	return msg, nil
}

func (c *HTTPClient) ListEvents(ctx context.Context, token string) ([]models.EventGroup, error) {
	resp, err := c.do(ctx, call{method: http.MethodGet, path: "/events", token: token})
	if err != nil {
		return nil, err
	}

	groups := []models.EventGroup{}
	if err := decode("/events", unwrap(resp.payload, "events"), &groups); err != nil {
		return nil, err
	}
	if groups == nil {
		groups = []models.EventGroup{}
	}
	return groups, nil
}

func (c *HTTPClient) GetEvent(ctx context.Context, token string, id models.EventID) (*models.Event, error) {
	path := "/events/" + url.PathEscape(id.String())
	resp, err := c.do(ctx, call{method: http.MethodGet, path: path, token: token})
	if err != nil {
		return nil, err
	}

	payload := unwrap(resp.payload, "event")
	if isNull(payload) {
		return nil, &ServerError{Status: resp.status, Message: "Event not found"}
	}
	var ev models.Event
	if err := decode(path, payload, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

func (c *HTTPClient) CreateEvent(ctx context.Context, token string, ev models.NewEvent) error {
	_, err := c.do(ctx, call{method: http.MethodPost, path: "/events", token: token, body: ev})
	return err
}

func (c *HTTPClient) DeleteEvent(ctx context.Context, token string, id models.EventID) error {
	_, err := c.do(ctx, call{method: http.MethodDelete, path: "/events/" + url.PathEscape(id.String()), token: token})
	return err
}

func (c *HTTPClient) SearchAddress(ctx context.Context, token, query string) ([]models.AddressOption, error) {
	resp, err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/address",
		query:  url.Values{"search": {query}},
		token:  token,
	})
	if err != nil {
		return nil, err
	}

	opts := []models.AddressOption{}
	if err := decode("/address", resp.payload, &opts); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = []models.AddressOption{}
	}
	return opts, nil
}
