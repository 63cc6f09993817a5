package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ennichirag3/blue-carbon-frontend/internal/logging"
	"github.com/ennichirag3/blue-carbon-frontend/internal/projects/domain"
)

const (
	// DefaultTimeout bounds every store call unless overridden.
	DefaultTimeout = 10 * time.Second

	maxBodyBytes = 4 << 20
)

// StoreClient talks to the project store's REST collection endpoint.
type StoreClient struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	metrics    *Metrics
	log        *logging.Logger
}

type Option func(*StoreClient)

// WithTimeout sets the bounded wait applied to each call. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *StoreClient) { c.timeout = d }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *StoreClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(c *StoreClient) { c.metrics = m }
}

func WithLogger(l *logging.Logger) Option {
	return func(c *StoreClient) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a client for the collection at baseURL, e.g. "http://localhost:5001/api/projects".
func New(baseURL string, opts ...Option) *StoreClient {
	c := &StoreClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    DefaultTimeout,
		httpClient: &http.Client{},
		log:        logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the collection endpoint this client targets.
func (c *StoreClient) BaseURL() string {
	return c.baseURL
}

// List fetches the whole collection and normalizes its shape.
func (c *StoreClient) List(ctx context.Context) ([]domain.Project, error) {
	const op = "list"
	status, body, elapsed, err := c.do(ctx, op, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	if !isSuccess(status) {
		c.metrics.observe(op, outcomeRemote, elapsed)
		return nil, fmt.Errorf("list projects: %w", remoteError(status, body))
	}

	projects, err := domain.NormalizeCollection(body)
	if err != nil {
		c.metrics.observe(op, outcomeMalformed, elapsed)
		return nil, fmt.Errorf("list projects: %w", err)
	}
	c.metrics.observe(op, outcomeOK, elapsed)
	return projects, nil
}

// Create submits a new project and returns the store's copy of it, including
// the assigned id when the response body carries one.
func (c *StoreClient) Create(ctx context.Context, in domain.NewProject) (*domain.Project, error) {
	const op = "create"
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	status, body, elapsed, err := c.do(ctx, op, http.MethodPost, c.baseURL, payload)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	c.metrics.observe(op, statusOutcome(status), elapsed)
	if !isSuccess(status) {
		return nil, fmt.Errorf("create project: %w", remoteError(status, body))
	}

	created := decodeCreated(body)
	if created == nil {
		c.log.LogDebugf(ctx, "create_project", "store response carried no project body (status %d)", status)
		created = &domain.Project{
			Name:        in.Name,
			Description: in.Description,
			Location:    in.Location,
			CarbonSaved: in.CarbonSaved,
		}
	}
	return created, nil
}

// Delete removes the project with the given id.
func (c *StoreClient) Delete(ctx context.Context, id string) error {
	const op = "delete"
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("delete project: %w", domain.ErrNotFound)
	}

	status, body, elapsed, err := c.do(ctx, op, http.MethodDelete, c.baseURL+"/"+url.PathEscape(id), nil)
	if err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	c.metrics.observe(op, statusOutcome(status), elapsed)
	if !isSuccess(status) {
		return fmt.Errorf("delete project %s: %w", id, remoteError(status, body))
	}
	return nil
}

// do performs one request. Transport failures are recorded here; the caller
// records the outcome of a response once it has classified it.
func (c *StoreClient) do(ctx context.Context, op, method, target string, payload []byte) (int, []byte, time.Duration, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		kind := classify(ctx, err)
		c.metrics.observe(op, outcomeFor(kind), time.Since(start))
		return 0, nil, 0, fmt.Errorf("%w: %v", kind, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		kind := classify(ctx, err)
		c.metrics.observe(op, outcomeFor(kind), time.Since(start))
		return 0, nil, 0, fmt.Errorf("%w: failed to read response: %v", kind, err)
	}

	return resp.StatusCode, body, time.Since(start), nil
}

func statusOutcome(status int) string {
	if isSuccess(status) {
		return outcomeOK
	}
	return outcomeRemote
}

// classify maps a transport failure onto the domain error kinds.
func classify(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return domain.ErrTimeout
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.ErrTimeout
	}
	return domain.ErrNetwork
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func remoteError(status int, body []byte) *domain.RemoteError {
	var payload struct {
		Message any `json:"message"`
	}
	rerr := &domain.RemoteError{Status: status}
	if json.Unmarshal(body, &payload) == nil {
		if msg, ok := payload.Message.(string); ok {
			rerr.Message = strings.TrimSpace(msg)
		}
	}
	return rerr
}

// decodeCreated accepts the created project bare or wrapped under "project".
func decodeCreated(body []byte) *domain.Project {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	var wrapped struct {
		Project *domain.Project `json:"project"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Project != nil && wrapped.Project.ID != "" {
		return wrapped.Project
	}

	var bare domain.Project
	if err := json.Unmarshal(body, &bare); err == nil && bare.ID != "" {
		return &bare
	}
	return nil
}
