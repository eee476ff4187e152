// Package vlapi provides a minimal client for the Visual Layer dataset
// management API covering the endpoints the MCP tools need.
package vlapi

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

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/visual-layer/vl-mcp-server/internal/logging"
)

const apiPrefix = "/api/v1"

// Config carries the immutable settings shared by all requests. Credentials
// are loaded once at startup and never change for the process lifetime.
type Config struct {
	BaseURL   string
	APIKey    string
	APISecret string
	Timeout   time.Duration
	// RateLimit is the maximum request rate in requests per second.
	// Zero or negative disables client-side limiting.
	RateLimit float64
	Logger    logging.Logger
}

// Client issues authenticated requests against the Visual Layer API. It holds
// no mutable state; it is safe for concurrent use.
type Client struct {
	baseURL string
	key     string
	secret  string
	hc      *http.Client
	to      time.Duration
	lim     *rate.Limiter
	log     logging.Logger
	now     func() time.Time
}

// New returns a Client for the given configuration.
func New(cfg Config) *Client {
	to := cfg.Timeout
	if to <= 0 {
		to = 30 * time.Second
	}
	var lim *rate.Limiter
	if cfg.RateLimit > 0 {
		lim = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		key:     cfg.APIKey,
		secret:  cfg.APISecret,
		hc:      &http.Client{Timeout: to},
		to:      to,
		lim:     lim,
		log:     logging.New(cfg.Logger.Logr()),
		now:     time.Now,
	}
}

// Datasets fetches the full dataset list. The endpoint is unpaginated; the
// remote API returns every dataset visible to the credentials.
func (c *Client) Datasets(ctx context.Context) ([]Dataset, error) {
	var out []Dataset
	if err := c.do(ctx, http.MethodGet, apiPrefix+"/datasets", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Dataset fetches a single dataset by ID. A remote 404 is reported as
// ErrNotFound.
func (c *Client) Dataset(ctx context.Context, id string) (Dataset, error) {
	var out Dataset
	err := c.do(ctx, http.MethodGet, apiPrefix+"/dataset/"+url.PathEscape(id), nil, &out)
	if err != nil {
		return Dataset{}, notFoundOr(err, id)
	}
	return out, nil
}

// SearchLabels runs a label search scoped to one dataset.
func (c *Client) SearchLabels(ctx context.Context, datasetID string, labels []string, op SearchOperator) (SearchResult, error) {
	payload := labelSearchRequest{Labels: labels, Operator: op}
	var out SearchResult
	path := apiPrefix + "/dataset/" + url.PathEscape(datasetID) + "/search/labels"
	if err := c.do(ctx, http.MethodPost, path, payload, &out); err != nil {
		return SearchResult{}, notFoundOr(err, datasetID)
	}
	if out.Total == 0 {
		out.Total = len(out.Images)
	}
	return out, nil
}

// Health probes the health endpoint. A reachable API never produces an
// error here, whatever its status code; only transport failure does.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	resp, err := c.roundTrip(ctx, http.MethodGet, apiPrefix+"/healthcheck", nil)
	if err != nil {
		return HealthStatus{}, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return HealthStatus{}, fmt.Errorf("read health response: %w", err)
	}
	var hs HealthStatus
	if json.Unmarshal(data, &hs) == nil && hs.Status != "" {
		return hs, nil
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return HealthStatus{Status: "healthy"}, nil
	}
	msg := remoteMessage(data)
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return HealthStatus{Status: "unhealthy", Message: msg}, nil
}

// do performs a single request and decodes a 2xx JSON body into out. There
// are no retries: one failed call surfaces as one error.
func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	resp, err := c.roundTrip(ctx, method, path, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: remoteMessage(data)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, payload any) (*http.Response, error) {
	if c.lim != nil {
		if err := c.lim.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	token, err := signedToken(c.key, c.secret, c.now())
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	c.log.Debug("visual layer request", "method", method, "path", path)
	resp, err := c.hc.Do(req)
	if err != nil {
		annotated := c.annotateError(err)
		c.log.Error(annotated, "visual layer request failed", "method", method, "path", path)
		return nil, fmt.Errorf("call visual layer api: %w", annotated)
	}
	c.log.Debug("visual layer response",
		"method", method, "path", path,
		"status", resp.StatusCode, "elapsed", time.Since(start).String())
	return resp, nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.to <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.to)
}

func (c *Client) annotateError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out after %s: %w", c.to, err)
	}
	return err
}

// notFoundOr converts a remote 404 into ErrNotFound tagged with the dataset
// ID; every other error passes through unchanged.
func notFoundOr(err error, datasetID string) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return fmt.Errorf("dataset %q: %w", datasetID, ErrNotFound)
	}
	return err
}

// remoteMessage extracts the diagnostic detail from an error body. The shape
// is owned by the remote service, so probe the usual field names instead of
// binding a struct.
func remoteMessage(data []byte) string {
	for _, key := range []string{"detail", "error", "message"} {
		if v := gjson.GetBytes(data, key); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return strings.TrimSpace(string(data))
}
