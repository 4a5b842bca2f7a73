// Package benefits is the HTTP client for the external intake services:
// the free-text parse endpoint and the eligibility/triage endpoint. Both
// are opaque collaborators; this client only moves JSON and classifies
// failures.
package benefits

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/fairroute/intake-cli/internal/model"
	"github.com/fairroute/intake-cli/internal/resilience"
)

const defaultBaseURL = "http://127.0.0.1:8000"

// Client calls the two intake endpoints.
type Client interface {
	// Parse turns free text into a base case profile plus follow-up
	// questions.
	Parse(ctx context.Context, req ParseRequest) (*model.ParseResponse, error)
	// Evaluate turns a merged case profile into program recommendations
	// and a ticket priority.
	Evaluate(ctx context.Context, profile model.CaseProfile) (*model.EvaluateResponse, error)
}

// ParseRequest is the body for POST /api/intake/parse.
type ParseRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// evaluateRequest is the body for POST /api/intake/evaluate. The upstream
// contract is exactly this one wrapper key, nothing else.
type evaluateRequest struct {
	CaseProfile model.CaseProfile `json:"case_profile"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default backend base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRetryPolicy overrides the default retry policy.
func WithRetryPolicy(p resilience.RetryPolicy) Option {
	return func(c *httpClient) {
		c.retry = p
	}
}

// WithRateLimit caps outbound requests per second.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *httpClient) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

type httpClient struct {
	baseURL string
	http    *http.Client
	retry   resilience.RetryPolicy
	breaker *resilience.Breaker
	limiter *rate.Limiter
}

// NewClient creates an intake API client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		retry:   resilience.DefaultRetryPolicy(),
		breaker: resilience.NewBreaker(5, 30*time.Second),
		limiter: rate.NewLimiter(rate.Limit(5), 10),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) Parse(ctx context.Context, req ParseRequest) (*model.ParseResponse, error) {
	var out model.ParseResponse
	if err := c.post(ctx, "parse", "/api/intake/parse", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) Evaluate(ctx context.Context, profile model.CaseProfile) (*model.EvaluateResponse, error) {
	var out model.EvaluateResponse
	if err := c.post(ctx, "evaluate", "/api/intake/evaluate", evaluateRequest{CaseProfile: profile}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) post(ctx context.Context, operation, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return eris.Wrapf(err, "benefits: marshal %s request", operation)
	}

	_, err = resilience.Retry(ctx, c.retry, operation, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.doOnce(ctx, operation, path, payload, out)
	})
	return err
}

func (c *httpClient) doOnce(ctx context.Context, operation, path string, payload []byte, out any) error {
	if err := c.breaker.Allow(); err != nil {
		return eris.Wrapf(err, "benefits: %s rejected", operation)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return eris.Wrapf(err, "benefits: %s rate limit wait", operation)
	}

	err := c.roundTrip(ctx, operation, path, payload, out)
	c.breaker.Record(err)
	return err
}

func (c *httpClient) roundTrip(ctx context.Context, operation, path string, payload []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return eris.Wrapf(err, "benefits: create %s request", operation)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return resilience.MarkTransient(eris.Wrapf(err, "benefits: send %s request", operation), 0)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resilience.MarkTransient(eris.Wrapf(err, "benefits: read %s response", operation), 0)
	}

	if resp.StatusCode != http.StatusOK {
		statusErr := eris.Errorf("benefits: %s unexpected status %d: %s", operation, resp.StatusCode, string(respBody))
		if resilience.IsRetryableStatus(resp.StatusCode) {
			return resilience.MarkTransient(statusErr, resp.StatusCode)
		}
		return statusErr
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return eris.Wrapf(err, "benefits: unmarshal %s response", operation)
	}
	return nil
}
