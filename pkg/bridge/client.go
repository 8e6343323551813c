package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	serviceErrs "github.com/kubev2v/node-inspector/pkg/errors"
)

const (
	readPath    = "/jolokia/read"
	executePath = "/jolokia/execute"

	requestIDHeader = "X-Request-Id"
	defaultTimeout  = 30 * time.Second
)

// ObjectAddress names a manageable resource on the agent, e.g.
// "java.lang:type=Memory".
type ObjectAddress string

// Response is the agent's answer relayed by the proxy.
type Response struct {
	Status    int             `json:"status"`
	Value     json.RawMessage `json:"value"`
	Error     string          `json:"error,omitempty"`
	Timestamp int64           `json:"timestamp,omitempty"`

	// Raw holds the whole decoded body, including fields not mapped above.
	Raw map[string]any `json:"-"`
}

// Decode unmarshals the response value into v.
func (r *Response) Decode(v any) error {
	return json.Unmarshal(r.Value, v)
}

type request struct {
	URL           string        `json:"url"`
	ObjectAddress ObjectAddress `json:"objectAddress"`
	Operation     string        `json:"operation,omitempty"`
}

// Client talks to a management agent through an HTTP proxy. Until a proxy
// endpoint is configured every call fails with ConfigurationError.
type Client struct {
	agentURL   string
	proxyURL   string
	token      string
	timeout    time.Duration
	httpClient *http.Client
}

type Option func(*Client)

// WithProxyURL sets the proxy base url; requests go to <proxyURL>/jolokia/*.
func WithProxyURL(proxyURL string) Option {
	return func(c *Client) {
		c.proxyURL = strings.TrimSuffix(proxyURL, "/")
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout bounds every request. It is ignored when WithHTTPClient is
// also given, whatever the order: a caller's client is never modified.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithToken sends the token as a bearer Authorization header.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

func NewClient(agentURL string, opts ...Option) *Client {
	c := &Client{
		agentURL: agentURL,
		timeout:  defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	return c
}

// Configured reports whether a proxy endpoint is set.
func (c *Client) Configured() bool {
	return c.proxyURL != ""
}

// Read reads the attributes of address.
// POST <proxy>/jolokia/read
func (c *Client) Read(ctx context.Context, address ObjectAddress) (*Response, error) {
	return c.do(ctx, readPath, request{URL: c.agentURL, ObjectAddress: address})
}

// Execute invokes operation on address.
// POST <proxy>/jolokia/execute
func (c *Client) Execute(ctx context.Context, address ObjectAddress, operation string) (*Response, error) {
	return c.do(ctx, executePath, request{URL: c.agentURL, ObjectAddress: address, Operation: operation})
}

func (c *Client) do(ctx context.Context, path string, body request) (*Response, error) {
	if !c.Configured() {
		return nil, serviceErrs.NewProxyNotConfiguredError()
	}
	endpoint := c.proxyURL + path

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal bridge request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, serviceErrs.NewNetworkError(endpoint, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	if c.token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	}

	log := zap.S().Named("bridge")
	log.Debugw("bridge request", "endpoint", endpoint, "object", body.ObjectAddress, "operation", body.Operation, "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, serviceErrs.NewNetworkError(endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, serviceErrs.NewNetworkError(endpoint, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Debugw("bridge request rejected", "request_id", requestID, "status", resp.StatusCode)
		return nil, serviceErrs.NewRemoteError(endpoint, resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var result Response
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, serviceErrs.NewRemoteError(endpoint, resp.StatusCode, fmt.Sprintf("malformed response: %v", err))
	}
	if err := json.Unmarshal(data, &result.Raw); err != nil {
		return nil, serviceErrs.NewRemoteError(endpoint, resp.StatusCode, fmt.Sprintf("malformed response: %v", err))
	}

	// The proxy answers 200 even when the agent reports a failure.
	if result.Status != http.StatusOK {
		log.Debugw("agent reported failure", "request_id", requestID, "status", result.Status, "error", result.Error)
		return nil, serviceErrs.NewRemoteError(endpoint, result.Status, result.Error)
	}

	return &result, nil
}
