package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// userAgent is sent along with every request.
	userAgent = "gocardless-plans-go/1.0"

	// maxResponseSize limits how much of a response body is read.
	maxResponseSize = 1 << 20
)

// GoCardlessOptions contains the settings needed to reach the GoCardless API.
type GoCardlessOptions struct {
	// BaseURL is the GoCardless API URL. E.g. https://api-sandbox.gocardless.com.
	BaseURL string

	// AccessToken is the token used to authenticate against the GoCardless API.
	AccessToken string

	// Version is sent in the GoCardless-Version header.
	Version string

	// Timeout bounds each HTTP request, including reading the response body. Zero means no timeout.
	Timeout time.Duration
}

// goCardlessAdapter implements Client using the GoCardless REST API.
type goCardlessAdapter struct {
	// baseURL is the GoCardless API URL without trailing slash.
	baseURL string
	// token is the access token used to authenticate requests.
	token string
	// version is sent in the GoCardless-Version header.
	version string
	// http performs the requests.
	http *http.Client
}

// Request performs a request to the GoCardless API.
// Responses with a non-2xx status code are returned as *APIError.
func (g *goCardlessAdapter) Request(ctx context.Context, path, method string, body interface{}) (json.RawMessage, error) {
	if len(method) == 0 {
		method = http.MethodGet
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	url := g.baseURL + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	g.setHeaders(req)

	res, err := g.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(io.LimitReader(res.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, parseError(res.StatusCode, data)
	}

	if !json.Valid(data) {
		return nil, fmt.Errorf("decoding response: invalid JSON body (status %d)", res.StatusCode)
	}
	return data, nil
}

// setHeaders sets the headers required by the GoCardless API.
func (g *goCardlessAdapter) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+g.token)
	req.Header.Set("GoCardless-Version", g.version)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if req.Method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}
}

// parseError converts an error response into an *APIError.
// Bodies not following the GoCardless error format still produce an *APIError holding the raw body.
func parseError(status int, body []byte) error {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil || env.Error == nil {
		return &APIError{
			StatusCode: status,
			Type:       "unknown",
			Message:    strings.TrimSpace(string(body)),
		}
	}
	if env.Error.StatusCode == 0 {
		env.Error.StatusCode = status
	}
	return env.Error
}

// NewGoCardlessAdapter initializes a new adapter using the GoCardless REST API.
func NewGoCardlessAdapter(opts GoCardlessOptions) Client {
	return &goCardlessAdapter{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		token:   opts.AccessToken,
		version: opts.Version,
		http: &http.Client{
			Timeout: opts.Timeout,
		},
	}
}
