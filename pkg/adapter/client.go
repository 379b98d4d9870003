package adapter

import (
	"context"
	"encoding/json"
)

// Client wraps an authenticated HTTP transport to a payment provider API such as GoCardless.
type Client interface {
	// Request performs a single request against the provider API and returns the raw JSON body.
	// The path is relative to the API base URL and may contain a query string, e.g. "subscriptions?limit=5".
	// An empty method defaults to GET. A nil body sends no request body.
	Request(ctx context.Context, path, method string, body interface{}) (json.RawMessage, error)
}
