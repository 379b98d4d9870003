package fake

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"
	"gitlab.com/ignitionrobotics/billing/gocardless/pkg/adapter"
)

var _ adapter.Client = (*Adapter)(nil)

// Adapter is a fake implementation of adapter.Client.
type Adapter struct {
	mock.Mock
}

// Request mocks a Request call.
func (a *Adapter) Request(ctx context.Context, path, method string, body interface{}) (json.RawMessage, error) {
	args := a.Called(ctx, path, method, body)
	var res json.RawMessage
	if raw := args.Get(0); raw != nil {
		res = raw.(json.RawMessage)
	}
	return res, args.Error(1)
}

// NewAdapter initializes a new fake Adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}
