package fake

import (
	"context"

	"github.com/stretchr/testify/mock"
	"gitlab.com/ignitionrobotics/billing/gocardless/pkg/api"
)

var _ api.PlansV1 = (*Plans)(nil)

// Plans is a fake implementation of api.PlansV1.
type Plans struct {
	mock.Mock
}

// Index mocks an Index call.
func (p *Plans) Index(ctx context.Context, params *api.IndexParams) (api.IndexResponse, error) {
	args := p.Called(ctx, params)
	return args.Get(0).(api.IndexResponse), args.Error(1)
}

// Find mocks a Find call.
func (p *Plans) Find(ctx context.Context, id string, params *api.FindParams) (api.PlanResult, error) {
	args := p.Called(ctx, id, params)
	return args.Get(0).(api.PlanResult), args.Error(1)
}

// Create mocks a Create call.
func (p *Plans) Create(ctx context.Context, plan api.Plan) (api.PlanResult, error) {
	args := p.Called(ctx, plan)
	return args.Get(0).(api.PlanResult), args.Error(1)
}

// Cancel mocks a Cancel call.
func (p *Plans) Cancel(ctx context.Context, id string, data *api.CancelRequest) (api.PlanResult, error) {
	args := p.Called(ctx, id, data)
	return args.Get(0).(api.PlanResult), args.Error(1)
}

// NewPlans initializes a new fake Plans client.
func NewPlans() *Plans {
	return &Plans{}
}
