package application

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"gitlab.com/ignitionrobotics/billing/gocardless/pkg/adapter"
	"gitlab.com/ignitionrobotics/billing/gocardless/pkg/api"
	"gitlab.com/ignitionrobotics/billing/gocardless/pkg/deprecation"
)

const (
	// resource is the GoCardless collection path backing plans.
	resource = "subscriptions"

	// legacyName is the name this service was published under before GoCardless renamed plans to subscriptions.
	legacyName = "plan"

	// currentName is the name of the resource that supersedes plans.
	currentName = "subscription"
)

// service maps plan calls into GoCardless subscription requests.
type service struct {
	// logger is used to log relevant information when running this service.
	logger *log.Logger

	// adapter performs the HTTP requests against GoCardless.
	adapter adapter.Client

	// timeout is used as the timeout duration for the circuit breaking mechanism. Zero disables it.
	timeout time.Duration

	// notifier emits the deprecation notices.
	notifier *deprecation.Notifier
}

// Index returns a page of subscriptions. The response envelope is returned as GoCardless sent it.
func (s *service) Index(ctx context.Context, params *api.IndexParams) (api.IndexResponse, error) {
	path := resource + params.Encode()
	s.logger.Printf("Listing plans: %s\n", path)

	raw, err := s.request(ctx, path, http.MethodGet, nil)
	if err != nil {
		return api.IndexResponse{}, err
	}

	var res api.IndexResponse
	if err = json.Unmarshal(raw, &res); err != nil {
		return api.IndexResponse{}, fmt.Errorf("decoding %s index: %w", resource, err)
	}
	return res, nil
}

// Find returns the subscription identified by id.
func (s *service) Find(ctx context.Context, id string, params *api.FindParams) (api.PlanResult, error) {
	path := fmt.Sprintf("%s/%s%s", resource, url.PathEscape(id), params.Encode())
	s.logger.Printf("Finding plan: %s\n", path)

	raw, err := s.request(ctx, path, http.MethodGet, nil)
	if err != nil {
		return api.PlanResult{}, err
	}
	return s.flatten(raw)
}

// Create creates a subscription out from the given plan. The plan is sent without validation.
func (s *service) Create(ctx context.Context, plan api.Plan) (api.PlanResult, error) {
	s.logger.Printf("Creating plan: %+v\n", plan)

	raw, err := s.request(ctx, resource, http.MethodPost, api.NewCreatePlanRequest(plan))
	if err != nil {
		return api.PlanResult{}, err
	}
	return s.flatten(raw)
}

// Cancel cancels the subscription identified by id. If data is nil, no body is sent.
func (s *service) Cancel(ctx context.Context, id string, data *api.CancelRequest) (api.PlanResult, error) {
	path := fmt.Sprintf("%s/%s/actions/cancel", resource, url.PathEscape(id))
	s.logger.Printf("Cancelling plan: %s\n", path)

	var body interface{}
	if data != nil {
		body = data
	}

	raw, err := s.request(ctx, path, http.MethodPost, body)
	if err != nil {
		return api.PlanResult{}, err
	}
	return s.flatten(raw)
}

// flatten decodes a single subscription envelope and promotes its fields to the top level.
func (s *service) flatten(raw json.RawMessage) (api.PlanResult, error) {
	var env api.PlanEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return api.PlanResult{}, fmt.Errorf("decoding %s envelope: %w", resource, err)
	}

	s.notifier.Response(resource)

	return api.FlattenPlan(env), nil
}

// request calls the adapter, returning its errors unchanged.
func (s *service) request(ctx context.Context, path, method string, body interface{}) (json.RawMessage, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	// Main thread
	ch := make(chan json.RawMessage, 1)
	errs := make(chan error, 1)
	go func() {
		res, err := s.adapter.Request(ctx, path, method, body)
		if err != nil {
			errs <- err
			return
		}
		ch <- res
	}()

	select {
	case <-ctx.Done(): // Circuit breaker
		s.logger.Println("Context error:", ctx.Err())
		return nil, ctx.Err()
	case err := <-errs: // Error handler
		s.logger.Printf("Failed to %s %s: %v\n", method, path, err)
		return nil, err
	case res := <-ch: // Post-processing
		return res, nil
	}
}

// Service holds methods to interact with GoCardless subscriptions using the legacy plans naming.
// Deprecated: plans have been superseded by subscriptions.
type Service interface {
	api.PlansV1
}

// Options contains a set of components needed to configure the plans service.
type Options struct {
	// Adapter contains the transport used to reach GoCardless.
	Adapter adapter.Client

	// Logger contains a logger mechanism. If set to nil, it defaults to a logger pointing to io.Discard.
	Logger *log.Logger

	// Timeout contains a circuit breaking timeout used to prevent long process runs. Zero disables it.
	Timeout time.Duration

	// Notifier emits deprecation notices. If set to nil, it defaults to a notifier using the process-wide
	// registry and writing to stderr.
	Notifier *deprecation.Notifier
}

// NewPlansService initializes a new Service implementation using the given adapter.
// It emits a deprecation notice: plans are superseded by subscriptions, but the returned service remains usable.
func NewPlansService(opts Options) Service {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", log.LstdFlags)
	}
	if opts.Notifier == nil {
		opts.Notifier = deprecation.NewNotifier(nil, nil)
	}

	opts.Notifier.API(legacyName, currentName)

	return &service{
		logger:   opts.Logger,
		adapter:  opts.Adapter,
		timeout:  opts.Timeout,
		notifier: opts.Notifier,
	}
}
