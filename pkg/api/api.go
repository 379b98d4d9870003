package api

import (
	"context"
	"encoding/json"
	"errors"
)

var (
	// ErrEmptyID is returned when a subscription ID is required but none was given.
	ErrEmptyID = errors.New("empty subscription id")

	// ErrInvalidInterval is returned when an interval unit is not one of weekly, monthly or yearly.
	ErrInvalidInterval = errors.New("invalid interval unit")
)

// PlanInterval identifies how often a plan charges the mandate.
type PlanInterval string

const (
	// PlanIntervalWeekly charges every week.
	PlanIntervalWeekly PlanInterval = "weekly"
	// PlanIntervalMonthly charges every month.
	PlanIntervalMonthly PlanInterval = "monthly"
	// PlanIntervalYearly charges every year.
	PlanIntervalYearly PlanInterval = "yearly"
)

// Validate validates the current interval unit.
func (pi PlanInterval) Validate() error {
	switch pi {
	case PlanIntervalWeekly, PlanIntervalMonthly, PlanIntervalYearly:
		return nil
	}
	return ErrInvalidInterval
}

// PlansV1 holds the methods to interact with GoCardless subscriptions using the legacy plans naming.
type PlansV1 interface {
	// Index returns a page of subscriptions with its pagination metadata.
	Index(ctx context.Context, params *IndexParams) (IndexResponse, error)

	// Find returns a single subscription.
	Find(ctx context.Context, id string, params *FindParams) (PlanResult, error)

	// Create creates a new subscription against the plan's mandate.
	Create(ctx context.Context, plan Plan) (PlanResult, error)

	// Cancel cancels a subscription. No further payments will be created for it.
	Cancel(ctx context.Context, id string, data *CancelRequest) (PlanResult, error)
}

// Plan is the input for the PlansV1.Create method.
type Plan struct {
	// Amount is the amount in the lowest denomination of the currency. E.g. pence in GBP.
	Amount int64

	// Currency holds the ISO 4217 currency code. E.g. GBP, EUR.
	Currency string

	// Name is shown on customer notifications.
	Name string

	// IntervalUnit is the unit of time between payments.
	IntervalUnit PlanInterval

	// Count is the total number of payments that should be taken.
	Count int

	// Metadata holds up to three key-value pairs stored with the subscription.
	Metadata map[string]string

	// Month is the name of the month in which to charge. Only used with yearly plans.
	Month string

	// DayOfMonth is the day of the month to charge, as a string. Used with monthly and yearly plans.
	DayOfMonth string

	// StartDate is the date of the first payment, formatted as YYYY-MM-DD.
	StartDate string

	// MandateID is the ID of the mandate the subscription will create payments against.
	MandateID string
}

// PlanLinks contains the IDs of resources linked to a subscription.
type PlanLinks struct {
	Mandate string `json:"mandate"`
}

// UpcomingPayment is a payment GoCardless will create for a subscription.
type UpcomingPayment struct {
	ChargeDate string `json:"charge_date"`
	Amount     int64  `json:"amount"`
}

// APIPlan is a subscription as represented by the GoCardless API.
// AppFee is kept raw since its JSON type varies across API versions.
type APIPlan struct {
	ID               string            `json:"id"`
	CreatedAt        string            `json:"created_at"`
	Amount           int64             `json:"amount"`
	Currency         string            `json:"currency"`
	Status           string            `json:"status"`
	Name             string            `json:"name"`
	StartDate        string            `json:"start_date"`
	EndDate          string            `json:"end_date,omitempty"`
	Count            int               `json:"count,omitempty"`
	Interval         int               `json:"interval"`
	IntervalUnit     PlanInterval      `json:"interval_unit"`
	DayOfMonth       int               `json:"day_of_month,omitempty"`
	Month            string            `json:"month,omitempty"`
	PaymentReference string            `json:"payment_reference,omitempty"`
	RetryIfPossible  bool              `json:"retry_if_possible,omitempty"`
	AppFee           json.RawMessage   `json:"app_fee,omitempty"`
	UpcomingPayments []UpcomingPayment `json:"upcoming_payments"`
	Metadata         map[string]string `json:"metadata"`
	Links            PlanLinks         `json:"links"`
}

// PlanEnvelope is the body returned by GoCardless when reading or writing a single subscription.
type PlanEnvelope struct {
	Subscriptions APIPlan `json:"subscriptions"`

	// raw holds the body as received, including the fields APIPlan does not model.
	raw json.RawMessage
}

// planEnvelope is the plain wire form of PlanEnvelope.
type planEnvelope struct {
	Subscriptions APIPlan `json:"subscriptions"`
}

// Raw returns the body the envelope was decoded from. It's nil for envelopes built in code.
func (e PlanEnvelope) Raw() json.RawMessage {
	return e.raw
}

// UnmarshalJSON decodes the envelope and keeps a copy of data.
func (e *PlanEnvelope) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var env planEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	e.Subscriptions = env.Subscriptions
	e.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON writes the body as received from GoCardless when there is one.
// Envelopes built in code are encoded from Subscriptions.
func (e PlanEnvelope) MarshalJSON() ([]byte, error) {
	if len(e.raw) > 0 {
		return e.raw, nil
	}
	return json.Marshal(planEnvelope{Subscriptions: e.Subscriptions})
}

// PlanResult is the output of the PlansV1 Find, Create and Cancel methods.
// The subscription fields are promoted to the top level, while Subscriptions keeps the
// original envelope for callers still reading the legacy response shape.
type PlanResult struct {
	APIPlan

	// Subscriptions contains the envelope returned by GoCardless. It encodes back to the body as received.
	// Deprecated: read the promoted APIPlan fields instead.
	Subscriptions PlanEnvelope `json:"subscriptions"`
}

// Cursors contains the pagination cursors of an index response.
type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

// Meta contains the pagination metadata of an index response.
type Meta struct {
	Cursors Cursors `json:"cursors"`
	Limit   int     `json:"limit"`
}

// IndexResponse is the output of the PlansV1.Index method.
type IndexResponse struct {
	Subscriptions []APIPlan `json:"subscriptions"`
	Meta          Meta      `json:"meta"`
}

// CancelRequest is the optional input for the PlansV1.Cancel method.
type CancelRequest struct {
	// Metadata replaces the subscription metadata when cancelling.
	Metadata map[string]string `json:"metadata"`
}
