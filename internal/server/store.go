package server

import (
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gitlab.com/ignitionrobotics/billing/gocardless/pkg/adapter"
	"gitlab.com/ignitionrobotics/billing/gocardless/pkg/api"
)

const (
	// StatusActive is the status of a subscription that keeps creating payments.
	StatusActive = "active"

	// StatusCancelled is the status of a subscription that has been cancelled.
	StatusCancelled = "cancelled"

	// maxUpcomingPayments is the number of upcoming payments listed per subscription.
	maxUpcomingPayments = 10

	// dateLayout is the layout used by GoCardless for dates.
	dateLayout = "2006-01-02"
)

var (
	// ErrSubscriptionNotFound is returned when a subscription does not exist.
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrAlreadyCancelled is returned when cancelling a subscription twice.
	ErrAlreadyCancelled = errors.New("subscription already cancelled")
)

// ListFilter contains the filters applied when listing subscriptions.
type ListFilter struct {
	After   string
	Before  string
	Limit   int
	Mandate string
}

// store keeps subscriptions in memory, in creation order.
type store struct {
	mu            sync.RWMutex
	subscriptions []api.APIPlan
	positions     map[string]int
	now           func() time.Time
}

// Create stores a new active subscription out from the given payload.
func (s *store) Create(payload api.CreatePlanPayload) api.APIPlan {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()

	start := now.AddDate(0, 0, 3)
	if t, err := time.Parse(dateLayout, payload.StartDate); err == nil {
		start = t
	}
	dayOfMonth, _ := strconv.Atoi(payload.DayOfMonth)

	metadata := payload.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}

	sub := api.APIPlan{
		ID:               newID("SB"),
		CreatedAt:        now.Format(time.RFC3339Nano),
		Amount:           payload.Amount,
		Currency:         payload.Currency,
		Status:           StatusActive,
		Name:             payload.Name,
		StartDate:        start.Format(dateLayout),
		Count:            payload.Count,
		Interval:         1,
		IntervalUnit:     payload.IntervalUnit,
		DayOfMonth:       dayOfMonth,
		Month:            payload.Month,
		AppFee:           []byte("null"),
		UpcomingPayments: schedule(start, payload.IntervalUnit, dayOfMonth, payload.Count, payload.Amount),
		Metadata:         metadata,
		Links:            payload.Links,
	}

	s.positions[sub.ID] = len(s.subscriptions)
	s.subscriptions = append(s.subscriptions, sub)
	return sub
}

// Get returns the subscription identified by id.
func (s *store) Get(id string) (api.APIPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.positions[id]
	if !ok {
		return api.APIPlan{}, ErrSubscriptionNotFound
	}
	return s.subscriptions[i], nil
}

// Cancel marks the subscription identified by id as cancelled. A non-nil metadata replaces the current one.
func (s *store) Cancel(id string, metadata map[string]string) (api.APIPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.positions[id]
	if !ok {
		return api.APIPlan{}, ErrSubscriptionNotFound
	}
	sub := s.subscriptions[i]
	if sub.Status == StatusCancelled {
		return api.APIPlan{}, ErrAlreadyCancelled
	}

	sub.Status = StatusCancelled
	sub.UpcomingPayments = []api.UpcomingPayment{}
	if metadata != nil {
		sub.Metadata = metadata
	}
	s.subscriptions[i] = sub
	return sub, nil
}

// List returns a page of subscriptions matching filter and the cursors surrounding it.
func (s *store) List(filter ListFilter) ([]api.APIPlan, api.Cursors) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]api.APIPlan, 0, len(s.subscriptions))
	for _, sub := range s.subscriptions {
		if len(filter.Mandate) > 0 && sub.Links.Mandate != filter.Mandate {
			continue
		}
		matches = append(matches, sub)
	}

	start, end := 0, len(matches)
	if len(filter.After) > 0 {
		start = indexOf(matches, filter.After) + 1
	}
	if len(filter.Before) > 0 {
		if i := indexOf(matches, filter.Before); i >= 0 {
			end = i
		}
	}
	if start > end {
		start = end
	}

	if end-start > filter.Limit {
		if len(filter.Before) > 0 && len(filter.After) == 0 {
			start = end - filter.Limit
		} else {
			end = start + filter.Limit
		}
	}

	var cursors api.Cursors
	page := matches[start:end]
	if len(page) > 0 {
		if start > 0 {
			cursors.Before = page[0].ID
		}
		if end < len(matches) {
			cursors.After = page[len(page)-1].ID
		}
	}
	return page, cursors
}

// indexOf returns the position of the subscription identified by id, or -1.
func indexOf(subs []api.APIPlan, id string) int {
	for i, sub := range subs {
		if sub.ID == id {
			return i
		}
	}
	return -1
}

// schedule computes the upcoming payments of a subscription.
// A count of zero means the subscription runs forever.
func schedule(start time.Time, unit api.PlanInterval, dayOfMonth, count int, amount int64) []api.UpcomingPayment {
	n := maxUpcomingPayments
	if count > 0 && count < n {
		n = count
	}

	payments := make([]api.UpcomingPayment, 0, n)
	for i := 0; i < n; i++ {
		var date time.Time
		switch unit {
		case api.PlanIntervalWeekly:
			date = start.AddDate(0, 0, 7*i)
		case api.PlanIntervalYearly:
			date = start.AddDate(i, 0, 0)
		default:
			date = start.AddDate(0, i, 0)
		}
		if unit != api.PlanIntervalWeekly {
			switch {
			case dayOfMonth > 0:
				date = time.Date(date.Year(), date.Month(), dayOfMonth, 0, 0, 0, 0, time.UTC)
			case dayOfMonth == -1:
				// Day zero of the next month is the last day of this one.
				date = time.Date(date.Year(), date.Month()+1, 0, 0, 0, 0, 0, time.UTC)
			}
		}
		payments = append(payments, api.UpcomingPayment{
			ChargeDate: date.Format(dateLayout),
			Amount:     amount,
		})
	}
	return payments
}

// newID generates a GoCardless-like identifier with the given prefix.
func newID(prefix string) string {
	return prefix + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}

// validatePayload returns the field errors GoCardless would report for payload.
func validatePayload(payload api.CreatePlanPayload) []adapter.FieldError {
	var errs []adapter.FieldError
	if payload.Amount <= 0 {
		errs = append(errs, adapter.FieldError{Field: "amount", Message: "must be greater than 0", RequestPointer: "/subscriptions/amount"})
	}
	if len(payload.Currency) == 0 {
		errs = append(errs, adapter.FieldError{Field: "currency", Message: "can't be blank", RequestPointer: "/subscriptions/currency"})
	}
	if err := payload.IntervalUnit.Validate(); err != nil {
		errs = append(errs, adapter.FieldError{Field: "interval_unit", Message: "is invalid", RequestPointer: "/subscriptions/interval_unit"})
	}
	if len(payload.Links.Mandate) == 0 {
		errs = append(errs, adapter.FieldError{Field: "mandate", Message: "can't be blank", RequestPointer: "/subscriptions/links/mandate"})
	}
	if len(payload.Month) > 0 && payload.IntervalUnit != api.PlanIntervalYearly {
		errs = append(errs, adapter.FieldError{Field: "month", Message: "must be blank unless interval_unit is yearly", RequestPointer: "/subscriptions/month"})
	}
	if len(payload.DayOfMonth) > 0 {
		day, err := strconv.Atoi(payload.DayOfMonth)
		switch {
		case payload.IntervalUnit == api.PlanIntervalWeekly:
			errs = append(errs, adapter.FieldError{Field: "day_of_month", Message: "must be blank if interval_unit is weekly", RequestPointer: "/subscriptions/day_of_month"})
		case err != nil || day < -1 || day == 0 || day > 28:
			errs = append(errs, adapter.FieldError{Field: "day_of_month", Message: "must be between 1 and 28, or -1", RequestPointer: "/subscriptions/day_of_month"})
		}
	}
	if len(payload.StartDate) > 0 {
		if _, err := time.Parse(dateLayout, payload.StartDate); err != nil {
			errs = append(errs, adapter.FieldError{Field: "start_date", Message: "is not a valid date", RequestPointer: "/subscriptions/start_date"})
		}
	}
	return errs
}

// newStore initializes an empty store.
func newStore() *store {
	return &store{
		positions: make(map[string]int),
		now:       time.Now,
	}
}
