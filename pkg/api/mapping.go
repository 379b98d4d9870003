package api

// CreatePlanRequest is the body sent to GoCardless to create a subscription.
type CreatePlanRequest struct {
	Subscriptions CreatePlanPayload `json:"subscriptions"`
}

// CreatePlanPayload contains the subscription fields in the GoCardless wire format.
type CreatePlanPayload struct {
	StartDate    string            `json:"start_date,omitempty"`
	DayOfMonth   string            `json:"day_of_month,omitempty"`
	Month        string            `json:"month,omitempty"`
	Amount       int64             `json:"amount"`
	Currency     string            `json:"currency"`
	Name         string            `json:"name"`
	IntervalUnit PlanInterval      `json:"interval_unit"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	Count        int               `json:"count"`
	Links        PlanLinks         `json:"links"`
}

// NewCreatePlanRequest maps a Plan into the body GoCardless expects when creating a subscription.
func NewCreatePlanRequest(plan Plan) CreatePlanRequest {
	return CreatePlanRequest{
		Subscriptions: CreatePlanPayload{
			StartDate:    plan.StartDate,
			DayOfMonth:   plan.DayOfMonth,
			Month:        plan.Month,
			Amount:       plan.Amount,
			Currency:     plan.Currency,
			Name:         plan.Name,
			IntervalUnit: plan.IntervalUnit,
			Metadata:     plan.Metadata,
			Count:        plan.Count,
			Links: PlanLinks{
				Mandate: plan.MandateID,
			},
		},
	}
}

// FlattenPlan promotes the subscription contained in env to the top level of a PlanResult,
// keeping env nested for the legacy response shape.
func FlattenPlan(env PlanEnvelope) PlanResult {
	return PlanResult{
		APIPlan:       env.Subscriptions,
		Subscriptions: env,
	}
}
