package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanIntervalValidate(t *testing.T) {
	assert.NoError(t, PlanIntervalWeekly.Validate())
	assert.NoError(t, PlanIntervalMonthly.Validate())
	assert.NoError(t, PlanIntervalYearly.Validate())
	assert.Equal(t, ErrInvalidInterval, PlanInterval("daily").Validate())
	assert.Equal(t, ErrInvalidInterval, PlanInterval("").Validate())
}

func TestIndexParamsEncode(t *testing.T) {
	tests := []struct {
		name   string
		params *IndexParams
		want   string
	}{
		{name: "nil", params: nil, want: ""},
		{name: "empty", params: &IndexParams{}, want: ""},
		{name: "limit", params: &IndexParams{Limit: Int64(5)}, want: "?limit=5"},
		{
			name:   "cursor and mandate",
			params: &IndexParams{After: String("SB123"), Mandate: String("MD123")},
			want:   "?after=SB123&mandate=MD123",
		},
		{
			name:   "created at filter keeps brackets and escapes the value",
			params: &IndexParams{CreatedAtGT: String("2024-01-01T00:00:00Z")},
			want:   "?created_at[gt]=2024-01-01T00%3A00%3A00Z",
		},
		{
			name: "extra keys are sorted and appended",
			params: &IndexParams{
				Limit: Int64(10),
				Extra: map[string]string{"status": "active", "sort_field": "charge_date"},
			},
			want: "?limit=10&sort_field=charge_date&status=active",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.params.Encode())
		})
	}
}

func TestFindParamsEncode(t *testing.T) {
	var nilParams *FindParams
	assert.Equal(t, "", nilParams.Encode())
	assert.Equal(t, "", (&FindParams{}).Encode())
	assert.Equal(t, "?include=mandate", (&FindParams{Extra: map[string]string{"include": "mandate"}}).Encode())
}

func TestNewCreatePlanRequest(t *testing.T) {
	plan := Plan{
		Amount:       2500,
		Currency:     "GBP",
		Name:         "Monthly Magazine",
		IntervalUnit: PlanIntervalYearly,
		Count:        12,
		Metadata:     map[string]string{"order_no": "ABCD1234"},
		Month:        "january",
		DayOfMonth:   "1",
		StartDate:    "2024-01-01",
		MandateID:    "MD123",
	}

	req := NewCreatePlanRequest(plan)

	s := req.Subscriptions
	assert.Equal(t, plan.IntervalUnit, s.IntervalUnit)
	assert.Equal(t, plan.DayOfMonth, s.DayOfMonth)
	assert.Equal(t, plan.Month, s.Month)
	assert.Equal(t, plan.StartDate, s.StartDate)
	assert.Equal(t, plan.MandateID, s.Links.Mandate)
	assert.Equal(t, plan.Amount, s.Amount)
	assert.Equal(t, plan.Currency, s.Currency)
	assert.Equal(t, plan.Name, s.Name)
	assert.Equal(t, plan.Count, s.Count)
	assert.Equal(t, plan.Metadata, s.Metadata)
}

func TestCreatePlanRequestWireFormat(t *testing.T) {
	body, err := json.Marshal(NewCreatePlanRequest(Plan{
		Amount:       1500,
		Currency:     "EUR",
		Name:         "Gym",
		IntervalUnit: PlanIntervalMonthly,
		Count:        6,
		DayOfMonth:   "28",
		MandateID:    "MD999",
	}))
	require.NoError(t, err)

	var wire map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &wire))

	sub := wire["subscriptions"]
	assert.Equal(t, "monthly", sub["interval_unit"])
	assert.Equal(t, "28", sub["day_of_month"])
	assert.Equal(t, map[string]interface{}{"mandate": "MD999"}, sub["links"])
	assert.NotContains(t, sub, "month")
	assert.NotContains(t, sub, "start_date")
	assert.NotContains(t, sub, "metadata")
	assert.NotContains(t, sub, "intervalUnit")
}

func TestFlattenPlan(t *testing.T) {
	env := PlanEnvelope{
		Subscriptions: APIPlan{
			ID:           "SB123",
			Status:       "active",
			Amount:       1000,
			IntervalUnit: PlanIntervalWeekly,
			Links:        PlanLinks{Mandate: "MD123"},
		},
	}

	res := FlattenPlan(env)

	assert.Equal(t, env.Subscriptions, res.APIPlan)
	assert.Equal(t, env, res.Subscriptions)
	assert.Equal(t, "SB123", res.ID)
	assert.Equal(t, res.ID, res.Subscriptions.Subscriptions.ID)
}

func TestPlanEnvelopeKeepsUnmodelledFields(t *testing.T) {
	body := `{"subscriptions":{"id":"SB123","count":12,"retry_if_possible":true,"parent_plan_paused":false}}`

	var env PlanEnvelope
	require.NoError(t, json.Unmarshal([]byte(body), &env))
	assert.Equal(t, 12, env.Subscriptions.Count)
	assert.True(t, env.Subscriptions.RetryIfPossible)
	assert.JSONEq(t, body, string(env.Raw()))

	out, err := json.Marshal(FlattenPlan(env))
	require.NoError(t, err)

	var res struct {
		Count         int `json:"count"`
		Subscriptions struct {
			Subscriptions map[string]interface{} `json:"subscriptions"`
		} `json:"subscriptions"`
	}
	require.NoError(t, json.Unmarshal(out, &res))
	assert.Equal(t, 12, res.Count)
	assert.Equal(t, float64(12), res.Subscriptions.Subscriptions["count"])
	assert.Contains(t, res.Subscriptions.Subscriptions, "parent_plan_paused")
}

func TestPlanEnvelopeBuiltInCode(t *testing.T) {
	out, err := json.Marshal(PlanEnvelope{Subscriptions: APIPlan{ID: "SB1", Count: 3}})
	require.NoError(t, err)

	var res map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &res))
	assert.Equal(t, "SB1", res["subscriptions"]["id"])
	assert.Equal(t, float64(3), res["subscriptions"]["count"])
}

func TestPlanResultMarshalKeepsBothShapes(t *testing.T) {
	res := FlattenPlan(PlanEnvelope{Subscriptions: APIPlan{ID: "SB123", Name: "Gym"}})

	body, err := json.Marshal(res)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))

	nested, ok := out["subscriptions"].(map[string]interface{})
	require.True(t, ok)
	inner, ok := nested["subscriptions"].(map[string]interface{})
	require.True(t, ok)

	for k, v := range inner {
		assert.Equal(t, v, out[k], "field %s should be promoted to the top level", k)
	}
}
