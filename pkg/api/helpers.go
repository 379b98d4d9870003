package api

import (
	"sort"

	"github.com/stripe/stripe-go/v72/form"
)

// String returns a pointer to the given string. Used to fill optional params fields.
func String(v string) *string {
	return &v
}

// Int64 returns a pointer to the given int64. Used to fill optional params fields.
func Int64(v int64) *int64 {
	return &v
}

// IndexParams contains the filters and pagination options accepted by the PlansV1.Index method.
// Nil fields are left out of the query string.
type IndexParams struct {
	// After returns subscriptions after the given cursor.
	After *string `form:"after"`

	// Before returns subscriptions before the given cursor.
	Before *string `form:"before"`

	// Limit is the number of subscriptions returned per page. GoCardless defaults to 50, max 500.
	Limit *int64 `form:"limit"`

	// Customer filters subscriptions by customer ID.
	Customer *string `form:"customer"`

	// Mandate filters subscriptions by mandate ID.
	Mandate *string `form:"mandate"`

	// CreatedAtGT filters subscriptions created after the given ISO 8601 timestamp.
	CreatedAtGT *string `form:"created_at[gt]"`

	// CreatedAtGTE filters subscriptions created at or after the given ISO 8601 timestamp.
	CreatedAtGTE *string `form:"created_at[gte]"`

	// CreatedAtLT filters subscriptions created before the given ISO 8601 timestamp.
	CreatedAtLT *string `form:"created_at[lt]"`

	// CreatedAtLTE filters subscriptions created at or before the given ISO 8601 timestamp.
	CreatedAtLTE *string `form:"created_at[lte]"`

	// Extra contains query parameters that have no dedicated field.
	Extra map[string]string `form:"-"`
}

// Encode returns the query string for the current params, including the leading "?".
// It returns an empty string when no parameter is set.
func (p *IndexParams) Encode() string {
	if p == nil {
		return ""
	}
	return encode(p, p.Extra)
}

// FindParams contains the query options accepted by the PlansV1.Find method.
type FindParams struct {
	// Extra contains query parameters passed as they are to GoCardless.
	Extra map[string]string `form:"-"`
}

// Encode returns the query string for the current params, including the leading "?".
// It returns an empty string when no parameter is set.
func (p *FindParams) Encode() string {
	if p == nil {
		return ""
	}
	return encode(p, p.Extra)
}

// encode serializes the tagged fields of params followed by extra, sorted by key.
func encode(params interface{}, extra map[string]string) string {
	values := &form.Values{}
	form.AppendTo(values, params)

	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		values.Add(k, extra[k])
	}

	if values.Empty() {
		return ""
	}
	return "?" + values.Encode()
}
