package service

import (
	"testing"

	"ride-estimates/internal/domain/route"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raw(name string, fields map[string]any) route.RawEstimate {
	if fields == nil {
		fields = map[string]any{}
	}
	fields["localized_display_name"] = name
	return route.RawEstimate{DisplayName: name, Fields: fields}
}

func TestMergeEstimatesUnion(t *testing.T) {
	prices := []route.RawEstimate{
		raw("UberX", map[string]any{"estimate": "$10-13", "duration": float64(600)}),
		raw("UberXL", map[string]any{"estimate": "$16-21"}),
	}
	times := []route.RawEstimate{
		raw("UberX", map[string]any{"estimate": float64(300)}),
		raw("UberBLACK", map[string]any{"estimate": float64(540)}),
	}

	merged := mergeEstimates(prices, times)
	require.Len(t, merged, 3)

	// first-encounter order: prices' order, then time-only products
	assert.Equal(t, "UberX", merged[0].DisplayName)
	assert.Equal(t, "UberXL", merged[1].DisplayName)
	assert.Equal(t, "UberBLACK", merged[2].DisplayName)

	// key present on both sides carries both prefixes
	assert.Equal(t, "$10-13", merged[0].Fields["price_estimate"])
	assert.Equal(t, float64(300), merged[0].Fields["time_estimate"])

	// price-only product has no time_* fields
	assert.Contains(t, merged[1].Fields, "price_estimate")
	for field := range merged[1].Fields {
		assert.NotContains(t, field, "time_")
	}

	// time-only product has no price_* fields
	assert.Contains(t, merged[2].Fields, "time_estimate")
	for field := range merged[2].Fields {
		assert.NotContains(t, field, "price_")
	}
}

func TestMergeEstimatesEveryFieldPrefixed(t *testing.T) {
	prices := []route.RawEstimate{
		raw("UberX", map[string]any{
			"duration":          float64(600),
			"currency_code":     "USD",
			"parsedArrivalTime": "10m",
		}),
	}

	merged := mergeEstimates(prices, nil)
	require.Len(t, merged, 1)

	assert.Equal(t, map[string]any{
		"price_localized_display_name": "UberX",
		"price_duration":               float64(600),
		"price_currency_code":          "USD",
		"price_parsedArrivalTime":      "10m",
	}, merged[0].Fields)
}

func TestMergeEstimatesEmptyInputs(t *testing.T) {
	assert.Empty(t, mergeEstimates(nil, nil))
	assert.Empty(t, mergeEstimates([]route.RawEstimate{}, []route.RawEstimate{}))
}

func TestMergeEstimatesIdempotent(t *testing.T) {
	prices := []route.RawEstimate{raw("UberX", map[string]any{"estimate": "$10-13"})}
	times := []route.RawEstimate{raw("UberX", map[string]any{"estimate": float64(300)})}

	first := mergeEstimates(prices, times)
	second := mergeEstimates(prices, times)
	assert.Equal(t, first, second)
}
