package service

import "ride-estimates/internal/domain/route"

// mergeEstimates consolidates the price-side and time-side lists into one
// record per distinct product display name. Prices are folded in first,
// then times, each copying every provider field under a "price_" or "time_"
// prefix; a product present on only one side still yields a record. Output
// order is first-encounter order: the prices' order, then any time-only
// products. Pure function; empty inputs yield an empty slice.
func mergeEstimates(prices, times []route.RawEstimate) []route.ConsolidatedEstimate {
	var order []string
	byName := make(map[string]map[string]any)

	fold := func(list []route.RawEstimate, prefix string) {
		for _, est := range list {
			entry, ok := byName[est.DisplayName]
			if !ok {
				entry = make(map[string]any, len(est.Fields))
				byName[est.DisplayName] = entry
				order = append(order, est.DisplayName)
			}
			for field, value := range est.Fields {
				entry[prefix+field] = value
			}
		}
	}

	fold(prices, "price_")
	fold(times, "time_")

	merged := make([]route.ConsolidatedEstimate, 0, len(order))
	for _, name := range order {
		merged = append(merged, route.ConsolidatedEstimate{
			DisplayName: name,
			Fields:      byName[name],
		})
	}

	return merged
}
