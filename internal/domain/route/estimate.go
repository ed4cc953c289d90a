package route

import "encoding/json"

// RawEstimate is a single per-product record as returned by the estimate
// provider. Provider fields are heterogeneous across products and endpoint
// versions, so they are kept as an open field set; DisplayName duplicates
// the product display name used as the merge key.
type RawEstimate struct {
	DisplayName string
	Fields      map[string]any
}

// EstimateSet is the outcome of one fetch: the price-side and time-side
// record lists, in provider order.
type EstimateSet struct {
	Prices []RawEstimate
	Times  []RawEstimate
}

// ConsolidatedEstimate is one record per distinct product display name,
// carrying every price-side field under a "price_" prefix and every
// time-side field under a "time_" prefix. A product seen on only one side
// still yields a record with that side's fields alone.
type ConsolidatedEstimate struct {
	DisplayName string
	Fields      map[string]any
}

// MarshalJSON flattens the record to its prefixed field set; the display
// name is already present as price_localized_display_name and/or
// time_localized_display_name.
func (c ConsolidatedEstimate) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Fields)
}
