package route

import "encoding/json"

// Result is the single outcome produced per inbound route request. It is
// constructed once, appended to the sink, and discarded; the uuid is the
// caller-assigned correlation token threaded through unmodified.
type Result struct {
	UUID      string
	Start     *ResolvedLocation
	Finish    *ResolvedLocation
	Estimates []ConsolidatedEstimate
	Err       string
}

// Failed reports whether this is a failure outcome.
func (r *Result) Failed() bool {
	return r.Err != ""
}

// FailureResult builds the all-or-nothing failure outcome for a request.
func FailureResult(uuid string) *Result {
	if uuid == "" {
		uuid = UnknownRequestID
	}
	return &Result{UUID: uuid, Err: "invalid input"}
}

type successRecord struct {
	Start     *ResolvedLocation      `json:"start"`
	Finish    *ResolvedLocation      `json:"finish"`
	Estimates []ConsolidatedEstimate `json:"estimates"`
	UUID      string                 `json:"uuid"`
}

type failureRecord struct {
	Error string `json:"error"`
	UUID  string `json:"uuid"`
}

// MarshalJSON emits the success form with estimates, or the failure form
// with an error field. Both forms are uniform JSON objects so the sink file
// stays one valid JSON document per line.
func (r *Result) MarshalJSON() ([]byte, error) {
	if r.Failed() {
		return json.Marshal(failureRecord{Error: r.Err, UUID: r.UUID})
	}
	return json.Marshal(successRecord{
		Start:     r.Start,
		Finish:    r.Finish,
		Estimates: r.Estimates,
		UUID:      r.UUID,
	})
}
