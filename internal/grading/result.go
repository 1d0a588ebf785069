package grading

import (
	"encoding/json"
	"fmt"
)

// Kind distinguishes the two evaluation outcomes.
type Kind int

const (
	// KindUnknown is the zero Result returned alongside an error.
	KindUnknown Kind = iota
	// KindFailure means a recorded assignment already missed its hurdle.
	KindFailure
	// KindRequiredScore carries the percentage needed on the scenario.
	KindRequiredScore
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindFailure:
		return "failure"
	case KindRequiredScore:
		return "required_score"
	default:
		return "unknown"
	}
}

// Result is the outcome of an evaluation. Value is meaningful only for
// KindRequiredScore and may exceed 100.
type Result struct {
	Kind  Kind
	Value float64
}

// Failure returns the hurdle failure marker.
func Failure() Result {
	return Result{Kind: KindFailure}
}

// Required returns a required-score result.
func Required(value float64) Result {
	return Result{Kind: KindRequiredScore, Value: value}
}

// Failed reports whether the result is the failure marker.
func (r Result) Failed() bool {
	return r.Kind == KindFailure
}

// RequiredScore returns the required percentage, if there is one.
func (r Result) RequiredScore() (float64, bool) {
	if r.Kind != KindRequiredScore {
		return 0, false
	}
	return r.Value, true
}

type resultJSON struct {
	Kind  string   `json:"kind"`
	Value *float64 `json:"value,omitempty"`
}

// MarshalJSON encodes the result as {"kind": ..., "value": ...}.
func (r Result) MarshalJSON() ([]byte, error) {
	out := resultJSON{Kind: r.Kind.String()}
	if r.Kind == KindRequiredScore {
		v := r.Value
		out.Value = &v
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the form produced by MarshalJSON.
func (r *Result) UnmarshalJSON(data []byte) error {
	var in resultJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	switch in.Kind {
	case "failure":
		*r = Failure()
	case "required_score":
		if in.Value == nil {
			return fmt.Errorf("required_score result has no value")
		}
		*r = Required(*in.Value)
	default:
		return fmt.Errorf("unknown result kind %q", in.Kind)
	}
	return nil
}
