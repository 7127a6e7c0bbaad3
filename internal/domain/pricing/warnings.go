package pricing

import "fmt"

// InvalidInputWarning flags an input the engine accepted but that makes the
// result suspect. It never stops a computation.
type InvalidInputWarning struct {
	Field  string  `json:"field"`
	Value  float64 `json:"value"`
	Reason string  `json:"reason"`
}

func (w InvalidInputWarning) String() string {
	return fmt.Sprintf("%s=%v: %s", w.Field, w.Value, w.Reason)
}

const (
	reasonNegative     = "negative value"
	reasonOutOfRange   = "percentage outside 0-100"
	reasonNoActiveItem = "no active products to share fixed costs"
)

type warnings []InvalidInputWarning

func (ws *warnings) nonNegative(field string, v float64) {
	if v < 0 {
		*ws = append(*ws, InvalidInputWarning{Field: field, Value: v, Reason: reasonNegative})
	}
}

func (ws *warnings) percentRange(field string, v float64) {
	if v < 0 || v > 100 {
		*ws = append(*ws, InvalidInputWarning{Field: field, Value: v, Reason: reasonOutOfRange})
	}
}
