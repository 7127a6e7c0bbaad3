package valueobject

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// ErrPercentageOutOfRange is returned when a value falls outside 0-100
var ErrPercentageOutOfRange = errors.New("percentage must be between 0 and 100")

const (
	minPercentage = 0.0
	maxPercentage = 100.0
)

// Percentage is a validated value in the closed range [0, 100].
// It is immutable; arithmetic returns a new value or an error.
type Percentage struct {
	value float64
}

// NewPercentage creates a Percentage, rejecting NaN, infinities and values outside 0-100
func NewPercentage(value float64) (Percentage, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Percentage{}, fmt.Errorf("%w: got %v", ErrPercentageOutOfRange, value)
	}
	if value < minPercentage || value > maxPercentage {
		return Percentage{}, fmt.Errorf("%w: got %v", ErrPercentageOutOfRange, value)
	}
	return Percentage{value: value}, nil
}

// NewPercentageFromDecimal creates a Percentage from a decimal amount
func NewPercentageFromDecimal(d decimal.Decimal) (Percentage, error) {
	return NewPercentage(d.InexactFloat64())
}

// MustNewPercentage creates a Percentage and panics on invalid input.
// Only use it for compile-time constants.
func MustNewPercentage(value float64) Percentage {
	p, err := NewPercentage(value)
	if err != nil {
		panic(err)
	}
	return p
}

// Value returns the percentage as a number between 0 and 100
func (p Percentage) Value() float64 {
	return p.value
}

// Fraction returns the percentage as a number between 0 and 1
func (p Percentage) Fraction() float64 {
	return p.value / 100
}

// Decimal returns the percentage as a decimal
func (p Percentage) Decimal() decimal.Decimal {
	return decimal.NewFromFloat(p.value)
}

// IsZero returns true if the percentage is 0
func (p Percentage) IsZero() bool {
	return p.value == 0
}

// Add sums two percentages; the result must still be a valid percentage
func (p Percentage) Add(other Percentage) (Percentage, error) {
	return NewPercentage(p.value + other.value)
}

// String returns a string representation like "12.5%"
func (p Percentage) String() string {
	return decimal.NewFromFloat(p.value).String() + "%"
}

// MarshalJSON encodes the percentage as a plain number
func (p Percentage) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.value)
}

// UnmarshalJSON decodes and validates a plain number
func (p *Percentage) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid percentage: %w", err)
	}
	parsed, err := NewPercentage(v)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
