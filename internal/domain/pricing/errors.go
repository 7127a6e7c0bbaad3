package pricing

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsolvableMargin is matched by every *UnsolvableMarginError
	ErrUnsolvableMargin = errors.New("desired margin plus blended tax rate reaches or exceeds 100%")

	// ErrNonFiniteInput is returned when an input is NaN or infinite
	ErrNonFiniteInput = errors.New("pricing inputs must be finite numbers")
)

// UnsolvableMarginError reports that no finite positive price satisfies the
// requested margin because margin and tax together consume the whole price.
type UnsolvableMarginError struct {
	DesiredMarginPercent float64
	BlendedTaxRate       float64
}

// Error implements the error interface
func (e *UnsolvableMarginError) Error() string {
	return fmt.Sprintf("cannot reach %.1f%% margin with a %.1f%% blended tax rate: margin plus tax must stay below 100%%",
		e.DesiredMarginPercent, e.BlendedTaxRate*100)
}

// Unwrap lets errors.Is match ErrUnsolvableMargin
func (e *UnsolvableMarginError) Unwrap() error {
	return ErrUnsolvableMargin
}

// MarginCeiling is the exclusive upper bound for a margin that can still be
// solved with the same tax rate.
func (e *UnsolvableMarginError) MarginCeiling() float64 {
	ceiling := (1 - e.BlendedTaxRate) * 100
	if ceiling < 0 {
		return 0
	}
	return ceiling
}
