// Package weather models a single observation from a weather station and the
// metrics derived from it.
package weather

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidReading = errors.New("invalid reading")

	// ErrInvalidConstruction is returned when the raw inputs of a reading
	// violate its invariants. No reading exists after it.
	ErrInvalidConstruction = fmt.Errorf("%w: construction", ErrInvalidReading)

	// ErrInvalidDerivedMetric is returned when a derived metric evaluates
	// outside its domain, e.g. relative humidity outside [0, 100].
	ErrInvalidDerivedMetric = fmt.Errorf("%w: derived metric", ErrInvalidReading)
)

// Reading is an observation reported by a weather station.
//
// The raw accessors return values rounded half up to the nearest integer.
// Derived metrics are recomputed on every call.
type Reading interface {
	Temperature() int
	DewPoint() int
	WindSpeed() int
	TotalRain() int

	RelativeHumidity() (int, error)
	HeatIndex() (int, error)
	WindChill() int

	// Equal reports whether other holds exactly the same raw inputs.
	Equal(other Reading) bool
	// Fingerprint is a hash of the raw inputs; equal readings share it.
	Fingerprint() uint64

	String() string
}

// roundHalfUp rounds x to the nearest integer, ties going towards +Inf.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func celsiusToFahrenheit(c float64) float64 {
	return c*1.8 + 32
}

func fahrenheitToCelsius(f float64) float64 {
	return (f - 32) * 5 / 9
}
