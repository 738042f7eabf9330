package surf

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	feetPerMeter  = 3.281
	mphPerKmh     = 0.621371
	mphPerMeterPS = 2.2369
)

// MetersToFeet converts a length in metres to feet.
func MetersToFeet(m float64) float64 { return m * feetPerMeter }

// KmhToMph converts km/h to miles per hour.
func KmhToMph(kmh float64) float64 { return kmh * mphPerKmh }

// MpsToMph converts m/s to miles per hour.
func MpsToMph(mps float64) float64 { return mps * mphPerMeterPS }

// CelsiusToFahrenheit converts °C to °F.
func CelsiusToFahrenheit(c float64) float64 { return c*9/5 + 32 }

// Truncate2 drops everything past the second decimal place without rounding.
// The cut is done in decimal so 0.29 stays 0.29 instead of 0.28.
func Truncate2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Truncate(2).InexactFloat64()
}
