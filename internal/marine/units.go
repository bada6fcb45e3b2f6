package marine

import "math"

// Conversion factors.
const (
	metersPerFoot = 0.3048
	metersPerKnot = 0.514444
)

// Round2 rounds to two decimal places. Derived values are rounded at
// reporting boundaries only; internal computation keeps full precision.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FeetToMeters converts feet to meters, rounded to two decimals.
func FeetToMeters(ft float64) float64 {
	return Round2(ft * metersPerFoot)
}

// KnotsToMetersPerSecond converts knots to m/s, rounded to two decimals.
func KnotsToMetersPerSecond(kt float64) float64 {
	return Round2(kt * metersPerKnot)
}

// MetersPerSecondToKnots converts m/s to knots, rounded to two decimals.
func MetersPerSecondToKnots(ms float64) float64 {
	return Round2(ms / metersPerKnot)
}
