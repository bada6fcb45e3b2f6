// Package fusion combines two independently sourced marine forecast
// signals and an official alert string into a single Go/No-Go/Conditional
// voyage decision with an ETA estimate.
package fusion

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sailgate/sailgate/internal/marine"
)

const (
	ftToM      = 0.3048
	minSpeedKt = 0.1
)

// Decision labels. The coastal window label marks an open-water No-Go that
// was downgraded because the route is mostly sheltered.
const (
	DecisionGo            = "Go"
	DecisionNoGo          = "No-Go"
	DecisionConditional   = "Conditional Go"
	DecisionCoastalWindow = "Conditional Go (coastal window)"
)

// Validation errors.
var (
	ErrNegativeInput       = errors.New("fusion input must be non-negative")
	ErrOffshoreWeightRange = errors.New("offshore weight must be within [0, 1]")
	ErrNonPositiveDistance = errors.New("distance must be positive")
	ErrNonPositiveSpeed    = errors.New("planned speed must be positive")
)

// Coefficients tune the fused significant-wave-height estimate and the
// speed degradation model.
type Coefficients struct {
	Alpha      float64 `json:"alpha"`
	Beta       float64 `json:"beta"`
	WindFactor float64 `json:"wind_factor"`
	WaveFactor float64 `json:"wave_factor"`
}

// DefaultCoefficients returns the operationally calibrated defaults.
func DefaultCoefficients() Coefficients {
	return Coefficients{
		Alpha:      0.85,
		Beta:       0.80,
		WindFactor: 0.06,
		WaveFactor: 0.60,
	}
}

// Inputs are the validated scalars feeding one decision. Heights are in
// feet as reported by the bulletins; winds in knots.
type Inputs struct {
	CombinedFt      float64 `json:"combined_ft"`
	WindPrimaryKt   float64 `json:"wind_primary_kt"`
	HsOnshoreFt     float64 `json:"hs_onshore_ft"`
	HsOffshoreFt    float64 `json:"hs_offshore_ft"`
	WindSecondaryKt float64 `json:"wind_secondary_kt"`
	Alert           string  `json:"alert"`
	OffshoreWeight  float64 `json:"offshore_weight"`
	DistanceNM      float64 `json:"distance_nm"`
	PlannedSpeedKt  float64 `json:"planned_speed_kt"`
}

// Validate checks the numeric domains of all inputs.
func (in Inputs) Validate() error {
	nonNegative := map[string]float64{
		"combined_ft":       in.CombinedFt,
		"wind_primary_kt":   in.WindPrimaryKt,
		"hs_onshore_ft":     in.HsOnshoreFt,
		"hs_offshore_ft":    in.HsOffshoreFt,
		"wind_secondary_kt": in.WindSecondaryKt,
	}
	for name, v := range nonNegative {
		if v < 0 {
			return fmt.Errorf("%w: %s=%v", ErrNegativeInput, name, v)
		}
	}
	if in.OffshoreWeight < 0 || in.OffshoreWeight > 1 {
		return fmt.Errorf("%w: %v", ErrOffshoreWeightRange, in.OffshoreWeight)
	}
	if in.DistanceNM <= 0 {
		return fmt.Errorf("%w: %v", ErrNonPositiveDistance, in.DistanceNM)
	}
	if in.PlannedSpeedKt <= 0 {
		return fmt.Errorf("%w: %v", ErrNonPositiveSpeed, in.PlannedSpeedKt)
	}
	return nil
}

// Result is the derived decision summary. All floats are rounded to two
// decimals at this boundary; intermediate math keeps full precision.
type Result struct {
	HsFusedM      float64 `json:"hs_fused_m"`
	WindFusedKt   float64 `json:"wind_fused_kt"`
	Decision      string  `json:"decision"`
	ETAHours      float64 `json:"eta_hours"`
	BufferMinutes int     `json:"buffer_minutes"`
}

// alertGamma maps alert severity wording onto a wave-height multiplier.
func alertGamma(alert string) float64 {
	key := strings.ToLower(strings.TrimSpace(alert))
	switch {
	case strings.HasPrefix(key, "high seas"):
		return 0.30
	case strings.Contains(key, "rough at times"):
		return 0.15
	}
	return 0.0
}

// forcedNoGo reports alerts that override every other signal.
func forcedNoGo(alert string) bool {
	key := strings.ToLower(strings.TrimSpace(alert))
	return strings.HasPrefix(key, "high seas") || strings.HasPrefix(key, "fog")
}

// DecideAndETA fuses the two forecast signals into a voyage decision and
// an ETA. It is a pure function of its arguments.
func DecideAndETA(in Inputs, coeffs Coefficients) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	hsOnshoreM := in.HsOnshoreFt * ftToM
	hsOffshoreM := in.HsOffshoreFt * ftToM
	hsSecondary := coeffs.Alpha * (in.CombinedFt * ftToM)

	hsPrimary := (1.0-in.OffshoreWeight)*hsOnshoreM + in.OffshoreWeight*hsOffshoreM
	gamma := alertGamma(in.Alert)
	hsFused := hsPrimary
	if scaled := coeffs.Beta * hsSecondary; scaled > hsFused {
		hsFused = scaled
	}
	hsFused *= 1.0 + gamma

	windFused := in.WindPrimaryKt
	if in.WindSecondaryKt > windFused {
		windFused = in.WindSecondaryKt
	}

	var decision string
	switch {
	case forcedNoGo(in.Alert):
		decision = DecisionNoGo
	case hsFused <= 1.0 && windFused <= 20.0 && gamma == 0.0:
		decision = DecisionGo
	case hsFused > 1.2 || windFused > 22.0:
		decision = DecisionNoGo
	default:
		decision = DecisionConditional
	}

	// A No-Go triggered by open-water conditions can be downgraded when the
	// route is mostly coastal and the nearshore forecast stays benign.
	if decision == DecisionNoGo && in.OffshoreWeight <= 0.40 && hsOnshoreM <= 1.0 && gamma <= 0.15 {
		decision = DecisionCoastalWindow
	}

	windPenalty := coeffs.WindFactor * max(windFused-10.0, 0.0)
	wavePenalty := coeffs.WaveFactor * hsFused
	effectiveSpeed := in.PlannedSpeedKt - windPenalty - wavePenalty
	if effectiveSpeed < minSpeedKt {
		effectiveSpeed = minSpeedKt
	}
	etaHours := in.DistanceNM / effectiveSpeed

	bufferMinutes := 45
	if in.OffshoreWeight > 0.40 {
		bufferMinutes = 60
	}

	return Result{
		HsFusedM:      marine.Round2(hsFused),
		WindFusedKt:   marine.Round2(windFused),
		Decision:      decision,
		ETAHours:      marine.Round2(etaHours),
		BufferMinutes: bufferMinutes,
	}, nil
}
