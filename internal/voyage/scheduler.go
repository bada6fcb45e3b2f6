package voyage

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/sailgate/sailgate/internal/marine"
	"github.com/sailgate/sailgate/internal/risk"
)

const (
	departureHour    = 6
	minVoyageHours   = 6.0
	defaultWindowHrs = 24.0
	scheduleDays     = 7

	// defaultCargoHsLimitM is the wave height above which deck cargo
	// operations are flagged in the window notes.
	defaultCargoHsLimitM = 2.5
)

// SchedulerConfig holds scheduler inputs. Zero values get sensible defaults.
type SchedulerConfig struct {
	// Timezone for local departure times. Defaults to Asia/Dubai.
	Timezone string

	// Risk holds the assessment thresholds. Zero value uses defaults.
	Risk risk.Config

	// CargoHsLimitM overrides the cargo wave-height note threshold.
	CargoHsLimitM float64

	// Clock is injected for tests. Defaults to the real clock.
	Clock clockwork.Clock
}

// Window is one candidate departure window with its risk assessment.
// Assessment is nil when the forecast does not cover the window.
type Window struct {
	Start      time.Time        `json:"start"`
	End        time.Time        `json:"end"`
	Assessment *risk.Assessment `json:"assessment,omitempty"`
	Coverage   int              `json:"coverage"`
	Notes      []string         `json:"notes,omitempty"`
}

// Schedule is a week of candidate windows for one route. Recommended indexes
// into Windows, or is -1 when no window has forecast coverage.
type Schedule struct {
	RouteID     string   `json:"route_id"`
	Windows     []Window `json:"windows"`
	Recommended int      `json:"recommended"`
}

// Scheduler proposes weekly departure windows scored by risk.
type Scheduler struct {
	timezone    *time.Location
	risk        risk.Config
	cargoHsLimM float64
	clock       clockwork.Clock
}

// NewScheduler builds a scheduler, filling defaults for unset config.
func NewScheduler(cfg SchedulerConfig) (*Scheduler, error) {
	tz := cfg.Timezone
	if tz == "" {
		tz = "Asia/Dubai"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, err
	}
	rc := cfg.Risk
	if rc == (risk.Config{}) {
		rc = risk.DefaultConfig()
	}
	cargoLimit := cfg.CargoHsLimitM
	if cargoLimit <= 0 {
		cargoLimit = defaultCargoHsLimitM
	}
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Scheduler{timezone: loc, risk: rc, cargoHsLimM: cargoLimit, clock: clock}, nil
}

// SuggestWeeklySchedule scores one departure window per day for the next
// week. Each window starts at 06:00 local time; its duration is the planned
// transit time with a six hour floor, or a full day when the route carries
// no planned speed.
func (s *Scheduler) SuggestWeeklySchedule(route Route, forecast []marine.ForecastPoint) Schedule {
	durationHrs := defaultWindowHrs
	if route.PlannedSpeedKt > 0 {
		durationHrs = route.DistanceNM() / route.PlannedSpeedKt
		if durationHrs < minVoyageHours {
			durationHrs = minVoyageHours
		}
	}
	duration := time.Duration(durationHrs * float64(time.Hour))

	now := s.clock.Now().In(s.timezone)
	first := time.Date(now.Year(), now.Month(), now.Day(), departureHour, 0, 0, 0, s.timezone)
	if !first.After(now) {
		first = first.AddDate(0, 0, 1)
	}

	schedule := Schedule{RouteID: route.ID, Recommended: -1}
	for day := 0; day < scheduleDays; day++ {
		start := first.AddDate(0, 0, day)
		end := start.Add(duration)

		covered := windowPoints(forecast, start, end)
		w := Window{Start: start, End: end, Coverage: len(covered)}
		if len(covered) > 0 {
			if a, err := risk.Assess(covered, s.risk); err == nil {
				w.Assessment = &a
				if a.Metrics.MaxWaveHeightM > s.cargoHsLimM {
					w.Notes = append(w.Notes, fmt.Sprintf(
						"wave height %.2f m exceeds cargo handling limit %.2f m",
						a.Metrics.MaxWaveHeightM, s.cargoHsLimM))
				}
			}
		}
		schedule.Windows = append(schedule.Windows, w)
	}

	schedule.Recommended = recommend(schedule.Windows)
	return schedule
}

func windowPoints(forecast []marine.ForecastPoint, start, end time.Time) []marine.ForecastPoint {
	var out []marine.ForecastPoint
	for _, p := range forecast {
		if !p.Time.Before(start) && p.Time.Before(end) {
			out = append(out, p)
		}
	}
	return out
}

// recommend picks the earliest window at the lowest risk level seen.
func recommend(windows []Window) int {
	best := -1
	for i, w := range windows {
		if w.Assessment == nil {
			continue
		}
		if best == -1 || riskRank(w.Assessment.Level) < riskRank(windows[best].Assessment.Level) {
			best = i
		}
	}
	return best
}

func riskRank(level risk.Level) int {
	switch level {
	case risk.LevelLow:
		return 0
	case risk.LevelMedium:
		return 1
	default:
		return 2
	}
}
