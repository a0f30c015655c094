package forecast

import (
	"errors"
	"math"
	"time"
)

// ErrDataUnavailable is returned when a raw current payload is missing
// mandatory fields and no snapshot can be built from it.
var ErrDataUnavailable = errors.New("weather data unavailable")

// maxForecastDays caps the daily rollup at the provider's forecast horizon.
const maxForecastDays = 5

// defaultVisibilityKM is assumed when the provider omits visibility.
const defaultVisibilityKM = 10

// Normalize converts a raw current payload and a sequence of 3-hourly
// forecast samples into a WeatherSnapshot. When window is non-nil, samples
// whose date falls outside [Start, End] are dropped; a window or sample
// date that fails to parse disables filtering for that sample rather than
// excluding it.
func Normalize(current RawCurrent, samples []RawSample, window *DateRange) (WeatherSnapshot, error) {
	cur, err := normalizeCurrent(current)
	if err != nil {
		return WeatherSnapshot{}, err
	}

	snapshot := WeatherSnapshot{
		Current: cur,
		Daily:   aggregateDaily(samples, window),
	}
	if window != nil && window.Start != "" && window.End != "" {
		r := *window
		snapshot.Range = &r
	}
	return snapshot, nil
}

func normalizeCurrent(raw RawCurrent) (CurrentConditions, error) {
	if raw.Temp == nil || len(raw.Conditions) == 0 {
		return CurrentConditions{}, ErrDataUnavailable
	}

	visibility := float64(defaultVisibilityKM)
	if raw.VisibilityM != nil {
		visibility = *raw.VisibilityM / 1000
	}

	return CurrentConditions{
		Timestamp:    time.Unix(raw.Timestamp, 0).UTC(),
		Temperature:  *raw.Temp,
		FeelsLike:    raw.FeelsLike,
		Humidity:     raw.Humidity,
		Pressure:     raw.Pressure,
		VisibilityKM: visibility,
		WindSpeed:    raw.WindSpeed,
		Condition:    raw.Conditions[0].Main,
		Description:  raw.Conditions[0].Description,
	}, nil
}

// dayGroup accumulates the samples seen for one calendar date.
type dayGroup struct {
	timestamp int64
	temps     []float64
	condition RawCondition
}

func aggregateDaily(samples []RawSample, window *DateRange) []DailyAggregate {
	groups := make(map[string]*dayGroup)
	var order []string

	for _, s := range samples {
		if len(s.DateText) < 10 {
			continue
		}
		dateStr := s.DateText[:10]

		if !inWindow(dateStr, window) {
			continue
		}

		g, ok := groups[dateStr]
		if !ok {
			g = &dayGroup{timestamp: s.Timestamp}
			if len(s.Conditions) > 0 {
				g.condition = s.Conditions[0]
			}
			groups[dateStr] = g
			order = append(order, dateStr)
		}
		g.temps = append(g.temps, s.Temp)
	}

	if len(order) > maxForecastDays {
		order = order[:maxForecastDays]
	}

	daily := make([]DailyAggregate, 0, len(order))
	for _, dateStr := range order {
		g := groups[dateStr]

		min, max, sum := g.temps[0], g.temps[0], 0.0
		for _, t := range g.temps {
			if t < min {
				min = t
			}
			if t > max {
				max = t
			}
			sum += t
		}

		daily = append(daily, DailyAggregate{
			Date:        dateStr,
			Timestamp:   time.Unix(g.timestamp, 0).UTC(),
			TempMin:     round1(min),
			TempMax:     round1(max),
			TempAvg:     round1(sum / float64(len(g.temps))),
			Condition:   g.condition.Main,
			Description: g.condition.Description,
		})
	}
	return daily
}

// inWindow reports whether dateStr falls inside the window. Fail-open: any
// parse failure means the sample is kept.
func inWindow(dateStr string, window *DateRange) bool {
	if window == nil || window.Start == "" || window.End == "" {
		return true
	}
	day, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return true
	}
	start, err := time.Parse(DateLayout, window.Start)
	if err != nil {
		return true
	}
	end, err := time.Parse(DateLayout, window.End)
	if err != nil {
		return true
	}
	return !day.Before(start) && !day.After(end)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
