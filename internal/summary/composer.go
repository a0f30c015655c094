package summary

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"weather-companion/internal/common"
	"weather-companion/internal/forecast"
)

// minNarrativeWords is the smallest input worth sending to the external
// summarizer; anything shorter goes straight to the fallback.
const minNarrativeWords = 15

// Composer produces narrative weather summaries, preferring the external
// Summarizer capability and degrading to deterministic templated text.
type Composer struct {
	loader *Loader
}

func NewComposer(loader *Loader) *Composer {
	return &Composer{loader: loader}
}

// Compose builds a narrative summary for the snapshot. It never fails: any
// internal fault yields a minimal generic statement naming the location.
func (c *Composer) Compose(snap forecast.WeatherSnapshot, location string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR: summary composition failed: %v", r)
			out = genericSummary(location)
		}
	}()

	if s, ok := c.loader.Get(); ok {
		narrative := buildNarrative(snap, location)
		if len(strings.Fields(narrative)) >= minNarrativeWords {
			condensed, err := s.Summarize(narrative, 150, 50)
			if err == nil {
				return condensed
			}
			log.Printf("WARN: summarizer call failed, using fallback: %v", err)
		}
	}

	return fallbackSummary(snap, location)
}

// buildNarrative assembles the descriptive prose block handed to the
// external summarizer.
func buildNarrative(snap forecast.WeatherSnapshot, location string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Weather analysis for %s: ", location)

	cur := snap.Current
	if cur != (forecast.CurrentConditions{}) {
		fmt.Fprintf(&b, "Currently experiencing %s with actual temperature of %s°C (feels like %s°C) and %s%% humidity. ",
			cur.Description, num(cur.Temperature), num(cur.FeelsLike), num(cur.Humidity))
	}

	daily := snap.Daily
	if len(daily) >= 2 {
		first := daily[0].TempAvg
		last := daily[len(daily)-1].TempAvg
		trend := "stable"
		if last > first {
			trend = "rising"
		} else if last < first {
			trend = "falling"
		}
		fmt.Fprintf(&b, "Temperature trend is %s over the next few days. ", trend)
	}

	conditions := lowerConditions(daily)
	if common.Count(conditions, "rain") > 2 {
		b.WriteString("Expect frequent rainfall, consider carrying an umbrella. ")
	} else if common.Count(conditions, "clear") > 2 {
		b.WriteString("Generally clear skies ahead, great for outdoor activities. ")
	}

	for i, d := range daily {
		if i >= 5 {
			break
		}
		switch i {
		case 0:
			fmt.Fprintf(&b, "Today: %s with temperatures ranging from %s°C to %s°C. ",
				d.Description, num(d.TempMin), num(d.TempMax))
		case 1:
			fmt.Fprintf(&b, "Tomorrow: %s, expect %s°C to %s°C. ",
				d.Description, num(d.TempMin), num(d.TempMax))
		default:
			fmt.Fprintf(&b, "Day %d: %s with range %s°C to %s°C. ",
				i+1, d.Description, num(d.TempMin), num(d.TempMax))
		}
	}

	return strings.TrimSpace(b.String())
}

// fallbackSummary is the deterministic templated narrative used whenever
// the external summarizer is absent or fails.
func fallbackSummary(snap forecast.WeatherSnapshot, location string) string {
	var parts []string

	cur := snap.Current
	if cur != (forecast.CurrentConditions{}) {
		var comfort string
		switch {
		case cur.Temperature < 0:
			comfort = "quite cold, bundle up!"
		case cur.Temperature < 10:
			comfort = "chilly, wear a jacket"
		case cur.Temperature < 20:
			comfort = "cool and comfortable"
		case cur.Temperature < 25:
			comfort = "pleasant weather"
		case cur.Temperature < 30:
			comfort = "warm and nice"
		default:
			comfort = "quite hot, stay hydrated!"
		}
		parts = append(parts, fmt.Sprintf("Right now in %s, it's %s at %s°C (%s)",
			location, cur.Description, num(cur.Temperature), comfort))

		deviation := cur.FeelsLike - cur.Temperature
		if deviation > 3 || deviation < -3 {
			parts = append(parts, fmt.Sprintf("though it feels like %s°C", num(cur.FeelsLike)))
		}
	}

	daily := snap.Daily
	if len(daily) > 0 {
		var sum float64
		for _, d := range daily {
			sum += d.TempAvg
		}
		avg := sum / float64(len(daily))

		if len(daily) >= 2 {
			first := daily[0].TempAvg
			last := daily[len(daily)-1].TempAvg
			trend := "staying fairly consistent"
			if last > first+2 {
				trend = "getting warmer"
			} else if last < first-2 {
				trend = "cooling down"
			}
			parts = append(parts, "Over the next few days, temperatures will be "+trend)
		}

		conditions := lowerConditions(daily)
		if common.Count(conditions, "rain") >= 2 {
			parts = append(parts, "with several rainy days expected - perfect time for indoor activities")
		} else if common.Count(conditions, "clear") >= 3 {
			parts = append(parts, "with mostly clear skies - great for outdoor plans")
		} else if common.Count(conditions, "clouds") >= 2 {
			parts = append(parts, "with cloudy conditions dominating the forecast")
		}

		var clothing string
		switch {
		case avg < 5:
			clothing = "Heavy winter clothing recommended"
		case avg < 15:
			clothing = "Layers and a warm jacket would be ideal"
		case avg < 25:
			clothing = "Light jacket or sweater should be sufficient"
		default:
			clothing = "Light, breathable clothing recommended"
		}
		parts = append(parts, fmt.Sprintf("Average temperature will be around %.1f°C. %s", avg, clothing))
	}

	if len(parts) == 0 {
		return fmt.Sprintf("Weather information is available for %s. Check the detailed forecast below for more insights.", location)
	}
	return strings.Join(parts, ". ") + "."
}

func genericSummary(location string) string {
	return fmt.Sprintf("Weather data available for %s. View the detailed forecast for current conditions and predictions.", location)
}

func lowerConditions(daily []forecast.DailyAggregate) []string {
	out := make([]string, len(daily))
	for i, d := range daily {
		out[i] = strings.ToLower(d.Condition)
	}
	return out
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
