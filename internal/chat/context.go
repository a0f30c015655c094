package chat

import (
	"strings"

	"weather-companion/internal/common"
	"weather-companion/internal/forecast"
)

// Comfort is a temperature comfort tier.
type Comfort string

const (
	ComfortFreezing    Comfort = "freezing"
	ComfortVeryCold    Comfort = "very_cold"
	ComfortCold        Comfort = "cold"
	ComfortCool        Comfort = "cool"
	ComfortMild        Comfort = "mild"
	ComfortComfortable Comfort = "comfortable"
	ComfortWarm        Comfort = "warm"
	ComfortHot         Comfort = "hot"
	ComfortVeryHot     Comfort = "very_hot"
)

// Precipitation classifies the active precipitation, if any.
type Precipitation string

const (
	PrecipRainy  Precipitation = "rainy"
	PrecipSnowy  Precipitation = "snowy"
	PrecipStormy Precipitation = "stormy"
	PrecipDry    Precipitation = "dry"
)

// Trend describes the short-term temperature direction.
type Trend string

const (
	TrendWarmingUp   Trend = "warming_up"
	TrendCoolingDown Trend = "cooling_down"
	TrendStable      Trend = "stable"
)

// WeatherContext is the per-query interpretation of a snapshot that drives
// response text. It is built fresh for each chat turn and never persisted.
type WeatherContext struct {
	Location      string
	Temperature   float64
	FeelsLike     float64
	Condition     string // human-readable description
	ConditionMain string // lower-cased condition tag
	Humidity      float64
	WindSpeed     float64
	VisibilityKM  float64
	IsDay         bool
	Comfort       Comfort
	Precipitation Precipitation
	Trend         Trend  // empty unless at least two daily aggregates exist
	AnalysisDate  string // YYYY-MM-DD when built from a daily aggregate
}

// AnalyzeContext derives a WeatherContext from a snapshot. When targetDate
// matches one of the daily aggregates the context is built from that day
// (the aggregate's average stands in for both temperature and feels-like);
// otherwise it reflects the current conditions.
func AnalyzeContext(snap forecast.WeatherSnapshot, location, targetDate string) WeatherContext {
	ctx := WeatherContext{Location: location}

	var selected *forecast.DailyAggregate
	if targetDate != "" {
		for i := range snap.Daily {
			if snap.Daily[i].Date == targetDate {
				selected = &snap.Daily[i]
				break
			}
		}
	}

	if selected != nil {
		ctx.Temperature = selected.TempAvg
		ctx.FeelsLike = selected.TempAvg
		ctx.Condition = selected.Description
		ctx.ConditionMain = strings.ToLower(selected.Condition)
		ctx.Humidity = snap.Current.Humidity
		ctx.WindSpeed = snap.Current.WindSpeed
		ctx.VisibilityKM = snap.Current.VisibilityKM
		ctx.IsDay = true
		ctx.AnalysisDate = selected.Date
	} else {
		cur := snap.Current
		ctx.Temperature = cur.Temperature
		ctx.FeelsLike = cur.FeelsLike
		ctx.Condition = cur.Description
		ctx.ConditionMain = strings.ToLower(cur.Condition)
		ctx.Humidity = cur.Humidity
		ctx.WindSpeed = cur.WindSpeed
		ctx.VisibilityKM = cur.VisibilityKM
		hour := cur.Timestamp.Hour()
		ctx.IsDay = hour >= 6 && hour < 18
	}

	ctx.Comfort = classifyComfort(ctx.Temperature)
	ctx.Precipitation = classifyPrecipitation(ctx.ConditionMain)
	ctx.Trend = classifyTrend(snap.Daily)

	return ctx
}

func classifyComfort(temp float64) Comfort {
	switch {
	case temp < 0:
		return ComfortFreezing
	case temp < 5:
		return ComfortVeryCold
	case temp < 10:
		return ComfortCold
	case temp < 15:
		return ComfortCool
	case temp < 20:
		return ComfortMild
	case temp < 25:
		return ComfortComfortable
	case temp < 30:
		return ComfortWarm
	case temp < 35:
		return ComfortHot
	default:
		return ComfortVeryHot
	}
}

// classifyPrecipitation maps a lower-cased condition tag to a precipitation
// class. Rain and drizzle are checked before thunder/storm, so a condition
// carrying both reads as rainy.
func classifyPrecipitation(conditionMain string) Precipitation {
	switch {
	case common.HasAny(conditionMain, "rain", "drizzle"):
		return PrecipRainy
	case strings.Contains(conditionMain, "snow"):
		return PrecipSnowy
	case common.HasAny(conditionMain, "thunder", "storm"):
		return PrecipStormy
	default:
		return PrecipDry
	}
}

func classifyTrend(daily []forecast.DailyAggregate) Trend {
	if len(daily) < 2 {
		return ""
	}
	diff := daily[1].TempAvg - daily[0].TempAvg
	switch {
	case diff > 3:
		return TrendWarmingUp
	case diff < -3:
		return TrendCoolingDown
	default:
		return TrendStable
	}
}
