package chat

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"weather-companion/internal/forecast"
)

// clothingByComfort is the base garment recommendation per comfort tier.
var clothingByComfort = map[Comfort]string{
	ComfortFreezing:    "heavy winter coat, thermal layers, insulated boots, warm gloves, and a winter hat",
	ComfortVeryCold:    "thick winter jacket, warm layers, winter boots, gloves, and a hat",
	ComfortCold:        "warm coat or heavy jacket, long pants, closed shoes, and maybe gloves",
	ComfortCool:        "light jacket or sweater, long pants, and closed shoes",
	ComfortMild:        "light sweater or long sleeves, comfortable pants",
	ComfortComfortable: "t-shirt with light jacket/cardigan option, comfortable pants or shorts",
	ComfortWarm:        "light t-shirt, shorts or light pants, breathable fabrics",
	ComfortHot:         "lightweight, breathable clothing, shorts, sandals, and sun protection",
	ComfortVeryHot:     "minimal lightweight clothing, sun hat, and stay hydrated",
}

// ComposeResponse produces one reply string for the classified query.
// Composition never fails: any panic while building a reply is swapped for
// a generic apology naming the location.
func ComposeResponse(ctx WeatherContext, q ParsedQuery, daily []forecast.DailyAggregate, window *forecast.DateRange) (reply string) {
	dateInfo := dateQualifier(ctx, q, window)

	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR: response composition failed: %v", r)
			reply = fmt.Sprintf(
				"Sorry, I'm having trouble processing your request. Please try asking a different question about weather in %s%s.",
				ctx.Location, dateInfo)
		}
	}()

	switch q.Intent {
	case IntentClothing:
		return clothingAdvice(ctx) + dateInfo
	case IntentPrecipitation:
		return precipitationAdvice(ctx, dateInfo)
	case IntentActivity:
		return activityAdvice(ctx) + dateInfo
	case IntentTravel:
		return travelAdvice(ctx) + dateInfo
	case IntentTemperature:
		return fmt.Sprintf(
			"In %s%s, expect around %s°C (feels like %s°C) with %s. Humidity around %s%% and wind speed %s m/s.",
			ctx.Location, dateInfo, num(ctx.Temperature), num(ctx.FeelsLike), ctx.Condition,
			num(ctx.Humidity), num(ctx.WindSpeed))
	case IntentForecast:
		return forecastReply(ctx, q, daily, window)
	case IntentHumidity:
		return humidityAdvice(ctx, dateInfo)
	default:
		return fmt.Sprintf(
			"Weather in %s%s: around %s°C (feels like %s°C) with %s. Humidity: %s%%, Wind: %s m/s. Ask me about clothing, activities, or travel advice for this location!",
			ctx.Location, dateInfo, num(ctx.Temperature), num(ctx.FeelsLike), ctx.Condition,
			num(ctx.Humidity), num(ctx.WindSpeed))
	}
}

// dateQualifier builds the trailing date/range note appended to replies.
func dateQualifier(ctx WeatherContext, q ParsedQuery, window *forecast.DateRange) string {
	if window != nil && window.Start != "" && window.End != "" {
		return fmt.Sprintf(" (for your selected period %s to %s)", window.Start, window.End)
	}
	if q.Date != "" {
		return fmt.Sprintf(" (for %s)", q.Date)
	}
	if ctx.AnalysisDate != "" {
		return fmt.Sprintf(" (for %s)", ctx.AnalysisDate)
	}
	return ""
}

func clothingAdvice(ctx WeatherContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "For %s at %s°C (feels like %s°C) with %s: ",
		ctx.Location, num(ctx.Temperature), num(ctx.FeelsLike), ctx.Condition)
	b.WriteString(clothingByComfort[ctx.Comfort])

	switch ctx.Precipitation {
	case PrecipRainy:
		b.WriteString(". Don't forget a waterproof jacket or umbrella and waterproof shoes")
	case PrecipSnowy:
		b.WriteString(". Add waterproof boots and extra warm layers for snow")
	case PrecipStormy:
		b.WriteString(". Stay indoors if possible, or wear protective rain gear")
	}

	if ctx.WindSpeed > 20 {
		fmt.Fprintf(&b, ". It's quite windy (%s m/s), so consider a windbreaker", num(ctx.WindSpeed))
	} else if ctx.WindSpeed > 10 {
		fmt.Fprintf(&b, ". Moderate wind (%s m/s), so avoid loose clothing", num(ctx.WindSpeed))
	}

	return b.String()
}

func precipitationAdvice(ctx WeatherContext, dateInfo string) string {
	if ctx.Precipitation == PrecipRainy || ctx.Precipitation == PrecipStormy {
		return fmt.Sprintf(
			"Yes! It's expected to be %s in %s%s. Definitely bring an umbrella or waterproof jacket. Temperature around %s°C.",
			ctx.Condition, ctx.Location, dateInfo, num(ctx.Temperature))
	}
	return fmt.Sprintf(
		"No rain expected in %s%s - it should be %s at around %s°C. You can leave the umbrella at home!",
		ctx.Location, dateInfo, ctx.Condition, num(ctx.Temperature))
}

func activityAdvice(ctx WeatherContext) string {
	advice := fmt.Sprintf("For activities in %s: ", ctx.Location)

	switch ctx.Precipitation {
	case PrecipStormy:
		return advice + "It's stormy weather - perfect for indoor activities like museums, shopping centers, cafes, or staying cozy at home."
	case PrecipRainy:
		return advice + fmt.Sprintf(
			"With %s, consider indoor activities or outdoor activities with rain protection. Museums, shopping, or covered markets would be great.",
			ctx.Condition)
	case PrecipSnowy:
		return advice + "Great weather for winter activities like skiing, snowboarding, or building snowmen! Or enjoy warm indoor activities."
	}

	switch ctx.Comfort {
	case ComfortVeryHot, ComfortHot:
		return advice + "It's quite hot - perfect for swimming, water sports, or indoor activities during peak hours. Seek shade and stay hydrated."
	case ComfortComfortable, ComfortWarm:
		return advice + "Excellent weather for outdoor activities like hiking, picnics, sports, cycling, or exploring the city!"
	case ComfortMild, ComfortCool:
		return advice + "Good weather for outdoor activities with proper clothing - hiking, walking tours, outdoor markets, or sightseeing."
	case ComfortCold, ComfortVeryCold, ComfortFreezing:
		return advice + "Bundle up for outdoor activities, or enjoy indoor attractions like museums, galleries, cafes, or heated shopping centers."
	}

	return advice + "Generally good conditions for most activities with appropriate clothing."
}

func travelAdvice(ctx WeatherContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Travel conditions in %s: ", ctx.Location)

	switch {
	case ctx.VisibilityKM < 1:
		b.WriteString("Poor visibility due to fog/weather - exercise caution when driving. ")
	case ctx.VisibilityKM < 5:
		b.WriteString("Reduced visibility - drive carefully and use headlights. ")
	default:
		b.WriteString("Good visibility for travel. ")
	}

	switch ctx.Precipitation {
	case PrecipStormy:
		b.WriteString("Severe weather - avoid unnecessary travel, flights may be delayed.")
	case PrecipRainy:
		b.WriteString("Wet roads - drive slowly and allow extra time for travel.")
	case PrecipSnowy:
		b.WriteString("Snow conditions - use winter tires, carry emergency supplies.")
	}

	if ctx.WindSpeed > 25 {
		fmt.Fprintf(&b, " Very windy conditions (%s m/s) - high vehicles should be cautious.", num(ctx.WindSpeed))
	} else if ctx.WindSpeed > 15 {
		fmt.Fprintf(&b, " Windy (%s m/s) - be careful with lightweight vehicles.", num(ctx.WindSpeed))
	}

	return b.String()
}

func forecastReply(ctx WeatherContext, q ParsedQuery, daily []forecast.DailyAggregate, window *forecast.DateRange) string {
	if window != nil && window.Start != "" && window.End != "" && len(daily) > 0 {
		entries := make([]string, 0, len(daily))
		for _, d := range daily {
			entries = append(entries, fmt.Sprintf("%s: %s (%s°C-%s°C)",
				d.Date, d.Description, num(d.TempMin), num(d.TempMax)))
		}
		return fmt.Sprintf("Forecast for %s from %s to %s: %s",
			ctx.Location, window.Start, window.End, strings.Join(entries, "; "))
	}

	var target *forecast.DailyAggregate
	if q.Date != "" {
		for i := range daily {
			if daily[i].Date == q.Date {
				target = &daily[i]
				break
			}
		}
	}
	if target == nil && tomorrowPattern.MatchString(q.Text) && len(daily) >= 2 {
		target = &daily[1]
	}

	if target != nil {
		return fmt.Sprintf("Forecast for %s on %s: %s with temperatures between %s°C and %s°C.",
			ctx.Location, target.Date, target.Description, num(target.TempMin), num(target.TempMax))
	}

	if len(daily) > 0 {
		limit := len(daily)
		if limit > 3 {
			limit = 3
		}
		entries := make([]string, 0, limit)
		for i := 0; i < limit; i++ {
			label := fmt.Sprintf("Day %d", i+1)
			if i == 0 {
				label = "Today"
			} else if i == 1 {
				label = "Tomorrow"
			}
			entries = append(entries, fmt.Sprintf("%s: %s (%s°C-%s°C)",
				label, daily[i].Description, num(daily[i].TempMin), num(daily[i].TempMax)))
		}
		return "Available forecast: " + strings.Join(entries, "; ")
	}

	return fmt.Sprintf("I don't have the forecast for %s right now. Current conditions: %s at %s°C.",
		ctx.Location, ctx.Condition, num(ctx.Temperature))
}

func humidityAdvice(ctx WeatherContext, dateInfo string) string {
	var comfort string
	switch {
	case ctx.Humidity > 80:
		comfort = "very humid"
	case ctx.Humidity > 60:
		comfort = "humid"
	case ctx.Humidity > 30:
		comfort = "comfortable"
	default:
		comfort = "dry"
	}
	return fmt.Sprintf(
		"Humidity in %s%s should be around %s%% - that feels %s. Temperature around %s°C with %s.",
		ctx.Location, dateInfo, num(ctx.Humidity), comfort, num(ctx.Temperature), ctx.Condition)
}

// num renders a float without a fixed precision, so 22 prints as "22" and
// 22.5 as "22.5".
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
