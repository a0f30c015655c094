package chat

import (
	"regexp"
	"strings"
	"time"

	"weather-companion/internal/common"
	"weather-companion/internal/forecast"
)

// Intent is the topic category inferred from a free-text question.
type Intent string

const (
	IntentClothing      Intent = "clothing"
	IntentPrecipitation Intent = "precipitation"
	IntentActivity      Intent = "activity"
	IntentTravel        Intent = "travel"
	IntentTemperature   Intent = "temperature"
	IntentForecast      Intent = "forecast"
	IntentHumidity      Intent = "humidity"
	IntentGeneral       Intent = "general"
)

// ParsedQuery is the outcome of classifying one chat message.
type ParsedQuery struct {
	Location string // location phrase extracted from the message, if any
	Date     string // relative date resolved to YYYY-MM-DD, if any
	Intent   Intent
	Text     string // lower-cased source text
}

// locationPattern matches a preposition followed by a location phrase. The
// phrase ends at a temporal/connective word, sentence punctuation, or end
// of input; the terminator is consumed rather than looked ahead at (RE2
// has no lookahead), which is fine since only the capture group is used.
var locationPattern = regexp.MustCompile(
	`(?i)\b(?:in|at|for|to)\s+([A-Za-z0-9\s,.'-]{2,60}?)(?:\s+(?:today|tomorrow|on|this|next)\b|[?.!,]|$)`)

var (
	tomorrowPattern = regexp.MustCompile(`(?i)\btomorrow\b`)
	todayPattern    = regexp.MustCompile(`(?i)\btoday\b`)
	dateWordPattern = regexp.MustCompile(`(?i)\b(?:today|tomorrow)\b`)
)

// intentRule pairs a topic with the keywords that select it. Rules are
// evaluated top to bottom; the first hit wins.
type intentRule struct {
	intent   Intent
	keywords []string
}

var intentRules = []intentRule{
	{IntentClothing, []string{"wear", "clothes", "clothing", "dress", "outfit"}},
	{IntentPrecipitation, []string{"rain", "umbrella", "wet", "precipitation"}},
	{IntentActivity, []string{"activity", "activities", "do", "picnic", "outdoor", "visit"}},
	{IntentTravel, []string{"travel", "drive", "driving", "flight", "transport"}},
	{IntentTemperature, []string{"temperature", "temp", "hot", "cold", "warm"}},
	{IntentForecast, []string{"forecast", "tomorrow", "next", "future"}},
	{IntentHumidity, []string{"humid", "humidity"}},
}

// Classify extracts the location phrase, relative date, and topic intent
// from a free-text message.
func Classify(message string) ParsedQuery {
	return classifyAt(message, time.Now())
}

func classifyAt(message string, now time.Time) ParsedQuery {
	q := ParsedQuery{
		Intent: IntentGeneral,
		Text:   strings.ToLower(strings.TrimSpace(message)),
	}

	if m := locationPattern.FindStringSubmatch(message); m != nil {
		loc := strings.Trim(strings.TrimSpace(m[1]), ".,!?")
		loc = strings.TrimSpace(dateWordPattern.ReplaceAllString(loc, ""))
		q.Location = loc
	}

	// Tomorrow takes precedence over today when both appear.
	if tomorrowPattern.MatchString(message) {
		q.Date = now.AddDate(0, 0, 1).Format(forecast.DateLayout)
	} else if todayPattern.MatchString(message) {
		q.Date = now.Format(forecast.DateLayout)
	}

	for _, rule := range intentRules {
		if common.HasAny(q.Text, rule.keywords...) {
			q.Intent = rule.intent
			break
		}
	}

	return q
}
