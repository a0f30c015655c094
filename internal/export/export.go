package export

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"weather-companion/internal/store"
)

// AsJSON returns the record's stored snapshot, ready for JSON serialization.
func AsJSON(rec *store.WeatherRequest) interface{} {
	return rec.Snapshot()
}

// AsCSV renders the record's current conditions and daily aggregates as a
// flat CSV table.
func AsCSV(rec *store.WeatherRequest) (string, error) {
	snap := rec.Snapshot()

	var buf strings.Builder
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"type", "timestamp", "temp", "min", "max", "condition"}); err != nil {
		return "", err
	}

	cur := snap.Current
	if err := w.Write([]string{
		"current",
		cur.Timestamp.Format(time.RFC3339),
		formatFloat(cur.Temperature),
		"", "",
		cur.Description,
	}); err != nil {
		return "", err
	}

	for _, d := range snap.Daily {
		if err := w.Write([]string{
			"daily",
			d.Date,
			formatFloat(d.TempAvg),
			formatFloat(d.TempMin),
			formatFloat(d.TempMax),
			d.Description,
		}); err != nil {
			return "", err
		}
	}

	w.Flush()
	return buf.String(), w.Error()
}

// AsMarkdown renders the record as a small Markdown report.
func AsMarkdown(rec *store.WeatherRequest) string {
	snap := rec.Snapshot()

	var b strings.Builder
	fmt.Fprintf(&b, "# Weather for %s\n\n", rec.ResolvedName)
	fmt.Fprintf(&b, "**Current temp:** %s°C (%s)\n\n", formatFloat(snap.Current.Temperature), snap.Current.Description)

	if rec.Summary != "" {
		fmt.Fprintf(&b, "%s\n\n", rec.Summary)
	}

	b.WriteString("## 5-day forecast\n\n")
	for _, d := range snap.Daily {
		fmt.Fprintf(&b, "- %s: %s, min %s°C, max %s°C\n",
			d.Date, d.Description, formatFloat(d.TempMin), formatFloat(d.TempMax))
	}
	return b.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
