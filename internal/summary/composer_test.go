package summary

import (
	"errors"
	"strings"
	"testing"
	"time"

	"weather-companion/internal/forecast"
)

type fakeSummarizer struct {
	reply string
	err   error
	calls int
	input string
}

func (f *fakeSummarizer) Summarize(text string, maxLen, minLen int) (string, error) {
	f.calls++
	f.input = text
	return f.reply, f.err
}

func testSnapshot() forecast.WeatherSnapshot {
	return forecast.WeatherSnapshot{
		Current: forecast.CurrentConditions{
			Timestamp:   time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC),
			Temperature: 22,
			FeelsLike:   22,
			Humidity:    50,
			Condition:   "Clear",
			Description: "clear sky",
		},
		Daily: []forecast.DailyAggregate{
			{Date: "2025-06-10", TempMin: 15, TempMax: 25, TempAvg: 20, Condition: "Clear", Description: "clear sky"},
			{Date: "2025-06-11", TempMin: 16, TempMax: 26, TempAvg: 21, Condition: "Clouds", Description: "few clouds"},
			{Date: "2025-06-12", TempMin: 17, TempMax: 27, TempAvg: 22, Condition: "Clear", Description: "clear sky"},
		},
	}
}

func TestComposePrefersSummarizer(t *testing.T) {
	fake := &fakeSummarizer{reply: "Condensed summary."}
	c := NewComposer(NewLoader(func() (Summarizer, error) { return fake, nil }))

	out := c.Compose(testSnapshot(), "Paris")
	if out != "Condensed summary." {
		t.Fatalf("expected summarizer output, got %q", out)
	}
	if fake.calls != 1 {
		t.Fatalf("expected one summarizer call, got %d", fake.calls)
	}
	if !strings.Contains(fake.input, "Weather analysis for Paris") {
		t.Errorf("narrative input missing header: %q", fake.input)
	}
	if !strings.Contains(fake.input, "Tomorrow: few clouds") {
		t.Errorf("narrative input missing per-day breakdown: %q", fake.input)
	}
}

func TestComposeFallsBackOnSummarizerError(t *testing.T) {
	fake := &fakeSummarizer{err: errors.New("model overloaded")}
	c := NewComposer(NewLoader(func() (Summarizer, error) { return fake, nil }))

	out := c.Compose(testSnapshot(), "Paris")
	if !strings.Contains(out, "Right now in Paris") {
		t.Errorf("expected deterministic fallback, got %q", out)
	}
}

func TestComposeWithoutSummarizer(t *testing.T) {
	c := NewComposer(NewLoader(func() (Summarizer, error) { return nil, errors.New("no token") }))

	out := c.Compose(testSnapshot(), "Paris")
	if !strings.Contains(out, "Right now in Paris, it's clear sky at 22°C (pleasant weather)") {
		t.Errorf("unexpected fallback text: %q", out)
	}
	if !strings.Contains(out, "Light jacket or sweater should be sufficient") {
		t.Errorf("expected clothing suggestion for 21°C average, got %q", out)
	}
}

func TestComposeEmptySnapshotNeverFails(t *testing.T) {
	c := NewComposer(NewLoader(nil))

	out := c.Compose(forecast.WeatherSnapshot{}, "Nowhere")
	if out == "" {
		t.Fatal("expected a non-empty generic summary")
	}
	if !strings.Contains(out, "Nowhere") {
		t.Errorf("generic summary should name the location, got %q", out)
	}
}

func TestFallbackTrendPhrases(t *testing.T) {
	tests := []struct {
		temps []float64
		want  string
	}{
		{[]float64{10, 11, 14}, "getting warmer"},
		{[]float64{14, 12, 10}, "cooling down"},
		{[]float64{14, 15, 15}, "staying fairly consistent"},
	}

	for _, tt := range tests {
		snap := testSnapshot()
		snap.Daily = snap.Daily[:0]
		for i, temp := range tt.temps {
			snap.Daily = append(snap.Daily, forecast.DailyAggregate{
				Date:    time.Date(2025, 6, 10+i, 0, 0, 0, 0, time.UTC).Format(forecast.DateLayout),
				TempAvg: temp, Condition: "Clear",
			})
		}
		out := fallbackSummary(snap, "Paris")
		if !strings.Contains(out, tt.want) {
			t.Errorf("temps %v: expected %q in %q", tt.temps, tt.want, out)
		}
	}
}

func TestFallbackDominantPattern(t *testing.T) {
	snap := testSnapshot()
	for i := range snap.Daily {
		snap.Daily[i].Condition = "Rain"
	}
	out := fallbackSummary(snap, "Paris")
	if !strings.Contains(out, "several rainy days expected") {
		t.Errorf("expected rainy-pattern phrase, got %q", out)
	}
}

func TestFallbackFeelsLikeCaveat(t *testing.T) {
	snap := testSnapshot()
	snap.Current.FeelsLike = 27
	out := fallbackSummary(snap, "Paris")
	if !strings.Contains(out, "though it feels like 27°C") {
		t.Errorf("expected feels-like caveat, got %q", out)
	}
}

func TestLoaderInitializesOnce(t *testing.T) {
	builds := 0
	loader := NewLoader(func() (Summarizer, error) {
		builds++
		return &fakeSummarizer{reply: "ok"}, nil
	})

	for i := 0; i < 5; i++ {
		if _, ok := loader.Get(); !ok {
			t.Fatal("expected summarizer to be available")
		}
	}
	if builds != 1 {
		t.Fatalf("expected a single initialization, got %d", builds)
	}
}
