package forecast

import (
	"testing"
	"time"
)

func floatPtr(v float64) *float64 { return &v }

func validCurrent() RawCurrent {
	return RawCurrent{
		Timestamp:   time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC).Unix(),
		Temp:        floatPtr(22.0),
		FeelsLike:   23.5,
		Humidity:    50,
		Pressure:    1013,
		VisibilityM: floatPtr(8000),
		WindSpeed:   5,
		Conditions:  []RawCondition{{Main: "Clear", Description: "clear sky"}},
	}
}

func sample(date string, hour int, temp float64, main, desc string) RawSample {
	day, _ := time.Parse(DateLayout, date)
	ts := day.Add(time.Duration(hour) * time.Hour)
	return RawSample{
		Timestamp:  ts.Unix(),
		DateText:   ts.Format("2006-01-02 15:04:05"),
		Temp:       temp,
		Conditions: []RawCondition{{Main: main, Description: desc}},
	}
}

func TestNormalizeAggregatesByDate(t *testing.T) {
	samples := []RawSample{
		sample("2025-06-10", 9, 18, "Clouds", "scattered clouds"),
		sample("2025-06-10", 12, 24, "Clear", "clear sky"),
		sample("2025-06-10", 15, 21, "Clear", "clear sky"),
		sample("2025-06-11", 12, 26, "Rain", "light rain"),
	}

	snap, err := Normalize(validCurrent(), samples, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(snap.Daily) != 2 {
		t.Fatalf("expected 2 daily aggregates, got %d", len(snap.Daily))
	}

	first := snap.Daily[0]
	if first.Date != "2025-06-10" {
		t.Errorf("expected date 2025-06-10, got %s", first.Date)
	}
	if first.TempMin != 18 || first.TempMax != 24 || first.TempAvg != 21 {
		t.Errorf("unexpected min/max/avg: %v/%v/%v", first.TempMin, first.TempMax, first.TempAvg)
	}
	// Condition comes from the chronologically first sample of the day.
	if first.Condition != "Clouds" {
		t.Errorf("expected condition from first sample, got %s", first.Condition)
	}

	if snap.Daily[1].Date != "2025-06-11" || snap.Daily[1].Condition != "Rain" {
		t.Errorf("unexpected second aggregate: %+v", snap.Daily[1])
	}
}

func TestNormalizeInvariants(t *testing.T) {
	var samples []RawSample
	// Seven distinct dates, three samples each.
	for day := 10; day < 17; day++ {
		date := time.Date(2025, 6, day, 0, 0, 0, 0, time.UTC).Format(DateLayout)
		samples = append(samples,
			sample(date, 6, float64(10+day), "Clear", "clear sky"),
			sample(date, 12, float64(16+day), "Clear", "clear sky"),
			sample(date, 18, float64(13+day), "Clear", "clear sky"),
		)
	}

	snap, err := Normalize(validCurrent(), samples, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(snap.Daily) > 5 {
		t.Fatalf("daily length %d exceeds forecast horizon", len(snap.Daily))
	}

	for i, d := range snap.Daily {
		if d.TempMin > d.TempAvg || d.TempAvg > d.TempMax {
			t.Errorf("aggregate %d violates min<=avg<=max: %+v", i, d)
		}
		if i > 0 && snap.Daily[i-1].Date >= d.Date {
			t.Errorf("dates not strictly increasing at %d: %s >= %s", i, snap.Daily[i-1].Date, d.Date)
		}
	}
}

func TestNormalizeWindowFiltering(t *testing.T) {
	samples := []RawSample{
		sample("2025-06-10", 12, 20, "Clear", "clear sky"),
		sample("2025-06-11", 12, 21, "Clear", "clear sky"),
		sample("2025-06-12", 12, 22, "Clear", "clear sky"),
	}

	window := &DateRange{Start: "2025-06-11", End: "2025-06-12"}
	snap, err := Normalize(validCurrent(), samples, window)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(snap.Daily) != 2 {
		t.Fatalf("expected 2 aggregates inside window, got %d", len(snap.Daily))
	}
	for _, d := range snap.Daily {
		if d.Date < window.Start || d.Date > window.End {
			t.Errorf("date %s outside window", d.Date)
		}
	}
	if snap.Range == nil || snap.Range.Start != "2025-06-11" {
		t.Errorf("expected requested range to be recorded, got %+v", snap.Range)
	}
}

func TestNormalizeWindowFailOpen(t *testing.T) {
	samples := []RawSample{
		sample("2025-06-10", 12, 20, "Clear", "clear sky"),
		sample("2025-06-11", 12, 21, "Clear", "clear sky"),
	}

	// Unparseable window must not filter anything.
	window := &DateRange{Start: "not-a-date", End: "2025-06-10"}
	snap, err := Normalize(validCurrent(), samples, window)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Daily) != 2 {
		t.Fatalf("fail-open window should keep all samples, got %d aggregates", len(snap.Daily))
	}
}

func TestNormalizeMissingMandatoryFields(t *testing.T) {
	noTemp := validCurrent()
	noTemp.Temp = nil
	if _, err := Normalize(noTemp, nil, nil); err != ErrDataUnavailable {
		t.Errorf("expected ErrDataUnavailable for missing temperature, got %v", err)
	}

	noConditions := validCurrent()
	noConditions.Conditions = nil
	if _, err := Normalize(noConditions, nil, nil); err != ErrDataUnavailable {
		t.Errorf("expected ErrDataUnavailable for missing conditions, got %v", err)
	}
}

func TestNormalizeVisibility(t *testing.T) {
	cur := validCurrent()
	snap, err := Normalize(cur, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Current.VisibilityKM != 8 {
		t.Errorf("expected visibility 8 km, got %v", snap.Current.VisibilityKM)
	}

	cur.VisibilityM = nil
	snap, err = Normalize(cur, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Current.VisibilityKM != 10 {
		t.Errorf("expected default visibility 10 km, got %v", snap.Current.VisibilityKM)
	}
}
