package chat

import (
	"strings"
	"testing"

	"weather-companion/internal/forecast"
)

func comfortableContext() WeatherContext {
	return WeatherContext{
		Location:      "Paris",
		Temperature:   22,
		FeelsLike:     22,
		Condition:     "clear sky",
		ConditionMain: "clear",
		Humidity:      50,
		WindSpeed:     5,
		VisibilityKM:  10,
		IsDay:         true,
		Comfort:       ComfortComfortable,
		Precipitation: PrecipDry,
	}
}

func TestClothingReplyComfortable(t *testing.T) {
	reply := ComposeResponse(comfortableContext(), ParsedQuery{Intent: IntentClothing}, nil, nil)

	if !strings.Contains(reply, clothingByComfort[ComfortComfortable]) {
		t.Errorf("expected comfortable-tier clothing phrase, got %q", reply)
	}
	if strings.Contains(reply, "umbrella") || strings.Contains(reply, "waterproof") {
		t.Errorf("unexpected precipitation gear in dry conditions: %q", reply)
	}
	if strings.Contains(reply, "wind") {
		t.Errorf("unexpected wind caveat at 5 m/s: %q", reply)
	}
}

func TestClothingReplyRainAndWind(t *testing.T) {
	ctx := comfortableContext()
	ctx.Precipitation = PrecipRainy
	ctx.WindSpeed = 12

	reply := ComposeResponse(ctx, ParsedQuery{Intent: IntentClothing}, nil, nil)
	if !strings.Contains(reply, "waterproof jacket or umbrella") {
		t.Errorf("expected rain gear addition, got %q", reply)
	}
	if !strings.Contains(reply, "Moderate wind") {
		t.Errorf("expected moderate wind caveat, got %q", reply)
	}

	ctx.WindSpeed = 22
	reply = ComposeResponse(ctx, ParsedQuery{Intent: IntentClothing}, nil, nil)
	if !strings.Contains(reply, "windbreaker") {
		t.Errorf("expected strong wind caveat, got %q", reply)
	}
}

func TestPrecipitationReply(t *testing.T) {
	ctx := comfortableContext()
	ctx.Precipitation = PrecipRainy
	ctx.Condition = "light rain"

	reply := ComposeResponse(ctx, ParsedQuery{Intent: IntentPrecipitation}, nil, nil)
	if !strings.Contains(reply, "Yes!") || !strings.Contains(reply, "umbrella") {
		t.Errorf("expected umbrella advisory, got %q", reply)
	}

	reply = ComposeResponse(comfortableContext(), ParsedQuery{Intent: IntentPrecipitation}, nil, nil)
	if !strings.Contains(reply, "leave the umbrella at home") {
		t.Errorf("expected dry reassurance, got %q", reply)
	}
}

func TestActivityReplyByConditions(t *testing.T) {
	stormy := comfortableContext()
	stormy.Precipitation = PrecipStormy
	reply := ComposeResponse(stormy, ParsedQuery{Intent: IntentActivity}, nil, nil)
	if !strings.Contains(reply, "indoor activities") {
		t.Errorf("expected indoor suggestion for storms, got %q", reply)
	}

	cold := comfortableContext()
	cold.Comfort = ComfortFreezing
	reply = ComposeResponse(cold, ParsedQuery{Intent: IntentActivity}, nil, nil)
	if !strings.Contains(reply, "indoor attractions") {
		t.Errorf("expected indoor attractions for freezing weather, got %q", reply)
	}

	reply = ComposeResponse(comfortableContext(), ParsedQuery{Intent: IntentActivity}, nil, nil)
	if !strings.Contains(reply, "outdoor activities") {
		t.Errorf("expected outdoor suggestion, got %q", reply)
	}
}

func TestTravelReplyVisibilityTiers(t *testing.T) {
	foggy := comfortableContext()
	foggy.VisibilityKM = 0.5
	reply := ComposeResponse(foggy, ParsedQuery{Intent: IntentTravel}, nil, nil)
	if !strings.Contains(reply, "Poor visibility") {
		t.Errorf("expected poor visibility warning, got %q", reply)
	}

	hazy := comfortableContext()
	hazy.VisibilityKM = 3
	reply = ComposeResponse(hazy, ParsedQuery{Intent: IntentTravel}, nil, nil)
	if !strings.Contains(reply, "Reduced visibility") {
		t.Errorf("expected reduced visibility warning, got %q", reply)
	}

	reply = ComposeResponse(comfortableContext(), ParsedQuery{Intent: IntentTravel}, nil, nil)
	if !strings.Contains(reply, "Good visibility") {
		t.Errorf("expected good visibility note, got %q", reply)
	}
}

func TestForecastReplyWithRange(t *testing.T) {
	daily := []forecast.DailyAggregate{
		{Date: "2025-06-10", TempMin: 15, TempMax: 25, Description: "clear sky"},
		{Date: "2025-06-11", TempMin: 12, TempMax: 20, Description: "light rain"},
	}
	window := &forecast.DateRange{Start: "2025-06-10", End: "2025-06-11"}

	reply := ComposeResponse(comfortableContext(), ParsedQuery{Intent: IntentForecast}, daily, window)
	if !strings.Contains(reply, "from 2025-06-10 to 2025-06-11") {
		t.Errorf("expected range header, got %q", reply)
	}
	if !strings.Contains(reply, "2025-06-11: light rain") {
		t.Errorf("expected per-day entries, got %q", reply)
	}
}

func TestForecastReplyTomorrow(t *testing.T) {
	daily := []forecast.DailyAggregate{
		{Date: "2025-06-10", TempMin: 15, TempMax: 25, Description: "clear sky"},
		{Date: "2025-06-11", TempMin: 12, TempMax: 20, Description: "light rain"},
	}

	q := ParsedQuery{Intent: IntentForecast, Text: "what about tomorrow"}
	reply := ComposeResponse(comfortableContext(), q, daily, nil)
	if !strings.Contains(reply, "on 2025-06-11") || !strings.Contains(reply, "light rain") {
		t.Errorf("expected tomorrow's entry, got %q", reply)
	}
}

func TestForecastReplyDefaultListing(t *testing.T) {
	daily := []forecast.DailyAggregate{
		{Date: "2025-06-10", TempMin: 15, TempMax: 25, Description: "clear sky"},
		{Date: "2025-06-11", TempMin: 12, TempMax: 20, Description: "light rain"},
		{Date: "2025-06-12", TempMin: 13, TempMax: 21, Description: "few clouds"},
		{Date: "2025-06-13", TempMin: 14, TempMax: 22, Description: "overcast"},
	}

	reply := ComposeResponse(comfortableContext(), ParsedQuery{Intent: IntentForecast}, daily, nil)
	if !strings.Contains(reply, "Today:") || !strings.Contains(reply, "Tomorrow:") || !strings.Contains(reply, "Day 3:") {
		t.Errorf("expected labeled three-day listing, got %q", reply)
	}
	if strings.Contains(reply, "Day 4") {
		t.Errorf("listing should stop at three days, got %q", reply)
	}
}

func TestForecastReplyNoDaily(t *testing.T) {
	reply := ComposeResponse(comfortableContext(), ParsedQuery{Intent: IntentForecast}, nil, nil)
	if !strings.Contains(reply, "Current conditions") {
		t.Errorf("expected current-conditions fallback, got %q", reply)
	}
}

func TestHumidityReplyTiers(t *testing.T) {
	tests := []struct {
		humidity float64
		want     string
	}{
		{85, "very humid"},
		{70, "humid"},
		{50, "comfortable"},
		{20, "dry"},
	}

	for _, tt := range tests {
		ctx := comfortableContext()
		ctx.Humidity = tt.humidity
		reply := ComposeResponse(ctx, ParsedQuery{Intent: IntentHumidity}, nil, nil)
		if !strings.Contains(reply, "that feels "+tt.want) {
			t.Errorf("humidity %v: expected %q, got %q", tt.humidity, tt.want, reply)
		}
	}
}

func TestGeneralReplyPromptsFollowUps(t *testing.T) {
	reply := ComposeResponse(comfortableContext(), ParsedQuery{Intent: IntentGeneral}, nil, nil)
	if !strings.Contains(reply, "clothing, activities, or travel") {
		t.Errorf("expected follow-up prompt, got %q", reply)
	}
}

func TestDateQualifierAppended(t *testing.T) {
	q := ParsedQuery{Intent: IntentClothing, Date: "2025-06-11"}
	reply := ComposeResponse(comfortableContext(), q, nil, nil)
	if !strings.Contains(reply, "(for 2025-06-11)") {
		t.Errorf("expected date qualifier, got %q", reply)
	}

	window := &forecast.DateRange{Start: "2025-06-10", End: "2025-06-12"}
	reply = ComposeResponse(comfortableContext(), ParsedQuery{Intent: IntentClothing}, nil, window)
	if !strings.Contains(reply, "(for your selected period 2025-06-10 to 2025-06-12)") {
		t.Errorf("expected range qualifier, got %q", reply)
	}
}
