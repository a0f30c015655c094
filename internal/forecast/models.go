package forecast

import "time"

// DateLayout is the calendar-date format used throughout: forecast sample
// date strings, stored request ranges, and chat date context.
const DateLayout = "2006-01-02"

// RawCondition is a single weather tag as delivered by the provider.
type RawCondition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

// RawCurrent is the provider's current-conditions payload before
// normalization. Optional fields are pointers so a missing value can be
// told apart from zero.
type RawCurrent struct {
	Timestamp   int64          `json:"dt"`
	Temp        *float64       `json:"temp"`
	FeelsLike   float64        `json:"feels_like"`
	Humidity    float64        `json:"humidity"`
	Pressure    float64        `json:"pressure"`
	VisibilityM *float64       `json:"visibility"` // meters
	WindSpeed   float64        `json:"wind_speed"` // m/s
	Conditions  []RawCondition `json:"weather"`
}

// RawSample is one 3-hourly forecast sample. DateText carries the
// provider's "YYYY-MM-DD HH:MM:SS" timestamp string; the first 10
// characters identify the sample's calendar date.
type RawSample struct {
	Timestamp  int64          `json:"dt"`
	DateText   string         `json:"dt_txt"`
	Temp       float64        `json:"temp"`
	Conditions []RawCondition `json:"weather"`
}

// CurrentConditions is the normalized view of the current weather.
type CurrentConditions struct {
	Timestamp    time.Time `json:"timestamp"`
	Temperature  float64   `json:"temperatureC"`
	FeelsLike    float64   `json:"feelsLikeC"`
	Humidity     float64   `json:"humidityPercent"`
	Pressure     float64   `json:"pressureHpa"`
	VisibilityKM float64   `json:"visibilityKm"`
	WindSpeed    float64   `json:"windSpeed"`
	Condition    string    `json:"condition"`
	Description  string    `json:"description"`
}

// DailyAggregate is a per-calendar-date rollup of the 3-hourly samples.
type DailyAggregate struct {
	Date        string    `json:"date"` // YYYY-MM-DD
	Timestamp   time.Time `json:"timestamp"`
	TempMin     float64   `json:"tempMinC"`
	TempMax     float64   `json:"tempMaxC"`
	TempAvg     float64   `json:"tempAvgC"`
	Condition   string    `json:"condition"`
	Description string    `json:"description"`
}

// DateRange is an inclusive calendar-date window in DateLayout form.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// WeatherSnapshot is the normalized, immutable weather view produced by
// one provider fetch: current conditions plus up to five daily aggregates.
type WeatherSnapshot struct {
	Current CurrentConditions `json:"current"`
	Daily   []DailyAggregate  `json:"daily"`
	Range   *DateRange        `json:"requestedRange,omitempty"`
}
