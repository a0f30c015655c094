package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"weather-companion/internal/forecast"
)

const (
	currentURL   = "https://api.openweathermap.org/data/2.5/weather"
	fiveDayURL   = "https://api.openweathermap.org/data/2.5/forecast"
	DefaultUnits = "metric"
)

var errNoAPIKey = errors.New("openweather api key is not configured")

// OpenWeatherProvider fetches current conditions and the 5-day/3-hour
// forecast from OpenWeatherMap and hands back the raw payloads for
// normalization.
type OpenWeatherProvider struct {
	name   string
	apiKey string
	http   *resilientClient
}

func NewOpenWeatherProvider(client *http.Client, apiKey string) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:   "openweathermap",
		apiKey: apiKey,
		http:   newResilientClient(client, "openweather"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// Fetch retrieves both the current-conditions and forecast payloads for
// the given coordinates.
func (p *OpenWeatherProvider) Fetch(ctx context.Context, lat, lon float64, units string) (forecast.RawCurrent, []forecast.RawSample, error) {
	if p.apiKey == "" {
		return forecast.RawCurrent{}, nil, errNoAPIKey
	}
	if units == "" {
		units = DefaultUnits
	}

	current, err := p.fetchCurrent(ctx, lat, lon, units)
	if err != nil {
		return forecast.RawCurrent{}, nil, fmt.Errorf("fetch current conditions: %w", err)
	}

	samples, err := p.fetchForecast(ctx, lat, lon, units)
	if err != nil {
		return forecast.RawCurrent{}, nil, fmt.Errorf("fetch forecast: %w", err)
	}

	return current, samples, nil
}

func (p *OpenWeatherProvider) fetchCurrent(ctx context.Context, lat, lon float64, units string) (forecast.RawCurrent, error) {
	resp, err := p.http.do(ctx, p.requestBuilder(currentURL, lat, lon, units))
	if err != nil {
		return forecast.RawCurrent{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Dt   int64 `json:"dt"`
		Main *struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  float64 `json:"humidity"`
			Pressure  float64 `json:"pressure"`
		} `json:"main"`
		Visibility *float64 `json:"visibility"`
		Wind       struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Weather []forecast.RawCondition `json:"weather"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return forecast.RawCurrent{}, err
	}

	raw := forecast.RawCurrent{
		Timestamp:   payload.Dt,
		VisibilityM: payload.Visibility,
		WindSpeed:   payload.Wind.Speed,
		Conditions:  payload.Weather,
	}
	if payload.Main != nil {
		temp := payload.Main.Temp
		raw.Temp = &temp
		raw.FeelsLike = payload.Main.FeelsLike
		raw.Humidity = payload.Main.Humidity
		raw.Pressure = payload.Main.Pressure
	}
	return raw, nil
}

func (p *OpenWeatherProvider) fetchForecast(ctx context.Context, lat, lon float64, units string) ([]forecast.RawSample, error) {
	resp, err := p.http.do(ctx, p.requestBuilder(fiveDayURL, lat, lon, units))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		List []struct {
			Dt   int64  `json:"dt"`
			Txt  string `json:"dt_txt"`
			Main struct {
				Temp float64 `json:"temp"`
			} `json:"main"`
			Weather []forecast.RawCondition `json:"weather"`
		} `json:"list"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	samples := make([]forecast.RawSample, 0, len(payload.List))
	for _, item := range payload.List {
		samples = append(samples, forecast.RawSample{
			Timestamp:  item.Dt,
			DateText:   item.Txt,
			Temp:       item.Main.Temp,
			Conditions: item.Weather,
		})
	}
	return samples, nil
}

func (p *OpenWeatherProvider) requestBuilder(baseURL string, lat, lon float64, units string) func() (*http.Request, error) {
	return func() (*http.Request, error) {
		values := url.Values{}
		values.Set("appid", p.apiKey)
		values.Set("units", units)
		values.Set("lat", fmt.Sprintf("%f", lat))
		values.Set("lon", fmt.Sprintf("%f", lon))

		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s?%s", baseURL, values.Encode()), nil)
	}
}
