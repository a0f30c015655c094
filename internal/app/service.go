package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"weather-companion/internal/chat"
	"weather-companion/internal/forecast"
	"weather-companion/internal/geocode"
	"weather-companion/internal/store"
	"weather-companion/internal/summary"
)

// ErrInvalidDateRange is returned when a request's start date falls after
// its end date.
var ErrInvalidDateRange = errors.New("start date must be before end date")

// WeatherProvider abstracts the external weather data source.
type WeatherProvider interface {
	Name() string
	Fetch(ctx context.Context, lat, lon float64, units string) (forecast.RawCurrent, []forecast.RawSample, error)
}

// Service orchestrates the weather request lifecycle: resolve the
// location, fetch and normalize the forecast, compose a summary, persist
// the record, and answer chat questions over it.
type Service struct {
	store    *store.Database
	geo      geocode.Geocoder
	provider WeatherProvider
	summary  *summary.Composer
	units    string
}

func NewService(db *store.Database, geo geocode.Geocoder, provider WeatherProvider, composer *summary.Composer, units string) *Service {
	return &Service{
		store:    db,
		geo:      geo,
		provider: provider,
		summary:  composer,
		units:    units,
	}
}

// CreateRequest resolves the user's input, fetches and stores a snapshot
// plus narrative summary, and returns the persisted record.
func (s *Service) CreateRequest(ctx context.Context, input, startDate, endDate string) (*store.WeatherRequest, error) {
	input = strings.TrimSpace(input)
	if startDate != "" && endDate != "" && startDate > endDate {
		return nil, ErrInvalidDateRange
	}

	place, err := s.geo.Resolve(ctx, input)
	if err != nil {
		return nil, err
	}

	snap, err := s.fetchSnapshot(ctx, place.Lat, place.Lon, startDate, endDate)
	if err != nil {
		return nil, err
	}

	rec := &store.WeatherRequest{
		UserInput:    input,
		ResolvedName: place.Name,
		Lat:          place.Lat,
		Lon:          place.Lon,
		StartDate:    startDate,
		EndDate:      endDate,
	}
	if err := rec.SetSnapshot(snap); err != nil {
		return nil, err
	}
	rec.Summary = s.summary.Compose(snap, place.Name)

	if err := s.store.Create(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// UpdateRequest revalidates and updates a stored record. A successful
// re-geocode triggers a fresh fetch and summary; a failed one keeps the
// previous location data but still updates the requested range.
func (s *Service) UpdateRequest(ctx context.Context, id, input, startDate, endDate string) (*store.WeatherRequest, error) {
	rec, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	if startDate != "" && endDate != "" && startDate > endDate {
		return nil, ErrInvalidDateRange
	}

	if input = strings.TrimSpace(input); input != "" {
		rec.UserInput = input
	}
	rec.StartDate = startDate
	rec.EndDate = endDate

	place, err := s.geo.Resolve(ctx, rec.UserInput)
	if err != nil {
		log.Printf("WARN: could not re-resolve %q, keeping previous location: %v", rec.UserInput, err)
	} else {
		rec.ResolvedName = place.Name
		rec.Lat = place.Lat
		rec.Lon = place.Lon

		snap, err := s.fetchSnapshot(ctx, rec.Lat, rec.Lon, startDate, endDate)
		if err != nil {
			return nil, err
		}
		if err := rec.SetSnapshot(snap); err != nil {
			return nil, err
		}
		rec.Summary = s.summary.Compose(snap, rec.ResolvedName)
	}

	if err := s.store.Update(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// RefreshRequest re-fetches a stored record's forecast and recomposes its
// summary in place. Used by the background refresh job.
func (s *Service) RefreshRequest(ctx context.Context, rec *store.WeatherRequest) error {
	snap, err := s.fetchSnapshot(ctx, rec.Lat, rec.Lon, rec.StartDate, rec.EndDate)
	if err != nil {
		return err
	}
	if err := rec.SetSnapshot(snap); err != nil {
		return err
	}
	rec.Summary = s.summary.Compose(snap, rec.ResolvedName)
	return s.store.Update(rec)
}

// Chat answers one free-text question against a stored record. A location
// parsed out of the message takes precedence over the record's location
// and triggers a fresh fetch.
func (s *Service) Chat(ctx context.Context, rec *store.WeatherRequest, message string) string {
	q := chat.Classify(message)

	locationName := rec.ResolvedName
	snap := rec.Snapshot()
	window := rec.Range()

	if q.Location != "" && !strings.EqualFold(q.Location, rec.UserInput) {
		place, err := s.geo.Resolve(ctx, q.Location)
		if err != nil {
			return fmt.Sprintf("Sorry, I could not find the location %q. Please check the location name and try again.", q.Location)
		}
		fresh, err := s.fetchSnapshot(ctx, place.Lat, place.Lon, rec.StartDate, rec.EndDate)
		if err != nil {
			return fmt.Sprintf("Sorry, I could not fetch weather data for %s right now. Please try again later.", place.Name)
		}
		locationName = place.Name
		snap = fresh
	}

	// A stored start date stands in when the message names no date.
	if q.Date == "" && rec.StartDate != "" {
		q.Date = rec.StartDate
	}

	wctx := chat.AnalyzeContext(snap, locationName, q.Date)
	return chat.ComposeResponse(wctx, q, snap.Daily, window)
}

// PredictNext projects the next day's average temperature for a stored
// record. The second return value is false when there is too little data.
func (s *Service) PredictNext(rec *store.WeatherRequest) (float64, bool) {
	return forecast.PredictNextTemp(rec.Snapshot().Daily)
}

// FetchDirect fetches and normalizes a snapshot for raw coordinates
// without persisting anything.
func (s *Service) FetchDirect(ctx context.Context, lat, lon float64) (forecast.WeatherSnapshot, error) {
	return s.fetchSnapshot(ctx, lat, lon, "", "")
}

// Store exposes the underlying database for read paths.
func (s *Service) Store() *store.Database {
	return s.store
}

func (s *Service) fetchSnapshot(ctx context.Context, lat, lon float64, startDate, endDate string) (forecast.WeatherSnapshot, error) {
	rawCurrent, samples, err := s.provider.Fetch(ctx, lat, lon, s.units)
	if err != nil {
		return forecast.WeatherSnapshot{}, fmt.Errorf("provider %s: %w", s.provider.Name(), err)
	}

	var window *forecast.DateRange
	if startDate != "" && endDate != "" {
		window = &forecast.DateRange{Start: startDate, End: endDate}
	}
	return forecast.Normalize(rawCurrent, samples, window)
}
