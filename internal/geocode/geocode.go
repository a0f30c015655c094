package geocode

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kelvins/geocoder"
)

// ErrNotFound is returned when a query cannot be resolved to coordinates.
var ErrNotFound = errors.New("location not found")

// Place is a resolved location.
type Place struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Geocoder resolves free-text location input to coordinates and a
// canonical display name.
type Geocoder interface {
	Resolve(ctx context.Context, query string) (Place, error)
}

// GoogleGeocoder resolves locations through the Google Geocoding API.
type GoogleGeocoder struct{}

func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	geocoder.ApiKey = apiKey
	return &GoogleGeocoder{}
}

// Resolve geocodes the query, then reverse-geocodes the hit to obtain a
// canonical address for display. When the reverse lookup fails the raw
// query is kept as the name.
func (g *GoogleGeocoder) Resolve(_ context.Context, query string) (Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Place{}, ErrNotFound
	}

	loc, err := geocoder.Geocoding(geocoder.Address{City: query})
	if err != nil {
		return Place{}, fmt.Errorf("%w: %q", ErrNotFound, query)
	}

	name := query
	if addresses, err := geocoder.GeocodingReverse(loc); err == nil && len(addresses) > 0 {
		if formatted := addresses[0].FormatAddress(); formatted != "" {
			name = formatted
		}
	}

	return Place{
		Name: name,
		Lat:  loc.Latitude,
		Lon:  loc.Longitude,
	}, nil
}
