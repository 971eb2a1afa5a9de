package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/kelvins/geocoder"

	"github.com/keante032/SB-Capstone1/internal/weather"
)

// GoogleGeocoder implements weather.Geocoder on the Google Geocoding API.
type GoogleGeocoder struct {
	geocode func(geocoder.Address) (geocoder.Location, error)
	reverse func(geocoder.Location) ([]geocoder.Address, error)
}

// NewGoogleGeocoder sets the package-wide geocoder key; call it once at startup.
func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	geocoder.ApiKey = apiKey
	return &GoogleGeocoder{
		geocode: geocoder.Geocoding,
		reverse: geocoder.GeocodingReverse,
	}
}

type geocodeResult struct {
	res weather.Resolution
	err error
}

// Geocode resolves free text to coordinates and a formatted address. The
// underlying client has no context support, so ctx only bounds the wait.
func (g *GoogleGeocoder) Geocode(ctx context.Context, text string) (weather.Resolution, error) {
	done := make(chan geocodeResult, 1)
	go func() {
		res, err := g.lookup(text)
		done <- geocodeResult{res: res, err: err}
	}()

	select {
	case <-ctx.Done():
		return weather.Resolution{}, unavailable("google", ctx.Err())
	case r := <-done:
		return r.res, r.err
	}
}

func (g *GoogleGeocoder) lookup(text string) (weather.Resolution, error) {
	loc, err := g.geocode(geocoder.Address{Street: strings.TrimSpace(text)})
	if err != nil {
		return weather.Resolution{}, unavailable("google", err)
	}

	res := weather.Resolution{
		Address:     strings.TrimSpace(text),
		Coordinates: weather.Coordinates{Lat: loc.Latitude, Long: loc.Longitude},
	}
	if !res.Coordinates.Valid() {
		return weather.Resolution{}, unavailable("google", fmt.Errorf("coordinates %s out of range", res.Coordinates))
	}

	// The formatted address is a nicety; keep the user's text if reverse lookup fails.
	if addrs, err := g.reverse(loc); err == nil && len(addrs) > 0 && addrs[0].FormattedAddress != "" {
		res.Address = addrs[0].FormattedAddress
	}
	return res, nil
}
