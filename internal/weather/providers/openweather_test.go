package providers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keante032/SB-Capstone1/internal/common"
	"github.com/keante032/SB-Capstone1/internal/weather"
)

func newOpenWeather(t *testing.T, h http.HandlerFunc) *OpenWeatherProvider {
	t.Helper()
	srv := newUpstream(t, h)
	p := NewOpenWeatherProvider(srv.Client(), "ow-key")
	p.geoURL = srv.URL + "/geo"
	p.dataURL = srv.URL + "/data"
	return p
}

func TestOpenWeather_ResolveText(t *testing.T) {
	p := newOpenWeather(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geo/direct", r.URL.Path)
		assert.Equal(t, "Paris", r.URL.Query().Get("q"))
		assert.Equal(t, "ow-key", r.URL.Query().Get("appid"))
		_, _ = w.Write([]byte(`[{"name":"Paris","state":"Ile-de-France","country":"FR","lat":48.8589,"lon":2.32}]`))
	})

	res, err := p.Resolve(context.Background(), weather.TextQuery("Paris"))
	require.NoError(t, err)
	assert.Equal(t, "Paris, Ile-de-France, FR", res.Address)
	assert.Equal(t, weather.Coordinates{Lat: 48.8589, Long: 2.32}, res.Coordinates)
}

func TestOpenWeather_ResolveCoordinatesKeepsPair(t *testing.T) {
	p := newOpenWeather(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geo/reverse", r.URL.Path)
		assert.Equal(t, "-90", r.URL.Query().Get("lat"))
		assert.Equal(t, "-180", r.URL.Query().Get("lon"))
		_, _ = w.Write([]byte(`[]`))
	})

	res, err := p.Resolve(context.Background(), weather.CoordsQuery(-90, -180))
	require.NoError(t, err)
	assert.Empty(t, res.Address)
	assert.Equal(t, weather.Coordinates{Lat: -90, Long: -180}, res.Coordinates)
}

func TestOpenWeather_ResolveNoMatch(t *testing.T) {
	p := newOpenWeather(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := p.Resolve(context.Background(), weather.TextQuery("Nowhere"))
	assert.ErrorIs(t, err, common.ErrProviderUnavailable)
}

func TestOpenWeather_ForecastAggregatesSteps(t *testing.T) {
	p := newOpenWeather(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/forecast", r.URL.Path)
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		_, _ = w.Write([]byte(`{"list":[
			{"dt":1791936000,"main":{"temp_min":8,"temp_max":9},"pop":0.1,"weather":[{"main":"Clouds","description":"overcast clouds"}]},
			{"dt":1791946800,"main":{"temp_min":7,"temp_max":12},"pop":0.4,"weather":[{"main":"Rain","description":"light rain"}]},
			{"dt":1792011600,"main":{"temp_min":6,"temp_max":10},"pop":0.2,"weather":[{"main":"Rain","description":"moderate rain"}]},
			{"dt":1792022400,"main":{"temp_min":4,"temp_max":6},"pop":0,"weather":[{"main":"Clear","description":"clear sky"}]},
			{"dt":1792065600,"main":{"temp_min":5,"temp_max":15},"pop":0,"weather":[]}
		]}`))
	})

	readings, err := p.FetchForecast(context.Background(), weather.Coordinates{Lat: 1, Long: 2}, 7)
	require.NoError(t, err)
	require.Len(t, readings, 2)

	day1 := readings[0]
	assert.Equal(t, time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC), day1.Date)
	assert.Equal(t, 6.0, day1.TempMinC)
	assert.Equal(t, 12.0, day1.TempMaxC)
	assert.Equal(t, 40.0, day1.PrecipChancePct)
	assert.Equal(t, weather.ConditionRain, day1.Condition)
	assert.Equal(t, "light rain", day1.Summary)

	day2 := readings[1]
	assert.Equal(t, 15.0, day2.TempMaxC)
	assert.Equal(t, weather.ConditionClear, day2.Condition)
}

func TestOpenWeather_ForecastLimit(t *testing.T) {
	p := newOpenWeather(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"list":[
			{"dt":1791936000,"main":{"temp_min":8,"temp_max":9},"weather":[{"main":"Clear"}]},
			{"dt":1792022400,"main":{"temp_min":4,"temp_max":6},"weather":[{"main":"Clear"}]}
		]}`))
	})

	readings, err := p.FetchForecast(context.Background(), weather.Coordinates{}, 1)
	require.NoError(t, err)
	assert.Len(t, readings, 1)
}

func TestOpenWeather_ForecastEmpty(t *testing.T) {
	p := newOpenWeather(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"list":[]}`))
	})

	_, err := p.FetchForecast(context.Background(), weather.Coordinates{}, 3)
	assert.ErrorIs(t, err, common.ErrProviderUnavailable)
}

func TestOpenWeather_MissingKey(t *testing.T) {
	p := NewOpenWeatherProvider(http.DefaultClient, "")

	_, err := p.Resolve(context.Background(), weather.TextQuery("Paris"))
	assert.ErrorIs(t, err, common.ErrProviderUnavailable)
	_, err = p.FetchForecast(context.Background(), weather.Coordinates{}, 3)
	assert.ErrorIs(t, err, common.ErrProviderUnavailable)
}

func TestMapOpenWeatherCondition(t *testing.T) {
	cases := map[string]weather.Condition{
		"Clear":        weather.ConditionClear,
		"Clouds":       weather.ConditionCloudy,
		"Drizzle":      weather.ConditionRain,
		"Snow":         weather.ConditionSnow,
		"Thunderstorm": weather.ConditionStorm,
		"Fog":          weather.ConditionMist,
		"Tornado":      weather.ConditionUnknown,
	}
	for in, want := range cases {
		assert.Equal(t, want, mapOpenWeatherCondition(in), in)
	}
}
