package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sony/gobreaker"

	"github.com/keante032/SB-Capstone1/internal/common"
	"github.com/keante032/SB-Capstone1/internal/weather"
)

// OpenMeteoProvider implements the weather.Provider interface for Open-Meteo.
// It needs no API key. Coordinates come back snapped to the model grid,
// which makes them the canonical pair for dedup.
type OpenMeteoProvider struct {
	name         string
	baseURL      string
	geocodingURL string
	client       *http.Client
	circuit      *gobreaker.CircuitBreaker
}

func NewOpenMeteoProvider(client *http.Client) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		name:         "openmeteo",
		baseURL:      "https://api.open-meteo.com/v1/forecast",
		geocodingURL: "https://geocoding-api.open-meteo.com/v1/search",
		client:       client,
		circuit:      newBreaker("openmeteo"),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

func (p *OpenMeteoProvider) Resolve(ctx context.Context, q weather.Query) (weather.Resolution, error) {
	if !q.IsCoords() {
		return p.search(ctx, q.String())
	}

	values := url.Values{}
	values.Set("latitude", common.FormatCoord(q.Coords.Lat))
	values.Set("longitude", common.FormatCoord(q.Coords.Long))
	values.Set("current_weather", "true")

	var payload struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := getJSON(ctx, p.client, p.circuit, p.baseURL+"?"+values.Encode(), &payload); err != nil {
		return weather.Resolution{}, err
	}
	if payload.Latitude == nil || payload.Longitude == nil {
		return weather.Resolution{}, unavailable(p.name, fmt.Errorf("payload has no coordinates"))
	}

	// Open-Meteo does not reverse geocode; the presenter falls back to "lat, long".
	return weather.Resolution{
		Coordinates: weather.Coordinates{Lat: *payload.Latitude, Long: *payload.Longitude},
	}, nil
}

func (p *OpenMeteoProvider) search(ctx context.Context, name string) (weather.Resolution, error) {
	values := url.Values{}
	values.Set("name", name)
	values.Set("count", "1")
	values.Set("format", "json")

	var payload struct {
		Results []struct {
			Name      string  `json:"name"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
			Admin1    string  `json:"admin1"`
			Country   string  `json:"country"`
		} `json:"results"`
	}
	if err := getJSON(ctx, p.client, p.circuit, p.geocodingURL+"?"+values.Encode(), &payload); err != nil {
		return weather.Resolution{}, err
	}
	if len(payload.Results) == 0 {
		return weather.Resolution{}, unavailable(p.name, fmt.Errorf("no match for %q", name))
	}

	r := payload.Results[0]
	return weather.Resolution{
		Address:     common.JoinNonEmpty(", ", r.Name, r.Admin1, r.Country),
		Coordinates: weather.Coordinates{Lat: r.Latitude, Long: r.Longitude},
	}, nil
}

func (p *OpenMeteoProvider) FetchForecast(ctx context.Context, c weather.Coordinates, days int) ([]weather.DailyReading, error) {
	values := url.Values{}
	values.Set("latitude", common.FormatCoord(c.Lat))
	values.Set("longitude", common.FormatCoord(c.Long))
	values.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_probability_max,weathercode")
	values.Set("forecast_days", strconv.Itoa(days))
	values.Set("timezone", "UTC")

	var payload struct {
		Daily struct {
			Time        []string  `json:"time"`
			TempMax     []float64 `json:"temperature_2m_max"`
			TempMin     []float64 `json:"temperature_2m_min"`
			PrecipProb  []float64 `json:"precipitation_probability_max"`
			WeatherCode []int     `json:"weathercode"`
		} `json:"daily"`
	}
	if err := getJSON(ctx, p.client, p.circuit, p.baseURL+"?"+values.Encode(), &payload); err != nil {
		return nil, err
	}

	d := payload.Daily
	n := len(d.Time)
	if len(d.TempMax) < n || len(d.TempMin) < n || len(d.WeatherCode) < n {
		return nil, unavailable(p.name, fmt.Errorf("daily series have mismatched lengths"))
	}

	readings := make([]weather.DailyReading, 0, n)
	for i := 0; i < n; i++ {
		date, err := parseDay(d.Time[i])
		if err != nil {
			return nil, unavailable(p.name, fmt.Errorf("bad day %q: %w", d.Time[i], err))
		}
		var precip float64
		if i < len(d.PrecipProb) {
			precip = d.PrecipProb[i]
		}
		readings = append(readings, weather.DailyReading{
			Date:            date,
			TempMaxC:        d.TempMax[i],
			TempMinC:        d.TempMin[i],
			PrecipChancePct: precip,
			Condition:       mapOpenMeteoCondition(d.WeatherCode[i]),
		})
	}
	return limitDays(readings, days), nil
}

func mapOpenMeteoCondition(code int) weather.Condition {
	// Mapping based on Open-Meteo (WMO) weather codes, simplified.
	switch {
	case code == 0:
		return weather.ConditionClear
	case code >= 1 && code <= 3:
		return weather.ConditionCloudy
	case code == 45 || code == 48:
		return weather.ConditionMist
	case (code >= 51 && code <= 67) || (code >= 80 && code <= 82):
		return weather.ConditionRain
	case (code >= 71 && code <= 77) || code == 85 || code == 86:
		return weather.ConditionSnow
	case code >= 95:
		return weather.ConditionStorm
	default:
		return weather.ConditionUnknown
	}
}
