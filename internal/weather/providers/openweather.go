package providers

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/keante032/SB-Capstone1/internal/common"
	"github.com/keante032/SB-Capstone1/internal/weather"
)

// openWeatherMaxDays is how far the free 3-hourly forecast reaches.
const openWeatherMaxDays = 5

// OpenWeatherProvider implements the weather.Provider interface for OpenWeatherMap.
// Places are resolved through its geocoding API; forecasts come in 3-hour
// steps and are aggregated into days.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	geoURL  string
	dataURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *http.Client, apiKey string) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		geoURL:  "https://api.openweathermap.org/geo/1.0",
		dataURL: "https://api.openweathermap.org/data/2.5",
		client:  client,
		circuit: newBreaker("openweather"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

type openWeatherPlace struct {
	Name    string   `json:"name"`
	State   string   `json:"state"`
	Country string   `json:"country"`
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
}

func (pl openWeatherPlace) address() string {
	return common.JoinNonEmpty(", ", pl.Name, pl.State, pl.Country)
}

// Resolve geocodes text directly. Coordinate queries keep the caller's
// pair and only borrow the reverse-geocoded place name.
func (p *OpenWeatherProvider) Resolve(ctx context.Context, q weather.Query) (weather.Resolution, error) {
	if p.apiKey == "" {
		return weather.Resolution{}, unavailable(p.name, fmt.Errorf("api key is not configured"))
	}

	values := url.Values{}
	values.Set("limit", "1")
	values.Set("appid", p.apiKey)

	endpoint := "/direct"
	if q.IsCoords() {
		endpoint = "/reverse"
		values.Set("lat", common.FormatCoord(q.Coords.Lat))
		values.Set("lon", common.FormatCoord(q.Coords.Long))
	} else {
		values.Set("q", q.String())
	}

	var places []openWeatherPlace
	if err := getJSON(ctx, p.client, p.circuit, p.geoURL+endpoint+"?"+values.Encode(), &places); err != nil {
		return weather.Resolution{}, err
	}

	if q.IsCoords() {
		res := weather.Resolution{Coordinates: *q.Coords}
		if len(places) > 0 {
			res.Address = places[0].address()
		}
		return res, nil
	}

	if len(places) == 0 {
		return weather.Resolution{}, unavailable(p.name, fmt.Errorf("no place matches %q", q.String()))
	}
	pl := places[0]
	if pl.Lat == nil || pl.Lon == nil {
		return weather.Resolution{}, unavailable(p.name, fmt.Errorf("payload has no coordinates"))
	}
	return weather.Resolution{
		Address:     pl.address(),
		Coordinates: weather.Coordinates{Lat: *pl.Lat, Long: *pl.Lon},
	}, nil
}

func (p *OpenWeatherProvider) FetchForecast(ctx context.Context, c weather.Coordinates, days int) ([]weather.DailyReading, error) {
	if p.apiKey == "" {
		return nil, unavailable(p.name, fmt.Errorf("api key is not configured"))
	}

	values := url.Values{}
	values.Set("lat", common.FormatCoord(c.Lat))
	values.Set("lon", common.FormatCoord(c.Long))
	values.Set("units", "metric")
	values.Set("appid", p.apiKey)

	var payload struct {
		List []struct {
			Dt   int64 `json:"dt"`
			Main struct {
				TempMin float64 `json:"temp_min"`
				TempMax float64 `json:"temp_max"`
			} `json:"main"`
			Pop     float64 `json:"pop"`
			Weather []struct {
				Main        string `json:"main"`
				Description string `json:"description"`
			} `json:"weather"`
		} `json:"list"`
	}
	if err := getJSON(ctx, p.client, p.circuit, p.dataURL+"/forecast?"+values.Encode(), &payload); err != nil {
		return nil, err
	}
	if len(payload.List) == 0 {
		return nil, unavailable(p.name, fmt.Errorf("payload has no forecast steps"))
	}

	samples := make([]weather.Sample, 0, len(payload.List))
	for _, step := range payload.List {
		s := weather.Sample{
			Time:            time.Unix(step.Dt, 0).UTC(),
			TempMinC:        step.Main.TempMin,
			TempMaxC:        step.Main.TempMax,
			PrecipChancePct: math.Round(step.Pop * 100),
			Condition:       weather.ConditionUnknown,
		}
		if len(step.Weather) > 0 {
			s.Condition = mapOpenWeatherCondition(step.Weather[0].Main)
			s.Summary = step.Weather[0].Description
		}
		samples = append(samples, s)
	}

	return limitDays(weather.AggregateDaily(samples), min(days, openWeatherMaxDays)), nil
}

func mapOpenWeatherCondition(main string) weather.Condition {
	switch main {
	case "Clear":
		return weather.ConditionClear
	case "Clouds":
		return weather.ConditionCloudy
	case "Rain", "Drizzle":
		return weather.ConditionRain
	case "Snow":
		return weather.ConditionSnow
	case "Thunderstorm":
		return weather.ConditionStorm
	case "Mist", "Fog", "Haze", "Smoke":
		return weather.ConditionMist
	default:
		return weather.ConditionUnknown
	}
}
