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

// WeatherAPIProvider implements the weather.Provider interface for WeatherAPI.com.
type WeatherAPIProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewWeatherAPIProvider(client *http.Client, apiKey string) *WeatherAPIProvider {
	return &WeatherAPIProvider{
		name:    "weatherapi",
		apiKey:  apiKey,
		baseURL: "https://api.weatherapi.com/v1",
		client:  client,
		circuit: newBreaker("weatherapi"),
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

type weatherAPILocation struct {
	Name    string   `json:"name"`
	Region  string   `json:"region"`
	Country string   `json:"country"`
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
}

func (p *WeatherAPIProvider) url(endpoint string, values url.Values) string {
	values.Set("key", p.apiKey)
	return fmt.Sprintf("%s/%s?%s", p.baseURL, endpoint, values.Encode())
}

func (p *WeatherAPIProvider) Resolve(ctx context.Context, q weather.Query) (weather.Resolution, error) {
	if p.apiKey == "" {
		return weather.Resolution{}, unavailable(p.name, fmt.Errorf("api key is not configured"))
	}

	// WeatherAPI uses "q" for location; it accepts a place name or "lat,lon".
	values := url.Values{}
	values.Set("q", q.String())

	var payload struct {
		Location weatherAPILocation `json:"location"`
	}
	if err := getJSON(ctx, p.client, p.circuit, p.url("current.json", values), &payload); err != nil {
		return weather.Resolution{}, err
	}

	loc := payload.Location
	if loc.Lat == nil || loc.Lon == nil {
		return weather.Resolution{}, unavailable(p.name, fmt.Errorf("payload has no coordinates"))
	}

	return weather.Resolution{
		Address:     common.JoinNonEmpty(", ", loc.Name, loc.Region, loc.Country),
		Coordinates: weather.Coordinates{Lat: *loc.Lat, Long: *loc.Lon},
	}, nil
}

func (p *WeatherAPIProvider) FetchForecast(ctx context.Context, c weather.Coordinates, days int) ([]weather.DailyReading, error) {
	if p.apiKey == "" {
		return nil, unavailable(p.name, fmt.Errorf("api key is not configured"))
	}

	values := url.Values{}
	values.Set("q", c.String())
	values.Set("days", strconv.Itoa(days))

	var payload struct {
		Forecast struct {
			ForecastDay []struct {
				Date string `json:"date"`
				Day  struct {
					MaxTempC          float64 `json:"maxtemp_c"`
					MinTempC          float64 `json:"mintemp_c"`
					DailyChanceOfRain float64 `json:"daily_chance_of_rain"`
					Condition         struct {
						Text string `json:"text"`
					} `json:"condition"`
				} `json:"day"`
			} `json:"forecastday"`
		} `json:"forecast"`
	}
	if err := getJSON(ctx, p.client, p.circuit, p.url("forecast.json", values), &payload); err != nil {
		return nil, err
	}

	readings := make([]weather.DailyReading, 0, len(payload.Forecast.ForecastDay))
	for _, fd := range payload.Forecast.ForecastDay {
		date, err := parseDay(fd.Date)
		if err != nil {
			return nil, unavailable(p.name, fmt.Errorf("bad day %q: %w", fd.Date, err))
		}
		readings = append(readings, weather.DailyReading{
			Date:            date,
			TempMaxC:        fd.Day.MaxTempC,
			TempMinC:        fd.Day.MinTempC,
			PrecipChancePct: fd.Day.DailyChanceOfRain,
			Summary:         fd.Day.Condition.Text,
			Condition:       mapConditionText(fd.Day.Condition.Text),
		})
	}
	return limitDays(readings, days), nil
}
