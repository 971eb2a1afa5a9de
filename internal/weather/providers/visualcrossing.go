package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/keante032/SB-Capstone1/internal/weather"
)

// VisualCrossingProvider implements weather.Provider for the Visual Crossing
// timeline API, which accepts either an address or "lat,long" as location.
type VisualCrossingProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewVisualCrossingProvider(client *http.Client, apiKey string) *VisualCrossingProvider {
	return &VisualCrossingProvider{
		name:    "visualcrossing",
		apiKey:  apiKey,
		baseURL: "https://weather.visualcrossing.com/VisualCrossingWebServices/rest/services/timeline",
		client:  client,
		circuit: newBreaker("visualcrossing"),
	}
}

func (p *VisualCrossingProvider) Name() string {
	return p.name
}

type visualCrossingPayload struct {
	ResolvedAddress string   `json:"resolvedAddress"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	Days            []struct {
		Datetime   string  `json:"datetime"`
		TempMax    float64 `json:"tempmax"`
		TempMin    float64 `json:"tempmin"`
		PrecipProb float64 `json:"precipprob"`
		Conditions string  `json:"conditions"`
	} `json:"days"`
}

// fetch calls the timeline endpoint with the given data-inclusion scope.
func (p *VisualCrossingProvider) fetch(ctx context.Context, location, include string) (visualCrossingPayload, error) {
	var payload visualCrossingPayload
	if p.apiKey == "" {
		return payload, unavailable(p.name, fmt.Errorf("api key is not configured"))
	}

	values := url.Values{}
	values.Set("key", p.apiKey)
	values.Set("unitGroup", "metric")
	values.Set("include", include)
	values.Set("contentType", "json")

	u := fmt.Sprintf("%s/%s?%s", p.baseURL, url.PathEscape(location), values.Encode())
	err := getJSON(ctx, p.client, p.circuit, u, &payload)
	return payload, err
}

func (p *VisualCrossingProvider) Resolve(ctx context.Context, q weather.Query) (weather.Resolution, error) {
	payload, err := p.fetch(ctx, q.String(), "current")
	if err != nil {
		return weather.Resolution{}, err
	}
	if payload.Latitude == nil || payload.Longitude == nil {
		return weather.Resolution{}, unavailable(p.name, fmt.Errorf("payload has no coordinates"))
	}

	return weather.Resolution{
		Address: payload.ResolvedAddress,
		Coordinates: weather.Coordinates{
			Lat:  *payload.Latitude,
			Long: *payload.Longitude,
		},
	}, nil
}

func (p *VisualCrossingProvider) FetchForecast(ctx context.Context, c weather.Coordinates, days int) ([]weather.DailyReading, error) {
	payload, err := p.fetch(ctx, c.String(), "days")
	if err != nil {
		return nil, err
	}

	readings := make([]weather.DailyReading, 0, len(payload.Days))
	for _, d := range payload.Days {
		date, err := parseDay(d.Datetime)
		if err != nil {
			return nil, unavailable(p.name, fmt.Errorf("bad day %q: %w", d.Datetime, err))
		}
		readings = append(readings, weather.DailyReading{
			Date:            date,
			TempMaxC:        d.TempMax,
			TempMinC:        d.TempMin,
			PrecipChancePct: d.PrecipProb,
			Summary:         d.Conditions,
			Condition:       mapConditionText(d.Conditions),
		})
	}
	return limitDays(readings, days), nil
}
