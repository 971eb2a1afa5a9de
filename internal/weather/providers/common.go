package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/keante032/SB-Capstone1/internal/common"
	"github.com/keante032/SB-Capstone1/internal/weather"
)

var (
	errRateLimited  = errors.New("rate limited")
	errServerError  = errors.New("server error")
	errUnexpected   = errors.New("unexpected status code")
	errRejected     = errors.New("request rejected")
	errNoHTTPClient = errors.New("http client not configured")
)

// maxBodyBytes bounds how much of an upstream payload we decode.
const maxBodyBytes = 4 << 20

func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:         name,
		MaxRequests:  5,
		Interval:     1 * time.Minute,
		Timeout:      2 * time.Minute,
		IsSuccessful: upstreamHealthy,
	})
}

// upstreamHealthy tells the breaker which outcomes say nothing about the
// provider's health: a rejected query (4xx other than 429) or a caller that
// gave up still fails its own request but never trips the breaker.
func upstreamHealthy(err error) bool {
	return err == nil ||
		errors.Is(err, errRejected) ||
		errors.Is(err, context.Canceled)
}

// getJSON performs one GET through the circuit breaker and decodes the body
// into dst. It does not retry. Every failure is wrapped in
// common.ErrProviderUnavailable.
func getJSON(ctx context.Context, client *http.Client, cb *gobreaker.CircuitBreaker, rawURL string, dst any) error {
	if client == nil {
		return unavailable(cb.Name(), errNoHTTPClient)
	}

	result, err := cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close() //nolint:errcheck

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return nil, errRateLimited
		case resp.StatusCode >= 500:
			return nil, fmt.Errorf("%w: %d", errServerError, resp.StatusCode)
		case resp.StatusCode >= 400:
			return nil, fmt.Errorf("%w: %d", errRejected, resp.StatusCode)
		case resp.StatusCode < 200 || resp.StatusCode >= 300:
			return nil, fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return nil, err
		}
		return body, nil
	})
	if err != nil {
		return unavailable(cb.Name(), err)
	}

	body, ok := result.([]byte)
	if !ok {
		return unavailable(cb.Name(), fmt.Errorf("unexpected result type from circuit breaker"))
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return unavailable(cb.Name(), fmt.Errorf("decode payload: %w", err))
	}
	return nil
}

func unavailable(name string, err error) error {
	return fmt.Errorf("%w: %s: %v", common.ErrProviderUnavailable, name, err)
}

// mapConditionText normalizes free-text condition descriptions such as
// "Rain, Partially cloudy" or "Patchy light snow".
func mapConditionText(text string) weather.Condition {
	switch {
	case text == "":
		return weather.ConditionUnknown
	case common.HasAny(text, "thunder", "storm"):
		return weather.ConditionStorm
	case common.HasAny(text, "snow", "sleet", "blizzard", "ice"):
		return weather.ConditionSnow
	case common.HasAny(text, "rain", "shower", "drizzle"):
		return weather.ConditionRain
	case common.HasAny(text, "fog", "mist", "haze"):
		return weather.ConditionMist
	case common.HasAny(text, "cloud", "overcast"):
		return weather.ConditionCloudy
	case common.HasAny(text, "sunny", "clear"):
		return weather.ConditionClear
	default:
		return weather.ConditionUnknown
	}
}

// parseDay parses a YYYY-MM-DD upstream date as midnight UTC.
func parseDay(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.UTC)
}

func limitDays(readings []weather.DailyReading, days int) []weather.DailyReading {
	if days > 0 && len(readings) > days {
		return readings[:days]
	}
	return readings
}
