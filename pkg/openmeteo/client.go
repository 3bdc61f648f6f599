package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	pkgLog "location-recommender-agent/pkg/log"
)

const (
	// DefaultBaseURL is the public Open-Meteo endpoint.
	DefaultBaseURL = "https://api.open-meteo.com"

	defaultTimeout = 20 * time.Second
)

// Client is the Open-Meteo daily-forecast client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	l          pkgLog.Logger
	now        func() time.Time
}

// NewClient creates a new weather client.
func NewClient(baseURL string, l pkgLog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		l:          l,
		now:        time.Now,
	}
}

// SetBaseURL overrides the API URL for testing purposes.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// FetchWeather returns daily weather signals for the target date or month.
// Provider failures are absorbed: a seasonal-average fallback keyed by the
// target month is returned instead, so the pipeline output shape is kept
// intact.
func (c *Client) FetchWeather(ctx context.Context, lat, lon float64, dateOrMonth string) DailyWeather {
	target := c.normalizeDate(dateOrMonth)

	weather, err := c.fetchForecast(ctx, lat, lon, target)
	if err != nil {
		c.l.Warnf(ctx, "openmeteo: provider failed, using seasonal fallback for month %d: %v", target.Month(), err)
		return seasonalFallback(target.Month())
	}
	return weather
}

func (c *Client) fetchForecast(ctx context.Context, lat, lon float64, target time.Time) (DailyWeather, error) {
	day := target.Format("2006-01-02")
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', 4, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', 4, 64))
	params.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_sum")
	params.Set("timezone", "auto")
	params.Set("start_date", day)
	params.Set("end_date", day)

	start := time.Now()
	c.l.Debugf(ctx, "openmeteo: request lat=%.4f lon=%.4f date=%s", lat, lon, day)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/forecast?"+params.Encode(), nil)
	if err != nil {
		return DailyWeather{}, fmt.Errorf("openmeteo: failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return DailyWeather{}, fmt.Errorf("openmeteo: failed to call API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return DailyWeather{}, fmt.Errorf("openmeteo: API error %d", resp.StatusCode)
	}

	var result forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return DailyWeather{}, fmt.Errorf("openmeteo: failed to decode response: %w", err)
	}

	weather := DailyWeather{MaxTemp: 25, MinTemp: 15, Rain: 0}
	if len(result.Daily.TemperatureMax) > 0 {
		weather.MaxTemp = result.Daily.TemperatureMax[0]
	}
	if len(result.Daily.TemperatureMin) > 0 {
		weather.MinTemp = result.Daily.TemperatureMin[0]
	}
	if len(result.Daily.PrecipitationSum) > 0 {
		weather.Rain = result.Daily.PrecipitationSum[0]
	}

	c.l.Debugf(ctx, "openmeteo: response max=%.1f min=%.1f rain=%.1f latency_ms=%d",
		weather.MaxTemp, weather.MinTemp, weather.Rain, time.Since(start).Milliseconds())
	return weather, nil
}

var months = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

// normalizeDate maps a month name to the 15th of that month in the current
// year, parses supported numeric formats, and falls back to today.
func (c *Client) normalizeDate(value string) time.Time {
	lowered := strings.ToLower(strings.TrimSpace(value))
	if month, ok := months[lowered]; ok {
		now := c.now()
		return time.Date(now.Year(), month, 15, 0, 0, 0, 0, time.UTC)
	}
	for _, layout := range []string{"2.1.06", "2.1.2006", "2006-01-02"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed
		}
	}
	return c.now()
}
