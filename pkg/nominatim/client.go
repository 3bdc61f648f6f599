package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	pkgLog "location-recommender-agent/pkg/log"
)

const (
	// DefaultBaseURL is the public Nominatim instance.
	DefaultBaseURL = "https://nominatim.openstreetmap.org"

	// DefaultUserAgent identifies this service per the Nominatim usage policy.
	DefaultUserAgent = "LocationRecommenderAgent/1.0"

	defaultTimeout = 20 * time.Second
)

// Client is the Nominatim geocoding client. Requests are rate limited to one
// per second per the provider's usage policy.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	l          pkgLog.Logger
}

// NewClient creates a new geocoding client. Empty baseURL/userAgent fall back
// to the public instance defaults.
func NewClient(baseURL, userAgent string, l pkgLog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: defaultTimeout},
		limiter:    rate.NewLimiter(rate.Every(time.Second), 1),
		l:          l,
	}
}

// SetBaseURL overrides the API URL for testing purposes.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// Geocode resolves a free-text place query. An empty slice means no match;
// it is not an error.
func (c *Client) Geocode(ctx context.Context, query string, limit int) ([]Place, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("nominatim: rate limiter: %w", err)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "jsonv2")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("addressdetails", "1")
	params.Set("accept-language", "en")

	start := time.Now()
	c.l.Debugf(ctx, "nominatim: request q=%q limit=%d", query, limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("nominatim: failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nominatim: failed to call API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim: API error %d", resp.StatusCode)
	}

	var rows []searchRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("nominatim: failed to decode response: %w", err)
	}

	places := make([]Place, 0, len(rows))
	for _, row := range rows {
		lat, latErr := strconv.ParseFloat(row.Lat, 64)
		lon, lonErr := strconv.ParseFloat(row.Lon, 64)
		if latErr != nil || lonErr != nil {
			continue
		}
		places = append(places, Place{
			Name:        row.DisplayName,
			Lat:         lat,
			Lon:         lon,
			Address:     row.Address,
			CountryCode: row.Address.CountryCode,
		})
	}

	c.l.Debugf(ctx, "nominatim: response q=%q count=%d latency_ms=%d", query, len(places), time.Since(start).Milliseconds())
	return places, nil
}
