package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	pkgLog "location-recommender-agent/pkg/log"
)

const (
	// DefaultBaseURL is the public Overpass interpreter endpoint.
	DefaultBaseURL = "https://overpass-api.de/api/interpreter"

	// DefaultBackoffWindow suppresses provider calls after repeated failures.
	DefaultBackoffWindow = 2 * time.Minute

	// failureThreshold is the consecutive-failure count that opens the window.
	failureThreshold = 2

	defaultTimeout = 30 * time.Second
	searchRadiusM  = 25000
	maxSampleNames = 8
)

// Client is the Overpass points-of-interest client. Provider failures are
// absorbed into canned activity-appropriate signals, and repeated failures
// open a backoff window during which the provider is not called at all.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	backoffWindow time.Duration
	l             pkgLog.Logger

	mu           sync.Mutex
	failures     int
	backoffUntil time.Time
}

// NewClient creates a new places client.
func NewClient(baseURL string, backoffWindow time.Duration, l pkgLog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if backoffWindow <= 0 {
		backoffWindow = DefaultBackoffWindow
	}
	return &Client{
		baseURL:       baseURL,
		httpClient:    &http.Client{Timeout: defaultTimeout},
		backoffWindow: backoffWindow,
		l:             l,
	}
}

// SetBaseURL overrides the API URL for testing purposes.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// FetchActivitySignals returns POI count and sample names around a point.
// Never fails outward: fallback signals are returned on any provider error.
func (c *Client) FetchActivitySignals(ctx context.Context, lat, lon float64, activity string) ActivitySignals {
	if c.inBackoff() {
		c.l.Debugf(ctx, "overpass: in backoff window, returning fallback for activity=%q", activity)
		return fallbackSignals(activity)
	}

	signals, err := c.query(ctx, lat, lon, activity)
	if err != nil {
		c.recordFailure(ctx)
		c.l.Warnf(ctx, "overpass: provider failed, using fallback for activity=%q: %v", activity, err)
		return fallbackSignals(activity)
	}
	c.recordSuccess()
	return signals
}

func (c *Client) query(ctx context.Context, lat, lon float64, activity string) (ActivitySignals, error) {
	tag := activityTag(activity)
	query := fmt.Sprintf(
		"[out:json][timeout:25];(node(around:%d,%f,%f)[%s];way(around:%d,%f,%f)[%s];);out center 100;",
		searchRadiusM, lat, lon, tag, searchRadiusM, lat, lon, tag,
	)

	start := time.Now()
	c.l.Debugf(ctx, "overpass: request tag=%s lat=%.4f lon=%.4f", tag, lat, lon)

	form := url.Values{}
	form.Set("data", query)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return ActivitySignals{}, fmt.Errorf("overpass: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ActivitySignals{}, fmt.Errorf("overpass: failed to call API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ActivitySignals{}, fmt.Errorf("overpass: API error %d", resp.StatusCode)
	}

	var result interpreterResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return ActivitySignals{}, fmt.Errorf("overpass: failed to decode response: %w", err)
	}

	signals := ActivitySignals{PoiCount: len(result.Elements)}
	for _, element := range result.Elements {
		if len(signals.SampleNames) >= maxSampleNames {
			break
		}
		if name := element.Tags["name"]; name != "" {
			signals.SampleNames = append(signals.SampleNames, name)
		}
	}

	c.l.Debugf(ctx, "overpass: response poi_count=%d latency_ms=%d", signals.PoiCount, time.Since(start).Milliseconds())
	return signals, nil
}

func activityTag(activity string) string {
	lowered := strings.ToLower(activity)
	switch {
	case lowered == "":
		return `"tourism"`
	case strings.Contains(lowered, "ski"):
		return `"piste:type"`
	case strings.Contains(lowered, "beach"):
		return `"natural"="beach"`
	case strings.Contains(lowered, "museum"):
		return `"tourism"="museum"`
	default:
		return `"tourism"`
	}
}

func (c *Client) inBackoff() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return time.Now().Before(c.backoffUntil)
}

func (c *Client) recordFailure(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures++
	if c.failures >= failureThreshold {
		c.backoffUntil = time.Now().Add(c.backoffWindow)
		c.l.Warnf(ctx, "overpass: %d consecutive failures, backing off until %s", c.failures, c.backoffUntil.Format(time.RFC3339))
	}
}

func (c *Client) recordSuccess() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures = 0
	c.backoffUntil = time.Time{}
}
