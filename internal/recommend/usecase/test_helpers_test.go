package usecase

import (
	"context"
	"errors"
	"time"

	"location-recommender-agent/internal/recommend/session"
	"location-recommender-agent/pkg/nominatim"
	"location-recommender-agent/pkg/openmeteo"
	"location-recommender-agent/pkg/overpass"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                 {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                 {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                 {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any) {}

// mockLLM always fails so the rule-based and templated fallbacks are
// exercised deterministically.
type mockLLM struct{}

func (m *mockLLM) GenerateJSON(ctx context.Context, prompt, purposeTag string) (string, error) {
	return "", errors.New("llm unavailable")
}

func (m *mockLLM) Model() string { return "mock" }

// mockGeocoder resolves the onboarding origin plus any city query with a
// deterministic synthetic place. It records queries for assertions.
type mockGeocoder struct {
	calls []string
}

func (g *mockGeocoder) Geocode(ctx context.Context, query string, limit int) ([]nominatim.Place, error) {
	g.calls = append(g.calls, query)
	switch query {
	case "Tel Aviv, Israel":
		return []nominatim.Place{{
			Name: "Tel Aviv, Israel",
			Lat:  32.08,
			Lon:  34.78,
			Address: nominatim.Address{
				City:        "Tel Aviv",
				Country:     "Israel",
				CountryCode: "il",
			},
			CountryCode: "il",
		}}, nil
	case "Washington, United States of America":
		return []nominatim.Place{{
			Name: "Washington, District of Columbia, United States",
			Lat:  38.90,
			Lon:  -77.04,
			Address: nominatim.Address{
				City:        "Washington",
				Country:     "United States",
				CountryCode: "us",
			},
			CountryCode: "us",
		}}, nil
	case "Springfield, Oz":
		return []nominatim.Place{{
			Name: "Springfield, Illinois",
			Lat:  39.78,
			Lon:  -89.65,
			Address: nominatim.Address{
				City:        "Springfield",
				Country:     "United States",
				CountryCode: "us",
			},
			CountryCode: "us",
		}}, nil
	}
	return []nominatim.Place{{
		Name: query + ", Testland",
		Lat:  float64(len(query)),
		Lon:  float64(len(query)) / 2,
	}}, nil
}

type mockWeather struct{}

func (w *mockWeather) FetchWeather(ctx context.Context, lat, lon float64, dateOrMonth string) openmeteo.DailyWeather {
	return openmeteo.DailyWeather{MaxTemp: 24, MinTemp: 14, Rain: 1}
}

type mockPlaces struct{}

func (p *mockPlaces) FetchActivitySignals(ctx context.Context, lat, lon float64, activity string) overpass.ActivitySignals {
	return overpass.ActivitySignals{
		PoiCount:    60,
		SampleNames: []string{"Old Town", "Harbour", "Market"},
	}
}

type mockFlights struct{}

func (f *mockFlights) EstimateHours(originCity, originCountry string, destLat, destLon float64) *float64 {
	hours := 3.5
	return &hours
}

func newTestUseCase() (*implUseCase, *mockGeocoder) {
	geocoder := &mockGeocoder{}
	uc := New(
		&mockLogger{},
		&mockLLM{},
		geocoder,
		&mockWeather{},
		&mockPlaces{},
		&mockFlights{},
		session.NewStore(16, time.Minute),
	)
	return uc, geocoder
}

// onboard runs the origin hand-shake and returns the session id.
func onboard(uc *implUseCase) (string, error) {
	out, err := uc.HandleMessage(context.Background(), "", "Tel Aviv, Israel")
	if err != nil {
		return "", err
	}
	return out.SessionID, nil
}
