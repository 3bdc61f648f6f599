package usecase

import (
	"context"

	"location-recommender-agent/internal/recommend"
	"location-recommender-agent/internal/recommend/intent"
	"location-recommender-agent/internal/recommend/session"
	"location-recommender-agent/pkg/groq"
	pkgLog "location-recommender-agent/pkg/log"
	"location-recommender-agent/pkg/nominatim"
	"location-recommender-agent/pkg/openmeteo"
	"location-recommender-agent/pkg/overpass"
)

// Geocoder resolves free-text place queries. An empty result means no
// match; it is not an error.
type Geocoder interface {
	Geocode(ctx context.Context, query string, limit int) ([]nominatim.Place, error)
}

// WeatherFetcher returns daily weather signals; provider failures are
// absorbed into a seasonal fallback by the implementation.
type WeatherFetcher interface {
	FetchWeather(ctx context.Context, lat, lon float64, dateOrMonth string) openmeteo.DailyWeather
}

// PlacesFetcher returns POI signals; provider failures are absorbed into
// canned fallbacks by the implementation.
type PlacesFetcher interface {
	FetchActivitySignals(ctx context.Context, lat, lon float64, activity string) overpass.ActivitySignals
}

// FlightEstimator estimates flight hours, or nil when the origin city is
// not in the airports table.
type FlightEstimator interface {
	EstimateHours(originCity, originCountry string, destLat, destLon float64) *float64
}

type implUseCase struct {
	l        pkgLog.Logger
	llm      groq.IGroq
	parser   *intent.Parser
	geocoder Geocoder
	weather  WeatherFetcher
	places   PlacesFetcher
	flights  FlightEstimator
	sessions *session.Store
}

var _ recommend.UseCase = (*implUseCase)(nil)

// New creates the recommendation UseCase.
func New(
	l pkgLog.Logger,
	llm groq.IGroq,
	geocoder Geocoder,
	weather WeatherFetcher,
	places PlacesFetcher,
	flights FlightEstimator,
	sessions *session.Store,
) *implUseCase {
	return &implUseCase{
		l:        l,
		llm:      llm,
		parser:   intent.New(llm, l),
		geocoder: geocoder,
		weather:  weather,
		places:   places,
		flights:  flights,
		sessions: sessions,
	}
}
