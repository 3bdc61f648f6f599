package flightest

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

const (
	earthRadiusKm = 6371.0

	// cruiseSpeedKmh plus the fixed overhead approximates door-to-door
	// flight hours from great-circle distance.
	cruiseSpeedKmh = 800.0
	overheadHours  = 0.6
)

// Airport is one row of the airports table.
type Airport struct {
	City    string
	Country string
	Lat     float64
	Lon     float64
}

// Estimator estimates flight hours from an origin city to a destination
// point using a local airports table.
type Estimator struct {
	airports []Airport
}

// NewEstimator loads the airports CSV (city,country,lat,lon header row).
// A missing file yields an estimator with an empty table: estimates then
// resolve to nil rather than failing the service at startup.
func NewEstimator(path string) (*Estimator, error) {
	e := &Estimator{}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return e, nil
		}
		return nil, fmt.Errorf("flightest: failed to open airports table: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("flightest: failed to read airports table: %w", err)
	}

	for i, row := range rows {
		if i == 0 || len(row) < 4 {
			continue
		}
		lat, latErr := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		lon, lonErr := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
		if latErr != nil || lonErr != nil {
			continue
		}
		e.airports = append(e.airports, Airport{
			City:    strings.ToLower(strings.TrimSpace(row[0])),
			Country: strings.ToLower(strings.TrimSpace(row[1])),
			Lat:     lat,
			Lon:     lon,
		})
	}
	return e, nil
}

// Len returns the number of loaded airports.
func (e *Estimator) Len() int {
	return len(e.airports)
}

// EstimateHours returns the estimated flight hours from the origin city to
// the destination coordinates, or nil when the origin cannot be resolved
// against the airports table.
func (e *Estimator) EstimateHours(originCity, originCountry string, destLat, destLon float64) *float64 {
	origin := e.findAirport(originCity, originCountry)
	if origin == nil {
		return nil
	}
	distanceKm := haversineKm(origin.Lat, origin.Lon, destLat, destLon)
	hours := math.Round((distanceKm/cruiseSpeedKmh+overheadHours)*100) / 100
	return &hours
}

// findAirport matches city+country first, then city alone.
func (e *Estimator) findAirport(city, country string) *Airport {
	city = strings.ToLower(strings.TrimSpace(city))
	country = strings.ToLower(strings.TrimSpace(country))
	for i := range e.airports {
		if e.airports[i].City == city && e.airports[i].Country == country {
			return &e.airports[i]
		}
	}
	for i := range e.airports {
		if e.airports[i].City == city {
			return &e.airports[i]
		}
	}
	return nil
}

func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
