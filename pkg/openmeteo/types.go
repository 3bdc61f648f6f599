package openmeteo

// DailyWeather holds the weather signals used for scoring one destination.
type DailyWeather struct {
	MaxTemp float64
	MinTemp float64
	Rain    float64
}

// forecastResponse is the raw daily-forecast response body.
type forecastResponse struct {
	Daily struct {
		TemperatureMax   []float64 `json:"temperature_2m_max"`
		TemperatureMin   []float64 `json:"temperature_2m_min"`
		PrecipitationSum []float64 `json:"precipitation_sum"`
	} `json:"daily"`
}
