package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Location recommender specifics
	Groq      GroqConfig
	Geocoding GeocodingConfig
	Weather   WeatherConfig
	Places    PlacesConfig
	Flights   FlightsConfig
	Session   SessionConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// GroqConfig configures the Groq chat-completions client used for
// intent refinement and summary generation.
type GroqConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeocodingConfig struct {
	BaseURL   string
	UserAgent string
}

type WeatherConfig struct {
	BaseURL string
}

type PlacesConfig struct {
	BaseURL string
	// BackoffWindow suppresses provider calls after repeated failures.
	BackoffWindow time.Duration
}

type FlightsConfig struct {
	AirportsPath string
}

type SessionConfig struct {
	MaxSessions int
	TTL         time.Duration
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Groq LLM
	cfg.Groq.APIKey = viper.GetString("groq.api_key")
	cfg.Groq.Model = viper.GetString("groq.model")
	cfg.Groq.BaseURL = viper.GetString("groq.base_url")
	if key := viper.GetString("groq_api_key"); key != "" {
		cfg.Groq.APIKey = key
	}
	if model := viper.GetString("groq_model"); model != "" {
		cfg.Groq.Model = model
	}

	// Tools
	cfg.Geocoding.BaseURL = viper.GetString("geocoding.base_url")
	cfg.Geocoding.UserAgent = viper.GetString("geocoding.user_agent")
	cfg.Weather.BaseURL = viper.GetString("weather.base_url")
	cfg.Places.BaseURL = viper.GetString("places.base_url")
	cfg.Places.BackoffWindow = viper.GetDuration("places.backoff_window")
	cfg.Flights.AirportsPath = viper.GetString("flights.airports_path")

	// Sessions
	cfg.Session.MaxSessions = viper.GetInt("session.max_sessions")
	cfg.Session.TTL = viper.GetDuration("session.ttl")

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("groq.model", "llama-3.1-8b-instant")
	viper.SetDefault("groq.base_url", "https://api.groq.com/openai/v1")

	viper.SetDefault("geocoding.base_url", "https://nominatim.openstreetmap.org")
	viper.SetDefault("geocoding.user_agent", "LocationRecommenderAgent/1.0")
	viper.SetDefault("weather.base_url", "https://api.open-meteo.com")
	viper.SetDefault("places.base_url", "https://overpass-api.de/api/interpreter")
	viper.SetDefault("places.backoff_window", "2m")
	viper.SetDefault("flights.airports_path", "./data/airports.csv")

	viper.SetDefault("session.max_sessions", 1024)
	viper.SetDefault("session.ttl", "30m")
}
