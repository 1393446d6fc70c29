package config

import (
	"github.com/spf13/viper"
)

// Config holds all configuration for the application, loaded from a file or
// environment variables.
type Config struct {
	Environment       string `mapstructure:"ENVIRONMENT"`
	ServerAddress     string `mapstructure:"SERVER_ADDRESS"`
	DBSource          string `mapstructure:"DB_SOURCE"`
	MapsAPIKey        string `mapstructure:"MAPS_API_KEY"`
	PlacesBaseURL     string `mapstructure:"PLACES_BASE_URL"`
	DirectionsBaseURL string `mapstructure:"DIRECTIONS_BASE_URL"`
	RouteCacheSize    int    `mapstructure:"ROUTE_CACHE_SIZE"`
}

// LoadConfig reads configuration from app.env in the given path, with
// environment variables taking precedence over file values.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("SERVER_ADDRESS", "0.0.0.0:8080")
	viper.SetDefault("PLACES_BASE_URL", "https://maps.googleapis.com/maps/api/place")
	viper.SetDefault("DIRECTIONS_BASE_URL", "https://maps.googleapis.com/maps/api/directions")
	viper.SetDefault("ROUTE_CACHE_SIZE", 256)

	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		// A missing config file is fine when everything comes from the
		// environment.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}

	err = viper.Unmarshal(&config)
	return
}
