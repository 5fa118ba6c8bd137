package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Config carries all runtime settings. Values come from the environment with
// an optional .env file for local development.
type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret string

	DispatchRadiusKm float64
}

// LoadConfig reads configuration from the environment, falling back to
// development defaults.
func LoadConfig() Config {
	_ = godotenv.Load(".env")

	cfg := Config{}

	cfg.HTTPPort = cast.ToString(getOrReturnDefault("HTTP_PORT", "8080"))

	cfg.DBHost = cast.ToString(getOrReturnDefault("DB_HOST", "localhost"))
	cfg.DBPort = cast.ToString(getOrReturnDefault("DB_PORT", "5432"))
	cfg.DBUser = cast.ToString(getOrReturnDefault("DB_USER", "postgres"))
	cfg.DBPassword = cast.ToString(getOrReturnDefault("DB_PASSWORD", "postgres"))
	cfg.DBName = cast.ToString(getOrReturnDefault("DB_NAME", "waterdelivery"))
	cfg.DBSslMode = cast.ToString(getOrReturnDefault("DB_SSLMODE", "disable"))

	cfg.JWTSecret = cast.ToString(getOrReturnDefault("JWT_SECRET", ""))

	cfg.DispatchRadiusKm = cast.ToFloat64(getOrReturnDefault("DISPATCH_RADIUS_KM", 5.0))

	return cfg
}

func getOrReturnDefault(key string, defaultValue interface{}) interface{} {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}
