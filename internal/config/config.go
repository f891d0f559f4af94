package config

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBHost      string `mapstructure:"DB_HOST"`
	DBPort      string `mapstructure:"DB_PORT"`
	DBUser      string `mapstructure:"DB_USER"`
	DBPassword  string `mapstructure:"DB_PASSWORD"`
	DBName      string `mapstructure:"DB_NAME"`
	Env         string `mapstructure:"ENV"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`
	RAWGAPIKey  string `mapstructure:"RAWG_API_KEY"`
	Port        string `mapstructure:"PORT"`
}

var AppConfig *Config

// LoadConfig loads the configuration from a .env file and environment variables.
func LoadConfig() {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn(".env file not found, loading from environment variables")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Unable to decode config into struct: %v", err)
	}

	if AppConfig.Port == "" {
		AppConfig.Port = "8080"
	}
	if AppConfig.DatabaseURL == "" && AppConfig.DBName == "" {
		log.Error("PostgreSQL environment variables (DATABASE_URL or DB_*) are not configured, check your .env file")
	}
}

// Production reports whether the app runs in production mode, which requires
// TLS on the database connection.
func (c *Config) Production() bool {
	return c.Env == "production"
}

// DSN returns the database connection string, preferring DATABASE_URL over
// the individual DB_* parts.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	sslmode := "disable"
	if c.Production() {
		sslmode = "require"
	}
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, sslmode)
}
