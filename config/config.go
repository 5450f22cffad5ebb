package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config is the whole environment surface of the service.
type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	ClientURL   string `envconfig:"CLIENT_URL" default:"http://localhost:5173"`
	DatabaseURL string `envconfig:"DATABASE_URL"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"warmhat"`

	JWTSecret   string `envconfig:"JWT_SECRET" required:"true"`
	AdminAPIKey string `envconfig:"ADMIN_API_KEY" required:"true"`

	Stripe Stripe
}

// Stripe keys: the publishable key is handed to the client, the secret key
// and webhook secret never leave the server.
type Stripe struct {
	SecretKey      string `envconfig:"STRIPE_SECRET_KEY"`
	PublishableKey string `envconfig:"STRIPE_PUBLISHABLE_KEY"`
	WebhookSecret  string `envconfig:"STRIPE_WEBHOOK_SECRET"`
	APIBase        string `envconfig:"STRIPE_API_BASE" default:"https://api.stripe.com"`
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DSN builds the postgres connection string when DATABASE_URL is not set.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}
