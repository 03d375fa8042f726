package config

import (
	"errors"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds everything the service reads from the environment.
type Config struct {
	Port    string `mapstructure:"PORT"`
	GinMode string `mapstructure:"GIN_MODE"`

	MongoURI string `mapstructure:"MONGO_URI"`
	DBName   string `mapstructure:"DB_NAME"`

	StripeSecret string `mapstructure:"STRIPE_SECRET"`
	SiteDomain   string `mapstructure:"SITE_DOMAIN"`

	// Base64-encoded Firebase service account JSON.
	FirebaseServiceAccount string `mapstructure:"FIREBASE_SERVICE_ACCOUNT"`

	// ZeptoMail receipt email settings (optional; receipts are skipped when unset).
	ZeptoAPIURL string `mapstructure:"ZEPTO_API_URL"`
	ZeptoAPIKey string `mapstructure:"ZEPTO_API_KEY"`
	EmailFrom   string `mapstructure:"EMAIL_FROM"`
}

// Load reads configuration from the environment. A local .env file is loaded
// first when present so development matches deployment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetDefault("PORT", "3000")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("DB_NAME", "club-nest-db")

	for _, key := range []string{
		"PORT", "GIN_MODE", "MONGO_URI", "DB_NAME",
		"STRIPE_SECRET", "SITE_DOMAIN", "FIREBASE_SERVICE_ACCOUNT",
		"ZEPTO_API_URL", "ZEPTO_API_KEY", "EMAIL_FROM",
	} {
		if err := viper.BindEnv(key); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.MongoURI == "" {
		return nil, errors.New("MONGO_URI is required")
	}
	if cfg.StripeSecret == "" {
		return nil, errors.New("STRIPE_SECRET is required")
	}
	if cfg.SiteDomain == "" {
		return nil, errors.New("SITE_DOMAIN is required")
	}
	if cfg.FirebaseServiceAccount == "" {
		return nil, errors.New("FIREBASE_SERVICE_ACCOUNT is required")
	}

	return &cfg, nil
}
