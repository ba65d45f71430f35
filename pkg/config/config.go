package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// DefaultCreditLimit is applied to customers created without one.
	DefaultCreditLimit decimal.Decimal
	// OverdueThresholdDays is the fallback age for the overdue report when the
	// caller and the customer's grace period give no value.
	OverdueThresholdDays int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "8h")
	viper.SetDefault("JWT_ISSUER", "creditkeep")
	viper.SetDefault("DEFAULT_CREDIT_LIMIT", "500.00")
	viper.SetDefault("OVERDUE_THRESHOLD_DAYS", 30)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 8 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	creditLimitStr := viper.GetString("DEFAULT_CREDIT_LIMIT")
	creditLimit, err := decimal.NewFromString(creditLimitStr)
	if err != nil {
		creditLimit = decimal.NewFromInt(500)
		log.Printf("Warning: Invalid value for DEFAULT_CREDIT_LIMIT ('%s'). Defaulting to %s.\n", creditLimitStr, creditLimit.String())
	}
	cfg.DefaultCreditLimit = creditLimit

	cfg.OverdueThresholdDays = viper.GetInt("OVERDUE_THRESHOLD_DAYS")
	if cfg.OverdueThresholdDays <= 0 {
		cfg.OverdueThresholdDays = 30
	}

	return cfg, nil
}
