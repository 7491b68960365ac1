package config

import (
	"log"
	"strings"
	"time"

	"github.com/SscSPs/apartment_fee_app/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	MigrationsPath string

	JWTSecret                  string
	JWTExpiryDuration          time.Duration
	JWTIssuer                  string
	RefreshTokenSecret         string
	RefreshTokenExpiryDuration time.Duration

	// Payment gateway webhook
	PaymentAPIKey        string
	PaymentCodePrefix    string
	SettlementMaxRetries int

	// Rate limits in limiter format, e.g. "10-M"
	LoginRateLimit   string
	WebhookRateLimit string

	CORSAllowedOrigins []string
	PosthogAPIKey      string

	SMTPHost            string
	SMTPPort            int
	SMTPUser            string
	SMTPPassword        string
	SMTPFrom            string
	PasswordRecoveryTTL time.Duration
	FrontendBaseURL     string
}

const (
	defaultJWTSecret     = "a-very-secret-key-should-be-longer-and-random"
	defaultRefreshSecret = "default_insecure_refresh_secret_please_change_this_!@#$"
	defaultJWTIssuer     = "apartment-fee-app"
)

func setDefaults() {
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", defaultJWTIssuer)
	viper.SetDefault("REFRESH_TOKEN_SECRET", defaultRefreshSecret)
	viper.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "168h")
	viper.SetDefault("PAYMENT_API_KEY", "")
	viper.SetDefault("PAYMENT_CODE_PREFIX", domain.DefaultPaymentCodePrefix)
	viper.SetDefault("SETTLEMENT_MAX_RETRIES", 5)
	viper.SetDefault("LOGIN_RATE_LIMIT", "10-M")
	viper.SetDefault("WEBHOOK_RATE_LIMIT", "120-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:1420,tauri://localhost")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("SMTP_HOST", "")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_USER", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("SMTP_FROM", "")
	viper.SetDefault("PASSWORD_RECOVERY_TTL", "30m")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:1420")
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	setDefaults()
	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:        viper.GetString("PGSQL_URL"),
		Port:               viper.GetString("PORT"),
		IsProduction:       viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck:      viper.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath:     viper.GetString("MIGRATIONS_PATH"),
		JWTSecret:          viper.GetString("JWT_SECRET"),
		JWTIssuer:          viper.GetString("JWT_ISSUER"),
		RefreshTokenSecret: viper.GetString("REFRESH_TOKEN_SECRET"),
		PaymentAPIKey:      viper.GetString("PAYMENT_API_KEY"),
		PaymentCodePrefix:  viper.GetString("PAYMENT_CODE_PREFIX"),
		LoginRateLimit:     viper.GetString("LOGIN_RATE_LIMIT"),
		WebhookRateLimit:   viper.GetString("WEBHOOK_RATE_LIMIT"),
		CORSAllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		PosthogAPIKey:      viper.GetString("POSTHOG_API_KEY"),
		SMTPHost:           viper.GetString("SMTP_HOST"),
		SMTPPort:           viper.GetInt("SMTP_PORT"),
		SMTPUser:           viper.GetString("SMTP_USER"),
		SMTPPassword:       viper.GetString("SMTP_PASSWORD"),
		SMTPFrom:           viper.GetString("SMTP_FROM"),
		FrontendBaseURL:    viper.GetString("FRONTEND_BASE_URL"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.RefreshTokenSecret == "" {
		log.Println("Warning: REFRESH_TOKEN_SECRET is not set, using default insecure secret. THIS IS NOT FOR PRODUCTION.")
		cfg.RefreshTokenSecret = defaultRefreshSecret
	}
	if cfg.JWTSecret == cfg.RefreshTokenSecret {
		log.Println("Warning: JWT_SECRET and REFRESH_TOKEN_SECRET are identical; access tokens would be accepted as refresh tokens.")
	}
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = defaultJWTIssuer
	}
	if cfg.PaymentAPIKey == "" {
		log.Println("Warning: PAYMENT_API_KEY not set. The payment webhook will reject every call.")
	}
	if cfg.PaymentCodePrefix == "" {
		cfg.PaymentCodePrefix = domain.DefaultPaymentCodePrefix
	}

	cfg.SettlementMaxRetries = viper.GetInt("SETTLEMENT_MAX_RETRIES")
	if cfg.SettlementMaxRetries < 1 {
		log.Printf("Warning: Invalid SETTLEMENT_MAX_RETRIES (%d). Defaulting to 5.\n", cfg.SettlementMaxRetries)
		cfg.SettlementMaxRetries = 5
	}

	cfg.JWTExpiryDuration = parseDuration("JWT_EXPIRY_DURATION", time.Hour)
	cfg.RefreshTokenExpiryDuration = parseDuration("REFRESH_TOKEN_EXPIRY_DURATION", 7*24*time.Hour)
	cfg.PasswordRecoveryTTL = parseDuration("PASSWORD_RECOVERY_TTL", 30*time.Minute)

	return cfg, nil
}

// parseDuration reads a duration key (e.g. "60m", "1h") and falls back on bad input.
func parseDuration(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
