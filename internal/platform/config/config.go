package config

import (
	"log"
	"strings"
	"time"

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

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Single back-office operator, password stored as a bcrypt hash.
	AdminUsername     string
	AdminPasswordHash string

	CORSAllowedOrigins []string
	PublicRateLimit    string // ulule formatted, e.g. "60-M"
	LoginRateLimit     string

	// Optional infrastructure. Empty values disable the integration.
	RedisAddress     string
	RedisPassword    string
	KafkaBrokers     []string
	KafkaLedgerTopic string

	PostingRetryInterval    time.Duration
	PostingRetryBatchSize   int
	PostingRetryMaxAttempts int

	DeliveryMatchStrategy string
}

const (
	defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"
	defaultJWTIssuer = "storefront-backoffice"
)

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_EXPIRY_DURATION", "8h")
	viper.SetDefault("JWT_ISSUER", defaultJWTIssuer)
	viper.SetDefault("ADMIN_USERNAME", "admin")
	viper.SetDefault("ADMIN_PASSWORD_HASH", "")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("PUBLIC_RATE_LIMIT", "60-M")
	viper.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	viper.SetDefault("REDIS_ADDRESS", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("KAFKA_LEDGER_TOPIC", "ledger.journal-posted")
	viper.SetDefault("POSTING_RETRY_INTERVAL", "1m")
	viper.SetDefault("POSTING_RETRY_BATCH_SIZE", 20)
	viper.SetDefault("POSTING_RETRY_MAX_ATTEMPTS", 10)
	viper.SetDefault("DELIVERY_MATCH_STRATEGY", "first")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.JWTExpiryDuration = parseDuration("JWT_EXPIRY_DURATION", 8*time.Hour)

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = defaultJWTIssuer
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	cfg.AdminUsername = viper.GetString("ADMIN_USERNAME")
	cfg.AdminPasswordHash = viper.GetString("ADMIN_PASSWORD_HASH")
	if cfg.AdminPasswordHash == "" {
		log.Println("Warning: ADMIN_PASSWORD_HASH not set. Back-office login is disabled.")
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.PublicRateLimit = viper.GetString("PUBLIC_RATE_LIMIT")
	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")

	cfg.RedisAddress = viper.GetString("REDIS_ADDRESS")
	cfg.RedisPassword = viper.GetString("REDIS_PASSWORD")
	cfg.KafkaBrokers = splitList(viper.GetString("KAFKA_BROKERS"))
	cfg.KafkaLedgerTopic = viper.GetString("KAFKA_LEDGER_TOPIC")

	cfg.PostingRetryInterval = parseDuration("POSTING_RETRY_INTERVAL", time.Minute)
	cfg.PostingRetryBatchSize = viper.GetInt("POSTING_RETRY_BATCH_SIZE")
	if cfg.PostingRetryBatchSize <= 0 {
		cfg.PostingRetryBatchSize = 20
	}
	cfg.PostingRetryMaxAttempts = viper.GetInt("POSTING_RETRY_MAX_ATTEMPTS")
	if cfg.PostingRetryMaxAttempts <= 0 {
		cfg.PostingRetryMaxAttempts = 10
	}

	cfg.DeliveryMatchStrategy = strings.ToLower(viper.GetString("DELIVERY_MATCH_STRATEGY"))
	if cfg.DeliveryMatchStrategy != "first" && cfg.DeliveryMatchStrategy != "nearest" {
		log.Printf("Warning: Invalid value for DELIVERY_MATCH_STRATEGY ('%s'). Defaulting to first.\n", cfg.DeliveryMatchStrategy)
		cfg.DeliveryMatchStrategy = "first"
	}

	return cfg, nil
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
