package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// DB stores PostgreSQL connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN renders the settings as a pgx connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Pass, d.Host, d.Port, d.Name)
}

// Redis stores the locality cache connection settings.
type Redis struct {
	Addr string
	TTL  time.Duration
}

// Kafka stores payment event consumer settings.
type Kafka struct {
	Brokers       []string
	GroupID       string
	PaymentsTopic string
}

// StripeGateway stores payment gateway credentials and retry settings.
type StripeGateway struct {
	APIKey      string
	Currency    string
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RateLimit stores per-client HTTP rate limiting settings.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// Pprof stores the profiling endpoint settings.
type Pprof struct {
	Enabled bool
	Addr    string
	User    string
	Pass    string
}

// Policy stores paths to the operator-editable reference files.
type Policy struct {
	PricingPath    string
	EarningsPath   string
	LocalitiesPath string
}

// Config stores all service settings.
type Config struct {
	Port      int
	DB        DB
	Redis     Redis
	Kafka     Kafka
	Stripe    StripeGateway
	RateLimit RateLimit
	Pprof     Pprof
	Policy    Policy
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:      DefaultPort(),
		DB:        DefaultDB(),
		Redis:     DefaultRedis(),
		Kafka:     DefaultKafka(),
		Stripe:    DefaultStripe(),
		RateLimit: DefaultRateLimit(),
		Pprof:     DefaultPprof(),
		Policy:    DefaultPolicy(),
	}

	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %q", v)
		}
		cfg.Port = p
	}

	envStr(&cfg.DB.Host, "POSTGRES_HOST")
	envStr(&cfg.DB.Port, "POSTGRES_PORT")
	envStr(&cfg.DB.User, "POSTGRES_USER")
	envStr(&cfg.DB.Pass, "POSTGRES_PASSWORD")
	envStr(&cfg.DB.Name, "POSTGRES_DB")

	envStr(&cfg.Redis.Addr, "REDIS_ADDR")
	if err := envDuration(&cfg.Redis.TTL, "REDIS_LOCALITY_TTL"); err != nil {
		return nil, err
	}

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = splitCSV(v)
	}
	envStr(&cfg.Kafka.GroupID, "KAFKA_GROUP_ID")
	envStr(&cfg.Kafka.PaymentsTopic, "KAFKA_PAYMENTS_TOPIC")

	envStr(&cfg.Stripe.APIKey, "STRIPE_API_KEY")
	envStr(&cfg.Stripe.Currency, "STRIPE_CURRENCY")
	if err := envDuration(&cfg.Stripe.BaseDelay, "STRIPE_RETRY_BASE_DELAY"); err != nil {
		return nil, err
	}
	if err := envDuration(&cfg.Stripe.MaxDelay, "STRIPE_RETRY_MAX_DELAY"); err != nil {
		return nil, err
	}

	envBool(&cfg.RateLimit.Enabled, "RATE_LIMIT_ENABLED")
	if err := envFloat(&cfg.RateLimit.Rate, "RATE_LIMIT_RATE"); err != nil {
		return nil, err
	}
	if err := envInt(&cfg.RateLimit.Burst, "RATE_LIMIT_BURST"); err != nil {
		return nil, err
	}
	if err := envDuration(&cfg.RateLimit.TTL, "RATE_LIMIT_TTL"); err != nil {
		return nil, err
	}
	if err := envInt(&cfg.RateLimit.MaxBuckets, "RATE_LIMIT_MAX_BUCKETS"); err != nil {
		return nil, err
	}

	envBool(&cfg.Pprof.Enabled, "PPROF_ENABLED")
	envStr(&cfg.Pprof.Addr, "PPROF_ADDR")
	envStr(&cfg.Pprof.User, "PPROF_USER")
	envStr(&cfg.Pprof.Pass, "PPROF_PASS")

	envStr(&cfg.Policy.PricingPath, "PRICING_POLICY_PATH")
	envStr(&cfg.Policy.EarningsPath, "EARNINGS_POLICY_PATH")
	envStr(&cfg.Policy.LocalitiesPath, "LOCALITIES_PATH")

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	pflag.StringVar(&cfg.Policy.PricingPath, "pricing-policy", cfg.Policy.PricingPath, "path to the pricing rate card")
	pflag.StringVar(&cfg.Policy.LocalitiesPath, "localities", cfg.Policy.LocalitiesPath, "path to the locality reference file")
	if err := pflag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if _, err := strconv.Atoi(cfg.DB.Port); err != nil {
		return nil, fmt.Errorf("invalid postgres port: %q", cfg.DB.Port)
	}
	return cfg, nil
}

func envStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v == "1" || strings.EqualFold(v, "true")
	}
}

func envInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %q", key, v)
	}
	*dst = n
	return nil
}

func envFloat(dst *float64, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("invalid %s: %q", key, v)
	}
	*dst = f
	return nil
}

func envDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %q", key, v)
	}
	*dst = d
	return nil
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
