package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "parcel_db",
}

var defaultRedis = Redis{
	Addr: "127.0.0.1:6379",
	TTL:  10 * time.Minute,
}

var defaultKafka = Kafka{
	Brokers:       []string{"127.0.0.1:9092"},
	GroupID:       "parcel-service",
	PaymentsTopic: "payment-events",
}

var defaultStripe = StripeGateway{
	Currency:    "usd",
	MaxAttempts: 4,
	BaseDelay:   150 * time.Millisecond,
	MaxDelay:    200 * time.Millisecond,
}

var defaultRateLimit = RateLimit{
	Enabled:    false,
	Rate:       20,
	Burst:      40,
	TTL:        10 * time.Minute,
	MaxBuckets: 100_000,
}

var defaultPprof = Pprof{
	Enabled: false,
	Addr:    "127.0.0.1:6060",
}

var defaultPolicy = Policy{
	PricingPath:    "configs/pricing.yaml",
	EarningsPath:   "configs/earnings.yaml",
	LocalitiesPath: "configs/localities.yaml",
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultRedis returns the default locality cache settings.
func DefaultRedis() Redis {
	return defaultRedis
}

// DefaultKafka returns the default payment consumer settings.
func DefaultKafka() Kafka {
	return defaultKafka
}

// DefaultStripe returns the default payment gateway settings.
func DefaultStripe() StripeGateway {
	return defaultStripe
}

// DefaultRateLimit returns the default rate limiting settings.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}

// DefaultPprof returns the default profiling endpoint settings.
func DefaultPprof() Pprof {
	return defaultPprof
}

// DefaultPolicy returns the default policy file locations.
func DefaultPolicy() Policy {
	return defaultPolicy
}
