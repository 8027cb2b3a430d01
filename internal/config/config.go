// Package config loads deployment configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/naturescrunch/storefront/internal/domain"
	"github.com/naturescrunch/storefront/internal/invoice"
)

type Config struct {
	HTTPPort        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	// Payment widget
	PaystackPublicKey string
	PaymentScriptURL  string
	Currency          string

	// Checkout policy
	FulfilmentMode domain.FulfilmentMode
	MinimumSpend   int64 // minor units; 0 disables the check

	// Shopkeeper invoicing. Credentials may be absent; invoicing then
	// reports not-configured and checkout proceeds without it.
	ShopkeeperAPIURL string
	Shopkeeper       invoice.Credentials

	// Optional infrastructure
	RedisAddr          string   // empty: in-memory cart store
	OrderEventsBrokers []string // empty: no event publishing
}

// defaultMinimumSpend is ₦150,000 in kobo, the observed reservation
// deployment's threshold.
const defaultMinimumSpend = 15000000

func Load() *Config {
	mode := domain.FulfilmentMode(getEnv("FULFILMENT_MODE", string(domain.FulfilmentReservation)))

	minimum := int64(0)
	if mode == domain.FulfilmentReservation {
		minimum = getEnvInt64("MINIMUM_SPEND_KOBO", defaultMinimumSpend)
	}

	var brokers []string
	if raw := os.Getenv("ORDER_EVENTS_BROKERS"); raw != "" {
		brokers = strings.Split(raw, ",")
	}

	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,

		PaystackPublicKey: os.Getenv("PAYSTACK_PUBLIC_KEY"),
		PaymentScriptURL:  getEnv("PAYMENT_SCRIPT_URL", ""),
		Currency:          getEnv("CURRENCY", "NGN"),

		FulfilmentMode: mode,
		MinimumSpend:   minimum,

		ShopkeeperAPIURL: getEnv("SHOPKEEPER_API_URL", "https://api.bigmerchant.co"),
		Shopkeeper: invoice.Credentials{
			AuthToken:  os.Getenv(invoice.EnvAuthToken),
			BranchID:   os.Getenv(invoice.EnvBranchID),
			BusinessID: os.Getenv(invoice.EnvBusinessID),
			MemberID:   os.Getenv(invoice.EnvMemberID),
		},

		RedisAddr:          os.Getenv("REDIS_ADDR"),
		OrderEventsBrokers: brokers,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
