package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	Env           string
	LogLevel      string
	AllowedOrigin string

	// Commerce backend (WooCommerce REST API)
	WooBaseURL        string
	WooConsumerKey    string
	WooConsumerSecret string
	WooTimeout        time.Duration
	WebhookToken      string

	// Durable cache mirror. Optional: empty DSN runs memory-only.
	DBUrl             string
	DBMaxConns        int32
	DBMinConns        int32
	DBMaxConnIdleTime time.Duration

	// Cache windows
	ShippingCacheTTL time.Duration
	CacheProductTTL  time.Duration
	CacheCategoryTTL time.Duration

	// Rate limiting
	RateLimitPerSec float64
	RateLimitBurst  int

	// Business rules
	FreeShippingThreshold float64
	MaxOrderQuantity      int
}

func LoadConfig() *Config {
	// A specific config file can be requested via env var; otherwise fall back
	// to .env for local dev. Missing files are fine: docker/prod environments
	// inject everything through system env vars.
	configFile := os.Getenv("CONFIG_FILE")
	if configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			log.Printf("Warning: Failed to load config file '%s': %v", configFile, err)
		} else {
			log.Printf("Loaded configuration from %s", configFile)
		}
	} else {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found or error loading it, relying on system env vars")
		}
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),

		WooBaseURL:        getEnv("WOO_BASE_URL", ""),
		WooConsumerKey:    getEnv("WOO_CONSUMER_KEY", ""),
		WooConsumerSecret: getEnv("WOO_CONSUMER_SECRET", ""),
		WooTimeout:        getDurationEnv("WOO_TIMEOUT", 15*time.Second),
		WebhookToken:      getEnv("WEBHOOK_TOKEN", ""),

		DBUrl:             getEnv("DB_DSN", ""),
		DBMaxConns:        getInt32Env("DB_MAX_CONNS", 10),
		DBMinConns:        getInt32Env("DB_MIN_CONNS", 2),
		DBMaxConnIdleTime: getDurationEnv("DB_MAX_CONN_IDLE_TIME", time.Minute*15),

		// Shipping zones are refetched at most once per window
		ShippingCacheTTL: getDurationEnv("SHIPPING_CACHE_TTL", 5*time.Minute),
		CacheProductTTL:  getDurationEnv("CACHE_PRODUCT_TTL", 10*time.Minute),
		CacheCategoryTTL: getDurationEnv("CACHE_CATEGORY_TTL", 30*time.Minute),

		RateLimitPerSec: getFloatEnv("RATE_LIMIT_PER_SEC", 50),
		RateLimitBurst:  getIntEnv("RATE_LIMIT_BURST", 100),

		// 0 disables the free shipping rule
		FreeShippingThreshold: getFloatEnv("FREE_SHIPPING_THRESHOLD", 0),
		MaxOrderQuantity:      getIntEnv("MAX_ORDER_QUANTITY", 100),
	}

	cfg.Validate()
	return cfg
}

func (c *Config) Validate() {
	if c.WooBaseURL == "" {
		log.Fatal("CRITICAL: WOO_BASE_URL environment variable is required")
	}
	if c.WooConsumerKey == "" || c.WooConsumerSecret == "" {
		log.Fatal("CRITICAL: WOO_CONSUMER_KEY and WOO_CONSUMER_SECRET are required")
	}
	if c.DBUrl == "" {
		log.Println("WARNING: DB_DSN not set, shipping zone cache will not survive restarts")
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
