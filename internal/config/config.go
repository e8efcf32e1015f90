package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Env      string
	LogLevel string
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NATS     NATSConfig
	Cache    CacheConfig
	Order    OrderConfig
	Payment  PaymentConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// NATSConfig holds NATS configuration
type NATSConfig struct {
	URL string
}

// CacheConfig holds caching TTL configuration
type CacheConfig struct {
	ProductTTL     time.Duration
	ProductListTTL time.Duration
	DashboardTTL   time.Duration
	SessionTTL     time.Duration
}

// OrderConfig holds checkout pricing and numbering settings
type OrderConfig struct {
	NumberPrefix          string
	Location              *time.Location
	TaxRate               decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	ShippingFee           decimal.Decimal
	Currency              string
	MaxTxRetries          int
}

// PaymentConfig holds payment provider settings
type PaymentConfig struct {
	Environment   string
	WebhookSecret string
}

// Load reads configuration from environment variables and returns a Config struct.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_READ_TIMEOUT", "10s")
	viper.SetDefault("SERVER_WRITE_TIMEOUT", "10s")
	viper.SetDefault("SERVER_SHUTDOWN_TIMEOUT", "30s")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")

	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_NAME", "autospares")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "5m")

	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("NATS_URL", "nats://localhost:4222")

	viper.SetDefault("CACHE_TTL_PRODUCT", "300s")
	viper.SetDefault("CACHE_TTL_PRODUCT_LIST", "120s")
	viper.SetDefault("CACHE_TTL_DASHBOARD", "60s")
	viper.SetDefault("SESSION_TTL", "720h")

	viper.SetDefault("ORDER_NUMBER_PREFIX", "MSA")
	viper.SetDefault("ORDER_TIMEZONE", "Africa/Johannesburg")
	viper.SetDefault("ORDER_TAX_RATE", "0.15")
	viper.SetDefault("ORDER_FREE_SHIPPING_THRESHOLD", "1000")
	viper.SetDefault("ORDER_SHIPPING_FEE", "150")
	viper.SetDefault("ORDER_CURRENCY", "ZAR")
	viper.SetDefault("ORDER_TX_MAX_RETRIES", 3)

	viper.SetDefault("PAYSHAP_ENVIRONMENT", "sandbox")
	viper.SetDefault("PAYSHAP_WEBHOOK_SECRET", "")

	readTimeout, err := time.ParseDuration(viper.GetString("SERVER_READ_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(viper.GetString("SERVER_WRITE_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_WRITE_TIMEOUT: %w", err)
	}

	shutdownTimeout, err := time.ParseDuration(viper.GetString("SERVER_SHUTDOWN_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_SHUTDOWN_TIMEOUT: %w", err)
	}

	connMaxLifetime, err := time.ParseDuration(viper.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_CONN_MAX_LIFETIME: %w", err)
	}

	productTTL, err := time.ParseDuration(viper.GetString("CACHE_TTL_PRODUCT"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL_PRODUCT: %w", err)
	}

	productListTTL, err := time.ParseDuration(viper.GetString("CACHE_TTL_PRODUCT_LIST"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL_PRODUCT_LIST: %w", err)
	}

	dashboardTTL, err := time.ParseDuration(viper.GetString("CACHE_TTL_DASHBOARD"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL_DASHBOARD: %w", err)
	}

	sessionTTL, err := time.ParseDuration(viper.GetString("SESSION_TTL"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}

	location, err := time.LoadLocation(viper.GetString("ORDER_TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("invalid ORDER_TIMEZONE: %w", err)
	}

	taxRate, err := decimal.NewFromString(viper.GetString("ORDER_TAX_RATE"))
	if err != nil {
		return nil, fmt.Errorf("invalid ORDER_TAX_RATE: %w", err)
	}

	freeShipping, err := decimal.NewFromString(viper.GetString("ORDER_FREE_SHIPPING_THRESHOLD"))
	if err != nil {
		return nil, fmt.Errorf("invalid ORDER_FREE_SHIPPING_THRESHOLD: %w", err)
	}

	shippingFee, err := decimal.NewFromString(viper.GetString("ORDER_SHIPPING_FEE"))
	if err != nil {
		return nil, fmt.Errorf("invalid ORDER_SHIPPING_FEE: %w", err)
	}

	if taxRate.IsNegative() || freeShipping.IsNegative() || shippingFee.IsNegative() {
		return nil, fmt.Errorf("order pricing settings must not be negative")
	}

	prefix := strings.ToUpper(strings.TrimSpace(viper.GetString("ORDER_NUMBER_PREFIX")))
	if !isStoreCode(prefix) {
		return nil, fmt.Errorf("invalid ORDER_NUMBER_PREFIX %q: must be 3 letters", prefix)
	}

	webhookSecret := viper.GetString("PAYSHAP_WEBHOOK_SECRET")
	if webhookSecret == "" {
		return nil, fmt.Errorf("PAYSHAP_WEBHOOK_SECRET is required")
	}

	allowedOriginsStr := viper.GetString("CORS_ALLOWED_ORIGINS")
	allowedOrigins := strings.Split(allowedOriginsStr, ",")
	for i := range allowedOrigins {
		allowedOrigins[i] = strings.TrimSpace(allowedOrigins[i])
	}

	config := &Config{
		Env:      viper.GetString("ENV"),
		LogLevel: viper.GetString("LOG_LEVEL"),
		Server: ServerConfig{
			Port:            viper.GetString("SERVER_PORT"),
			ReadTimeout:     readTimeout,
			WriteTimeout:    writeTimeout,
			ShutdownTimeout: shutdownTimeout,
			AllowedOrigins:  allowedOrigins,
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetString("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Name:            viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		NATS: NATSConfig{
			URL: viper.GetString("NATS_URL"),
		},
		Cache: CacheConfig{
			ProductTTL:     productTTL,
			ProductListTTL: productListTTL,
			DashboardTTL:   dashboardTTL,
			SessionTTL:     sessionTTL,
		},
		Order: OrderConfig{
			NumberPrefix:          prefix,
			Location:              location,
			TaxRate:               taxRate,
			FreeShippingThreshold: freeShipping,
			ShippingFee:           shippingFee,
			Currency:              viper.GetString("ORDER_CURRENCY"),
			MaxTxRetries:          viper.GetInt("ORDER_TX_MAX_RETRIES"),
		},
		Payment: PaymentConfig{
			Environment:   viper.GetString("PAYSHAP_ENVIRONMENT"),
			WebhookSecret: webhookSecret,
		},
	}

	return config, nil
}

func isStoreCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// GetDSN returns the PostgreSQL connection string
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}
