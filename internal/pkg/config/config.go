package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Cookie    CookieConfig
	RateToken RateTokenConfig
	Checkout  CheckoutConfig
	Gateways  GatewaysConfig
	Supplier  SupplierConfig
	Insurance InsuranceConfig
	Currency  CurrencyConfig
	Mail      MailConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Yerevan"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type KafkaConfig struct {
	Brokers     []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	MailTopic   string   `envconfig:"KAFKA_MAIL_TOPIC" default:"booking.mail"`
	DialRetries int      `envconfig:"KAFKA_DIAL_RETRIES" default:"5"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,X-Session-ID"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Yerevan"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"14400"` // 4*60*60
	// File enables a rotating log file next to stdout when set.
	File       string `envconfig:"LOG_FILE" default:""`
	MaxSizeMB  int    `envconfig:"LOG_MAX_SIZE_MB" default:"100"`
	MaxBackups int    `envconfig:"LOG_MAX_BACKUPS" default:"5"`
	MaxAgeDays int    `envconfig:"LOG_MAX_AGE_DAYS" default:"30"`
}

type JWTConfig struct {
	Secret               string `envconfig:"JWT_SECRET" required:"true"`
	AccessTokenDuration  string `envconfig:"JWT_ACCESS_TOKEN_DURATION" default:"15m"`
	RefreshTokenDuration string `envconfig:"JWT_REFRESH_TOKEN_DURATION" default:"168h"`
}

type CookieConfig struct {
	Domain   string `envconfig:"COOKIE_DOMAIN" default:""`
	Secure   bool   `envconfig:"COOKIE_SECURE" default:"true"`
	SameSite string `envconfig:"COOKIE_SAME_SITE" default:"Lax"`
}

type RateTokenConfig struct {
	Secret string `envconfig:"RATE_TOKEN_SECRET" required:"true"`
}

type CheckoutConfig struct {
	QuoteWindow        time.Duration `envconfig:"CHECKOUT_QUOTE_WINDOW" default:"10m"`
	AttemptFreshness   time.Duration `envconfig:"CHECKOUT_ATTEMPT_FRESHNESS" default:"15m"`
	StaleLockAfter     time.Duration `envconfig:"CHECKOUT_STALE_LOCK_AFTER" default:"5m"`
	PollAttempts       int           `envconfig:"CHECKOUT_POLL_ATTEMPTS" default:"10"`
	PollInterval       time.Duration `envconfig:"CHECKOUT_POLL_INTERVAL" default:"1s"`
	SupportLockTTL     time.Duration `envconfig:"CHECKOUT_SUPPORT_LOCK_TTL" default:"2m"`
	SettlementCurrency string        `envconfig:"CHECKOUT_SETTLEMENT_CURRENCY" default:"AMD"`
	SuccessURL         string        `envconfig:"CHECKOUT_SUCCESS_URL" required:"true"`
	FailureURL         string        `envconfig:"CHECKOUT_FAILURE_URL" required:"true"`
	CallbackBaseURL    string        `envconfig:"CHECKOUT_CALLBACK_BASE_URL" required:"true"`
}

type GatewaysConfig struct {
	VPOS    VPOSConfig
	Ameria  AmeriaConfig
	Telcell TelcellConfig
	// RequestsPerSecond paces outbound calls per gateway.
	RequestsPerSecond float64       `envconfig:"GATEWAY_RPS" default:"5"`
	Burst             int           `envconfig:"GATEWAY_BURST" default:"5"`
	Timeout           time.Duration `envconfig:"GATEWAY_TIMEOUT" default:"15s"`
}

type VPOSConfig struct {
	Enabled  bool   `envconfig:"VPOS_ENABLED" default:"false"`
	BaseURL  string `envconfig:"VPOS_BASE_URL" default:"https://ipay.arca.am/payment/rest"`
	Username string `envconfig:"VPOS_USERNAME"`
	Password string `envconfig:"VPOS_PASSWORD"`
}

type AmeriaConfig struct {
	Enabled  bool   `envconfig:"AMERIA_ENABLED" default:"false"`
	BaseURL  string `envconfig:"AMERIA_BASE_URL" default:"https://services.ameriabank.am/VPOS"`
	ClientID string `envconfig:"AMERIA_CLIENT_ID"`
	Username string `envconfig:"AMERIA_USERNAME"`
	Password string `envconfig:"AMERIA_PASSWORD"`
}

type TelcellConfig struct {
	Enabled bool   `envconfig:"TELCELL_ENABLED" default:"false"`
	BaseURL string `envconfig:"TELCELL_BASE_URL" default:"https://telcellmoney.am/invoices"`
	Issuer  string `envconfig:"TELCELL_ISSUER"`
	Secret  string `envconfig:"TELCELL_SECRET"`
}

type SupplierConfig struct {
	BaseURL string        `envconfig:"SUPPLIER_BASE_URL" required:"true"`
	APIKey  string        `envconfig:"SUPPLIER_API_KEY" required:"true"`
	Timeout time.Duration `envconfig:"SUPPLIER_TIMEOUT" default:"60s"`
}

type InsuranceConfig struct {
	BaseURL string        `envconfig:"INSURANCE_BASE_URL" required:"true"`
	APIKey  string        `envconfig:"INSURANCE_API_KEY" required:"true"`
	Timeout time.Duration `envconfig:"INSURANCE_TIMEOUT" default:"20s"`
}

type CurrencyConfig struct {
	RatesURL string        `envconfig:"CURRENCY_RATES_URL" required:"true"`
	CacheTTL time.Duration `envconfig:"CURRENCY_CACHE_TTL" default:"30m"`
	Timeout  time.Duration `envconfig:"CURRENCY_TIMEOUT" default:"5s"`
}

type MailConfig struct {
	From     string `envconfig:"MAIL_FROM" default:"bookings@example.com"`
	AdminBCC string `envconfig:"MAIL_ADMIN_BCC" default:""`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

// Validate checks the settings the checkout flow cannot run without.
func (c Config) Validate() error {
	ck := c.Checkout
	switch {
	case ck.QuoteWindow <= 0:
		return errors.New("CHECKOUT_QUOTE_WINDOW must be positive")
	case ck.AttemptFreshness <= 0:
		return errors.New("CHECKOUT_ATTEMPT_FRESHNESS must be positive")
	case ck.PollAttempts < 1 || ck.PollInterval <= 0:
		return errors.New("CHECKOUT_POLL_ATTEMPTS and CHECKOUT_POLL_INTERVAL must be positive")
	case ck.StaleLockAfter <= time.Duration(ck.PollAttempts)*ck.PollInterval:
		return fmt.Errorf("CHECKOUT_STALE_LOCK_AFTER (%s) must exceed the callback poll (%d x %s)",
			ck.StaleLockAfter, ck.PollAttempts, ck.PollInterval)
	case len(strings.TrimSpace(ck.SettlementCurrency)) != 3:
		return fmt.Errorf("CHECKOUT_SETTLEMENT_CURRENCY %q is not an ISO 4217 code", ck.SettlementCurrency)
	case c.Gateways.RequestsPerSecond <= 0 || c.Gateways.Burst < 1:
		return errors.New("GATEWAY_RPS and GATEWAY_BURST must be positive")
	}
	if len(c.RateToken.Secret) < 16 {
		return errors.New("RATE_TOKEN_SECRET must be at least 16 bytes")
	}
	return nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Yerevan",
			MaxConns: 10,
		},
		Redis: RedisConfig{
			Addr: "localhost:16379",
		},
		Kafka: KafkaConfig{
			Brokers:   []string{"localhost:19092"},
			MailTopic: "booking.mail.test",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Yerevan",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 14400,
		},
		JWT: JWTConfig{
			Secret:               "test-secret-key-for-testing-only",
			AccessTokenDuration:  "15m",
			RefreshTokenDuration: "168h",
		},
		Cookie: CookieConfig{
			Secure:   false,
			SameSite: "Lax",
		},
		RateToken: RateTokenConfig{
			Secret: "test-rate-token-secret",
		},
		Checkout: CheckoutConfig{
			QuoteWindow:        10 * time.Minute,
			AttemptFreshness:   15 * time.Minute,
			StaleLockAfter:     5 * time.Minute,
			PollAttempts:       3,
			PollInterval:       10 * time.Millisecond,
			SupportLockTTL:     2 * time.Minute,
			SettlementCurrency: "AMD",
			SuccessURL:         "http://localhost:3000/checkout/success",
			FailureURL:         "http://localhost:3000/checkout/failure",
			CallbackBaseURL:    "http://localhost:8889/api/payments",
		},
		Gateways: GatewaysConfig{
			RequestsPerSecond: 100,
			Burst:             10,
			Timeout:           5 * time.Second,
		},
	}
}
