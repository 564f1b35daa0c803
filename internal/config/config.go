package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env      string `envconfig:"ENV" default:"development"`
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
	Timezone string `envconfig:"APP_TIMEZONE" default:"Asia/Ho_Chi_Minh"`

	RateLimitPerMin int      `envconfig:"RATE_LIMIT_PER_MIN" default:"200"`
	AllowedOrigins  []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`

	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	Database
	Redis
	SMTP
	AMQP

	PaymentPrefix  string `envconfig:"PAYMENT_PREFIX" default:"SportSync"`
	VietQRBanksURL string `envconfig:"VIETQR_BANKS_URL" default:"https://api.vietqr.io/v2/banks"`
}

type Database struct {
	Host         string `envconfig:"DB_HOST" default:"localhost"`
	Port         string `envconfig:"DB_PORT" default:"5432"`
	User         string `envconfig:"DB_USER" default:"postgres"`
	Password     string `envconfig:"DB_PASSWORD"`
	Name         string `envconfig:"DB_NAME" default:"sportsync"`
	SSLMode      string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
}

type Redis struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// SMTP is disabled when Host is empty.
type SMTP struct {
	Host     string        `envconfig:"SMTP_HOST"`
	Port     int           `envconfig:"SMTP_PORT" default:"587"`
	User     string        `envconfig:"SMTP_USER"`
	Password string        `envconfig:"SMTP_PASSWORD"`
	From     string        `envconfig:"SMTP_FROM" default:"SportSync <no-reply@sportsync.vn>"`
	Timeout  time.Duration `envconfig:"SMTP_TIMEOUT" default:"15s"`
}

// AMQP is disabled when URL is empty.
type AMQP struct {
	URL      string `envconfig:"AMQP_URL"`
	Exchange string `envconfig:"AMQP_EXCHANGE" default:"sportsync.bookings"`
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment take precedence.
func Load() (Config, error) {
	_ = godotenv.Load(".env")

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	return c, nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (d Database) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}
