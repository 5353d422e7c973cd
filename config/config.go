package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Database Database
	Auth     Auth
	Server   Server
	Log      Log
	SMTP     SMTP

	// OrderDeskEmail receives a notice for every submitted draft. Empty disables it.
	OrderDeskEmail string `env:"ORDER_DESK_EMAIL"`
	// Timezone defines the calendar day used for offer vigency.
	Timezone string `env:"TIMEZONE" envDefault:"America/Argentina/Buenos_Aires"`

	// Seed admin, created at startup when both are set and the email is unknown.
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

type Database struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME" envDefault:"ordersphere"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

// DSN returns the postgres connection string.
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type Auth struct {
	JWTSecret     string        `env:"JWT_SECRET,required,notEmpty"`
	JWTExpiration time.Duration `env:"JWT_EXPIRATION" envDefault:"24h"`
}

type Server struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Env         string `env:"ENV" envDefault:"development"`
	FrontendURL string `env:"FRONTEND_URL"`
}

// IsProduction reports whether ENV is "production".
func (s Server) IsProduction() bool {
	return s.Env == "production"
}

type Log struct {
	Dir   string `env:"LOG_DIR" envDefault:"logs"`
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

type SMTP struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM"`
}

// LoadConfig loads configuration from the environment. A .env file is read
// first when present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("env.Parse: %w", err)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}
