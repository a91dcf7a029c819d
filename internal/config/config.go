package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"go-presence/internal/geo"
)

const (
	defaultPort        = "3000"
	defaultFaceAPIURL  = "http://localhost:5000"
	defaultMaxDistance = 100.0
)

type DBConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
}

// Config is read once at startup. Offices and the geofence radius are static
// for the lifetime of the process.
type Config struct {
	Port        string
	AppEnv      string
	DB          DBConfig
	RedisAddr   string
	KafkaBroker string
	JWTSecret   string
	FaceAPIURL  string
	FaceTimeout time.Duration

	// RBACModelPath overrides the built-in casbin model when set.
	RBACModelPath      string
	OutboxPollInterval time.Duration
	AuditConsumerGroup string

	Offices           []geo.OfficeLocation
	MaxDistanceMeters float64
	Location          *time.Location
}

func Load() (Config, error) {
	cfg := Config{
		Port:   getenv("PORT", defaultPort),
		AppEnv: os.Getenv("APP_ENV"),
		DB: DBConfig{
			Host:     os.Getenv("DB_HOST"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			Port:     os.Getenv("DB_PORT"),
			SSLMode:  getenv("DB_SSLMODE", "disable"),
		},
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		KafkaBroker: os.Getenv("KAFKA_BROKER"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		FaceAPIURL:  getenv("FACE_API_URL", defaultFaceAPIURL),
		FaceTimeout: 30 * time.Second,

		RBACModelPath:      os.Getenv("RBAC_MODEL_PATH"),
		OutboxPollInterval: 3 * time.Second,
		AuditConsumerGroup: getenv("AUDIT_CONSUMER_GROUP", "go-presence-audit"),
	}

	if v := os.Getenv("OUTBOX_POLL_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("OUTBOX_POLL_INTERVAL must be a positive duration, got %q", v)
		}
		cfg.OutboxPollInterval = d
	}

	if v := os.Getenv("FACE_API_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("FACE_API_TIMEOUT: %w", err)
		}
		cfg.FaceTimeout = d
	}

	offices, err := LoadOffices(os.Getenv("OFFICES_FILE"))
	if err != nil {
		return Config{}, err
	}
	cfg.Offices = offices.Offices
	cfg.MaxDistanceMeters = offices.MaxDistanceMeters

	if v := os.Getenv("MAX_ATTENDANCE_DISTANCE"); v != "" {
		m, err := strconv.ParseFloat(v, 64)
		if err != nil || m <= 0 {
			return Config{}, fmt.Errorf("MAX_ATTENDANCE_DISTANCE must be a positive number, got %q", v)
		}
		cfg.MaxDistanceMeters = m
	}

	loc, err := time.LoadLocation(getenv("APP_TIMEZONE", "Local"))
	if err != nil {
		return Config{}, fmt.Errorf("APP_TIMEZONE: %w", err)
	}
	cfg.Location = loc

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
