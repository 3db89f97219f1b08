package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"gasfill/internal/core/domain/model/kernel"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	JWTSecret  string
	LogLevel   string

	KafkaBrokers           []string
	KafkaOrderChangedTopic string
	RedisAddr              string
	RedisPassword          string

	ExpirySweepSchedule     string
	AssignmentTimeout       time.Duration
	AssignmentMaxDistanceKm float64
	RiderCommissionRate     float64
	StationLatitude         float64
	StationLongitude        float64
}

// LoadEnvFile loads variables from a .env file when one exists. Variables
// already set in the environment win.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// NewViper returns a viper instance reading the process environment with the
// service defaults applied.
func NewViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("KAFKA_ORDER_CHANGED_TOPIC", "order.changed")
	v.SetDefault("EXPIRY_SWEEP_SCHEDULE", "*/5 * * * * *")
	v.SetDefault("ASSIGNMENT_TIMEOUT", "30s")
	v.SetDefault("ASSIGNMENT_MAX_DISTANCE_KM", 0.0)
	v.SetDefault("RIDER_COMMISSION_RATE", 0.8)
	v.SetDefault("STATION_LATITUDE", 5.6037)
	v.SetDefault("STATION_LONGITUDE", -0.1870)

	return v
}

// LoadConfig reads the configuration. Malformed numbers and durations are
// reported together.
func LoadConfig(v *viper.Viper) (Config, error) {
	cfg := Config{
		HTTPPort:               v.GetString("HTTP_PORT"),
		DBHost:                 v.GetString("DB_HOST"),
		DBPort:                 v.GetString("DB_PORT"),
		DBUser:                 v.GetString("DB_USER"),
		DBPassword:             v.GetString("DB_PASSWORD"),
		DBName:                 v.GetString("DB_NAME"),
		DBSslMode:              v.GetString("DB_SSLMODE"),
		JWTSecret:              v.GetString("JWT_SECRET"),
		LogLevel:               v.GetString("LOG_LEVEL"),
		KafkaBrokers:           splitList(v.GetString("KAFKA_BROKERS")),
		KafkaOrderChangedTopic: v.GetString("KAFKA_ORDER_CHANGED_TOPIC"),
		RedisAddr:              v.GetString("REDIS_ADDR"),
		RedisPassword:          v.GetString("REDIS_PASSWORD"),
		ExpirySweepSchedule:    v.GetString("EXPIRY_SWEEP_SCHEDULE"),
	}

	var parseErrs []error
	var err error
	if cfg.AssignmentTimeout, err = time.ParseDuration(v.GetString("ASSIGNMENT_TIMEOUT")); err != nil {
		parseErrs = append(parseErrs, fmt.Errorf("ASSIGNMENT_TIMEOUT: %w", err))
	}
	floats := []struct {
		key string
		dst *float64
	}{
		{"ASSIGNMENT_MAX_DISTANCE_KM", &cfg.AssignmentMaxDistanceKm},
		{"RIDER_COMMISSION_RATE", &cfg.RiderCommissionRate},
		{"STATION_LATITUDE", &cfg.StationLatitude},
		{"STATION_LONGITUDE", &cfg.StationLongitude},
	}
	for _, f := range floats {
		var value float64
		if value, err = cast.ToFloat64E(v.Get(f.key)); err != nil {
			parseErrs = append(parseErrs, fmt.Errorf("%s: %w", f.key, err))
			continue
		}
		*f.dst = value
	}

	return cfg, errors.Join(parseErrs...)
}

// Validate checks the settings every command needs. The JWT secret is only
// required by commands that serve HTTP.
func (c Config) Validate(requireAuth bool) error {
	var errs []error
	required := map[string]string{
		"DB_HOST":     c.DBHost,
		"DB_PORT":     c.DBPort,
		"DB_USER":     c.DBUser,
		"DB_PASSWORD": c.DBPassword,
		"DB_NAME":     c.DBName,
	}
	if requireAuth {
		required["JWT_SECRET"] = c.JWTSecret
		required["HTTP_PORT"] = c.HTTPPort
	}
	for _, key := range []string{"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "JWT_SECRET", "HTTP_PORT"} {
		if value, ok := required[key]; ok && strings.TrimSpace(value) == "" {
			errs = append(errs, fmt.Errorf("%s is required", key))
		}
	}

	if c.AssignmentTimeout <= 0 {
		errs = append(errs, fmt.Errorf("ASSIGNMENT_TIMEOUT must be positive, got %s", c.AssignmentTimeout))
	}
	if c.AssignmentMaxDistanceKm < 0 {
		errs = append(errs, fmt.Errorf("ASSIGNMENT_MAX_DISTANCE_KM must not be negative, got %v", c.AssignmentMaxDistanceKm))
	}
	if c.RiderCommissionRate <= 0 || c.RiderCommissionRate > 1 {
		errs = append(errs, fmt.Errorf("RIDER_COMMISSION_RATE must be in (0, 1], got %v", c.RiderCommissionRate))
	}
	if _, err := c.Station(); err != nil {
		errs = append(errs, fmt.Errorf("STATION_LATITUDE/STATION_LONGITUDE: %w", err))
	}

	return errors.Join(errs...)
}

// Station is the dispatch location used for delivery fees.
func (c Config) Station() (kernel.Location, error) {
	return kernel.NewLocation(c.StationLatitude, c.StationLongitude)
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
