package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"fulfillment/internal/jobs"
	"fulfillment/internal/pkg/errs"

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

	CarrierGrpcHost  string
	AuthorizedActors string
	LogLevel         string

	CollectionRefreshSchedule string
	CounterRepairSchedule     string
}

// LoadConfig reads settings from the environment. Values from a .env file
// must already be loaded into it.
func LoadConfig() Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("HTTP_PORT", "8082")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("COLLECTION_REFRESH_SCHEDULE", jobs.DefaultCollectionRefreshSchedule)
	v.SetDefault("COUNTER_REPAIR_SCHEDULE", jobs.DefaultCounterRepairSchedule)

	return Config{
		HTTPPort:                  v.GetString("HTTP_PORT"),
		DBHost:                    v.GetString("DB_HOST"),
		DBPort:                    v.GetString("DB_PORT"),
		DBUser:                    v.GetString("DB_USER"),
		DBPassword:                v.GetString("DB_PASSWORD"),
		DBName:                    v.GetString("DB_NAME"),
		DBSslMode:                 v.GetString("DB_SSLMODE"),
		CarrierGrpcHost:           v.GetString("CARRIER_GRPC_HOST"),
		AuthorizedActors:          v.GetString("AUTHORIZED_ACTORS"),
		LogLevel:                  v.GetString("LOG_LEVEL"),
		CollectionRefreshSchedule: v.GetString("COLLECTION_REFRESH_SCHEDULE"),
		CounterRepairSchedule:     v.GetString("COUNTER_REPAIR_SCHEDULE"),
	}
}

// Validate reports every missing required setting at once.
func (c Config) Validate() error {
	required := []struct{ key, value string }{
		{"HTTP_PORT", c.HTTPPort},
		{"DB_HOST", c.DBHost},
		{"DB_PORT", c.DBPort},
		{"DB_USER", c.DBUser},
		{"DB_NAME", c.DBName},
		{"CARRIER_GRPC_HOST", c.CarrierGrpcHost},
	}

	var problems []error
	for _, setting := range required {
		if strings.TrimSpace(setting.value) == "" {
			problems = append(problems, errs.NewValueIsRequiredError(setting.key))
		}
	}
	return errors.Join(problems...)
}

// DSN is the postgres connection string for gorm.
func (c Config) DSN() string {
	sslMode := c.DBSslMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, sslMode)
}

// SlogLevel maps LOG_LEVEL onto slog. Unknown values mean info.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
