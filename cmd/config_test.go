package cmd

import (
	"log/slog"
	"testing"

	"fulfillment/internal/jobs"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		HTTPPort:        "8082",
		DBHost:          "localhost",
		DBPort:          "5432",
		DBUser:          "username",
		DBPassword:      "secret",
		DBName:          "fulfillment",
		CarrierGrpcHost: "localhost:5004",
	}
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	cfg := validConfig()
	cfg.DBHost = ""
	cfg.CarrierGrpcHost = " "

	err := cfg.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Contains(t, err.Error(), "DB_HOST")
	assert.Contains(t, err.Error(), "CARRIER_GRPC_HOST")
}

func TestConfig_DSN(t *testing.T) {
	assert.Equal(t,
		"host=localhost port=5432 user=username password=secret dbname=fulfillment sslmode=disable",
		validConfig().DSN())
}

func TestConfig_SlogLevel(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())

	cfg.LogLevel = "debug"
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())

	cfg.LogLevel = "loud"
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("AUTHORIZED_ACTORS", "dilan=*")
	t.Setenv("COUNTER_REPAIR_SCHEDULE", "0 30 2 * * *")

	cfg := LoadConfig()

	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "dilan=*", cfg.AuthorizedActors)
	assert.Equal(t, "0 30 2 * * *", cfg.CounterRepairSchedule)
	assert.Equal(t, jobs.DefaultCollectionRefreshSchedule, cfg.CollectionRefreshSchedule)
	assert.Equal(t, "disable", cfg.DBSslMode)
}
