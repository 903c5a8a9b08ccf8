package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
server:
  host: "0.0.0.0"
  port: 8080
database:
  driver: "memory"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.GetServerAddress())
	assert.Equal(t, "memory", cfg.Database.Driver)

	// Penalty tariff defaults
	assert.Equal(t, int64(200), cfg.Pricing.DailyMileageAllowanceKm)
	assert.Equal(t, int64(50), cfg.Pricing.MileageOverageFeeCents)
	assert.Equal(t, int64(7500), cfg.Pricing.FuelRefillChargeCents)
	assert.Equal(t, int64(2500), cfg.Pricing.LateFeePerHourCents)

	// Scheduler defaults
	assert.Equal(t, "0 0 2 * * *", cfg.Scheduler.NotifyOverdueRentals)
	assert.Equal(t, "0 0 3 * * *", cfg.Scheduler.SendMaintenanceAlerts)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadPostgresRequiresConnectionDetails(t *testing.T) {
	path := writeConfigFile(t, `
server:
  host: "0.0.0.0"
  port: 8080
database:
  driver: "postgres"
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	path := writeConfigFile(t, `
server:
  host: "0.0.0.0"
  port: 8080
database:
  driver: "cassandra"
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfigFile(t, `
server:
  host: "0.0.0.0"
  port: 8080
database:
  driver: "postgres"
  host: "localhost"
  user: "carfleet"
  database: "carfleet_dev"
  password: "secret"
  port: 5432
  ssl_mode: "disable"
`)

	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("SENDGRID_API_KEY", "SG.test")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "SG.test", cfg.SendGrid.APIKey)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Contains(t, cfg.GetDatabaseConnectionString(), "db.internal:5432/carfleet_dev")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
