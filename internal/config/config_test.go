package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
api:
  port: "9090"
  environment: "test"
  jwt_signing_key: "secret"
  allowed_cors_domains: ["http://a.test", "http://b.test"]
gin:
  mode: "release"
postgres:
  host: "db"
  port: "5432"
  user: "u"
  password: "p"
  db: "ghostpin"
proximity:
  notification_window: 30m
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	conf, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, "9090", conf.API.Port)
	assert.Equal(t, "test", conf.API.Environment)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, conf.API.AllowedCORSDomains)
	assert.Equal(t, "release", conf.Gin.Mode)
	assert.Equal(t, "host=db user=u password=p dbname=ghostpin port=5432 sslmode=disable", conf.Postgres.DSN())
	assert.Equal(t, 30*time.Minute, conf.Proximity.NotificationWindow)
}

func TestLoad_Defaults(t *testing.T) {
	conf, err := Load(writeConfig(t, "api:\n  jwt_signing_key: \"k\"\n"))
	require.NoError(t, err)

	assert.Equal(t, "8080", conf.API.Port)
	assert.Equal(t, 20, conf.Reputation.Awards.PlaceSubmitted)
	assert.Equal(t, 5, conf.Reputation.Awards.Comment)
	assert.Equal(t, 10, conf.Reputation.Awards.CheckIn)
	assert.Equal(t, 50, conf.Reputation.Awards.PlaceApproved)
	assert.Equal(t, time.Hour, conf.Proximity.NotificationWindow)
	assert.InDelta(t, 10.0, conf.Proximity.DefaultRadiusKm, 1e-9)
	assert.Equal(t, 15*time.Minute, conf.Storage.PresignTTL)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("API_PORT", "7000")

	conf, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, "7000", conf.API.Port)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
