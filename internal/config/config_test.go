// InstaBids | 2026
// config_test.go

package config

import (
	"testing"
	"time"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig(t *testing.T) *Config {
	t.Helper()

	k := koanf.New(".")
	require.NoError(t, loadDefaults(k))

	c := &Config{}
	require.NoError(t, k.Unmarshal("", c))
	return c
}

func validConfig(t *testing.T) *Config {
	c := defaultConfig(t)
	c.Database.URL = "postgres://localhost/instabids"
	c.Redis.URL = "redis://localhost:6379"
	return c
}

func TestDefaults(t *testing.T) {
	c := defaultConfig(t)

	assert.Equal(t, "development", c.App.Environment)
	assert.Equal(t, "0.0.0.0:8080", c.Server.Address())
	assert.Equal(t, 30*time.Second, c.Server.ReadTimeout)
	assert.Equal(t, 15*time.Minute, c.JWT.AccessTokenExpire)
	assert.Equal(t, 168*time.Hour, c.JWT.RefreshTokenExpire)
	assert.Equal(t, 100, c.RateLimit.Requests)
	assert.Equal(t, 7, c.Bidding.MaxDeadlineDays)
	assert.Equal(t, 3, c.Bidding.DefaultMinBids)
	assert.Equal(t, 60*time.Second, c.SmartScope.Timeout)
	assert.True(t, c.IsDevelopment())
	assert.False(t, c.IsProduction())
}

func TestValidate(t *testing.T) {
	require.NoError(t, validate(validConfig(t)))
}

func TestValidateRequiredFields(t *testing.T) {
	c := validConfig(t)
	c.Database.URL = ""
	require.Error(t, validate(c))

	c = validConfig(t)
	c.Redis.URL = ""
	require.Error(t, validate(c))

	c = validConfig(t)
	c.JWT.PrivateKeyPath = ""
	require.Error(t, validate(c))
}

func TestValidateCORSWildcardWithCredentials(t *testing.T) {
	c := validConfig(t)
	c.CORS.AllowedOrigins = []string{"*"}
	c.CORS.AllowCredentials = true
	require.Error(t, validate(c))

	c.CORS.AllowCredentials = false
	require.NoError(t, validate(c))
}

func TestValidateProductionTelemetry(t *testing.T) {
	c := validConfig(t)
	c.App.Environment = "production"
	c.Otel.Enabled = true
	c.Otel.Insecure = true
	require.Error(t, validate(c))

	c.Otel.Insecure = false
	require.NoError(t, validate(c))
}

func TestValidateBiddingRules(t *testing.T) {
	c := validConfig(t)
	c.Bidding.MaxDeadlineDays = 0
	require.Error(t, validate(c))
}

func TestEnvKeyReplacer(t *testing.T) {
	assert.Equal(t, "database.url", envKeyReplacer("DATABASE_URL"))
	assert.Equal(t, "smartscope.api_key", envKeyReplacer("SMARTSCOPE_API_KEY"))

	// Unmapped variables are dropped rather than guessed at.
	assert.Empty(t, envKeyReplacer("PATH"))
	assert.Empty(t, envKeyReplacer("HOME"))
}
