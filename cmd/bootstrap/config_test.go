package bootstrap

import (
	"os"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"github.com/Joker-Pro-Max/Basalt/internal/iam/domain/system"
	"github.com/Joker-Pro-Max/Basalt/internal/infra/cache"
	"github.com/Joker-Pro-Max/Basalt/internal/resource/remote"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestSetDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	assert.Equal(t, AuthModeRemote, v.GetString("resource.auth_mode"))
	assert.Equal(t, cache.DriverMemory, cacheConfig(v).Driver)
	assert.Equal(t, remote.Config{TTL: remote.DefaultTTL, NegativeTTL: remote.DefaultNegativeTTL}, identityCacheConfig(v))
	assert.Equal(t, remote.DefaultTimeout, seconds(v, "resource.timeout_sec"))
	assert.Equal(t, time.Hour, seconds(v, "cache.system_ttl_sec"))
	assert.Equal(t, system.DefaultCacheTTL, seconds(v, "cache.system_ttl_sec"))

	assert.Equal(t, time.Second, logBatchConfig(v).FlushInterval)
	assert.Equal(t, 100, logBatchConfig(v).BatchSize)

	cfg := jwtConfig(v)
	assert.Equal(t, 5*time.Minute, cfg.AccessExpiry)
	assert.Equal(t, 24*time.Hour, cfg.RefreshExpiry)
	assert.Equal(t, "Basalt", cfg.Issuer)
}

func TestIdentityCacheConfig_Override(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("cache.identity_ttl_sec", 0)
	v.Set("cache.negative_ttl_sec", 30)

	cfg := identityCacheConfig(v)
	assert.Zero(t, cfg.TTL)
	assert.Equal(t, 30*time.Second, cfg.NegativeTTL)
}

func TestEnvironment_EnvOverride(t *testing.T) {
	t.Setenv("BASALT_RESOURCE_AUTH_MODE", AuthModeLocal)
	chdir(t, t.TempDir())

	assert.NoError(t, Environment())
	assert.Equal(t, AuthModeLocal, viper.GetString("resource.auth_mode"))
}

func TestNew_UnknownService(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("BASALT_APP_ENV", "dev")
	t.Setenv("BASALT_CACHE_DRIVER", cache.DriverNone)

	_, err := New("billing")
	assert.ErrorIs(t, err, ErrUnknownService)
}
