package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/Joker-Pro-Max/Basalt/internal/iam/domain/system"
	"github.com/Joker-Pro-Max/Basalt/internal/infra/cache"
	"github.com/Joker-Pro-Max/Basalt/internal/infra/jwt"
	"github.com/Joker-Pro-Max/Basalt/internal/pkg/log/batch"
	"github.com/Joker-Pro-Max/Basalt/internal/resource/remote"

	"github.com/spf13/viper"
)

const (
	ServiceAccount  = "account"
	ServiceResource = "resource"

	AuthModeRemote = "remote"
	AuthModeLocal  = "local"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "Basalt")
	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http.port", 8080)
	v.SetDefault("security.jwt_access_expiry_min", 5)
	v.SetDefault("security.jwt_refresh_expiry_min", 24*60)
	v.SetDefault("cache.driver", cache.DriverMemory)
	v.SetDefault("cache.system_ttl_sec", int(system.DefaultCacheTTL/time.Second))
	v.SetDefault("cache.identity_ttl_sec", int(remote.DefaultTTL/time.Second))
	v.SetDefault("cache.negative_ttl_sec", int(remote.DefaultNegativeTTL/time.Second))
	v.SetDefault("resource.auth_mode", AuthModeRemote)
	v.SetDefault("resource.account_api_host", "http://127.0.0.1:8080")
	v.SetDefault("resource.timeout_sec", int(remote.DefaultTimeout/time.Second))
	v.SetDefault("log.enabled", true)
	v.SetDefault("log.batch.queue_size", 1024)
	v.SetDefault("log.batch.batch_size", 100)
	v.SetDefault("log.batch.flush_interval_ms", 1000)
}

// Environment configura e lê o arquivo de configuração (configs.json).
// Variáveis BASALT_* sobrescrevem o arquivo (ex.: BASALT_APP_ENV).
func Environment() error {
	v := viper.GetViper()
	v.SetConfigName("configs")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/") // Para ambientes de produção
	v.SetEnvPrefix("BASALT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("fatal error in configuration file: %w", err)
		}
	}
	return nil
}

func jwtConfig(v *viper.Viper) jwt.Config {
	return jwt.Config{
		AccessSecret:  v.GetString("security.jwt_access_secret"),
		RefreshSecret: v.GetString("security.jwt_refresh_secret"),
		Issuer:        v.GetString("app.name"),
		AccessExpiry:  time.Duration(v.GetInt64("security.jwt_access_expiry_min")) * time.Minute,
		RefreshExpiry: time.Duration(v.GetInt64("security.jwt_refresh_expiry_min")) * time.Minute,
	}
}

func cacheConfig(v *viper.Viper) cache.Config {
	return cache.Config{
		Driver:        v.GetString("cache.driver"),
		RedisAddr:     v.GetString("cache.redis.addr"),
		RedisPassword: v.GetString("cache.redis.password"),
		RedisDB:       v.GetInt("cache.redis.db"),
	}
}

func seconds(v *viper.Viper, key string) time.Duration {
	return time.Duration(v.GetInt64(key)) * time.Second
}

func identityCacheConfig(v *viper.Viper) remote.Config {
	return remote.Config{
		TTL:         seconds(v, "cache.identity_ttl_sec"),
		NegativeTTL: seconds(v, "cache.negative_ttl_sec"),
	}
}

func logBatchConfig(v *viper.Viper) batch.Config {
	return batch.Config{
		QueueSize:     v.GetInt("log.batch.queue_size"),
		BatchSize:     v.GetInt("log.batch.batch_size"),
		FlushInterval: time.Duration(v.GetInt64("log.batch.flush_interval_ms")) * time.Millisecond,
	}
}
