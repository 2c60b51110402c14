package postgres

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestConfig_DSN(t *testing.T) {
	cfg := Config{Host: "db", Port: "5432", User: "u", Password: "p", Database: "oa", SSLMode: SSLRequire}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=oa sslmode=require", cfg.DSN())

	cfg = Config{Host: "db", Port: "5432", User: "u", Password: "p", SSLMode: "bogus"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=basalt sslmode=disable", cfg.DSN())
}

func TestConfigFromViper(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("databases.postgres.host", "localhost")
	viper.Set("databases.postgres.port", 5433)
	viper.Set("databases.postgres.db_name", "oa")

	cfg := ConfigFromViper()
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, "5433", cfg.Port)
	assert.Equal(t, "oa", cfg.Database)
}

func TestGetDB_NotInitialized(t *testing.T) {
	_, err := GetDB()
	assert.ErrorIs(t, err, ErrNotInitialized)
}
