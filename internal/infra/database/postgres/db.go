package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Constantes para os modos SSL permitidos no PostgreSQL
const (
	SSLDisable    = "disable"
	SSLRequire    = "require"
	SSLVerifyFull = "verify-full"
	SSLVerifyCA   = "verify-ca"
)

const defaultDatabase = "basalt"

var (
	db   *gorm.DB
	once sync.Once

	ErrNotInitialized = errors.New("database connection not initialized")
)

type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
}

// ConfigFromViper lê as chaves databases.postgres.*.
func ConfigFromViper() Config {
	return Config{
		Host:     viper.GetString("databases.postgres.host"),
		Port:     viper.GetString("databases.postgres.port"),
		User:     viper.GetString("databases.postgres.user"),
		Password: viper.GetString("databases.postgres.pwd"),
		Database: viper.GetString("databases.postgres.db_name"),
		SSLMode:  viper.GetString("databases.postgres.ssl_mode"),
	}
}

// DSN monta a string de conexão. Banco vazio vira "basalt" e modo SSL
// desconhecido vira "disable".
func (c Config) DSN() string {
	name := c.Database
	if name == "" {
		name = defaultDatabase
	}
	ssl := c.SSLMode
	if !isValidSSLMode(ssl) {
		ssl = SSLDisable
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, name, ssl,
	)
}

// InitPostgres abre a conexão uma única vez e testa com ping.
func InitPostgres(cfg Config, logger *zap.Logger) (*gorm.DB, error) {
	var initErr error
	once.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
		if cfg.SSLMode != "" && !isValidSSLMode(cfg.SSLMode) {
			logger.Warn("[DATABASE] modo SSL inválido, usando padrão",
				zap.String("ssl_mode", cfg.SSLMode), zap.String("default", SSLDisable))
		}

		conn, err := gorm.Open(gormPostgres.Open(cfg.DSN()), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Warn),
		})
		if err != nil {
			initErr = fmt.Errorf("abrir conexão GORM: %w", err)
			return
		}

		var sqlDB *sql.DB
		sqlDB, err = conn.DB()
		if err != nil {
			initErr = fmt.Errorf("obter *sql.DB do GORM: %w", err)
			return
		}
		if err := sqlDB.Ping(); err != nil {
			initErr = fmt.Errorf("testar conexão com o banco de dados: %w", err)
			return
		}

		db = conn
		logger.Info("[DATABASE] conexão GORM com PostgreSQL estabelecida",
			zap.String("host", cfg.Host), zap.String("db", cfg.Database))
	})
	if initErr != nil {
		once = sync.Once{}
		return nil, initErr
	}
	if db == nil {
		return nil, ErrNotInitialized
	}
	return db, nil
}

// GetDB retorna a instância atual da conexão GORM.
func GetDB() (*gorm.DB, error) {
	if db == nil {
		return nil, ErrNotInitialized
	}
	return db, nil
}

// Close encerra a conexão com o banco de dados e permite nova inicialização.
func Close() error {
	if db == nil {
		return nil
	}
	defer func() {
		db = nil
		once = sync.Once{}
	}()

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("obter *sql.DB para fechamento: %w", err)
	}
	return sqlDB.Close()
}

// isValidSSLMode verifica se a string de modo SSL fornecida é um valor válido.
func isValidSSLMode(mode string) bool {
	switch mode {
	case SSLDisable, SSLRequire, SSLVerifyFull, SSLVerifyCA:
		return true
	default:
		return false
	}
}
