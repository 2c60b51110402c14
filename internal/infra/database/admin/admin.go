// Package admin reúne operações de manutenção do banco disparadas pela CLI.
package admin

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/Joker-Pro-Max/Basalt/internal/infra/database/postgres"

	"github.com/jackc/pgx/v5"
	"gorm.io/gorm"
)

// ExpectedTables são as tabelas que as migrations de seed devem criar.
var ExpectedTables = []string{
	"access_log",
	"account_permission",
	"account_role",
	"account_role_permissions",
	"account_system",
	"account_user",
	"account_user_permissions",
	"account_user_roles",
	"audit_log",
	"schema_migrations",
}

const listTables = `
SELECT tablename
FROM pg_catalog.pg_tables
WHERE schemaname = current_schema()
ORDER BY tablename`

type Status struct {
	ServerVersion string
	Tables        []string
	Missing       []string
	CheckedAt     time.Time
}

// Ready indica se todas as tabelas esperadas existem.
func (s Status) Ready() bool {
	return len(s.Missing) == 0
}

func Check(ctx context.Context, db *gorm.DB) (Status, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return Status{}, fmt.Errorf("falha ao obter conexão subjacente: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return Status{}, fmt.Errorf("banco de dados indisponível: %w", err)
	}

	status := Status{CheckedAt: time.Now()}
	if err := db.WithContext(ctx).Raw("SHOW server_version").Scan(&status.ServerVersion).Error; err != nil {
		return Status{}, fmt.Errorf("falha ao ler versão do servidor: %w", err)
	}
	if err := db.WithContext(ctx).Raw(listTables).Scan(&status.Tables).Error; err != nil {
		return Status{}, fmt.Errorf("falha ao listar tabelas: %w", err)
	}

	for _, table := range ExpectedTables {
		if !slices.Contains(status.Tables, table) {
			status.Missing = append(status.Missing, table)
		}
	}
	return status, nil
}

// DeleteAll remove todas as tabelas do schema corrente numa única transação.
func DeleteAll(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tables []string
		if err := tx.Raw(listTables).Scan(&tables).Error; err != nil {
			return fmt.Errorf("falha ao buscar tabelas para exclusão: %w", err)
		}
		for _, table := range tables {
			if err := tx.Exec(dropStatement(table)).Error; err != nil {
				return fmt.Errorf("falha ao remover tabela %s: %w", table, err)
			}
		}
		return nil
	})
}

func dropStatement(table string) string {
	return "DROP TABLE IF EXISTS " + pgx.Identifier{table}.Sanitize() + " CASCADE"
}

type BackupOptions struct {
	Destination string
	// Timeout zero usa DefaultBackupTimeout.
	Timeout time.Duration
}

const DefaultBackupTimeout = 30 * time.Minute

// Backup executa o pg_dump com o formato deduzido da extensão do destino
// (.sql texto, .tar tar, demais custom).
func Backup(ctx context.Context, info postgres.Config, opts BackupOptions) error {
	if opts.Destination == "" {
		return errors.New("destino do backup não informado (use --local=<caminho>)")
	}
	if info.Database == "" {
		return errors.New("nome do banco de dados não configurado")
	}

	destination := normalizeDestination(opts.Destination)
	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return fmt.Errorf("falha ao criar diretório do backup: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultBackupTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "pg_dump", pgDumpArgs(info, destination)...)
	cmd.Env = append(os.Environ(), pgDumpEnv(info)...)

	if output, err := cmd.CombinedOutput(); err != nil {
		if msg := strings.TrimSpace(string(output)); msg != "" {
			return fmt.Errorf("pg_dump falhou: %w - %s", err, msg)
		}
		return fmt.Errorf("pg_dump falhou: %w", err)
	}
	return nil
}

func pgDumpArgs(info postgres.Config, destination string) []string {
	args := []string{"-h", info.Host, "-U", info.User, "-d", info.Database}
	if info.Port != "" {
		args = append(args, "-p", info.Port)
	}
	return append(args, "--no-owner", "-F", detectFormat(destination), "-f", destination)
}

// a senha vai por ambiente para não aparecer na lista de processos
func pgDumpEnv(info postgres.Config) []string {
	env := []string{"PGPASSWORD=" + info.Password}
	if info.SSLMode != "" {
		env = append(env, "PGSSLMODE="+info.SSLMode)
	}
	return env
}

func normalizeDestination(path string) string {
	clean := filepath.Clean(path)
	if !filepath.IsAbs(clean) {
		if abs, err := filepath.Abs(clean); err == nil {
			return abs
		}
	}
	return clean
}

func detectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".sql":
		return "p"
	case ".tar":
		return "t"
	default:
		return "c"
	}
}
