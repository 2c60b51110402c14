// Package migrations aplica os scripts SQL embarcados no binário. Cada
// arquivo é aplicado uma única vez e tem seu checksum registrado: editar um
// script já aplicado faz a próxima execução falhar em vez de divergir.
package migrations

import (
	"context"
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Category string

const (
	Seed   Category = "seed"
	Update Category = "update"
)

// lockKey serializa migrators concorrentes (pg_advisory_xact_lock).
const lockKey int64 = 0x42a5a17

var ErrChecksumMismatch = errors.New("applied migration was modified")

//go:embed sql/seed/*.sql sql/update/*.sql
var embeddedMigrations embed.FS

type migrationFile struct {
	Name      string
	Content   string
	Checksum  string
	Category  Category
	Timestamp time.Time
}

type appliedMigration struct {
	Name     string
	Checksum string
}

type Manager struct {
	db     *gorm.DB
	fsys   fs.FS
	logger *zap.Logger
}

func NewManager(db *gorm.DB, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{db: db, fsys: embeddedMigrations, logger: logger}
}

func (m *Manager) ApplySeed() error {
	return m.Apply(context.Background(), Seed)
}

func (m *Manager) ApplyUpdate() error {
	return m.Apply(context.Background(), Update)
}

// Apply executa, numa única transação, os arquivos ainda não aplicados da categoria.
func (m *Manager) Apply(ctx context.Context, category Category) error {
	files, err := loadFiles(m.fsys, category)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		m.logger.Info("[MIGRATION] nenhum arquivo encontrado", zap.String("category", string(category)))
		return nil
	}

	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", lockKey).Error; err != nil {
			return fmt.Errorf("falha ao obter lock de migration: %w", err)
		}
		if err := ensureSchemaMigrationsTable(tx); err != nil {
			return err
		}

		applied, err := fetchApplied(tx, category)
		if err != nil {
			return err
		}
		pending, err := diff(files, applied)
		if err != nil {
			return err
		}

		for _, file := range pending {
			if err := executeMigration(tx, file); err != nil {
				return err
			}
			m.logger.Info("[MIGRATION] aplicada", zap.String("category", string(category)), zap.String("name", file.Name))
		}

		m.logger.Info("[MIGRATION] concluído", zap.String("category", string(category)), zap.Int("applied", len(pending)))
		return nil
	})
}

// Pending lista os arquivos da categoria que ainda não foram aplicados.
func (m *Manager) Pending(ctx context.Context, category Category) ([]string, error) {
	files, err := loadFiles(m.fsys, category)
	if err != nil {
		return nil, err
	}

	var names []string
	err = m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureSchemaMigrationsTable(tx); err != nil {
			return err
		}
		applied, err := fetchApplied(tx, category)
		if err != nil {
			return err
		}
		pending, err := diff(files, applied)
		if err != nil {
			return err
		}
		for _, f := range pending {
			names = append(names, f.Name)
		}
		return nil
	})
	return names, err
}

func diff(files []migrationFile, applied map[string]string) ([]migrationFile, error) {
	var pending []migrationFile
	for _, file := range files {
		sum, ok := applied[file.Name]
		if !ok {
			pending = append(pending, file)
			continue
		}
		if sum != "" && sum != file.Checksum {
			return nil, fmt.Errorf("%w: %s", ErrChecksumMismatch, file.Name)
		}
	}
	return pending, nil
}

func loadFiles(fsys fs.FS, category Category) ([]migrationFile, error) {
	switch category {
	case Seed, Update:
	default:
		return nil, fmt.Errorf("categoria de migration desconhecida: %s", category)
	}
	dir := path.Join("sql", string(category))

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("falha ao ler diretório de migrations %s: %w", dir, err)
	}

	files := make([]migrationFile, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}
		content, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("falha ao ler migration %s: %w", name, err)
		}
		ts, err := parseTimestamp(name)
		if err != nil {
			return nil, err
		}

		sum := sha256.Sum256(content)
		files = append(files, migrationFile{
			Name:      name,
			Content:   string(content),
			Checksum:  hex.EncodeToString(sum[:]),
			Category:  category,
			Timestamp: ts,
		})
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].Timestamp.Equal(files[j].Timestamp) {
			return files[i].Name < files[j].Name
		}
		return files[i].Timestamp.Before(files[j].Timestamp)
	})

	return files, nil
}

// parseTimestamp exige o prefixo YYYYMMDDHHMMSS_ no nome do arquivo.
func parseTimestamp(name string) (time.Time, error) {
	prefix, _, found := strings.Cut(path.Base(name), "_")
	if !found || len(prefix) != 14 {
		return time.Time{}, fmt.Errorf("migration %s não segue o padrão 'YYYYMMDDHHMMSS_nome.sql'", name)
	}
	parsed, err := time.Parse("20060102150405", prefix)
	if err != nil {
		return time.Time{}, fmt.Errorf("falha ao interpretar data da migration %s: %w", name, err)
	}
	return parsed, nil
}

func ensureSchemaMigrationsTable(tx *gorm.DB) error {
	const createTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    id         SERIAL PRIMARY KEY,
    name       VARCHAR(255) NOT NULL,
    category   VARCHAR(50)  NOT NULL,
    checksum   CHAR(64),
    applied_at TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
    UNIQUE (name, category)
);`
	return tx.Exec(createTable).Error
}

func fetchApplied(tx *gorm.DB, category Category) (map[string]string, error) {
	var rows []appliedMigration
	if err := tx.Raw(
		"SELECT name, COALESCE(checksum, '') AS checksum FROM schema_migrations WHERE category = ?",
		string(category),
	).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("falha ao consultar migrations aplicadas (%s): %w", category, err)
	}

	applied := make(map[string]string, len(rows))
	for _, row := range rows {
		applied[row.Name] = row.Checksum
	}
	return applied, nil
}

func executeMigration(tx *gorm.DB, file migrationFile) error {
	if err := tx.Exec(file.Content).Error; err != nil {
		return fmt.Errorf("falha ao aplicar migration %s: %w", file.Name, err)
	}
	if err := tx.Exec(
		"INSERT INTO schema_migrations (name, category, checksum) VALUES (?, ?, ?)",
		file.Name, string(file.Category), file.Checksum,
	).Error; err != nil {
		return fmt.Errorf("falha ao registrar migration %s: %w", file.Name, err)
	}
	return nil
}
