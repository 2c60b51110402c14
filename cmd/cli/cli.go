package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Joker-Pro-Max/Basalt/cmd/bootstrap"
	"github.com/Joker-Pro-Max/Basalt/internal/iam/domain/system"
	"github.com/Joker-Pro-Max/Basalt/internal/iam/domain/user"
	"github.com/Joker-Pro-Max/Basalt/internal/infra/cache"
	"github.com/Joker-Pro-Max/Basalt/internal/infra/database/admin"
	"github.com/Joker-Pro-Max/Basalt/internal/infra/database/migrations"
	"github.com/Joker-Pro-Max/Basalt/internal/infra/database/postgres"
	"github.com/Joker-Pro-Max/Basalt/internal/pkg/log/logger"
	"github.com/Joker-Pro-Max/Basalt/internal/pkg/util"
)

var ErrMissingSuperuserContact = errors.New("informe --email ou --phone para criar o superusuário")

type options struct {
	Service           string
	Start             bool
	Stop              bool
	Seed              bool
	Update            bool
	DBCheck           bool
	DBDelete          bool
	DBBackup          bool
	BackupDestination string

	CreateSuperuser bool
	Username        string
	Email           string
	Phone           string
	Password        string
	System          string
}

func Execute() error {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		return err
	}
	if err := bootstrap.Environment(); err != nil {
		return err
	}
	log, err := logger.Init(viper.GetString("app.env"))
	if err != nil {
		return err
	}
	defer logger.Sync()

	if !opts.anyOperation() {
		log.Info("Nenhuma operação informada. Use --help para listar as opções disponíveis.")
		return nil
	}

	if opts.Stop {
		if err := stopServer(opts.Service); err != nil {
			return fmt.Errorf("falha ao parar servidor: %w", err)
		}
		log.Info("Servidor finalizado com sucesso.", zap.String("service", opts.Service))
		return nil
	}

	ctx := context.Background()
	var (
		db         *gorm.DB
		manager    *migrations.Manager
		operations bool
	)

	if opts.requiresDatabase() {
		db, err = postgres.InitPostgres(postgres.ConfigFromViper(), log)
		if err != nil {
			return fmt.Errorf("falha ao conectar no banco de dados: %w", err)
		}
		defer postgres.Close()
		manager = migrations.NewManager(db, log)
	}

	if opts.Seed {
		if err := manager.ApplySeed(); err != nil {
			return fmt.Errorf("falha ao aplicar migrations de seed: %w", err)
		}
		log.Info("Migrations de seed aplicadas com sucesso.")
		operations = true
	}

	if opts.Update {
		if err := manager.ApplyUpdate(); err != nil {
			return fmt.Errorf("falha ao aplicar migrations de atualização: %w", err)
		}
		log.Info("Migrations de atualização aplicadas com sucesso.")
		operations = true
	}

	if opts.DBCheck {
		status, err := admin.Check(ctx, db)
		if err != nil {
			return fmt.Errorf("falha ao checar banco de dados: %w", err)
		}
		log.Info("Banco de dados ativo.",
			zap.Int("tables", len(status.Tables)),
			zap.Strings("found", status.Tables),
			zap.Strings("missing", status.Missing),
			zap.String("server_version", status.ServerVersion),
		)
		for _, category := range []migrations.Category{migrations.Seed, migrations.Update} {
			pending, err := manager.Pending(ctx, category)
			if err != nil {
				return fmt.Errorf("falha ao listar migrations pendentes: %w", err)
			}
			if len(pending) > 0 {
				log.Warn("Migrations pendentes.", zap.String("category", string(category)), zap.Strings("files", pending))
			}
		}
		operations = true
	}

	if opts.DBDelete {
		if err := admin.DeleteAll(ctx, db); err != nil {
			return fmt.Errorf("falha ao deletar tabelas do banco: %w", err)
		}
		log.Info("Todas as tabelas foram removidas com sucesso.")
		operations = true
	}

	if opts.CreateSuperuser {
		su, err := createSuperuser(ctx, db, opts, log)
		if err != nil {
			return fmt.Errorf("falha ao criar superusuário: %w", err)
		}
		log.Info("Superusuário criado.",
			zap.String("uuid", su.UUID.String()),
			zap.String("username", su.Username),
			zap.String("system", su.SystemCode()),
		)
		operations = true
	}

	if opts.DBBackup {
		if opts.BackupDestination == "" {
			return fmt.Errorf("para executar o backup informe o destino com --local=<caminho>")
		}

		dest := opts.BackupDestination
		if !filepath.IsAbs(dest) {
			if abs, err := filepath.Abs(dest); err == nil {
				dest = abs
			}
		}

		if err := admin.Backup(ctx, postgres.ConfigFromViper(), admin.BackupOptions{Destination: dest}); err != nil {
			return fmt.Errorf("falha ao executar backup: %w", err)
		}
		log.Info("Backup gerado.", zap.String("destination", dest))
		operations = true
	}

	if opts.Start {
		if err := startServer(opts.Service); err != nil {
			return fmt.Errorf("falha ao iniciar servidor: %w", err)
		}
		operations = true
	}

	if !operations {
		log.Info("Nenhuma operação executada. Use --help para listar as opções disponíveis.")
	}

	return nil
}

func createSuperuser(ctx context.Context, db *gorm.DB, opts options, log *zap.Logger) (user.User, error) {
	if opts.Email == "" && opts.Phone == "" {
		return user.User{}, ErrMissingSuperuserContact
	}
	if opts.Password == "" {
		return user.User{}, errors.New("informe --password para criar o superusuário")
	}

	systemRepo := system.NewRepository(db)
	systems := system.NewService(systemRepo, cache.NewNoop(), 0, log)
	users := user.NewService(user.NewRepository(db, systemRepo), systems, util.UsePassword(), log)

	return user.CreateSuperuser(ctx, users, user.NewUser{
		Username:   opts.Username,
		Email:      opts.Email,
		Phone:      opts.Phone,
		Password:   opts.Password,
		SystemCode: opts.System,
	})
}

func parseOptions(args []string) (options, error) {
	var opts options

	fs := pflag.NewFlagSet("basalt", pflag.ContinueOnError)
	fs.StringVar(&opts.Service, "service", bootstrap.ServiceAccount, "Serviço a executar (account ou resource)")
	fs.BoolVar(&opts.Start, "start", false, "Inicia o servidor HTTP")
	fs.BoolVar(&opts.Stop, "stop", false, "Finaliza o servidor HTTP")
	fs.BoolVar(&opts.Seed, "migration-seed", false, "Aplica migrations de seed")
	fs.BoolVar(&opts.Update, "migration-update", false, "Aplica migrations de atualização")
	fs.BoolVar(&opts.DBCheck, "db-check", false, "Checa status do banco de dados")
	fs.BoolVar(&opts.DBDelete, "db-delete", false, "Remove todas as tabelas do banco de dados")
	fs.BoolVar(&opts.DBBackup, "db-backup", false, "Realiza backup do banco de dados")
	fs.StringVar(&opts.BackupDestination, "local", "", "Diretório de destino para o backup do banco")
	fs.BoolVar(&opts.CreateSuperuser, "create-superuser", false, "Cria o superusuário inicial")
	fs.StringVar(&opts.Username, "username", user.DefaultSuperuserName, "Username do superusuário")
	fs.StringVar(&opts.Email, "email", "", "Email do superusuário")
	fs.StringVar(&opts.Phone, "phone", "", "Telefone do superusuário")
	fs.StringVar(&opts.Password, "password", "", "Senha do superusuário")
	fs.StringVar(&opts.System, "system", user.DefaultSuperuserSystem, "Código do sistema do superusuário")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	switch opts.Service {
	case bootstrap.ServiceAccount, bootstrap.ServiceResource:
	default:
		return options{}, fmt.Errorf("%w: %q", bootstrap.ErrUnknownService, opts.Service)
	}

	return opts, nil
}

func (o options) anyOperation() bool {
	return o.Start || o.Stop || o.Seed || o.Update || o.DBCheck || o.DBDelete || o.DBBackup || o.CreateSuperuser
}

func (o options) requiresDatabase() bool {
	return o.Seed || o.Update || o.DBCheck || o.DBDelete || o.CreateSuperuser
}
