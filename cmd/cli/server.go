package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Joker-Pro-Max/Basalt/cmd/bootstrap"
	"github.com/Joker-Pro-Max/Basalt/internal/infra/database/postgres"
	"github.com/Joker-Pro-Max/Basalt/internal/pkg/system"
)

const (
	pidDir      = "run"
	stopTimeout = 15 * time.Second
)

// pidFile separa os serviços para que account e resource rodem na mesma máquina.
func pidFile(service string) string {
	return filepath.Join(pidDir, service+".pid")
}

func startServer(service string) error {
	app, err := bootstrap.New(service)
	if err != nil {
		return fmt.Errorf("não foi possível criar a aplicação: %w", err)
	}

	path := pidFile(service)
	if err := system.SavePID(path, os.Getpid()); err != nil {
		return err
	}
	defer system.RemovePID(path)
	defer postgres.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.Start(ctx)
}

func stopServer(service string) error {
	path := pidFile(service)
	pid, err := system.LoadPID(path)
	if err != nil {
		return err
	}

	if err := system.TerminateProcess(pid, stopTimeout); err != nil {
		return err
	}

	system.RemovePID(path)
	return nil
}
