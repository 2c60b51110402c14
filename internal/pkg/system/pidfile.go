package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"time"
)

var (
	ErrAlreadyRunning = errors.New("server already running")
	ErrStillRunning   = errors.New("process did not exit in time")
)

// SavePID grava o PID de forma atômica. Um arquivo deixado por um processo
// que já morreu é sobrescrito.
func SavePID(path string, pid int) error {
	if path == "" {
		return errors.New("caminho do arquivo PID não informado")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("falha ao criar diretório do PID: %w", err)
	}

	if old, err := LoadPID(path); err == nil && old != pid && ProcessAlive(old) {
		return fmt.Errorf("%w: pid %d em %s", ErrAlreadyRunning, old, path)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".pid-*")
	if err != nil {
		return fmt.Errorf("falha ao criar arquivo PID: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(strconv.Itoa(pid)); err != nil {
		tmp.Close()
		return fmt.Errorf("falha ao gravar PID: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("falha ao gravar PID: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

func LoadPID(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("falha ao ler arquivo PID: %w", err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("PID inválido em %s", path)
	}
	return pid, nil
}

func RemovePID(path string) {
	if path == "" {
		return
	}
	_ = os.Remove(path)
}

// ProcessAlive usa o sinal 0 para sondar o processo. No Windows FindProcess
// já falha para PIDs inexistentes.
func ProcessAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	err = proc.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}

// TerminateProcess envia SIGTERM e espera até timeout pela saída do processo.
func TerminateProcess(pid int, timeout time.Duration) error {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("não foi possível localizar o processo %d: %w", pid, err)
	}

	if runtime.GOOS == "windows" {
		return proc.Kill()
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("falha ao sinalizar o processo %d: %w", pid, err)
	}

	deadline := time.Now().Add(timeout)
	for ProcessAlive(pid) {
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: pid %d", ErrStillRunning, pid)
		}
		time.Sleep(100 * time.Millisecond)
	}
	return nil
}
