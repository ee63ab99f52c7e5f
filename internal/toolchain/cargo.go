// Package toolchain manages the Rust toolchain and the daleth-lsp crate that
// the wrapper launches: locating cargo, bootstrapping rustup when it is
// missing, and installing or removing the language server binary.
package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	// CrateName is the crate that ships the language server.
	CrateName = "daleth-lsp"
	// ServerBinary is the executable installed by the crate.
	ServerBinary = "daleth-lsp"
)

var (
	ErrCargoNotFound = errors.New("cargo not found")
	ErrNotInstalled  = errors.New("daleth-lsp is not installed")
)

// execCommand enables test stubbing.
var execCommand = exec.CommandContext

// Cargo wraps a resolved cargo executable.
type Cargo struct {
	path   string
	stdout io.Writer
	stderr io.Writer
}

// Option customises a Cargo handle.
type Option func(*Cargo)

// WithOutput redirects cargo's relayed output, used by tests and by commands
// that render through cobra's streams.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(c *Cargo) {
		c.stdout = stdout
		c.stderr = stderr
	}
}

// Locate finds cargo on the search path, falling back to the well-known
// $CARGO_HOME/bin directory for shells that have not sourced the cargo env.
func Locate(opts ...Option) (*Cargo, error) {
	c := &Cargo{stdout: os.Stdout, stderr: os.Stderr}
	for _, opt := range opts {
		opt(c)
	}

	if path, err := exec.LookPath("cargo"); err == nil {
		c.path = path
		return c, nil
	}

	path := filepath.Join(CargoHome(), "bin", cargoExecutable())
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		c.path = path
		return c, nil
	}
	return nil, ErrCargoNotFound
}

// CargoHome returns the well-known cargo directory, honouring $CARGO_HOME.
func CargoHome() string {
	if home := os.Getenv("CARGO_HOME"); home != "" {
		return home
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cargo")
}

func cargoExecutable() string {
	if runtime.GOOS == "windows" {
		return "cargo.exe"
	}
	return "cargo"
}

// Path returns the resolved cargo executable path.
func (c *Cargo) Path() string {
	return c.path
}

// Install runs cargo install for the server crate, optionally pinned to a
// version. Cargo's compilation chatter is rendered as a progress indicator
// when attached to a terminal and relayed verbatim otherwise.
func (c *Cargo) Install(ctx context.Context, version string) error {
	cmd := execCommand(ctx, c.path, installArgs(version)...)
	cmd.Stdout = c.stdout

	pipe, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("cargo install %s: %w", CrateName, err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("cargo install %s: %w", CrateName, err)
	}

	render := newProgressRenderer(c.stderr, "installing "+CrateName)
	render.Consume(pipe)
	render.Finish()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("cargo install %s: %w", CrateName, err)
	}
	return nil
}

func installArgs(version string) []string {
	args := []string{"install", CrateName}
	if version != "" {
		args = append(args, "--version", strings.TrimPrefix(version, "v"))
	}
	return args
}

// Uninstall removes the server crate. A crate that was never installed is
// reported through ErrNotInstalled rather than a hard failure.
func (c *Cargo) Uninstall(ctx context.Context) error {
	cmd := execCommand(ctx, c.path, "uninstall", CrateName)
	var stderr bytes.Buffer
	cmd.Stdout = c.stdout
	cmd.Stderr = io.MultiWriter(c.stderr, &stderr)

	if err := cmd.Run(); err != nil {
		if strings.Contains(stderr.String(), "is not installed") {
			return ErrNotInstalled
		}
		return fmt.Errorf("cargo uninstall %s: %w", CrateName, err)
	}
	return nil
}
