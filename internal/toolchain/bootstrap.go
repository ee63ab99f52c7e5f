package toolchain

import (
	"context"
	"fmt"
	"io"
	"runtime"
)

// rustupPipeline is the one-shot bootstrap documented at https://rustup.rs.
// It is sequential, has no feedback loop and performs no integrity
// verification of the fetched installer.
const rustupPipeline = `curl --proto '=https' --tlsv1.2 -sSf https://sh.rustup.rs | sh -s -- -y`

// EnsureToolchain returns a cargo handle, bootstrapping the Rust toolchain
// through the rustup shell pipeline when cargo is absent.
func EnsureToolchain(ctx context.Context, stdout, stderr io.Writer) (*Cargo, error) {
	if cargo, err := Locate(WithOutput(stdout, stderr)); err == nil {
		return cargo, nil
	}

	if runtime.GOOS == "windows" {
		return nil, fmt.Errorf("%w: install rustup from https://rustup.rs and retry", ErrCargoNotFound)
	}

	fmt.Fprintln(stderr, "cargo not found, bootstrapping rustup")
	cmd := execCommand(ctx, "sh", "-c", rustupPipeline)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("bootstrap rustup: %w", err)
	}

	cargo, err := Locate(WithOutput(stdout, stderr))
	if err != nil {
		return nil, fmt.Errorf("rustup bootstrap finished but cargo is still missing: %w", err)
	}
	return cargo, nil
}
