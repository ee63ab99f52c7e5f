package toolchain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// MinSupportedVersion is the oldest daleth-lsp release the wrapper drives.
const MinSupportedVersion = "v0.1.0"

// InstalledVersion asks the installed server binary for its version. The
// binary name follows the configuration override; empty means the default
// ServerBinary.
func InstalledVersion(ctx context.Context, binary string) (string, error) {
	if binary == "" {
		binary = ServerBinary
	}
	out, err := execCommand(ctx, binary, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("%s --version: %w", binary, err)
	}
	return ParseVersion(string(out))
}

// ParseVersion extracts a canonical semver from "daleth-lsp 0.1.0" style
// version output.
func ParseVersion(out string) (string, error) {
	line, _, _ := strings.Cut(strings.TrimSpace(out), "\n")
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", errors.New("empty version output")
	}
	raw := fields[len(fields)-1]
	v := raw
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", fmt.Errorf("unrecognised version %q", raw)
	}
	return v, nil
}

// Supported reports whether the given server version meets the minimum
// supported release.
func Supported(version string) bool {
	return semver.IsValid(version) && semver.Compare(version, MinSupportedVersion) >= 0
}
