package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	stdruntime "runtime"
	"strings"
	"testing"
)

func writeFixtureServer(t *testing.T, name, script string) {
	t.Helper()
	if stdruntime.GOOS == "windows" {
		t.Skip("cli fixture tests skipped on windows")
	}
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func writeServerConfig(t *testing.T, binary string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dalethls.yaml")
	if err := os.WriteFile(path, []byte("server:\n  binary: "+binary+"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func TestRootRegistersSubcommands(t *testing.T) {
	root := NewRootCmd()
	want := map[string]bool{"run": false, "install": false, "uninstall": false, "doctor": false, "version": false}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(stdout, "dalethls ") {
		t.Fatalf("version output %q", stdout)
	}
}

func TestRunRelaysServerOutput(t *testing.T) {
	writeFixtureServer(t, "daleth-fake", "echo out-line\necho err-line >&2\nexit 0")
	cfg := writeServerConfig(t, "daleth-fake")

	stdout, stderr, err := execute(t, "run", "-f", cfg)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(stdout, "out-line") {
		t.Errorf("stdout missing relayed line: %q", stdout)
	}
	if !strings.Contains(stderr, "err-line") {
		t.Errorf("stderr missing relayed line: %q", stderr)
	}
	if strings.Contains(stdout, "exec error") {
		t.Errorf("clean run emitted a diagnostic: %q", stdout)
	}
}

func TestBareInvocationRuns(t *testing.T) {
	writeFixtureServer(t, "daleth-fake", "exit 0")
	cfg := writeServerConfig(t, "daleth-fake")

	if _, _, err := execute(t, "-f", cfg); err != nil {
		t.Fatalf("bare invocation: %v", err)
	}
}

func TestRunMissingExecutable(t *testing.T) {
	cfg := writeServerConfig(t, "does-not-exist-xyz")

	stdout, _, err := execute(t, "run", "-f", cfg)
	if err == nil {
		t.Fatal("expected run failure")
	}
	var coded *exitCodeError
	if !errors.As(err, &coded) {
		t.Fatalf("expected exitCodeError, got %T: %v", err, err)
	}
	if coded.code != 1 {
		t.Errorf("exit code = %d, want 1", coded.code)
	}
	if count := strings.Count(stdout, "exec error:"); count != 1 {
		t.Errorf("expected exactly one exec error line, got %d in %q", count, stdout)
	}
}

func TestRunMirrorsChildExitCode(t *testing.T) {
	writeFixtureServer(t, "daleth-grumpy", "exit 7")
	cfg := writeServerConfig(t, "daleth-grumpy")

	_, _, err := execute(t, "run", "-f", cfg)
	var coded *exitCodeError
	if !errors.As(err, &coded) {
		t.Fatalf("expected exitCodeError, got %T: %v", err, err)
	}
	if coded.code != 7 {
		t.Errorf("exit code = %d, want 7", coded.code)
	}
}

func TestDoctorReportsMissingTooling(t *testing.T) {
	if stdruntime.GOOS == "windows" {
		t.Skip("cli fixture tests skipped on windows")
	}
	t.Setenv("PATH", t.TempDir())
	t.Setenv("CARGO_HOME", t.TempDir())
	cfg := writeServerConfig(t, "daleth-lsp")

	stdout, _, err := execute(t, "doctor", "-f", cfg)
	if err == nil || !strings.Contains(err.Error(), "checks failed") {
		t.Fatalf("expected failing checks, got %v", err)
	}
	if !strings.Contains(stdout, "cargo") {
		t.Errorf("doctor output missing cargo check: %q", stdout)
	}
}
