//go:build mage

package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "octocheck"
	pkg     = "github.com/dkoosis/octocheck"
)

// Default target - build the binary
var Default = Build

// Build builds the octocheck binary with version metadata.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return err
	}
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binDir+"/"+binName, "./cmd/octocheck")
}

// Clean removes build artifacts
func Clean() error {
	return os.RemoveAll(binDir)
}

// QA runs formatting, vet, lint and the test suite.
func QA() {
	mg.SerialDeps(Lint.Format, Lint.Vet, Lint.Golangci, Test.All, Build)
}

// Lint namespace for linting commands
type Lint mg.Namespace

// Format fails when gofmt would change any file.
func (Lint) Format() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return err
	}
	if out = strings.TrimSpace(out); out != "" {
		return fmt.Errorf("unformatted files:\n%s", out)
	}
	return nil
}

// Vet runs go vet
func (Lint) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Golangci runs golangci-lint when it is installed.
func (Lint) Golangci() error {
	err := sh.RunV("golangci-lint", "run", "--timeout=5m", "./...")
	if isCommandNotFound(err) {
		fmt.Println("golangci-lint not found (install: go install github.com/golangci/golangci-lint/cmd/golangci-lint@latest)")
		return nil
	}
	return err
}

// Test namespace for testing commands
type Test mg.Namespace

// All runs all tests
func (Test) All() error {
	return sh.RunV("go", "test", "./...")
}

// Coverage runs tests with coverage
func (Test) Coverage() error {
	if err := sh.RunV("go", "test", "-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-func=coverage.out")
}

// Race runs tests with race detector
func (Test) Race() error {
	return sh.RunWithV(map[string]string{"CGO_ENABLED": "1"}, "go", "test", "-race", "./...")
}

func ldflags() string {
	commit, err := sh.Output("git", "rev-parse", "--short", "HEAD")
	if err != nil {
		commit = "unknown"
	}
	ver := os.Getenv("VERSION")
	if ver == "" {
		ver = "dev"
	}
	return strings.Join([]string{
		"-X " + pkg + "/internal/version.Version=" + ver,
		"-X " + pkg + "/internal/version.CommitHash=" + commit,
		"-X " + pkg + "/internal/version.BuildDate=" + time.Now().UTC().Format(time.RFC3339),
	}, " ")
}

func isCommandNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, exec.ErrNotFound) {
		return true
	}
	// sh wraps exec errors with %v.
	return strings.Contains(err.Error(), "executable file not found")
}
