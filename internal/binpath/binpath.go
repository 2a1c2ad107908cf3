// Package binpath resolves the location of the external breeze executable.
//
// Resolution is a two-step chain: a fixed install location checked first,
// then the system PATH. Nothing is cached; every call redoes the lookup so
// a freshly built binary is picked up without restarting the caller.
package binpath

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

const notFound = "breeze binary not found"

// Name returns the platform-appropriate executable name.
func Name() string {
	if runtime.GOOS == "windows" {
		return "breeze.exe"
	}
	return "breeze"
}

// DefaultInstallDir returns the fixed install location checked before the
// PATH lookup: the directory holding the current (wrapper) executable,
// which is where `go build ./cmd/breeze` conventionally drops the binary.
func DefaultInstallDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Dir(exe)
}

// Resolver locates the breeze executable.
type Resolver struct {
	Override   string // explicit binary path; used as-is when set
	InstallDir string // fixed install location; defaults to DefaultInstallDir
}

// Resolve returns the path to the breeze executable. It checks the explicit
// override, then the fixed install location, then the system PATH, and
// fails with a remediation hint when all three miss.
func (r Resolver) Resolve() (string, error) {
	if r.Override != "" {
		if isRegular(r.Override) {
			return r.Override, nil
		}
		return "", fmt.Errorf("%s: configured binary %q is not a regular file", notFound, r.Override)
	}

	dir := r.InstallDir
	if dir == "" {
		dir = DefaultInstallDir()
	}
	if dir != "" {
		candidate := filepath.Join(dir, Name())
		if isRegular(candidate) {
			return candidate, nil
		}
	}

	if path, err := exec.LookPath(Name()); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("%s: ensure Go is installed and run: go build ./cmd/breeze", notFound)
}

func isRegular(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
