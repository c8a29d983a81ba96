// Package testutil holds helpers shared by tests that touch configuration
// files or the process environment.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Chdir switches the working directory to dir for the rest of the test.
func Chdir(t testing.TB, dir string) {
	t.Helper()

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() { _ = os.Chdir(cwd) })
}

// Isolate points HOME at an empty directory, moves into a fresh working
// directory and clears every CIPHERDECK_* variable so no user configuration
// leaks into the test. It returns the working directory.
func Isolate(t *testing.T) string {
	t.Helper()

	t.Setenv("HOME", filepath.Join(t.TempDir(), "home"))
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, "CIPHERDECK_") {
			t.Setenv(name, "")
			_ = os.Unsetenv(name)
		}
	}

	work := t.TempDir()
	Chdir(t, work)
	return work
}

// WriteFile creates path and any missing parents with content.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
