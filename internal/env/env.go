// Package env reads CIPHERDECK_* environment variables, honouring legacy
// names with a one-time deprecation warning.
package env

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Prefix is prepended to every variable name read through Key.
const Prefix = "CIPHERDECK_"

var (
	warnLogger func(format string, args ...any) = log.Printf
	warnMu     sync.Mutex
	warnedKeys map[string]*sync.Once = map[string]*sync.Once{}
)

// Key returns the prefixed variable name for name.
func Key(name string) string {
	return Prefix + strings.ToUpper(name)
}

// Lookup returns the value of newKey if it exists. When one of the legacy
// keys is present instead, its value is returned and a deprecation warning
// is logged once per key.
func Lookup(newKey string, legacy ...string) (string, bool) {
	if v, ok := os.LookupEnv(newKey); ok {
		return v, true
	}
	for _, oldKey := range legacy {
		if v, ok := os.LookupEnv(oldKey); ok {
			logDeprecated(oldKey, newKey)
			return v, true
		}
	}
	return "", false
}

// Int is Lookup followed by integer parsing. A present but malformed value
// is reported as an error naming the variable.
func Int(newKey string, legacy ...string) (int, bool, error) {
	raw, ok := Lookup(newKey, legacy...)
	if !ok {
		return 0, false, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, true, fmt.Errorf("%s: %w", newKey, err)
	}
	return n, true, nil
}

func logDeprecated(oldKey, newKey string) {
	warnMu.Lock()
	once, ok := warnedKeys[oldKey]
	if !ok {
		once = &sync.Once{}
		warnedKeys[oldKey] = once
	}
	warnMu.Unlock()
	once.Do(func() {
		warnMu.Lock()
		logger := warnLogger
		warnMu.Unlock()
		logger("%s is deprecated; use %s", oldKey, newKey)
	})
}

// ResetWarningsForTesting clears the cached once guards so tests can verify
// warning behaviour deterministically.
func ResetWarningsForTesting() {
	warnMu.Lock()
	warnedKeys = map[string]*sync.Once{}
	warnMu.Unlock()
}

// SetWarnLoggerForTesting swaps the logger used for warnings. The returned
// function restores the previous logger and should be deferred in tests.
func SetWarnLoggerForTesting(fn func(format string, args ...any)) (restore func()) {
	warnMu.Lock()
	previous := warnLogger
	warnLogger = fn
	warnMu.Unlock()
	return func() {
		warnMu.Lock()
		warnLogger = previous
		warnMu.Unlock()
	}
}
