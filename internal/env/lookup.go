package env

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// The typed lookups below leave *dst untouched when key is unset or empty,
// so callers can pass a field that already holds its default.

// String sets *dst to the value of key.
func String(key string, dst *string) {
	if v, ok := lookup(key); ok {
		*dst = v
	}
}

// Int parses key as a base-10 int.
func Int(key string, dst *int) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("env %s: %w", key, err)
	}
	*dst = n
	return nil
}

// Uint64 parses key as a base-10 uint64.
func Uint64(key string, dst *uint64) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return fmt.Errorf("env %s: %w", key, err)
	}
	*dst = n
	return nil
}

// Float32 parses key as a float.
func Float32(key string, dst *float32) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		return fmt.Errorf("env %s: %w", key, err)
	}
	*dst = float32(f)
	return nil
}

// Bool parses key with strconv.ParseBool (1, t, true, 0, f, false, ...).
func Bool(key string, dst *bool) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("env %s: %w", key, err)
	}
	*dst = b
	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}
