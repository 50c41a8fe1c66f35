package env

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Load reads a dotenv file and exports every KEY=VALUE line whose key starts
// with prefix ("" accepts all keys). Variables already set to a non-empty value
// in the process environment win over the file, so a shell export always
// overrides .env. Values may be wrapped in matching single or double quotes.
// Blank lines and # comments are skipped; a missing file is not an error.
//
// It returns the keys it exported, in file order.
func Load(path, prefix string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("env: %w", err)
	}
	defer f.Close()

	var applied []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := parseLine(scanner.Text())
		if !ok || !strings.HasPrefix(key, prefix) {
			continue
		}
		if _, set := lookup(key); set {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return applied, fmt.Errorf("env %s: %w", key, err)
		}
		applied = append(applied, key)
	}
	if err := scanner.Err(); err != nil {
		return applied, fmt.Errorf("env: %s: %w", path, err)
	}
	return applied, nil
}

// parseLine splits one dotenv line. ok is false for blanks, comments and
// lines without a key.
func parseLine(line string) (key, value string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	key, value, found := strings.Cut(line, "=")
	key = strings.TrimSpace(key)
	if !found || key == "" {
		return "", "", false
	}
	value = strings.TrimSpace(value)
	if n := len(value); n >= 2 && (value[0] == '"' || value[0] == '\'') && value[n-1] == value[0] {
		value = value[1 : n-1]
	}
	return key, value, true
}
