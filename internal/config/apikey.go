package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"cinelookup/internal/fileutil"
)

// ReadAPIKeyFile returns the first non-empty line of a plain-text key file.
// A missing file yields an empty key and no error.
func ReadAPIKeyFile(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read api key file: %w", err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		if key := strings.TrimSpace(line); key != "" && !strings.HasPrefix(key, "#") {
			return key, nil
		}
	}
	return "", nil
}

// WriteAPIKeyFile stores key in path with owner-only permissions.
func WriteAPIKeyFile(path, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("api key must not be empty")
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create key directory: %w", err)
		}
	}
	if err := fileutil.WriteFileAtomic(path, []byte(key+"\n"), 0o600); err != nil {
		return fmt.Errorf("write api key file: %w", err)
	}
	return nil
}
