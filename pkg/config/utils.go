package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindEnvFile locates name in the working directory or the closest parent
// that has it. An absolute name is only checked in place. An empty name
// means ".env".
func FindEnvFile(name string) (string, error) {
	if name == "" {
		name = ".env"
	}
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err != nil {
			return "", err
		}
		return name, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}
	return findUpward(wd, name)
}

func findUpward(dir, name string) (string, error) {
	for {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%s: %w", name, os.ErrNotExist)
		}
		dir = parent
	}
}

// maskValue keeps the first two and last four characters of a secret.
func maskValue(secret string) string {
	switch {
	case secret == "":
		return ""
	case len(secret) <= 6:
		return "****"
	}
	return secret[:2] + "****" + secret[len(secret)-4:]
}
