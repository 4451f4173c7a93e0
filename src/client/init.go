package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"

	"github.com/topmolt/cli/src/client/paths"
)

// InitCLI prepares the environment before any command runs:
// 1. create the config, cache and log directories
// 2. load TOPMOLT_* variables from .env files, never overriding the real environment
func InitCLI(envFiles ...string) error {
	if err := paths.EnsureDirs(); err != nil {
		return fmt.Errorf("init directories: %w", err)
	}

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}
