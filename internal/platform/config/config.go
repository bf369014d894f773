// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// LoadDotenv loads a .env file from the working directory when one exists.
// A missing file is not an error.
func LoadDotenv() error {
	if err := godotenv.Load(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// ParseEnv fills target from environment variables using env tags.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
