package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML config file at path. A missing file is reported with
// os.IsNotExist semantics so the caller can treat it as an absent layer.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return &f, nil
}

// ValidationError holds multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Validate checks resolved settings for semantic correctness. It returns a
// *ValidationError listing every problem, or nil.
func Validate(s Settings) error {
	var errs []string

	if s.LocalDir == "" {
		errs = append(errs, "local_dir is required")
	}
	if s.RemoteBucket == "" {
		errs = append(errs, "remote_bucket is required")
	}
	if s.Transfers <= 0 {
		errs = append(errs, fmt.Sprintf("transfers must be positive, got %d", s.Transfers))
	}
	if s.MinAge == "" {
		errs = append(errs, "min_age is required")
	}
	if s.LogDir == "" {
		errs = append(errs, "log_dir is required")
	}
	if s.MaxLogFiles < 0 {
		errs = append(errs, fmt.Sprintf("max_log_files must not be negative, got %d", s.MaxLogFiles))
	}

	if s.Email != "" {
		if s.SMTP.Host == "" {
			errs = append(errs, "smtp.host is required when email is set")
		}
		if s.SMTP.Port <= 0 {
			errs = append(errs, fmt.Sprintf("smtp.port must be positive, got %d", s.SMTP.Port))
		}
		if s.SMTP.Sender == "" {
			errs = append(errs, "smtp.sender is required when email is set")
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
