package config

import (
	"errors"
	"fmt"
	"strconv"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs []error

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, ValidationError{"SERVER_PORT", "must be a valid TCP port"})
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DBHost == "" || cfg.DBName == "" {
			errs = append(errs, ValidationError{"DB_HOST", "host and database name are required for postgres"})
		}
	case DriverSQLite:
		if cfg.Environment == Production {
			errs = append(errs, ValidationError{"DB_DRIVER", "sqlite is not allowed in production"})
		}
		if cfg.SQLitePath == "" {
			errs = append(errs, ValidationError{"SQLITE_PATH", "is required for sqlite"})
		}
	default:
		errs = append(errs, ValidationError{"DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver)})
	}

	if cfg.RequestTimeout <= 0 {
		errs = append(errs, ValidationError{"REQUEST_TIMEOUT", "must be positive"})
	}
	if cfg.RateLimitWindow <= 0 || cfg.RateLimitMax <= 0 {
		errs = append(errs, ValidationError{"RATE_LIMIT_WINDOW", "window and max must be positive"})
	}

	// Secrets only become mandatory once real users are involved.
	if cfg.Environment == Production || cfg.Environment == CI {
		if cfg.IdentitySecret == "" {
			errs = append(errs, ValidationError{"IDENTITY_JWT_SECRET", "is required"})
		}
		if cfg.DBDriver == DriverPostgres && cfg.DBPassword == "" {
			errs = append(errs, ValidationError{"DB_PASSWORD", "is required"})
		}
	}

	return errors.Join(errs...)
}
