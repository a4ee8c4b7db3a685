package config

import (
	"errors"
	"fmt"
)

func ValidateForRun(cfg *Config) error {
	var errs []error

	if cfg.Menu == nil || cfg.Menu.APIURL == "" {
		errs = append(errs, errors.New("MENU_API_URL is required"))
	}
	if cfg.Poster == nil || cfg.Poster.APIURL == "" {
		errs = append(errs, errors.New("POST_API_URL is required"))
	}
	if cfg.State.UsesRedis() {
		if err := cfg.Redis.Validate(); err != nil {
			errs = append(errs, err)
		}
	} else if cfg.State == nil || cfg.State.FilePath == "" {
		errs = append(errs, ErrStateFileMissing)
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %w", errors.Join(errs...))
	}

	return nil
}
