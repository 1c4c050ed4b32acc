package config

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateBatch(); err != nil {
		return err
	}
	if err := c.validateWhisper(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateBatch() error {
	if c.Batch.Workers < 0 {
		return errors.New("batch.workers must not be negative")
	}
	if len(c.Batch.Extensions) == 0 {
		return errors.New("batch.extensions must not be empty")
	}
	for _, ext := range c.Batch.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("batch.extensions entry %q must be a filename suffix like \".mp4\"", ext)
		}
	}
	return nil
}

func (c *Config) validateWhisper() error {
	if c.Whisper.Language == "" {
		return nil
	}
	if _, err := language.Parse(c.Whisper.Language); err != nil {
		return fmt.Errorf("whisper.language %q is not a valid language tag: %w", c.Whisper.Language, err)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	return nil
}
