package config

import (
	"errors"
	"fmt"
	"strings"
)

var validLayouts = map[string]struct{}{
	"by-type-and-date": {},
	"by-type-only":     {},
	"flat-by-date":     {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateOrganizer(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.InputDir) == "" {
		return errors.New("paths.input_dir must be set")
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return errors.New("paths.output_dir must be set")
	}
	if c.Paths.InputDir == c.Paths.OutputDir {
		return errors.New("paths.input_dir and paths.output_dir must differ")
	}
	return nil
}

func (c *Config) validateOrganizer() error {
	if _, ok := validLayouts[c.Organizer.Layout]; !ok {
		return fmt.Errorf("organizer.layout: unsupported value %q (expected by-type-and-date, by-type-only, or flat-by-date)", c.Organizer.Layout)
	}
	switch c.Organizer.OnDuplicate {
	case "keep", "delete", "overwrite":
	default:
		return fmt.Errorf("organizer.on_duplicate: unsupported value %q (expected keep, delete, or overwrite)", c.Organizer.OnDuplicate)
	}
	switch c.Organizer.OnUnsupported {
	case "skip", "fail":
	default:
		return fmt.Errorf("organizer.on_unsupported: unsupported value %q (expected skip or fail)", c.Organizer.OnUnsupported)
	}
	return nil
}
