package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable. Notion credentials are not
// checked here because only the importer needs them; use RequireNotion before
// any import network activity.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateMonitor(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		return errors.New("paths.state_dir must be set")
	}
	if strings.TrimSpace(c.Paths.DigestDir) == "" {
		return errors.New("paths.digest_dir must be set")
	}
	if strings.TrimSpace(c.Paths.ArchiveDir) == "" {
		return errors.New("paths.archive_dir must be set")
	}
	return nil
}

func (c *Config) validateMonitor() error {
	if c.Monitor.LookbackDays <= 0 {
		return errors.New("monitor.lookback_days must be positive")
	}
	if c.Monitor.SourceWorkers <= 0 {
		return errors.New("monitor.source_workers must be positive")
	}
	if c.Monitor.RequestPacingMS < 0 {
		return errors.New("monitor.request_pacing_ms must not be negative")
	}
	if c.Monitor.MinCivitaiRating < 0 || c.Monitor.MinCivitaiRating > 5 {
		return errors.New("monitor.min_civitai_rating must be between 0 and 5")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}

// RequireNotion verifies that the tracking-database credentials are present.
// Callers must invoke this before any import network activity so missing
// credentials fail the run up front.
func (c *Config) RequireNotion() error {
	if strings.TrimSpace(c.Notion.Token) == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/radar/config.toml"
		}
		return fmt.Errorf("notion.token is required. Set NOTION_TOKEN env var or edit %s (create with 'radar config init')", defaultPath)
	}
	if strings.TrimSpace(c.Notion.DatabaseID) == "" {
		return errors.New("notion.database_id is required. Set NOTION_DB_ID env var or add it to the config file")
	}
	if c.Notion.RequestTimeout <= 0 {
		return errors.New("notion.request_timeout must be positive (seconds)")
	}
	return nil
}
