package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateDownload(); err != nil {
		return err
	}
	if err := c.validateTTS(); err != nil {
		return err
	}
	if err := c.validateMux(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.WorkDir == "" {
		return errors.New("paths.work_dir must be set")
	}
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	if c.Paths.WorkDir == c.Paths.LogDir {
		return errors.New("paths.work_dir and paths.log_dir must differ")
	}
	return nil
}

func (c *Config) validateDownload() error {
	if c.Download.TimeoutSeconds <= 0 {
		return errors.New("download.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateTTS() error {
	if c.TTS.SampleRate < 8000 {
		return fmt.Errorf("tts.sample_rate %d is too low (minimum 8000)", c.TTS.SampleRate)
	}
	if c.TTS.MinReferenceSeconds <= 0 {
		return errors.New("tts.min_reference_seconds must be positive")
	}
	if c.TTS.MaxTempo < 1.0 || c.TTS.MaxTempo > 2.0 {
		return errors.New("tts.max_tempo must be between 1.0 and 2.0")
	}
	return nil
}

func (c *Config) validateMux() error {
	if c.Mux.DurationToleranceSeconds < 0 {
		return errors.New("mux.duration_tolerance_seconds must not be negative")
	}
	if c.Mux.DurationTolerancePercent < 0 || c.Mux.DurationTolerancePercent > 100 {
		return errors.New("mux.duration_tolerance_percent must be between 0 and 100")
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
