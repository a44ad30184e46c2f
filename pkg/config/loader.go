package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path and returns a validated
// [Config] with defaults applied. It is a convenience wrapper around
// [LoadFromReader].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r, applies defaults, and
// validates the result. Useful in tests where configs are constructed from
// string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a config with every default applied, as if an empty file
// had been loaded.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults fills unset fields with their default values.
func applyDefaults(cfg *Config) {
	if cfg.Server.Name == "" {
		cfg.Server.Name = DefaultServerName
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = LogInfo
	}
	if cfg.Browser.Viewport.Width == 0 {
		cfg.Browser.Viewport.Width = DefaultViewportWidth
	}
	if cfg.Browser.Viewport.Height == 0 {
		cfg.Browser.Viewport.Height = DefaultViewportHeight
	}
	if cfg.Browser.Timeout == 0 {
		cfg.Browser.Timeout = DefaultTimeout
	}
	if cfg.Browser.MaxSessions == 0 {
		cfg.Browser.MaxSessions = DefaultMaxSessions
	}
	if cfg.Browser.IdleTimeout == 0 {
		cfg.Browser.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Speech.Provider == "" {
		cfg.Speech.Provider = ProviderWebSpeech
	}
	if cfg.Speech.Language == "" {
		cfg.Speech.Language = DefaultLanguage
	}
	if cfg.Speech.OpenAI.Voice == "" {
		cfg.Speech.OpenAI.Voice = DefaultOpenAIVoice
	}
	if cfg.Speech.OpenAI.SpeechModel == "" {
		cfg.Speech.OpenAI.SpeechModel = DefaultSpeechModel
	}
	if cfg.Speech.OpenAI.TranscribeModel == "" {
		cfg.Speech.OpenAI.TranscribeModel = DefaultTranscribeModel
	}
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}

	if !cfg.Speech.Provider.IsValid() {
		errs = append(errs, fmt.Errorf("speech.provider %q is invalid; valid values: webspeech, openai", cfg.Speech.Provider))
	}

	if cfg.Browser.Viewport.Width < 0 || cfg.Browser.Viewport.Height < 0 {
		errs = append(errs, fmt.Errorf("browser.viewport %dx%d is invalid; dimensions must be positive", cfg.Browser.Viewport.Width, cfg.Browser.Viewport.Height))
	}

	if cfg.Browser.Timeout < 0 {
		errs = append(errs, fmt.Errorf("browser.timeout_ms %.0f is invalid; must not be negative", cfg.Browser.Timeout))
	}

	if cfg.Browser.MaxSessions < 1 {
		errs = append(errs, fmt.Errorf("browser.max_sessions %d is invalid; must be at least 1", cfg.Browser.MaxSessions))
	}

	if cfg.Browser.IdleTimeout < 0 {
		errs = append(errs, fmt.Errorf("browser.idle_timeout_sec %d is invalid; must not be negative", cfg.Browser.IdleTimeout))
	}

	return errors.Join(errs...)
}
