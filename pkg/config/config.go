// Package config provides the configuration schema and loader for the
// pagevoice server.
package config

// LogLevel controls log verbosity for the pagevoice server.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// SpeechProvider selects the speech backend.
type SpeechProvider string

const (
	// ProviderWebSpeech drives the speech synthesis and recognition APIs of
	// the browser page itself.
	ProviderWebSpeech SpeechProvider = "webspeech"

	// ProviderOpenAI uses the OpenAI audio APIs for synthesis and
	// transcription, with the page handling audio capture and playback.
	ProviderOpenAI SpeechProvider = "openai"
)

// IsValid reports whether p is a recognised speech provider.
func (p SpeechProvider) IsValid() bool {
	return p == ProviderWebSpeech || p == ProviderOpenAI
}

// Config is the root configuration structure for pagevoice.
// It is typically loaded from a YAML file using [Load] or [LoadFromReader].
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Browser BrowserConfig `yaml:"browser"`
	Speech  SpeechConfig  `yaml:"speech"`
}

// ServerConfig holds identity, logging, and metrics settings for the server.
type ServerConfig struct {
	// Name is the server name reported over MCP and in telemetry.
	Name string `yaml:"name"`

	// LogLevel controls verbosity.
	LogLevel LogLevel `yaml:"log_level"`

	// MetricsAddr is the TCP address the Prometheus /metrics endpoint
	// listens on (e.g., ":9102"). Empty disables the endpoint.
	MetricsAddr string `yaml:"metrics_addr"`
}

// BrowserConfig holds settings for the Playwright-driven browser.
type BrowserConfig struct {
	// Headless controls whether the browser runs without a visible window.
	Headless bool `yaml:"headless"`

	// Viewport sets the initial viewport size.
	Viewport ViewportConfig `yaml:"viewport"`

	// Timeout is the default timeout for page operations, in milliseconds.
	Timeout float64 `yaml:"timeout_ms"`

	// MaxSessions caps the number of concurrently open browser sessions.
	MaxSessions int `yaml:"max_sessions"`

	// IdleTimeout is the number of seconds a session may sit unused before
	// the cleanup loop closes it.
	IdleTimeout int `yaml:"idle_timeout_sec"`
}

// ViewportConfig holds the browser viewport dimensions.
type ViewportConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SpeechConfig selects and configures the speech backend.
type SpeechConfig struct {
	// Provider selects the speech backend.
	Provider SpeechProvider `yaml:"provider"`

	// Language is the default BCP 47 language tag for speech operations
	// (e.g., "en-US").
	Language string `yaml:"language"`

	// OpenAI configures the OpenAI backend. Ignored for webspeech.
	OpenAI OpenAIConfig `yaml:"openai"`
}

// OpenAIConfig holds settings for the OpenAI speech backend.
type OpenAIConfig struct {
	// APIKey authenticates against the OpenAI API. When empty, the client
	// falls back to the OPENAI_API_KEY environment variable.
	APIKey string `yaml:"api_key"`

	// Voice is the synthesis voice name (e.g., "nova").
	Voice string `yaml:"voice"`

	// SpeechModel is the text-to-speech model (e.g., "tts-1").
	SpeechModel string `yaml:"speech_model"`

	// TranscribeModel is the transcription model (e.g., "whisper-1").
	TranscribeModel string `yaml:"transcribe_model"`
}

// Default values applied by the loader when fields are unset.
const (
	DefaultServerName      = "pagevoice"
	DefaultLanguage        = "en-US"
	DefaultTimeout         = 30000.0
	DefaultViewportWidth   = 1280
	DefaultViewportHeight  = 720
	DefaultMaxSessions     = 5
	DefaultIdleTimeout     = 300
	DefaultOpenAIVoice     = "nova"
	DefaultSpeechModel     = "tts-1"
	DefaultTranscribeModel = "whisper-1"
)
