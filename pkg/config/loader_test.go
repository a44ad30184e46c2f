package config_test

import (
	"strings"
	"testing"

	"github.com/entrhq/pagevoice/pkg/config"
)

func TestLoadFromReader_EmptyAppliesDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := config.LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Name != config.DefaultServerName {
		t.Errorf("server.name = %q, want %q", cfg.Server.Name, config.DefaultServerName)
	}
	if cfg.Server.LogLevel != config.LogInfo {
		t.Errorf("server.log_level = %q, want info", cfg.Server.LogLevel)
	}
	if cfg.Browser.Viewport.Width != config.DefaultViewportWidth || cfg.Browser.Viewport.Height != config.DefaultViewportHeight {
		t.Errorf("viewport = %dx%d, want %dx%d", cfg.Browser.Viewport.Width, cfg.Browser.Viewport.Height,
			config.DefaultViewportWidth, config.DefaultViewportHeight)
	}
	if cfg.Browser.Timeout != config.DefaultTimeout {
		t.Errorf("timeout = %v, want %v", cfg.Browser.Timeout, config.DefaultTimeout)
	}
	if cfg.Speech.Provider != config.ProviderWebSpeech {
		t.Errorf("speech.provider = %q, want webspeech", cfg.Speech.Provider)
	}
	if cfg.Speech.Language != config.DefaultLanguage {
		t.Errorf("speech.language = %q, want %q", cfg.Speech.Language, config.DefaultLanguage)
	}
	if cfg.Speech.OpenAI.Voice != config.DefaultOpenAIVoice {
		t.Errorf("speech.openai.voice = %q, want %q", cfg.Speech.OpenAI.Voice, config.DefaultOpenAIVoice)
	}
}

func TestLoadFromReader_FullConfig(t *testing.T) {
	t.Parallel()
	yaml := `
server:
  name: jobbot
  log_level: debug
  metrics_addr: ":9102"
browser:
  headless: true
  viewport:
    width: 1920
    height: 1080
  timeout_ms: 15000
  max_sessions: 2
  idle_timeout_sec: 60
speech:
  provider: openai
  language: en-GB
  openai:
    voice: shimmer
    speech_model: tts-1-hd
    transcribe_model: whisper-1
`
	cfg, err := config.LoadFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Name != "jobbot" {
		t.Errorf("server.name = %q, want jobbot", cfg.Server.Name)
	}
	if cfg.Server.MetricsAddr != ":9102" {
		t.Errorf("server.metrics_addr = %q, want :9102", cfg.Server.MetricsAddr)
	}
	if !cfg.Browser.Headless {
		t.Error("browser.headless = false, want true")
	}
	if cfg.Browser.Viewport.Width != 1920 || cfg.Browser.Viewport.Height != 1080 {
		t.Errorf("viewport = %dx%d, want 1920x1080", cfg.Browser.Viewport.Width, cfg.Browser.Viewport.Height)
	}
	if cfg.Browser.Timeout != 15000 {
		t.Errorf("timeout = %v, want 15000", cfg.Browser.Timeout)
	}
	if cfg.Speech.Provider != config.ProviderOpenAI {
		t.Errorf("speech.provider = %q, want openai", cfg.Speech.Provider)
	}
	if cfg.Speech.Language != "en-GB" {
		t.Errorf("speech.language = %q, want en-GB", cfg.Speech.Language)
	}
	if cfg.Speech.OpenAI.Voice != "shimmer" {
		t.Errorf("speech.openai.voice = %q, want shimmer", cfg.Speech.OpenAI.Voice)
	}
}

func TestValidate_BadLogLevel(t *testing.T) {
	t.Parallel()
	yaml := `
server:
  log_level: loud
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for bad log level, got nil")
	}
	if !strings.Contains(err.Error(), "log_level") {
		t.Errorf("error should mention log_level, got: %v", err)
	}
}

func TestValidate_BadSpeechProvider(t *testing.T) {
	t.Parallel()
	yaml := `
speech:
  provider: espeak
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for bad speech provider, got nil")
	}
	if !strings.Contains(err.Error(), "speech.provider") {
		t.Errorf("error should mention speech.provider, got: %v", err)
	}
}

func TestValidate_NegativeTimeout(t *testing.T) {
	t.Parallel()
	yaml := `
browser:
  timeout_ms: -5
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for negative timeout, got nil")
	}
	if !strings.Contains(err.Error(), "timeout_ms") {
		t.Errorf("error should mention timeout_ms, got: %v", err)
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	t.Parallel()
	yaml := `
server:
  log_level: loud
speech:
  provider: espeak
browser:
  timeout_ms: -5
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected errors, got nil")
	}
	for _, want := range []string{"log_level", "speech.provider", "timeout_ms"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("joined error should mention %s, got: %v", want, err)
		}
	}
}

func TestLoadFromReader_UnknownFieldRejected(t *testing.T) {
	t.Parallel()
	yaml := `
browser:
  headles: true
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for unknown field, got nil")
	}
}

func TestDefault_IsValid(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	if err := config.Validate(cfg); err != nil {
		t.Fatalf("default config failed validation: %v", err)
	}
}
