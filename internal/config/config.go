package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	ProviderOpenAI   = "openai"
	ProviderGemini   = "gemini"
	ProviderDeepgram = "deepgram"
	ProviderNone     = "none"

	AudioBackendMiniaudio = "miniaudio"
	AudioBackendPortaudio = "portaudio"
	AudioBackendNone      = "none"
)

type Config struct {
	// Credentials
	OpenAIKey     string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	GeminiKey     string `env:"GEMINI_API_KEY"`
	DeepgramKey   string `env:"DEEPGRAM_API_KEY"`

	// Providers
	CompletionProvider    string `env:"ASSISTANT_COMPLETION_PROVIDER" envDefault:"openai"`
	CompletionModel       string `env:"ASSISTANT_COMPLETION_MODEL"`
	DetectionProvider     string `env:"ASSISTANT_DETECTION_PROVIDER" envDefault:"openai"`
	DetectionModel        string `env:"ASSISTANT_DETECTION_MODEL"`
	TranscriptionProvider string `env:"ASSISTANT_TRANSCRIPTION_PROVIDER" envDefault:"openai"`
	TranscriptionModel    string `env:"ASSISTANT_TRANSCRIPTION_MODEL"`
	SpeechProvider        string `env:"ASSISTANT_SPEECH_PROVIDER" envDefault:"openai"`
	SpeechModel           string `env:"ASSISTANT_SPEECH_MODEL"`
	Voice                 string `env:"ASSISTANT_VOICE"`

	// Session
	AudioBackend    string        `env:"ASSISTANT_AUDIO_BACKEND" envDefault:"miniaudio"`
	CaptureDuration time.Duration `env:"ASSISTANT_CAPTURE_DURATION" envDefault:"5s"`
	ContextWindow   int           `env:"ASSISTANT_CONTEXT_WINDOW" envDefault:"0"`
	Instructions    string        `env:"ASSISTANT_INSTRUCTIONS" envDefault:"You are an agricultural assistant."`
	Greeting        string        `env:"ASSISTANT_GREETING" envDefault:"Hello! 👋 Are you a Farmer or Buyer?"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks that every selected provider has its credentials. All
// problems are reported together.
func (c *Config) Validate() error {
	var errs []error

	switch c.CompletionProvider {
	case ProviderOpenAI:
		errs = append(errs, c.requireKey(c.OpenAIKey, "OPENAI_API_KEY", "completion"))
	case ProviderGemini:
		errs = append(errs, c.requireKey(c.GeminiKey, "GEMINI_API_KEY", "completion"))
	default:
		errs = append(errs, fmt.Errorf("unknown completion provider %q", c.CompletionProvider))
	}

	switch c.DetectionProvider {
	case ProviderOpenAI:
		errs = append(errs, c.requireKey(c.OpenAIKey, "OPENAI_API_KEY", "language detection"))
	case ProviderGemini:
		errs = append(errs, c.requireKey(c.GeminiKey, "GEMINI_API_KEY", "language detection"))
	default:
		errs = append(errs, fmt.Errorf("unknown detection provider %q", c.DetectionProvider))
	}

	switch c.TranscriptionProvider {
	case ProviderOpenAI:
		errs = append(errs, c.requireKey(c.OpenAIKey, "OPENAI_API_KEY", "transcription"))
	case ProviderDeepgram:
		errs = append(errs, c.requireKey(c.DeepgramKey, "DEEPGRAM_API_KEY", "transcription"))
	default:
		errs = append(errs, fmt.Errorf("unknown transcription provider %q", c.TranscriptionProvider))
	}

	switch c.SpeechProvider {
	case ProviderOpenAI:
		errs = append(errs, c.requireKey(c.OpenAIKey, "OPENAI_API_KEY", "speech"))
	case ProviderDeepgram:
		errs = append(errs, c.requireKey(c.DeepgramKey, "DEEPGRAM_API_KEY", "speech"))
	case ProviderNone:
	default:
		errs = append(errs, fmt.Errorf("unknown speech provider %q", c.SpeechProvider))
	}

	switch c.AudioBackend {
	case AudioBackendMiniaudio, AudioBackendPortaudio, AudioBackendNone:
	default:
		errs = append(errs, fmt.Errorf("unknown audio backend %q", c.AudioBackend))
	}

	if c.CaptureDuration <= 0 {
		errs = append(errs, fmt.Errorf("capture duration must be positive, got %s", c.CaptureDuration))
	}
	if c.ContextWindow < 0 {
		errs = append(errs, fmt.Errorf("context window must not be negative, got %d", c.ContextWindow))
	}

	return errors.Join(errs...)
}

func (c *Config) requireKey(value, name, purpose string) error {
	if value == "" {
		return fmt.Errorf("%s is required for %s", name, purpose)
	}
	return nil
}

// SpeechEnabled reports whether replies should be spoken at all.
func (c *Config) SpeechEnabled() bool {
	return c.SpeechProvider != ProviderNone && c.AudioBackend != AudioBackendNone
}
