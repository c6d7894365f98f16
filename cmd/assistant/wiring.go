package main

import (
	"context"
	"errors"
	"fmt"

	orchestration "github.com/KARAN3690/Marketplace/core"
	"github.com/KARAN3690/Marketplace/core/audio/miniaudio"
	"github.com/KARAN3690/Marketplace/core/audio/portaudio"
	"github.com/KARAN3690/Marketplace/core/events"
	"github.com/KARAN3690/Marketplace/core/llms/gemini"
	llmopenai "github.com/KARAN3690/Marketplace/core/llms/openai"
	sttdeepgram "github.com/KARAN3690/Marketplace/core/speechtotext/deepgram"
	sttopenai "github.com/KARAN3690/Marketplace/core/speechtotext/openai"
	ttsdeepgram "github.com/KARAN3690/Marketplace/core/texttospeech/deepgram"
	ttsopenai "github.com/KARAN3690/Marketplace/core/texttospeech/openai"
	"github.com/KARAN3690/Marketplace/internal/config"
)

type assistantOptions struct {
	capture       bool
	speech        bool
	eventCallback func(events.Event)
}

// audioDevice is the part of an audio backend the assistant owns.
type audioDevice interface {
	Close() error
}

type drainer interface {
	AwaitDrain(ctx context.Context) error
}

type assistant struct {
	orchestrator *orchestration.Orchestrator
	device       audioDevice
	playback     drainer
}

func newAssistant(ctx context.Context, cfg *config.Config, opts assistantOptions) (*assistant, error) {
	orchestratorOpts := []orchestration.OrchestratorOption{
		orchestration.WithInstructions(cfg.Instructions),
		orchestration.WithGreeting(cfg.Greeting),
		orchestration.WithCaptureDuration(cfg.CaptureDuration),
		orchestration.WithContextWindow(cfg.ContextWindow),
		orchestration.WithVoice(cfg.Voice),
		orchestration.WithEventCallback(opts.eventCallback),
	}

	identifier, completer, err := newTextClients(ctx, cfg)
	if err != nil {
		return nil, err
	}
	orchestratorOpts = append(orchestratorOpts,
		orchestration.WithLanguageIdentifier(identifier),
		orchestration.WithCompleter(completer),
	)

	a := &assistant{}
	if opts.capture || opts.speech {
		device, input, output, err := openAudioBackend(cfg.AudioBackend)
		if err != nil {
			return nil, err
		}
		a.device = device
		if d, ok := output.(drainer); ok {
			a.playback = d
		}

		if opts.capture && input != nil {
			orchestratorOpts = append(orchestratorOpts,
				orchestration.WithAudioInput(input),
				orchestration.WithTranscriber(newTranscriber(cfg)),
			)
		}
		if opts.speech && output != nil {
			synthesizer, err := newSpeechSynthesizer(cfg)
			if err != nil {
				return nil, errors.Join(err, a.closeDevice())
			}
			orchestratorOpts = append(orchestratorOpts,
				orchestration.WithSpeechSynthesizer(synthesizer),
				orchestration.WithAudioOutput(output),
			)
		}
	}

	a.orchestrator = orchestration.NewOrchestrator(orchestratorOpts...)
	return a, nil
}

// newTextClients builds the detection and completion clients. One client
// serves both roles when they use the same provider.
func newTextClients(ctx context.Context, cfg *config.Config) (orchestration.LanguageIdentifier, orchestration.Completer, error) {
	var (
		openaiClient *llmopenai.Client
		geminiClient *gemini.Client
	)
	if cfg.CompletionProvider == config.ProviderOpenAI || cfg.DetectionProvider == config.ProviderOpenAI {
		openaiClient = llmopenai.NewClient(cfg.OpenAIKey, openaiLLMOptions(cfg)...)
	}
	if cfg.CompletionProvider == config.ProviderGemini || cfg.DetectionProvider == config.ProviderGemini {
		client, err := gemini.NewClient(ctx, cfg.GeminiKey, geminiOptions(cfg)...)
		if err != nil {
			return nil, nil, err
		}
		geminiClient = client
	}

	var (
		identifier orchestration.LanguageIdentifier = openaiClient
		completer  orchestration.Completer          = openaiClient
	)
	if cfg.DetectionProvider == config.ProviderGemini {
		identifier = geminiClient
	}
	if cfg.CompletionProvider == config.ProviderGemini {
		completer = geminiClient
	}
	return identifier, completer, nil
}

func openaiLLMOptions(cfg *config.Config) []llmopenai.ClientOption {
	opts := []llmopenai.ClientOption{llmopenai.WithBaseURL(cfg.OpenAIBaseURL)}
	if cfg.CompletionModel != "" && cfg.CompletionProvider == config.ProviderOpenAI {
		opts = append(opts, llmopenai.WithModel(cfg.CompletionModel))
	}
	if cfg.DetectionModel != "" && cfg.DetectionProvider == config.ProviderOpenAI {
		opts = append(opts, llmopenai.WithDetectionModel(cfg.DetectionModel))
	}
	return opts
}

func geminiOptions(cfg *config.Config) []gemini.ClientOption {
	var opts []gemini.ClientOption
	if cfg.CompletionModel != "" && cfg.CompletionProvider == config.ProviderGemini {
		opts = append(opts, gemini.WithModel(cfg.CompletionModel))
	}
	if cfg.DetectionModel != "" && cfg.DetectionProvider == config.ProviderGemini {
		opts = append(opts, gemini.WithDetectionModel(cfg.DetectionModel))
	}
	return opts
}

func newTranscriber(cfg *config.Config) orchestration.Transcriber {
	switch cfg.TranscriptionProvider {
	case config.ProviderDeepgram:
		var opts []sttdeepgram.TranscriptionClientOption
		if cfg.TranscriptionModel != "" {
			opts = append(opts, sttdeepgram.WithModel(cfg.TranscriptionModel))
		}
		return sttdeepgram.NewTranscriptionClient(cfg.DeepgramKey, opts...)
	default:
		opts := []sttopenai.ClientOption{sttopenai.WithBaseURL(cfg.OpenAIBaseURL)}
		if cfg.TranscriptionModel != "" {
			opts = append(opts, sttopenai.WithModel(cfg.TranscriptionModel))
		}
		return sttopenai.NewClient(cfg.OpenAIKey, opts...)
	}
}

func newSpeechSynthesizer(cfg *config.Config) (orchestration.SpeechSynthesizer, error) {
	switch cfg.SpeechProvider {
	case config.ProviderDeepgram:
		var opts []ttsdeepgram.TextToSpeechClientOption
		if cfg.Voice != "" {
			opts = append(opts, ttsdeepgram.WithVoice(cfg.Voice))
		}
		client, err := ttsdeepgram.NewTextToSpeechClient(cfg.DeepgramKey, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create speech client: %w", err)
		}
		return client, nil
	default:
		opts := []ttsopenai.ClientOption{ttsopenai.WithBaseURL(cfg.OpenAIBaseURL)}
		if cfg.SpeechModel != "" {
			opts = append(opts, ttsopenai.WithModel(cfg.SpeechModel))
		}
		if cfg.Voice != "" {
			opts = append(opts, ttsopenai.WithVoice(cfg.Voice))
		}
		return ttsopenai.NewClient(cfg.OpenAIKey, opts...), nil
	}
}

func openAudioBackend(backend string) (audioDevice, orchestration.AudioInput, orchestration.AudioOutput, error) {
	switch backend {
	case config.AudioBackendMiniaudio:
		client, err := miniaudio.NewClient()
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to open miniaudio backend: %w", err)
		}
		return client, client.Capture(), client.Playback(), nil
	case config.AudioBackendPortaudio:
		client, err := portaudio.NewClient(portaudio.DefaultBufferSize)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to open portaudio backend: %w", err)
		}
		return client, client.Capture(), client.Playback(), nil
	default:
		return nil, nil, nil, nil
	}
}

// awaitPlayback blocks until queued reply audio has been played.
func (a *assistant) awaitPlayback(ctx context.Context) error {
	if a.playback == nil {
		return nil
	}
	return a.playback.AwaitDrain(ctx)
}

func (a *assistant) closeDevice() error {
	if a.device == nil {
		return nil
	}
	return a.device.Close()
}

// Close shuts the session down before releasing the audio devices it uses.
func (a *assistant) Close() error {
	var err error
	if a.orchestrator != nil {
		err = a.orchestrator.Close()
	}
	return errors.Join(err, a.closeDevice())
}
