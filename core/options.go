package orchestration

import (
	"time"

	"github.com/KARAN3690/Marketplace/core/events"
)

type OrchestratorOption func(*Orchestrator)

const (
	DefaultInstructions = "You are an agricultural assistant."
	DefaultGreeting     = "Hello! 👋 Are you a Farmer or Buyer?"
)

func WithLanguageIdentifier(client LanguageIdentifier) OrchestratorOption {
	return func(o *Orchestrator) { o.gateway.set(client, nil, nil, nil) }
}

func WithCompleter(client Completer) OrchestratorOption {
	return func(o *Orchestrator) { o.gateway.set(nil, client, nil, nil) }
}

func WithSpeechSynthesizer(client SpeechSynthesizer) OrchestratorOption {
	return func(o *Orchestrator) { o.gateway.set(nil, nil, client, nil) }
}

func WithTranscriber(client Transcriber) OrchestratorOption {
	return func(o *Orchestrator) { o.gateway.set(nil, nil, nil, client) }
}

func WithAudioInput(client AudioInput) OrchestratorOption {
	return func(o *Orchestrator) { o.audioInput.Set(client) }
}

func WithAudioOutput(client AudioOutput) OrchestratorOption {
	return func(o *Orchestrator) { o.audioOutput.Set(client) }
}

// WithInstructions sets the persona placed ahead of the language directive.
func WithInstructions(instructions string) OrchestratorOption {
	return func(o *Orchestrator) { o.instructions = instructions }
}

// WithGreeting sets the assistant turn a new session starts with. An empty
// greeting starts the session without turns.
func WithGreeting(greeting string) OrchestratorOption {
	return func(o *Orchestrator) { o.greeting = greeting }
}

func WithCaptureDuration(duration time.Duration) OrchestratorOption {
	return func(o *Orchestrator) {
		if duration > 0 {
			o.captureDuration = duration
		}
	}
}

// WithContextWindow limits completions to the latest n turns. Zero or less
// sends the whole dialogue.
func WithContextWindow(n int) OrchestratorOption {
	return func(o *Orchestrator) { o.gateway.contextWindow = max(n, 0) }
}

func WithVoice(voice string) OrchestratorOption {
	return func(o *Orchestrator) { o.voice = voice }
}

func WithEventCallback(callback func(events.Event)) OrchestratorOption {
	return func(o *Orchestrator) { o.eventCallback = callback }
}
