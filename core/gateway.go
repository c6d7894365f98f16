package orchestration

import (
	"context"

	"github.com/KARAN3690/Marketplace/core/llms"
	"github.com/KARAN3690/Marketplace/core/speechtotext"
	"github.com/KARAN3690/Marketplace/core/texttospeech"
)

type LanguageIdentifier interface {
	IdentifyLanguage(ctx context.Context, text string) (string, error)
}

type Completer interface {
	Complete(ctx context.Context, turns []llms.Turn, opts ...llms.CompletionOption) (string, error)
}

type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string, opts ...texttospeech.SynthesisOption) ([]byte, error)
}

type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, opts ...speechtotext.TranscriptionOption) (string, error)
}

const (
	// FallbackLanguage is used whenever detection fails or is inconclusive.
	FallbackLanguage = "en"

	// ReplyUnavailable is the assistant turn used when completion succeeded
	// but produced nothing usable.
	ReplyUnavailable = "Sorry, I could not fetch a reply."
	// ReplyConnectionError is the assistant turn used when completion failed.
	ReplyConnectionError = "Error connecting to AI."
)

const (
	serviceLanguageDetection = "language detection"
	serviceCompletion        = "completion"
	serviceSpeechSynthesis   = "speech synthesis"
	serviceTranscription     = "transcription"
)

// remoteGateway applies the failure policy of every remote collaborator so
// the rest of the package only has to handle transcription errors.
//
// The operations live next to the collaborator they wrap: llm.go, stt.go and
// tts.go.
type remoteGateway struct {
	identifier  LanguageIdentifier
	completer   Completer
	synthesizer SpeechSynthesizer
	transcriber Transcriber

	// contextWindow bounds how many of the latest turns are sent with every
	// completion. Zero sends the whole dialogue.
	contextWindow int
}

func (g *remoteGateway) set(identifier LanguageIdentifier, completer Completer, synthesizer SpeechSynthesizer, transcriber Transcriber) {
	if !isNilClient(identifier) {
		g.identifier = identifier
	}
	if !isNilClient(completer) {
		g.completer = completer
	}
	if !isNilClient(synthesizer) {
		g.synthesizer = synthesizer
	}
	if !isNilClient(transcriber) {
		g.transcriber = transcriber
	}
}

func (g *remoteGateway) canSynthesize() bool { return g.synthesizer != nil }
