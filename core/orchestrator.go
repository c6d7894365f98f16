package orchestration

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/KARAN3690/Marketplace/core/events"
	"github.com/KARAN3690/Marketplace/core/llms"
)

// Orchestrator runs one assistant session: typed and spoken user input goes
// through language detection and completion, and replies are spoken back on
// a best-effort basis.
type Orchestrator struct {
	gateway     remoteGateway
	detector    languageDetector
	dialogue    *dialogue
	capture     *captureController
	synthesizer *replySynthesizer
	audioInput  audioInput
	audioOutput audioOutput
	emit        eventEmitter

	instructions    string
	greeting        string
	voice           string
	captureDuration time.Duration
	eventCallback   func(events.Event)

	isOpen  atomic.Bool
	draftMu sync.Mutex
	draft   string

	closeOnce   sync.Once
	baseContext context.Context
	cancelBase  context.CancelFunc
}

func NewOrchestrator(opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		instructions:    DefaultInstructions,
		greeting:        DefaultGreeting,
		captureDuration: DefaultCaptureDuration,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	o.baseContext, o.cancelBase = context.WithCancel(context.Background())
	o.emit = newCallbackEventEmitter(o.eventCallback)
	o.detector = languageDetector{gateway: &o.gateway}
	o.dialogue = newDialogue(o.greeting)
	o.capture = newCaptureController(&o.audioInput, &o.gateway, o.captureDuration, o.emit)
	o.synthesizer = newReplySynthesizer(&o.gateway, &o.audioOutput, o.voice, o.emit)

	return o
}

// Submit appends rawText as a user turn and answers it. Blank input is
// ignored. The returned session includes both new turns.
func (o *Orchestrator) Submit(ctx context.Context, rawText string) Session {
	ctx, span := tracer.Start(ctx, "submit")
	defer span.End()

	userTurn, history, ok := o.dialogue.appendUser(rawText)
	if !ok {
		span.SetAttributes(attribute.Bool("ignored", true))
		return o.Session()
	}
	o.clearDraft()
	o.emit(events.NewUserTurnAppended(userTurn))

	language := o.detector.detect(ctx, rawText)
	span.SetAttributes(attribute.String("language", language))
	o.emit(events.NewLanguageDetected(userTurn.ID, language))

	reply := o.gateway.complete(ctx, history,
		llms.WithInstructions(o.instructions),
		llms.WithLanguage(language),
	)

	if assistantTurn, ok := o.dialogue.appendAssistant(reply); ok {
		o.emit(events.NewAssistantTurnAppended(assistantTurn))
		o.synthesizer.speak(o.baseContext, assistantTurn)
	}

	return o.Session()
}

func (o *Orchestrator) SetDraft(text string) {
	o.draftMu.Lock()
	changed := o.draft != text
	o.draft = text
	o.draftMu.Unlock()

	if changed {
		o.emit(events.NewDraftUpdated(text))
	}
}

// SubmitDraft submits the typed input. A blank draft is kept as is.
func (o *Orchestrator) SubmitDraft(ctx context.Context) Session {
	o.draftMu.Lock()
	draft := o.draft
	o.draftMu.Unlock()

	return o.Submit(ctx, draft)
}

func (o *Orchestrator) clearDraft() {
	o.SetDraft("")
}

// SubmitVoice records one utterance and submits its transcript. On failure
// the session is unchanged and the returned error is a *CaptureError.
func (o *Orchestrator) SubmitVoice(ctx context.Context) (Session, error) {
	ctx, span := tracer.Start(ctx, "submit voice")
	defer span.End()

	text, err := o.capture.run(ctx)
	if err != nil {
		span.RecordError(err)
		if !errors.Is(err, ErrCaptureInProgress) {
			logger.WarnContext(ctx, "voice submission failed", "error", err)
			o.emit(events.NewCaptureFailed(err))
		}
		return o.Session(), err
	}

	return o.Submit(ctx, text), nil
}

// StopVoice ends the active recording early. The pending SubmitVoice then
// transcribes what was recorded so far.
func (o *Orchestrator) StopVoice() {
	o.capture.requestStop()
}

func (o *Orchestrator) CaptureState() CaptureState {
	return o.capture.State()
}

// ToggleWidget flips the widget visibility and returns the new state. It
// does not touch turns or in-flight work.
func (o *Orchestrator) ToggleWidget() bool {
	for {
		current := o.isOpen.Load()
		if o.isOpen.CompareAndSwap(current, !current) {
			o.emit(events.NewWidgetToggled(!current))
			return !current
		}
	}
}

func (o *Orchestrator) Session() Session {
	o.draftMu.Lock()
	draft := o.draft
	o.draftMu.Unlock()

	return Session{
		Turns:       o.dialogue.snapshot(),
		IsOpen:      o.isOpen.Load(),
		IsRecording: o.capture.isRecording(),
		DraftInput:  draft,
	}
}

// SetSpeaking mutes or unmutes reply playback. Muting drops audio that is
// already queued.
func (o *Orchestrator) SetSpeaking(isSpeaking bool) {
	o.synthesizer.setMuted(!isSpeaking)
}

func (o *Orchestrator) IsSpeaking() bool {
	return o.synthesizer.enabled()
}

// AwaitSpeech blocks until every reply handed to the synthesizer so far has
// been synthesized and sent to the output.
func (o *Orchestrator) AwaitSpeech() {
	o.synthesizer.wait()
}

// Close stops any recording, cancels pending speech and closes collaborators
// that implement io.Closer. It is safe to call more than once.
func (o *Orchestrator) Close() error {
	var err error
	o.closeOnce.Do(func() {
		o.capture.requestStop()
		o.cancelBase()
		o.synthesizer.wait()

		closed := map[any]bool{}
		for _, client := range []any{
			o.gateway.identifier,
			o.gateway.completer,
			o.gateway.synthesizer,
			o.gateway.transcriber,
		} {
			closer, ok := client.(interface{ Close() error })
			if !ok {
				continue
			}
			// One client often serves several roles.
			if reflect.TypeOf(client).Comparable() {
				if closed[client] {
					continue
				}
				closed[client] = true
			}
			if closeErr := closer.Close(); closeErr != nil {
				err = errors.Join(err, fmt.Errorf("failed to close %T: %w", client, closeErr))
			}
		}
	})
	return err
}
