package orchestration

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/KARAN3690/Marketplace/core/audio"
	"github.com/KARAN3690/Marketplace/core/events"
	"github.com/KARAN3690/Marketplace/core/llms"
	"github.com/KARAN3690/Marketplace/core/speechtotext"
	"github.com/KARAN3690/Marketplace/core/texttospeech"
)

func waitForCondition(t *testing.T, timeout time.Duration, description string, condition func() bool) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}

	t.Fatalf("timed out waiting for %s", description)
}

type languageIdentifierStub struct {
	language string
	err      error
	calls    atomic.Int32
}

func (stub *languageIdentifierStub) IdentifyLanguage(context.Context, string) (string, error) {
	stub.calls.Add(1)
	return stub.language, stub.err
}

type completerStub struct {
	reply string
	err   error
	calls atomic.Int32

	mu          sync.Mutex
	lastTurns   []llms.Turn
	lastOptions llms.CompletionOptions
}

func (stub *completerStub) Complete(_ context.Context, turns []llms.Turn, opts ...llms.CompletionOption) (string, error) {
	stub.calls.Add(1)

	stub.mu.Lock()
	stub.lastTurns = slices.Clone(turns)
	stub.lastOptions = llms.NewCompletionOptions(opts...)
	stub.mu.Unlock()

	return stub.reply, stub.err
}

func (stub *completerStub) last() ([]llms.Turn, llms.CompletionOptions) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	return stub.lastTurns, stub.lastOptions
}

type closableCompleterStub struct {
	completerStub
	closeCalls atomic.Int32
}

func (stub *closableCompleterStub) IdentifyLanguage(context.Context, string) (string, error) {
	return "en", nil
}

func (stub *closableCompleterStub) Close() error {
	stub.closeCalls.Add(1)
	return nil
}

type speechSynthesizerStub struct {
	speech      []byte
	err         error
	shouldPanic bool
	calls       atomic.Int32

	mu          sync.Mutex
	lastOptions texttospeech.SynthesisOptions
}

func (stub *speechSynthesizerStub) Synthesize(_ context.Context, _ string, opts ...texttospeech.SynthesisOption) ([]byte, error) {
	stub.calls.Add(1)
	if stub.shouldPanic {
		panic("synthesizer exploded")
	}

	stub.mu.Lock()
	stub.lastOptions = texttospeech.NewSynthesisOptions(opts...)
	stub.mu.Unlock()

	return stub.speech, stub.err
}

type transcriberStub struct {
	text  string
	err   error
	calls atomic.Int32
	// release, when set, blocks Transcribe until it is closed.
	release chan struct{}

	mu          sync.Mutex
	lastAudio   []byte
	lastOptions speechtotext.TranscriptionOptions
}

func (stub *transcriberStub) Transcribe(ctx context.Context, audio []byte, opts ...speechtotext.TranscriptionOption) (string, error) {
	stub.calls.Add(1)

	stub.mu.Lock()
	stub.lastAudio = slices.Clone(audio)
	stub.lastOptions = speechtotext.NewTranscriptionOptions(opts...)
	stub.mu.Unlock()

	if stub.release != nil {
		select {
		case <-stub.release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	return stub.text, stub.err
}

func (stub *transcriberStub) last() ([]byte, speechtotext.TranscriptionOptions) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	return stub.lastAudio, stub.lastOptions
}

// scriptedAudioInput delivers its chunks as soon as capture starts. A
// non-nil release holds StartCapture until it is closed.
type scriptedAudioInput struct {
	chunks   [][]byte
	startErr error
	starting chan struct{}
	release  chan struct{}

	starts atomic.Int32
	stops  atomic.Int32
}

func (input *scriptedAudioInput) EncodingInfo() audio.EncodingInfo {
	return audio.GetDefaultEncodingInfo()
}

func (input *scriptedAudioInput) StartCapture(_ context.Context, onAudio func([]byte)) error {
	input.starts.Add(1)
	if input.release != nil {
		close(input.starting)
		<-input.release
	}
	if input.startErr != nil {
		return input.startErr
	}

	for _, chunk := range input.chunks {
		onAudio(chunk)
	}
	return nil
}

func (input *scriptedAudioInput) StopCapture() error {
	input.stops.Add(1)
	return nil
}

type recordingAudioOutput struct {
	err error

	mu         sync.Mutex
	received   [][]byte
	clearCalls atomic.Int32
}

func (output *recordingAudioOutput) EncodingInfo() audio.EncodingInfo {
	return audio.GetDefaultPlaybackEncodingInfo()
}

func (output *recordingAudioOutput) SendAudio(audio []byte) error {
	if output.err != nil {
		return output.err
	}

	output.mu.Lock()
	defer output.mu.Unlock()
	output.received = append(output.received, slices.Clone(audio))
	return nil
}

func (output *recordingAudioOutput) ClearBuffer() {
	output.clearCalls.Add(1)
}

func (output *recordingAudioOutput) receivedAudio() [][]byte {
	output.mu.Lock()
	defer output.mu.Unlock()
	return slices.Clone(output.received)
}

type eventRecorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (recorder *eventRecorder) record(event events.Event) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.events = append(recorder.events, event)
}

func (recorder *eventRecorder) kinds() []events.Kind {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()

	kinds := make([]events.Kind, 0, len(recorder.events))
	for _, event := range recorder.events {
		kinds = append(kinds, event.Kind())
	}
	return kinds
}

func (recorder *eventRecorder) has(kind events.Kind) bool {
	return slices.Contains(recorder.kinds(), kind)
}
