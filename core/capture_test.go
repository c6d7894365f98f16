package orchestration

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KARAN3690/Marketplace/core/events"
	"github.com/KARAN3690/Marketplace/core/speechtotext"
)

type submitVoiceResult struct {
	session Session
	err     error
}

func submitVoiceAsync(ctx context.Context, o *Orchestrator) <-chan submitVoiceResult {
	result := make(chan submitVoiceResult, 1)
	go func() {
		session, err := o.SubmitVoice(ctx)
		result <- submitVoiceResult{session: session, err: err}
	}()
	return result
}

func awaitSubmitVoice(t *testing.T, result <-chan submitVoiceResult) submitVoiceResult {
	t.Helper()

	select {
	case r := <-result:
		return r
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for voice submission")
	}
	return submitVoiceResult{}
}

func TestSubmitVoiceTranscribesWAVAndSubmits(t *testing.T) {
	input := &scriptedAudioInput{chunks: [][]byte{{1, 0}, {2, 0}}}
	transcriber := &transcriberStub{text: "Tomato price?"}
	completer := &completerStub{reply: "About 20 per kg."}
	recorder := &eventRecorder{}
	o := NewOrchestrator(
		WithAudioInput(input),
		WithTranscriber(transcriber),
		WithCompleter(completer),
		WithCaptureDuration(20*time.Millisecond),
		WithEventCallback(recorder.record),
	)
	defer o.Close()

	session, err := o.SubmitVoice(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := len(session.Turns); got != 3 {
		t.Fatalf("expected 3 turns, got %d", got)
	}
	if got := session.Turns[1].Content; got != "Tomato price?" {
		t.Fatalf("expected transcript as user turn, got %q", got)
	}

	audio, options := transcriber.last()
	if !bytes.HasPrefix(audio, []byte("RIFF")) {
		t.Fatalf("expected WAV container, got % x", audio[:min(len(audio), 4)])
	}
	if !bytes.HasSuffix(audio, []byte{1, 0, 2, 0}) {
		t.Fatalf("expected concatenated chunks after the header")
	}
	if options.Format != speechtotext.FormatWAV {
		t.Fatalf("expected wav format tag, got %q", options.Format)
	}
	if got := input.stops.Load(); got != 1 {
		t.Fatalf("expected device to be released once, got %d", got)
	}
	if o.CaptureState() != CaptureIdle {
		t.Fatalf("expected idle after capture, got %s", o.CaptureState())
	}
	if !recorder.has(events.KindRecordingStarted) || !recorder.has(events.KindRecordingStopped) {
		t.Fatalf("expected recording events, got %v", recorder.kinds())
	}
}

func TestSubmitVoiceAutoStopsAtDurationBound(t *testing.T) {
	input := &scriptedAudioInput{chunks: [][]byte{{1, 0}}}
	transcriber := &transcriberStub{text: "hello", release: make(chan struct{})}
	o := NewOrchestrator(
		WithAudioInput(input),
		WithTranscriber(transcriber),
		WithCompleter(&completerStub{reply: "hi"}),
		WithCaptureDuration(30*time.Millisecond),
	)
	defer o.Close()

	result := submitVoiceAsync(context.Background(), o)

	waitForCondition(t, 2*time.Second, "finalizing state", func() bool {
		return o.CaptureState() == CaptureFinalizing
	})
	if o.Session().IsRecording {
		t.Fatalf("expected isRecording to be false while finalizing")
	}
	if got := input.stops.Load(); got != 1 {
		t.Fatalf("expected device released before transcription, got %d stops", got)
	}

	close(transcriber.release)
	r := awaitSubmitVoice(t, result)
	if r.err != nil {
		t.Fatalf("unexpected error: %v", r.err)
	}
	if got := len(r.session.Turns); got != 3 {
		t.Fatalf("expected 3 turns, got %d", got)
	}
}

func TestSubmitVoiceRejectsSecondCapture(t *testing.T) {
	input := &scriptedAudioInput{chunks: [][]byte{{1, 0}}}
	o := NewOrchestrator(
		WithAudioInput(input),
		WithTranscriber(&transcriberStub{text: "hello"}),
		WithCompleter(&completerStub{reply: "hi"}),
		WithCaptureDuration(time.Minute),
	)
	defer o.Close()

	first := submitVoiceAsync(context.Background(), o)
	waitForCondition(t, 2*time.Second, "recording", func() bool { return o.Session().IsRecording })

	_, err := o.SubmitVoice(context.Background())
	if !errors.Is(err, ErrCaptureInProgress) {
		t.Fatalf("expected ErrCaptureInProgress, got %v", err)
	}
	var captureErr *CaptureError
	if !errors.As(err, &captureErr) {
		t.Fatalf("expected CaptureError, got %T", err)
	}
	if !o.Session().IsRecording {
		t.Fatalf("expected first capture to keep recording")
	}
	if got := input.starts.Load(); got != 1 {
		t.Fatalf("expected device to be started once, got %d", got)
	}

	o.StopVoice()
	r := awaitSubmitVoice(t, first)
	if r.err != nil {
		t.Fatalf("unexpected error from first capture: %v", r.err)
	}
}

func TestStopVoiceWhileDeviceStartsEndsCapture(t *testing.T) {
	input := &scriptedAudioInput{
		chunks:   [][]byte{{1, 0}},
		starting: make(chan struct{}),
		release:  make(chan struct{}),
	}
	transcriber := &transcriberStub{text: "Onion rate?"}
	o := NewOrchestrator(
		WithAudioInput(input),
		WithTranscriber(transcriber),
		WithCompleter(&completerStub{reply: "About 30 per kg."}),
		WithCaptureDuration(time.Minute),
	)
	defer o.Close()

	result := submitVoiceAsync(context.Background(), o)
	select {
	case <-input.starting:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for the device to start")
	}

	o.StopVoice()
	close(input.release)

	r := awaitSubmitVoice(t, result)
	if r.err != nil {
		t.Fatalf("unexpected error: %v", r.err)
	}
	if got := r.session.Turns[1].Content; got != "Onion rate?" {
		t.Fatalf("expected transcript as user turn, got %q", got)
	}
	if got := input.stops.Load(); got != 1 {
		t.Fatalf("expected device released once, got %d", got)
	}
	if o.CaptureState() != CaptureIdle {
		t.Fatalf("expected idle state, got %s", o.CaptureState())
	}
}

func TestCloseWhileDeviceStartsEndsCapture(t *testing.T) {
	input := &scriptedAudioInput{
		chunks:   [][]byte{{1, 0}},
		starting: make(chan struct{}),
		release:  make(chan struct{}),
	}
	o := NewOrchestrator(
		WithAudioInput(input),
		WithTranscriber(&transcriberStub{text: "hello"}),
		WithCompleter(&completerStub{reply: "hi"}),
		WithCaptureDuration(time.Minute),
	)

	result := submitVoiceAsync(context.Background(), o)
	<-input.starting

	closed := make(chan error, 1)
	go func() { closed <- o.Close() }()
	waitForCondition(t, 2*time.Second, "pending stop", func() bool {
		o.capture.mu.Lock()
		defer o.capture.mu.Unlock()
		return o.capture.stopPending
	})
	close(input.release)

	awaitSubmitVoice(t, result)
	if got := input.stops.Load(); got != 1 {
		t.Fatalf("expected device released once, got %d", got)
	}
	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for close")
	}
}

func TestSubmitVoiceDeviceFailureLeavesRecordingFalse(t *testing.T) {
	input := &scriptedAudioInput{startErr: errors.New("permission denied")}
	recorder := &eventRecorder{}
	o := NewOrchestrator(WithAudioInput(input), WithEventCallback(recorder.record))
	defer o.Close()

	session, err := o.SubmitVoice(context.Background())
	var captureErr *CaptureError
	if !errors.As(err, &captureErr) {
		t.Fatalf("expected CaptureError, got %v", err)
	}
	if session.IsRecording || o.Session().IsRecording {
		t.Fatalf("expected isRecording to stay false")
	}
	if o.CaptureState() != CaptureIdle {
		t.Fatalf("expected idle state, got %s", o.CaptureState())
	}
	if got := len(session.Turns); got != 1 {
		t.Fatalf("expected only the greeting, got %d turns", got)
	}
	if !recorder.has(events.KindCaptureFailed) {
		t.Fatalf("expected capture failed event")
	}
	if recorder.has(events.KindRecordingStarted) {
		t.Fatalf("expected no recording started event")
	}
}

func TestSubmitVoiceWithoutAudioInput(t *testing.T) {
	o := NewOrchestrator()
	defer o.Close()

	_, err := o.SubmitVoice(context.Background())
	if !errors.Is(err, ErrNoAudioInput) {
		t.Fatalf("expected ErrNoAudioInput, got %v", err)
	}
}

func TestSubmitVoiceTranscriptionFailureAppendsNoTurn(t *testing.T) {
	completer := &completerStub{reply: "hi"}
	o := NewOrchestrator(
		WithAudioInput(&scriptedAudioInput{chunks: [][]byte{{1, 0}}}),
		WithTranscriber(&transcriberStub{err: errors.New("503 service unavailable")}),
		WithCompleter(completer),
		WithCaptureDuration(10*time.Millisecond),
	)
	defer o.Close()

	session, err := o.SubmitVoice(context.Background())
	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("expected RemoteError inside the capture error, got %v", err)
	}
	if remoteErr.Service != serviceTranscription {
		t.Fatalf("expected transcription service, got %q", remoteErr.Service)
	}
	if got := len(session.Turns); got != 1 {
		t.Fatalf("expected no new turns, got %d", got)
	}
	if got := completer.calls.Load(); got != 0 {
		t.Fatalf("expected no completion call, got %d", got)
	}
}

func TestSubmitVoiceEmptyRecordingSkipsTranscription(t *testing.T) {
	transcriber := &transcriberStub{text: "hello"}
	o := NewOrchestrator(
		WithAudioInput(&scriptedAudioInput{}),
		WithTranscriber(transcriber),
		WithCaptureDuration(10*time.Millisecond),
	)
	defer o.Close()

	_, err := o.SubmitVoice(context.Background())
	if !errors.Is(err, ErrEmptyCapture) {
		t.Fatalf("expected ErrEmptyCapture, got %v", err)
	}
	if got := transcriber.calls.Load(); got != 0 {
		t.Fatalf("expected no transcription call, got %d", got)
	}
}

func TestSubmitVoiceEmptyTranscript(t *testing.T) {
	o := NewOrchestrator(
		WithAudioInput(&scriptedAudioInput{chunks: [][]byte{{1, 0}}}),
		WithTranscriber(&transcriberStub{text: "  "}),
		WithCaptureDuration(10*time.Millisecond),
	)
	defer o.Close()

	session, err := o.SubmitVoice(context.Background())
	if !errors.Is(err, ErrEmptyTranscript) {
		t.Fatalf("expected ErrEmptyTranscript, got %v", err)
	}
	if got := len(session.Turns); got != 1 {
		t.Fatalf("expected no new turns, got %d", got)
	}
}

func TestSubmitVoiceCancellationSkipsTranscription(t *testing.T) {
	input := &scriptedAudioInput{chunks: [][]byte{{1, 0}}}
	transcriber := &transcriberStub{text: "hello"}
	o := NewOrchestrator(
		WithAudioInput(input),
		WithTranscriber(transcriber),
		WithCaptureDuration(time.Minute),
	)
	defer o.Close()

	ctx, cancel := context.WithCancel(context.Background())
	result := submitVoiceAsync(ctx, o)
	waitForCondition(t, 2*time.Second, "recording", func() bool { return o.Session().IsRecording })
	cancel()

	r := awaitSubmitVoice(t, result)
	if !errors.Is(r.err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", r.err)
	}
	if got := transcriber.calls.Load(); got != 0 {
		t.Fatalf("expected no transcription call, got %d", got)
	}
	if got := input.stops.Load(); got != 1 {
		t.Fatalf("expected device released, got %d stops", got)
	}
	if o.CaptureState() != CaptureIdle {
		t.Fatalf("expected idle state, got %s", o.CaptureState())
	}
}

func TestStopVoiceWhenIdleIsNoop(t *testing.T) {
	o := NewOrchestrator(WithAudioInput(&scriptedAudioInput{}))
	defer o.Close()

	o.StopVoice()
	if o.CaptureState() != CaptureIdle {
		t.Fatalf("expected idle state, got %s", o.CaptureState())
	}
}

func TestCaptureStateString(t *testing.T) {
	testCases := map[CaptureState]string{
		CaptureIdle:       "idle",
		CaptureCapturing:  "capturing",
		CaptureFinalizing: "finalizing",
		CaptureState(9):   "CaptureState(9)",
	}

	for state, want := range testCases {
		if got := state.String(); got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	}
}
