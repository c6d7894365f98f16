package orchestration

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/KARAN3690/Marketplace/core/audio"
	"github.com/KARAN3690/Marketplace/core/events"
	"github.com/KARAN3690/Marketplace/core/speechtotext"
)

// DefaultCaptureDuration is the hard upper bound of a single recording.
const DefaultCaptureDuration = 5 * time.Second

type CaptureState int32

const (
	CaptureIdle CaptureState = iota
	CaptureCapturing
	CaptureFinalizing
)

func (s CaptureState) String() string {
	switch s {
	case CaptureIdle:
		return "idle"
	case CaptureCapturing:
		return "capturing"
	case CaptureFinalizing:
		return "finalizing"
	}
	return fmt.Sprintf("CaptureState(%d)", int32(s))
}

// captureController owns the audio input while it is not idle and turns one
// bounded recording into a transcript.
type captureController struct {
	input       *audioInput
	gateway     *remoteGateway
	maxDuration time.Duration
	emit        eventEmitter

	mu       sync.Mutex
	state    CaptureState
	starting bool

	// stopPending records a stop requested while the device was starting.
	stopPending bool
	chunks      [][]byte
	stop        chan struct{}
	stopOnce    *sync.Once
}

func newCaptureController(input *audioInput, gateway *remoteGateway, maxDuration time.Duration, emit eventEmitter) *captureController {
	if maxDuration <= 0 {
		maxDuration = DefaultCaptureDuration
	}
	if emit == nil {
		emit = noopEventEmitter
	}

	return &captureController{
		input:       input,
		gateway:     gateway,
		maxDuration: maxDuration,
		emit:        emit,
	}
}

func (c *captureController) State() CaptureState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *captureController) isRecording() bool {
	return c.State() == CaptureCapturing
}

// run records until stopped, the duration bound elapses or ctx is done, then
// transcribes the recording. Cancellation skips transcription.
func (c *captureController) run(ctx context.Context) (string, error) {
	stop, err := c.begin(ctx)
	if err != nil {
		return "", err
	}
	defer c.reset()

	timer := time.NewTimer(c.maxDuration)
	defer timer.Stop()

	var cancelled error
	select {
	case <-stop:
	case <-timer.C:
	case <-ctx.Done():
		cancelled = ctx.Err()
	}

	recording := c.finalize(ctx)
	if cancelled != nil {
		return "", &CaptureError{Reason: "capture cancelled", Err: cancelled}
	}
	if len(recording) == 0 {
		return "", &CaptureError{Reason: "empty recording", Err: ErrEmptyCapture}
	}

	encodingInfo := c.input.EncodingInfo()
	wav, err := audio.EncodeWAV(recording, encodingInfo)
	if err != nil {
		return "", &CaptureError{Reason: "failed to encode recording", Err: err}
	}

	text, err := c.gateway.transcribe(ctx, wav,
		speechtotext.WithFormat(speechtotext.FormatWAV),
		speechtotext.WithEncodingInfo(encodingInfo),
	)
	if err != nil {
		return "", &CaptureError{Reason: "transcription failed", Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return "", &CaptureError{Reason: "empty transcript", Err: ErrEmptyTranscript}
	}

	return text, nil
}

func (c *captureController) begin(ctx context.Context) (<-chan struct{}, error) {
	c.mu.Lock()
	if c.state != CaptureIdle || c.starting {
		c.mu.Unlock()
		return nil, &CaptureError{Reason: "capture rejected", Err: ErrCaptureInProgress}
	}
	if !c.input.IsConfigured() {
		c.mu.Unlock()
		return nil, &CaptureError{Reason: "capture rejected", Err: ErrNoAudioInput}
	}
	c.starting = true
	c.stopPending = false
	c.chunks = nil
	c.mu.Unlock()

	// Devices may deliver audio before StartCapture returns, and the
	// callback takes c.mu.
	err := c.input.StartCapture(ctx, c.appendChunk)

	c.mu.Lock()
	c.starting = false
	if err != nil {
		c.chunks = nil
		c.mu.Unlock()
		return nil, &CaptureError{Reason: "failed to start audio input", Err: err}
	}
	c.state = CaptureCapturing
	c.stop = make(chan struct{})
	c.stopOnce = &sync.Once{}
	if c.stopPending {
		c.stopPending = false
		c.stopOnce.Do(func() { close(c.stop) })
	}
	stop := c.stop
	c.mu.Unlock()

	c.emit(events.NewRecordingStarted())
	return stop, nil
}

func (c *captureController) appendChunk(chunk []byte) {
	if len(chunk) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == CaptureCapturing || c.starting {
		c.chunks = append(c.chunks, chunk)
	}
}

// finalize releases the device and returns the concatenated recording.
func (c *captureController) finalize(ctx context.Context) []byte {
	c.mu.Lock()
	c.state = CaptureFinalizing
	chunks := c.chunks
	c.chunks = nil
	c.mu.Unlock()

	// The device callback takes c.mu, so the device is stopped without it.
	if err := c.input.StopCapture(); err != nil {
		logger.WarnContext(ctx, "failed to release audio input", "error", err)
	}
	c.emit(events.NewRecordingStopped())

	return bytes.Join(chunks, nil)
}

func (c *captureController) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = CaptureIdle
	c.stopPending = false
	c.chunks = nil
	c.stop = nil
	c.stopOnce = nil
}

// requestStop ends the active recording early. A stop that arrives while
// the device is starting takes effect as soon as it has started. It is a
// no-op otherwise.
func (c *captureController) requestStop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.starting {
		c.stopPending = true
		return
	}
	if c.state != CaptureCapturing || c.stop == nil {
		return
	}

	stop := c.stop
	c.stopOnce.Do(func() { close(stop) })
}
