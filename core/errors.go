package orchestration

import (
	"errors"
	"fmt"
)

var (
	ErrCaptureInProgress = errors.New("voice capture already in progress")
	ErrNoAudioInput      = errors.New("no audio input configured")
	ErrEmptyCapture      = errors.New("no audio was captured")
	ErrEmptyTranscript   = errors.New("transcription returned no text")

	errNoSpeech = errors.New("speech synthesis produced no audio")
)

// RemoteError is a failure of one of the remote collaborators.
type RemoteError struct {
	Service string
	Reason  string
	Err     error
}

func (e *RemoteError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Service, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %v", e.Service, e.Reason, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// CaptureError aborts a single voice submission. The session stays usable.
type CaptureError struct {
	Reason string
	Err    error
}

func (e *CaptureError) Error() string {
	if e.Err == nil {
		return "voice capture: " + e.Reason
	}
	return fmt.Sprintf("voice capture: %s: %v", e.Reason, e.Err)
}

func (e *CaptureError) Unwrap() error { return e.Err }
