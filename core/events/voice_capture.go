package events

const (
	KindRecordingStarted Kind = "voice_capture.recording_started"
	KindRecordingStopped Kind = "voice_capture.recording_stopped"
	KindCaptureFailed    Kind = "voice_capture.failed"
)

type RecordingStarted struct{ Base }

func NewRecordingStarted() RecordingStarted {
	return RecordingStarted{Base: NewBase(KindRecordingStarted)}
}

type RecordingStopped struct{ Base }

func NewRecordingStopped() RecordingStopped {
	return RecordingStopped{Base: NewBase(KindRecordingStopped)}
}

// CaptureFailed carries the reason no user turn came out of a capture.
type CaptureFailed struct {
	Base
	Err error
}

func NewCaptureFailed(err error) CaptureFailed {
	return CaptureFailed{Base: NewBase(KindCaptureFailed), Err: err}
}
