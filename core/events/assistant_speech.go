package events

const (
	// KindAssistantSpeechFailed identifies a failed best-effort reply playback.
	KindAssistantSpeechFailed Kind = "assistant_speech.failed"
)

// AssistantSpeechFailed carries the turn whose speech could not be played.
type AssistantSpeechFailed struct {
	Base
	TurnID string
	Err    error
}

// NewAssistantSpeechFailed creates an assistant speech failed event.
func NewAssistantSpeechFailed(turnID string, err error) AssistantSpeechFailed {
	return AssistantSpeechFailed{Base: NewBase(KindAssistantSpeechFailed), TurnID: turnID, Err: err}
}
