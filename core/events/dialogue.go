package events

import "github.com/KARAN3690/Marketplace/core/llms"

const (
	// KindUserTurnAppended identifies a user turn appended to the session.
	KindUserTurnAppended Kind = "dialogue.user_turn_appended"
	// KindAssistantTurnAppended identifies an assistant turn appended to the session.
	KindAssistantTurnAppended Kind = "dialogue.assistant_turn_appended"
	// KindLanguageDetected identifies the language resolved for a user turn.
	KindLanguageDetected Kind = "dialogue.language_detected"
)

// UserTurnAppended carries the appended user turn.
type UserTurnAppended struct {
	Base
	Turn llms.Turn
}

// NewUserTurnAppended creates a user turn appended event.
func NewUserTurnAppended(turn llms.Turn) UserTurnAppended {
	return UserTurnAppended{Base: NewBase(KindUserTurnAppended), Turn: turn}
}

// AssistantTurnAppended carries the appended assistant turn.
type AssistantTurnAppended struct {
	Base
	Turn llms.Turn
}

// NewAssistantTurnAppended creates an assistant turn appended event.
func NewAssistantTurnAppended(turn llms.Turn) AssistantTurnAppended {
	return AssistantTurnAppended{Base: NewBase(KindAssistantTurnAppended), Turn: turn}
}

// LanguageDetected carries the language code resolved for a user turn.
type LanguageDetected struct {
	Base
	TurnID   string
	Language string
}

// NewLanguageDetected creates a language detected event.
func NewLanguageDetected(turnID, language string) LanguageDetected {
	return LanguageDetected{Base: NewBase(KindLanguageDetected), TurnID: turnID, Language: language}
}
