package llms

import (
	"errors"

	"github.com/google/uuid"
)

// ErrEmptyResponse is returned by completion and detection clients when the
// service answered but produced no usable content.
var ErrEmptyResponse = errors.New("llm returned an empty response")

// Turn is a single message in the dialogue. Turns are immutable once created
// and their order is meaningful: the full sequence is the conversational
// context of every completion request.
type Turn struct {
	ID      string
	Role    TurnRole
	Content string
}

func NewUserTurn(content string) Turn {
	return Turn{ID: uuid.NewString(), Role: TurnRoleUser, Content: content}
}

func NewAssistantTurn(content string) Turn {
	return Turn{ID: uuid.NewString(), Role: TurnRoleAssistant, Content: content}
}

func (t Turn) String() string {
	return t.Content
}

type TurnRole string

const (
	TurnRoleUser      TurnRole = "user"
	TurnRoleAssistant TurnRole = "assistant"
)
