package orchestration

import "github.com/KARAN3690/Marketplace/core/llms"

// Session is a point-in-time copy of the assistant widget state. Changing it
// has no effect on the orchestrator.
type Session struct {
	Turns       []llms.Turn
	IsOpen      bool
	IsRecording bool
	DraftInput  string
}

// LastTurn returns the latest turn, if any.
func (s Session) LastTurn() (llms.Turn, bool) {
	if len(s.Turns) == 0 {
		return llms.Turn{}, false
	}
	return s.Turns[len(s.Turns)-1], true
}
