package orchestration

import (
	"slices"
	"strings"
	"sync"

	"github.com/jinzhu/copier"

	"github.com/KARAN3690/Marketplace/core/llms"
)

// dialogue is the single mutation point of the turn sequence. It only ever
// grows and appends are serialised so overlapping submissions cannot lose
// turns.
type dialogue struct {
	mu    sync.Mutex
	turns []llms.Turn
}

func newDialogue(greeting string) *dialogue {
	d := &dialogue{}
	if strings.TrimSpace(greeting) != "" {
		d.turns = append(d.turns, llms.NewAssistantTurn(greeting))
	}
	return d
}

// appendUser adds a user turn and returns it together with the history that
// includes it. Blank text is rejected.
func (d *dialogue) appendUser(text string) (llms.Turn, []llms.Turn, bool) {
	if strings.TrimSpace(text) == "" {
		return llms.Turn{}, nil, false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	turn := llms.NewUserTurn(text)
	d.turns = append(d.turns, turn)
	return turn, slices.Clone(d.turns), true
}

func (d *dialogue) appendAssistant(text string) (llms.Turn, bool) {
	if strings.TrimSpace(text) == "" {
		return llms.Turn{}, false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	turn := llms.NewAssistantTurn(text)
	d.turns = append(d.turns, turn)
	return turn, true
}

func (d *dialogue) snapshot() []llms.Turn {
	d.mu.Lock()
	defer d.mu.Unlock()

	turns := make([]llms.Turn, 0, len(d.turns))
	if err := copier.Copy(&turns, &d.turns); err != nil {
		logger.Warn("failed to copy turns, falling back to shallow clone", "error", err)
		return slices.Clone(d.turns)
	}
	return turns
}

func (d *dialogue) len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.turns)
}
