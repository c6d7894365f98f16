package orchestration

import (
	"testing"

	"github.com/KARAN3690/Marketplace/core/llms"
)

func TestDialogueAppendUserReturnsHistoryCopy(t *testing.T) {
	d := newDialogue("hello")

	turn, history, ok := d.appendUser("maize price")
	if !ok {
		t.Fatalf("expected user turn to be appended")
	}
	if turn.Role != llms.TurnRoleUser || turn.ID == "" {
		t.Fatalf("expected identified user turn, got %+v", turn)
	}
	if got := len(history); got != 2 {
		t.Fatalf("expected history with greeting and user turn, got %d", got)
	}

	history[0].Content = "mutated"
	if got := d.snapshot()[0].Content; got != "hello" {
		t.Fatalf("expected history to be a copy, got %q", got)
	}
}

func TestDialogueRejectsBlankTurns(t *testing.T) {
	d := newDialogue("  ")

	if _, _, ok := d.appendUser(" \t"); ok {
		t.Fatalf("expected blank user turn to be rejected")
	}
	if _, ok := d.appendAssistant(""); ok {
		t.Fatalf("expected blank assistant turn to be rejected")
	}
	if got := d.len(); got != 0 {
		t.Fatalf("expected empty dialogue, got %d turns", got)
	}
}
