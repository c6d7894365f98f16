package llms

import "strings"

// CompletionOptions is shared by every completion client so that all
// providers build the same instruction turn.
type CompletionOptions struct {
	// Instructions describe the assistant persona, e.g. "You are an
	// agricultural assistant."
	Instructions string
	// Language is the detected language of the latest user turn. When set,
	// the instruction turn asks the model to reply in it.
	Language string
	// Model overrides the client's default model.
	Model string
}

type CompletionOption func(*CompletionOptions)

func WithInstructions(instructions string) CompletionOption {
	return func(o *CompletionOptions) { o.Instructions = instructions }
}

func WithLanguage(language string) CompletionOption {
	return func(o *CompletionOptions) { o.Language = language }
}

func WithModel(model string) CompletionOption {
	return func(o *CompletionOptions) { o.Model = model }
}

func NewCompletionOptions(opts ...CompletionOption) CompletionOptions {
	options := CompletionOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	return options
}

// Directive returns the language instruction, empty when no language is set.
func (o CompletionOptions) Directive() string {
	language := strings.TrimSpace(o.Language)
	if language == "" {
		return ""
	}

	return "Reply in " + language + "."
}

// SystemPrompt joins the instructions and the language directive into the
// instruction turn sent ahead of the conversation.
func (o CompletionOptions) SystemPrompt() string {
	parts := make([]string, 0, 2)
	if instructions := strings.TrimSpace(o.Instructions); instructions != "" {
		parts = append(parts, instructions)
	}
	if directive := o.Directive(); directive != "" {
		parts = append(parts, directive)
	}

	return strings.Join(parts, " ")
}
