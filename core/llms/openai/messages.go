package openai

import "github.com/KARAN3690/Marketplace/core/llms"

type message struct {
	Role    messageRole `json:"role"`
	Content string      `json:"content"`
}

type messageRole string

const (
	messageRoleSystem    messageRole = "system"
	messageRoleUser      messageRole = "user"
	messageRoleAssistant messageRole = "assistant"
)

func toMessages(systemPrompt string, turns []llms.Turn) []message {
	messages := make([]message, 0, len(turns)+1)
	if systemPrompt != "" {
		messages = append(messages, message{Role: messageRoleSystem, Content: systemPrompt})
	}

	for _, turn := range turns {
		switch turn.Role {
		case llms.TurnRoleUser:
			messages = append(messages, message{Role: messageRoleUser, Content: turn.Content})
		case llms.TurnRoleAssistant:
			messages = append(messages, message{Role: messageRoleAssistant, Content: turn.Content})
		}
	}
	return messages
}

type requestBody struct {
	Model          string          `json:"model"`
	Messages       []message       `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
	Temperature    *float64        `json:"temperature,omitempty"`
}

type responseBody struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role,omitempty"`
			Content string `json:"content,omitempty"`
			Refusal string `json:"refusal,omitempty"`
		} `json:"message"`
		FinishReason *string `json:"finish_reason,omitempty"`
	} `json:"choices"`
}

func (r responseBody) content() string {
	if len(r.Choices) == 0 {
		return ""
	}

	if content := r.Choices[0].Message.Content; content != "" {
		return content
	}
	return r.Choices[0].Message.Refusal
}
