package deepgram

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gorilla/websocket"
)

const DefaultSpeakURL = "wss://api.deepgram.com/v1/speak"

type TextToSpeechClient struct {
	apiKey   string
	speakURL string
	voice    deepgramVoice
	dialer   *websocket.Dialer
}

type TextToSpeechClientOption func(*TextToSpeechClient)

func WithSpeakURL(speakURL string) TextToSpeechClientOption {
	return func(c *TextToSpeechClient) {
		if speakURL = strings.TrimSpace(speakURL); speakURL != "" {
			c.speakURL = speakURL
		}
	}
}

// WithVoice selects the default voice. Unknown voices are rejected by
// NewTextToSpeechClient.
func WithVoice(voice string) TextToSpeechClientOption {
	return func(c *TextToSpeechClient) {
		if voice != "" {
			c.voice = deepgramVoice(voice)
		}
	}
}

func NewTextToSpeechClient(apiKey string, opts ...TextToSpeechClientOption) (*TextToSpeechClient, error) {
	client := &TextToSpeechClient{
		apiKey:   apiKey,
		speakURL: DefaultSpeakURL,
		voice:    defaultVoice,
		dialer:   websocket.DefaultDialer,
	}
	for _, opt := range opts {
		opt(client)
	}

	if !slices.Contains(GetAvailableVoices(), client.voice) {
		return nil, fmt.Errorf("invalid voice: %s", client.voice)
	}

	return client, nil
}
