package deepgram

import (
	"strings"

	"github.com/gorilla/websocket"
)

const (
	DefaultListenURL = "wss://api.deepgram.com/v1/listen"
	DefaultModel     = "nova-3"

	// multiLanguage enables Deepgram's code-switching detection, used when
	// no language hint is given.
	multiLanguage = "multi"

	chunkSize = 8192
)

type TranscriptionClient struct {
	apiKey    string
	listenURL string
	model     string
	dialer    *websocket.Dialer
}

type TranscriptionClientOption func(*TranscriptionClient)

func WithListenURL(listenURL string) TranscriptionClientOption {
	return func(c *TranscriptionClient) {
		if listenURL = strings.TrimSpace(listenURL); listenURL != "" {
			c.listenURL = listenURL
		}
	}
}

func WithModel(model string) TranscriptionClientOption {
	return func(c *TranscriptionClient) {
		if model != "" {
			c.model = model
		}
	}
}

func NewTranscriptionClient(apiKey string, opts ...TranscriptionClientOption) *TranscriptionClient {
	client := &TranscriptionClient{
		apiKey:    apiKey,
		listenURL: DefaultListenURL,
		model:     DefaultModel,
		dialer:    websocket.DefaultDialer,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}
