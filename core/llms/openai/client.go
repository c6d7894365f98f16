package openai

import (
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultBaseURL        = "https://api.openai.com/v1"
	DefaultModel          = "gpt-3.5-turbo"
	DefaultDetectionModel = "gpt-3.5-turbo"

	chatCompletionsPath = "/chat/completions"
)

// Client talks to the Chat Completions API. It serves both as the dialogue
// completer and as the language identifier.
type Client struct {
	apiKey         string
	baseURL        string
	model          string
	detectionModel string
	httpClient     *http.Client
}

type ClientOption func(*Client)

func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/"); baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

func WithDetectionModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.detectionModel = model
		}
	}
}

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

func NewClient(apiKey string, opts ...ClientOption) *Client {
	client := &Client{
		apiKey:         apiKey,
		baseURL:        DefaultBaseURL,
		model:          DefaultModel,
		detectionModel: DefaultDetectionModel,
		httpClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport,
			otelhttp.WithSpanNameFormatter(func(operationName string, request *http.Request) string {
				return operationName + " " + request.URL.Path
			}),
		)},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}
