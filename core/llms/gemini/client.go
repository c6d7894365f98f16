package gemini

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/KARAN3690/Marketplace/core/llms"
)

const (
	DefaultModel = "gemini-2.5-flash"

	languageDetectionPrompt = "Detect the language of this text. Reply with ISO code only."
)

// Client completes dialogues and identifies languages with the Gemini API.
type Client struct {
	client         *genai.Client
	model          string
	detectionModel string

	baseURL    string
	httpClient *http.Client
}

type ClientOption func(*Client)

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

// WithBaseURL points the client at a different Gemini API endpoint.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
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

func NewClient(ctx context.Context, apiKey string, opts ...ClientOption) (*Client, error) {
	c := &Client{
		model:          DefaultModel,
		detectionModel: DefaultModel,
		httpClient:     &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
	for _, opt := range opts {
		opt(c)
	}

	config := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: c.httpClient,
	}
	if c.baseURL != "" {
		config.HTTPOptions.BaseURL = c.baseURL
	}

	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	c.client = client
	return c, nil
}

func (c *Client) Complete(ctx context.Context, turns []llms.Turn, opts ...llms.CompletionOption) (string, error) {
	ctx, span := tracer.Start(ctx, "complete dialogue")
	defer span.End()

	options := llms.NewCompletionOptions(opts...)
	model := c.model
	if options.Model != "" {
		model = options.Model
	}
	span.SetAttributes(
		attribute.String("request.model", model),
		attribute.Int("request.turns", len(turns)),
		attribute.String("request.language", options.Language),
	)

	var config *genai.GenerateContentConfig
	if systemPrompt := options.SystemPrompt(); systemPrompt != "" {
		config = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		}
	}

	return c.generate(ctx, model, toContents(turns), config)
}

// IdentifyLanguage returns the raw language code the model replied with.
func (c *Client) IdentifyLanguage(ctx context.Context, text string) (string, error) {
	ctx, span := tracer.Start(ctx, "identify language")
	defer span.End()

	span.SetAttributes(attribute.String("request.model", c.detectionModel))

	return c.generate(ctx, c.detectionModel,
		[]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)},
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(languageDetectionPrompt, genai.RoleUser),
		},
	)
}

func (c *Client) generate(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (string, error) {
	span := trace.SpanFromContext(ctx)

	res, err := c.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		err = fmt.Errorf("gemini generate content: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	text := strings.TrimSpace(res.Text())
	if text == "" {
		logger.Debug("gemini returned no text", "model", model)
		span.RecordError(llms.ErrEmptyResponse)
		span.SetStatus(codes.Error, llms.ErrEmptyResponse.Error())
		return "", llms.ErrEmptyResponse
	}

	return text, nil
}

// toContents maps the dialogue onto Gemini contents. Consecutive turns with
// the same role are merged since the API expects roles to alternate.
func toContents(turns []llms.Turn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(turns))
	for _, turn := range turns {
		role := genai.Role(genai.RoleUser)
		if turn.Role == llms.TurnRoleAssistant {
			role = genai.RoleModel
		}

		if n := len(contents); n > 0 && contents[n-1].Role == string(role) {
			contents[n-1].Parts = append(contents[n-1].Parts, genai.NewPartFromText(turn.Content))
			continue
		}
		contents = append(contents, genai.NewContentFromText(turn.Content, role))
	}
	return contents
}
