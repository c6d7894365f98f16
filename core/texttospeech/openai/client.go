package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/KARAN3690/Marketplace/core/audio"
	"github.com/KARAN3690/Marketplace/core/texttospeech"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini-tts"
	DefaultVoice   = "alloy"

	speechPath = "/audio/speech"

	// pcm responses are always 24kHz signed 16-bit little-endian mono.
	responseFormatPCM = "pcm"
)

var pcmEncodingInfo = audio.EncodingInfo{SampleRate: 24000, Format: audio.EncodingLinear16}

type Client struct {
	apiKey     string
	baseURL    string
	model      string
	voice      string
	httpClient *http.Client
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

func WithVoice(voice string) ClientOption {
	return func(c *Client) {
		if voice != "" {
			c.voice = voice
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
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		model:      DefaultModel,
		voice:      DefaultVoice,
		httpClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type speechRequest struct {
	Model          string `json:"model"`
	Voice          string `json:"voice"`
	Input          string `json:"input"`
	ResponseFormat string `json:"response_format"`
}

// Synthesize returns raw PCM for text. Only 24kHz linear16 output is
// available from this endpoint.
func (c *Client) Synthesize(ctx context.Context, text string, opts ...texttospeech.SynthesisOption) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "synthesize speech")
	defer span.End()

	fail := func(err error) ([]byte, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	options := texttospeech.NewSynthesisOptions(opts...)
	if options.EncodingInfo != pcmEncodingInfo {
		return fail(fmt.Errorf("unsupported encoding %s at %d Hz", options.EncodingInfo.Format.Name(), options.EncodingInfo.SampleRate))
	}

	reqBody := speechRequest{
		Model:          c.model,
		Voice:          c.voice,
		Input:          text,
		ResponseFormat: responseFormatPCM,
	}
	if options.Model != "" {
		reqBody.Model = options.Model
	}
	if options.Voice != "" {
		reqBody.Voice = options.Voice
	}

	span.SetAttributes(
		attribute.String("request.model", reqBody.Model),
		attribute.String("request.voice", reqBody.Voice),
		attribute.Int("request.text_length", len(text)),
	)

	requestBodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return fail(fmt.Errorf("error marshalling JSON: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+speechPath, bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return fail(fmt.Errorf("error creating HTTP request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fail(fmt.Errorf("error sending request: %w", err))
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("response.status_code", resp.StatusCode))
	if resp.StatusCode != http.StatusOK {
		if errorBody, err := io.ReadAll(resp.Body); err == nil {
			span.SetAttributes(attribute.String("response.error", string(errorBody)))
			logger.Debug("speech synthesis rejected", "status", resp.Status, "body", string(errorBody))
		}
		return fail(fmt.Errorf("non-OK HTTP status: %s", resp.Status))
	}

	speech, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(fmt.Errorf("error reading response body: %w", err))
	}
	span.SetAttributes(attribute.Int("response.audio_bytes", len(speech)))

	return speech, nil
}
