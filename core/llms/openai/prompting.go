package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/KARAN3690/Marketplace/core/llms"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Complete asks the model for the next assistant turn given the dialogue so
// far. The system prompt is derived from the completion options.
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

	response, err := c.send(ctx, span, requestBody{
		Model:    model,
		Messages: toMessages(options.SystemPrompt(), turns),
	})
	if err != nil {
		return "", err
	}

	content := strings.TrimSpace(response.content())
	if content == "" {
		span.RecordError(llms.ErrEmptyResponse)
		span.SetStatus(codes.Error, llms.ErrEmptyResponse.Error())
		return "", llms.ErrEmptyResponse
	}

	return content, nil
}

func (c *Client) send(ctx context.Context, span trace.Span, reqBody requestBody) (*responseBody, error) {
	fail := func(err error) (*responseBody, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	requestBodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return fail(fmt.Errorf("error marshalling JSON: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+chatCompletionsPath, bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return fail(fmt.Errorf("error creating HTTP request: %w", err))
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	span.SetAttributes(attribute.String("request.url", req.URL.String()))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fail(fmt.Errorf("error sending request: %w", err))
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("response.status_code", resp.StatusCode))
	if resp.StatusCode != http.StatusOK {
		errorBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return fail(fmt.Errorf("non-OK HTTP status: %s: error reading body: %w", resp.Status, err))
		}
		span.SetAttributes(attribute.String("response.error", string(errorBody)))
		logger.Debug("chat completion rejected", "status", resp.Status, "body", string(errorBody))

		// The service answered with an error document instead of choices.
		if json.Valid(errorBody) {
			return fail(fmt.Errorf("non-OK HTTP status: %s: %w", resp.Status, llms.ErrEmptyResponse))
		}
		return fail(fmt.Errorf("non-OK HTTP status: %s", resp.Status))
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(fmt.Errorf("error reading response body: %w", err))
	}

	var response responseBody
	if err := json.Unmarshal(bodyBytes, &response); err != nil {
		return fail(fmt.Errorf("error unmarshalling response body: %w", err))
	}

	return &response, nil
}
