package openai

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/invopop/jsonschema"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/KARAN3690/Marketplace/core/llms"
	"github.com/KARAN3690/Marketplace/internal/utils"
)

const languageDetectionPrompt = "Detect the language of this text. Reply with ISO code only."

type detectedLanguage struct {
	Code string `json:"code" jsonschema:"description=ISO 639-1 code of the language the text is written in"`
}

type responseFormat struct {
	Type       string      `json:"type"`
	JSONSchema *jsonSchema `json:"json_schema,omitempty"`
}

type jsonSchema struct {
	Name   string             `json:"name"`
	Schema *jsonschema.Schema `json:"schema"`
	Strict bool               `json:"strict"`
}

var languageSchema = func() *jsonschema.Schema {
	reflector := jsonschema.Reflector{DoNotReference: true}
	schema := reflector.Reflect(detectedLanguage{})
	schema.Version = ""
	schema.ID = ""
	return schema
}()

// IdentifyLanguage returns the raw language code the model replied with.
// Normalisation is left to the caller.
func (c *Client) IdentifyLanguage(ctx context.Context, text string) (string, error) {
	ctx, span := tracer.Start(ctx, "identify language")
	defer span.End()

	span.SetAttributes(attribute.String("request.model", c.detectionModel))

	response, err := c.send(ctx, span, requestBody{
		Model: c.detectionModel,
		Messages: []message{
			{Role: messageRoleSystem, Content: languageDetectionPrompt},
			{Role: messageRoleUser, Content: text},
		},
		Temperature: utils.Ptr(0.0),
		ResponseFormat: &responseFormat{
			Type: "json_schema",
			JSONSchema: &jsonSchema{
				Name:   "detectedLanguage",
				Schema: languageSchema,
				Strict: true,
			},
		},
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

	// Some compatible backends ignore response_format and answer in plain text.
	var detected detectedLanguage
	if err := json.Unmarshal([]byte(content), &detected); err == nil && detected.Code != "" {
		content = detected.Code
	}

	span.SetAttributes(attribute.String("response.language", content))
	return content, nil
}
