package orchestration

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/KARAN3690/Marketplace/core/llms"
)

// detectLanguage never fails: any problem resolves to FallbackLanguage.
func (g *remoteGateway) detectLanguage(ctx context.Context, text string) string {
	ctx, span := tracer.Start(ctx, "detect language")
	defer span.End()

	if g.identifier == nil {
		span.SetAttributes(attribute.Bool("fallback", true))
		return FallbackLanguage
	}

	language, err := g.identifier.IdentifyLanguage(ctx, text)
	if err != nil {
		recordedErr := &RemoteError{Service: serviceLanguageDetection, Reason: "request failed", Err: err}
		span.RecordError(recordedErr)
		span.SetStatus(codes.Error, recordedErr.Error())
		logger.WarnContext(ctx, "language detection failed, using fallback", "fallback", FallbackLanguage, "error", err)
		return FallbackLanguage
	}
	if strings.TrimSpace(language) == "" {
		span.SetAttributes(attribute.Bool("fallback", true))
		return FallbackLanguage
	}

	span.SetAttributes(attribute.String("language", language))
	return language
}

// complete never fails: errors become one of the fixed fallback replies so
// the dialogue can continue.
func (g *remoteGateway) complete(ctx context.Context, turns []llms.Turn, opts ...llms.CompletionOption) string {
	ctx, span := tracer.Start(ctx, "complete")
	defer span.End()

	turns = g.window(turns)
	span.SetAttributes(attribute.Int("turns", len(turns)))

	if g.completer == nil {
		recordedErr := &RemoteError{Service: serviceCompletion, Reason: "no completer configured"}
		span.RecordError(recordedErr)
		span.SetStatus(codes.Error, recordedErr.Error())
		logger.WarnContext(ctx, "completion unavailable", "error", recordedErr)
		return ReplyConnectionError
	}

	reply, err := g.completer.Complete(ctx, turns, opts...)
	switch {
	case errors.Is(err, llms.ErrEmptyResponse):
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.WarnContext(ctx, "completion returned no reply", "error", err)
		return ReplyUnavailable
	case err != nil:
		recordedErr := &RemoteError{Service: serviceCompletion, Reason: "request failed", Err: err}
		span.RecordError(recordedErr)
		span.SetStatus(codes.Error, recordedErr.Error())
		logger.ErrorContext(ctx, "completion failed", "error", err)
		return ReplyConnectionError
	case strings.TrimSpace(reply) == "":
		logger.WarnContext(ctx, "completion returned a blank reply")
		return ReplyUnavailable
	}

	return reply
}

func (g *remoteGateway) window(turns []llms.Turn) []llms.Turn {
	if g.contextWindow <= 0 || len(turns) <= g.contextWindow {
		return turns
	}
	return turns[len(turns)-g.contextWindow:]
}
