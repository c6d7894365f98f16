package orchestration

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/KARAN3690/Marketplace/core/speechtotext"
)

// transcribe is the only gateway operation whose failures reach the caller.
func (g *remoteGateway) transcribe(ctx context.Context, audio []byte, opts ...speechtotext.TranscriptionOption) (string, error) {
	ctx, span := tracer.Start(ctx, "transcribe")
	defer span.End()

	span.SetAttributes(attribute.Int("audio_bytes", len(audio)))

	if g.transcriber == nil {
		err := &RemoteError{Service: serviceTranscription, Reason: "no transcriber configured"}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	text, err := g.transcriber.Transcribe(ctx, audio, opts...)
	if err != nil {
		recordedErr := &RemoteError{Service: serviceTranscription, Reason: "request failed", Err: err}
		span.RecordError(recordedErr)
		span.SetStatus(codes.Error, recordedErr.Error())
		return "", recordedErr
	}

	return text, nil
}
