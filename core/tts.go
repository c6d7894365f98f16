package orchestration

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/KARAN3690/Marketplace/core/texttospeech"
)

// synthesizeSpeech is best-effort: failures are logged and yield no audio.
func (g *remoteGateway) synthesizeSpeech(ctx context.Context, text string, opts ...texttospeech.SynthesisOption) []byte {
	ctx, span := tracer.Start(ctx, "synthesize speech")
	defer span.End()

	if g.synthesizer == nil {
		return nil
	}

	speech, err := g.synthesizer.Synthesize(ctx, text, opts...)
	if err != nil {
		recordedErr := &RemoteError{Service: serviceSpeechSynthesis, Reason: "request failed", Err: err}
		span.RecordError(recordedErr)
		span.SetStatus(codes.Error, recordedErr.Error())
		logger.WarnContext(ctx, "speech synthesis failed", "error", err)
		return nil
	}

	span.SetAttributes(attribute.Int("audio_bytes", len(speech)))
	return speech
}
