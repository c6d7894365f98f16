package orchestration

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/KARAN3690/Marketplace/core/events"
	"github.com/KARAN3690/Marketplace/core/llms"
	"github.com/KARAN3690/Marketplace/core/texttospeech"
)

// replySynthesizer speaks assistant turns in detached tasks. Nothing it does
// flows back into the dialogue.
type replySynthesizer struct {
	gateway *remoteGateway
	output  *audioOutput
	voice   string
	emit    eventEmitter

	muted atomic.Bool
	tasks sync.WaitGroup
}

func newReplySynthesizer(gateway *remoteGateway, output *audioOutput, voice string, emit eventEmitter) *replySynthesizer {
	if emit == nil {
		emit = noopEventEmitter
	}
	return &replySynthesizer{gateway: gateway, output: output, voice: voice, emit: emit}
}

func (s *replySynthesizer) enabled() bool {
	return s.gateway.canSynthesize() && s.output.IsConfigured() && !s.muted.Load()
}

func (s *replySynthesizer) setMuted(muted bool) {
	s.muted.Store(muted)
	if muted {
		s.output.ClearBuffer()
	}
}

// speak returns immediately. ctx bounds the detached task, not the caller.
func (s *replySynthesizer) speak(ctx context.Context, turn llms.Turn) {
	if ctx.Err() != nil || !s.enabled() || strings.TrimSpace(turn.Content) == "" {
		return
	}

	run := panicSafeNamedWorker("reply synthesizer", func(ctx context.Context) error {
		opts := []texttospeech.SynthesisOption{texttospeech.WithEncodingInfo(s.output.EncodingInfo())}
		if s.voice != "" {
			opts = append(opts, texttospeech.WithVoice(s.voice))
		}

		speech := s.gateway.synthesizeSpeech(ctx, turn.Content, opts...)
		if len(speech) == 0 {
			return errNoSpeech
		}
		if s.muted.Load() {
			return nil
		}
		return s.output.SendAudio(speech)
	})

	s.tasks.Add(1)
	go func() {
		defer s.tasks.Done()

		if err := run(ctx); err != nil {
			logger.WarnContext(ctx, "reply playback failed", "turn_id", turn.ID, "error", err)
			s.emit(events.NewAssistantSpeechFailed(turn.ID, err))
		}
	}()
}

func (s *replySynthesizer) wait() {
	s.tasks.Wait()
}
