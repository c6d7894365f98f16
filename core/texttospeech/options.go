package texttospeech

import "github.com/KARAN3690/Marketplace/core/audio"

type SynthesisOptions struct {
	// Voice selects the speaker. Clients fall back to their default voice
	// when it is empty.
	Voice string
	// Model overrides the client's default synthesis model.
	Model string
	// EncodingInfo describes the raw audio the caller expects back, usually
	// the encoding of the playback device.
	EncodingInfo audio.EncodingInfo
}

type SynthesisOption func(*SynthesisOptions)

func NewSynthesisOptions(opts ...SynthesisOption) SynthesisOptions {
	options := SynthesisOptions{EncodingInfo: audio.GetDefaultPlaybackEncodingInfo()}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	return options
}

func WithVoice(voice string) SynthesisOption {
	return func(o *SynthesisOptions) { o.Voice = voice }
}

func WithModel(model string) SynthesisOption {
	return func(o *SynthesisOptions) { o.Model = model }
}

func WithEncodingInfo(encodingInfo audio.EncodingInfo) SynthesisOption {
	return func(o *SynthesisOptions) {
		if encodingInfo.IsZero() {
			return
		}

		o.EncodingInfo = encodingInfo
	}
}
