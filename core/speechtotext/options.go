package speechtotext

import "github.com/KARAN3690/Marketplace/core/audio"

// FormatWAV tags a blob that already carries its own container header.
const FormatWAV = "wav"

type TranscriptionOptions struct {
	// Format is the container of the blob, e.g. "wav" or "webm". When empty
	// the blob is raw audio described by EncodingInfo.
	Format string
	// Model overrides the client's default transcription model.
	Model string
	// Language is an optional hint. Clients detect the language when unset.
	Language string

	EncodingInfo audio.EncodingInfo
}

type TranscriptionOption func(*TranscriptionOptions)

func NewTranscriptionOptions(opts ...TranscriptionOption) TranscriptionOptions {
	options := TranscriptionOptions{EncodingInfo: audio.GetDefaultEncodingInfo()}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	return options
}

func WithFormat(format string) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.Format = format
	}
}

func WithModel(model string) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.Model = model
	}
}

func WithLanguage(language string) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.Language = language
	}
}

func WithEncodingInfo(encodingInfo audio.EncodingInfo) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.EncodingInfo = encodingInfo
	}
}
