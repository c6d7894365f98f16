package orchestration

import (
	"fmt"

	"github.com/KARAN3690/Marketplace/core/audio"
)

// AudioOutput plays raw audio. SendAudio may block until the audio is
// queued or played.
type AudioOutput interface {
	EncodingInfo() audio.EncodingInfo
	SendAudio(audio []byte) error
	ClearBuffer()
}

// audioOutput is a nil-safe facade over the configured playback device.
//
// NOTE: playback is a best-effort side effect, callers log and drop its
// errors.
type audioOutput struct {
	base AudioOutput
}

func (a *audioOutput) Set(client AudioOutput) {
	if isNilClient(client) {
		a.base = nil
		return
	}
	a.base = client
}

func (a *audioOutput) IsConfigured() bool { return a != nil && a.base != nil }

func (a *audioOutput) EncodingInfo() audio.EncodingInfo {
	if !a.IsConfigured() {
		return audio.GetDefaultPlaybackEncodingInfo()
	}

	if encodingInfo := a.base.EncodingInfo(); !encodingInfo.IsZero() {
		return encodingInfo
	}
	return audio.GetDefaultPlaybackEncodingInfo()
}

func (a *audioOutput) SendAudio(audio []byte) error {
	if !a.IsConfigured() {
		return fmt.Errorf("no audio output configured")
	}
	return a.base.SendAudio(audio)
}

func (a *audioOutput) ClearBuffer() {
	if a.IsConfigured() {
		a.base.ClearBuffer()
	}
}
