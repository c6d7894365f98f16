package orchestration

import (
	"context"
	"reflect"

	"github.com/KARAN3690/Marketplace/core/audio"
)

// AudioInput is a capture device. StopCapture must release the device.
type AudioInput interface {
	EncodingInfo() audio.EncodingInfo
	StartCapture(ctx context.Context, onAudio func(audio []byte)) error
	StopCapture() error
}

// audioInput is a nil-safe facade over the configured capture device.
type audioInput struct {
	base AudioInput
}

func (a *audioInput) Set(client AudioInput) {
	if isNilClient(client) {
		a.base = nil
		return
	}
	a.base = client
}

func (a *audioInput) IsConfigured() bool { return a != nil && a.base != nil }

func (a *audioInput) EncodingInfo() audio.EncodingInfo {
	if !a.IsConfigured() {
		return audio.GetDefaultEncodingInfo()
	}

	if encodingInfo := a.base.EncodingInfo(); !encodingInfo.IsZero() {
		return encodingInfo
	}
	return audio.GetDefaultEncodingInfo()
}

func (a *audioInput) StartCapture(ctx context.Context, onAudio func(audio []byte)) error {
	if !a.IsConfigured() {
		return ErrNoAudioInput
	}
	return a.base.StartCapture(ctx, onAudio)
}

func (a *audioInput) StopCapture() error {
	if !a.IsConfigured() {
		return nil
	}
	return a.base.StopCapture()
}

// isNilClient treats typed-nil interface values as unconfigured.
func isNilClient(client any) bool {
	if client == nil {
		return true
	}

	v := reflect.ValueOf(client)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return v.IsNil()
	default:
		return false
	}
}
