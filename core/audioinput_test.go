package orchestration

import (
	"context"
	"errors"
	"testing"

	"github.com/KARAN3690/Marketplace/core/audio"
)

func TestWithAudioInputConfiguresAudioInputFacade(t *testing.T) {
	inputClient := &scriptedAudioInput{}
	o := NewOrchestrator(WithAudioInput(inputClient))
	defer o.Close()

	if !o.audioInput.IsConfigured() {
		t.Fatalf("expected audio input facade to be configured")
	}
	if o.audioInput.base != inputClient {
		t.Fatalf("expected facade client to match configured audio input")
	}
}

func TestAudioInputFacadeUsesDefaultEncodingInfoWhenUnset(t *testing.T) {
	facade := &audioInput{}

	if facade.IsConfigured() {
		t.Fatalf("expected unset facade to be unconfigured")
	}
	if got, want := facade.EncodingInfo(), audio.GetDefaultEncodingInfo(); got != want {
		t.Fatalf("expected default encoding info %+v, got %+v", want, got)
	}
}

func TestAudioInputFacadeFallsBackOnZeroEncodingInfo(t *testing.T) {
	facade := &audioInput{}
	facade.Set(zeroEncodingAudioInput{})

	if got, want := facade.EncodingInfo(), audio.GetDefaultEncodingInfo(); got != want {
		t.Fatalf("expected default encoding info %+v, got %+v", want, got)
	}
}

func TestAudioInputFacadeTreatsTypedNilAsUnset(t *testing.T) {
	var client *scriptedAudioInput
	facade := &audioInput{}
	facade.Set(client)

	if facade.IsConfigured() {
		t.Fatalf("expected typed nil client to leave facade unconfigured")
	}
	if err := facade.StartCapture(context.Background(), func([]byte) {}); !errors.Is(err, ErrNoAudioInput) {
		t.Fatalf("expected ErrNoAudioInput, got %v", err)
	}
	if err := facade.StopCapture(); err != nil {
		t.Fatalf("expected stop on unset facade to be a no-op, got %v", err)
	}
}

func TestAudioInputFacadeForwardsCapture(t *testing.T) {
	inputClient := &scriptedAudioInput{chunks: [][]byte{{0x01}, {0x02}}}
	facade := &audioInput{}
	facade.Set(inputClient)

	var received [][]byte
	if err := facade.StartCapture(context.Background(), func(chunk []byte) {
		received = append(received, chunk)
	}); err != nil {
		t.Fatalf("expected capture to start, got %v", err)
	}
	if err := facade.StopCapture(); err != nil {
		t.Fatalf("expected capture to stop, got %v", err)
	}

	if got := len(received); got != 2 {
		t.Fatalf("expected 2 chunks, got %d", got)
	}
	if inputClient.starts.Load() != 1 || inputClient.stops.Load() != 1 {
		t.Fatalf("expected one start and one stop, got %d and %d", inputClient.starts.Load(), inputClient.stops.Load())
	}
}

type zeroEncodingAudioInput struct{}

func (zeroEncodingAudioInput) EncodingInfo() audio.EncodingInfo { return audio.EncodingInfo{} }

func (zeroEncodingAudioInput) StartCapture(context.Context, func([]byte)) error { return nil }

func (zeroEncodingAudioInput) StopCapture() error { return nil }
