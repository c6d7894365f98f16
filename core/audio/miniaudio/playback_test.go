package miniaudio

import (
	"context"
	"testing"
	"time"
)

func TestProcessAudioCopiesQueuedAudio(t *testing.T) {
	device := &PlaybackDevice{}
	device.enqueue([]byte{1, 2, 3, 4, 5, 6})

	out := make([]byte, 4)
	device.processAudio(2)(out, nil, 2)

	if string(out) != string([]byte{1, 2, 3, 4}) {
		t.Fatalf("unexpected output %v", out)
	}
	if len(device.leftoverAudio) != 2 {
		t.Fatalf("expected 2 leftover bytes, got %d", len(device.leftoverAudio))
	}

	out = make([]byte, 4)
	device.processAudio(2)(out, nil, 2)
	if string(out) != string([]byte{5, 6, 0, 0}) {
		t.Fatalf("unexpected output %v", out)
	}
	if device.leftoverAudio != nil {
		t.Fatalf("expected queue to be drained")
	}
}

func TestAwaitDrainReturnsOncePlayed(t *testing.T) {
	device := &PlaybackDevice{}
	device.enqueue(make([]byte, 8))

	done := make(chan error, 1)
	go func() { done <- device.AwaitDrain(context.Background()) }()

	deadline := time.After(time.Second)
	for {
		device.audioMu.Lock()
		registered := len(device.marks) == 1
		device.audioMu.Unlock()
		if registered {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for mark registration")
		case <-time.After(time.Millisecond):
		}
	}

	device.processAudio(2)(make([]byte, 4), nil, 2)
	select {
	case <-done:
		t.Fatalf("drain returned before all audio was played")
	case <-time.After(20 * time.Millisecond):
	}

	device.processAudio(2)(make([]byte, 4), nil, 2)
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for drain")
	}
}

func TestClearBufferReleasesWaiters(t *testing.T) {
	device := &PlaybackDevice{}
	device.enqueue(make([]byte, 8))

	done := make(chan error, 1)
	go func() { done <- device.AwaitDrain(context.Background()) }()

	time.Sleep(10 * time.Millisecond)
	device.ClearBuffer()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for waiter release")
	}
}

func TestAwaitDrainEmptyQueue(t *testing.T) {
	device := &PlaybackDevice{}
	if err := device.AwaitDrain(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
