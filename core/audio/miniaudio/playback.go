package miniaudio

import (
	"context"
	"fmt"
	"sync"

	"github.com/gen2brain/malgo"

	"github.com/KARAN3690/Marketplace/core/audio"
)

// PlaybackDevice plays queued mono linear16 audio on the default output
// device.
type PlaybackDevice struct {
	device       *malgo.Device
	config       malgo.DeviceConfig
	encodingInfo audio.EncodingInfo

	leftoverAudio []byte
	marks         []playbackMark

	mu      sync.Mutex
	audioMu sync.Mutex
}

type playbackMark struct {
	position int
	done     chan struct{}
}

func (c *PlaybackDevice) init(audioContext *malgo.AllocatedContext, encodingInfo audio.EncodingInfo) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	sampleRate := uint32(encodingInfo.SampleRate)
	channels := 1
	format := malgo.FormatS16
	bytesPerFrame := malgo.SampleSizeInBytes(format) * channels

	c.encodingInfo = encodingInfo
	c.config = malgo.DefaultDeviceConfig(malgo.Playback)
	c.config.SampleRate = sampleRate
	c.config.Playback.Format = format
	c.config.Playback.Channels = uint32(channels)
	c.config.Alsa.NoMMap = 1
	c.config.PeriodSizeInFrames = sampleRate / 10 // ~100ms of audio
	c.config.Periods = 4

	var err error
	if c.device, err = malgo.InitDevice(
		audioContext.Context,
		c.config,
		malgo.DeviceCallbacks{Data: c.processAudio(bytesPerFrame)},
	); err != nil {
		return fmt.Errorf("failed to initialize playback device: %w", err)
	}

	return nil
}

func (c *PlaybackDevice) start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.device == nil {
		return fmt.Errorf("device not initialized")
	}

	if err := c.device.Start(); err != nil {
		return fmt.Errorf("failed to start playback device: %w", err)
	}

	return nil
}

func (c *PlaybackDevice) EncodingInfo() audio.EncodingInfo {
	return c.encodingInfo
}

func (c *PlaybackDevice) SendAudio(audio []byte) error {
	c.mu.Lock()
	started := c.device != nil && c.device.IsStarted()
	c.mu.Unlock()
	if !started {
		return fmt.Errorf("device not started")
	}

	c.enqueue(audio)
	return nil
}

func (c *PlaybackDevice) enqueue(audio []byte) {
	c.audioMu.Lock()
	defer c.audioMu.Unlock()
	c.leftoverAudio = append(c.leftoverAudio, audio...)
}

// ClearBuffer drops queued audio and releases anyone waiting in AwaitDrain.
func (c *PlaybackDevice) ClearBuffer() {
	c.audioMu.Lock()
	defer c.audioMu.Unlock()
	c.leftoverAudio = nil
	for _, mark := range c.marks {
		close(mark.done)
	}
	c.marks = nil
}

// AwaitDrain blocks until everything queued so far has been played.
func (c *PlaybackDevice) AwaitDrain(ctx context.Context) error {
	c.audioMu.Lock()
	if len(c.leftoverAudio) == 0 {
		c.audioMu.Unlock()
		return nil
	}
	mark := playbackMark{position: len(c.leftoverAudio), done: make(chan struct{})}
	c.marks = append(c.marks, mark)
	c.audioMu.Unlock()

	select {
	case <-mark.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *PlaybackDevice) uninit() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.device != nil {
		c.device.Uninit()
		c.device = nil
	}
}

func (c *PlaybackDevice) processAudio(bytesPerFrame int) malgo.DataProc {
	return func(pOutput, _ []byte, frameCount uint32) {
		need := int(frameCount) * bytesPerFrame

		c.audioMu.Lock()
		defer c.audioMu.Unlock()

		n := copy(pOutput[:min(need, len(pOutput))], c.leftoverAudio)
		c.leftoverAudio = c.leftoverAudio[n:]
		if len(c.leftoverAudio) == 0 {
			c.leftoverAudio = nil
		}
		c.processMarks(n)
	}
}

func (c *PlaybackDevice) processMarks(played int) {
	pending := c.marks[:0]
	for _, mark := range c.marks {
		mark.position -= played
		if mark.position <= 0 {
			close(mark.done)
			continue
		}
		pending = append(pending, mark)
	}
	c.marks = pending
}
