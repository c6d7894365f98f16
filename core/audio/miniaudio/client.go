package miniaudio

import (
	"fmt"

	"github.com/gen2brain/malgo"

	"github.com/KARAN3690/Marketplace/core/audio"
)

// Client owns the miniaudio context shared by the capture and playback
// devices.
type Client struct {
	// audioContext is only saved to be able to uninitialize it, it is an
	// ownership thing
	audioContext *malgo.AllocatedContext
	playback     PlaybackDevice
	capture      CaptureDevice
}

func NewClient() (*Client, error) {
	audioCtx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(string) {})
	if err != nil {
		return nil, fmt.Errorf("malgo InitContext failed: %w", err)
	}

	client := Client{audioContext: audioCtx}

	if err := client.playback.init(audioCtx, audio.GetDefaultPlaybackEncodingInfo()); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to initialize playback client: %w", err)
	}

	if err := client.playback.start(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to start playback device: %w", err)
	}

	if err := client.capture.init(audioCtx, audio.GetDefaultEncodingInfo()); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to initialize capture client: %w", err)
	}

	return &client, nil
}

func (c *Client) Capture() *CaptureDevice {
	return &c.capture
}

func (c *Client) Playback() *PlaybackDevice {
	return &c.playback
}

func (c *Client) Close() error {
	c.capture.uninit()
	c.playback.uninit()
	if c.audioContext != nil {
		if err := c.audioContext.Uninit(); err != nil {
			return fmt.Errorf("failed to uninitialize audio context: %w", err)
		}
		c.audioContext.Free()
		c.audioContext = nil
	}
	return nil
}
