package portaudio

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/KARAN3690/Marketplace/core/audio"
)

const DefaultBufferSize = 512

// Client owns the PortAudio library handle and one input and one output
// stream on the default devices.
type Client struct {
	capture  *CaptureDevice
	playback *PlaybackDevice
}

func NewClient(bufferSize int) (*Client, error) {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize PortAudio: %w", err)
	}

	capture, err := newCaptureDevice(bufferSize, audio.GetDefaultEncodingInfo())
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}

	playback, err := newPlaybackDevice(bufferSize, audio.GetDefaultPlaybackEncodingInfo())
	if err != nil {
		capture.stream.Close()
		portaudio.Terminate()
		return nil, err
	}

	return &Client{capture: capture, playback: playback}, nil
}

func (c *Client) Capture() *CaptureDevice {
	return c.capture
}

func (c *Client) Playback() *PlaybackDevice {
	return c.playback
}

func (c *Client) Close() error {
	errs := []error{c.capture.StopCapture()}
	errs = append(errs, c.capture.stream.Close())
	errs = append(errs, c.playback.stream.Stop(), c.playback.stream.Close())
	errs = append(errs, portaudio.Terminate())
	return errors.Join(errs...)
}

type CaptureDevice struct {
	stream       *portaudio.Stream
	in           []int16
	encodingInfo audio.EncodingInfo

	stop chan struct{}
	done chan struct{}
	mu   sync.Mutex
}

func newCaptureDevice(bufferSize int, encodingInfo audio.EncodingInfo) (*CaptureDevice, error) {
	in := make([]int16, bufferSize)
	stream, err := portaudio.OpenDefaultStream(1, 0, float64(encodingInfo.SampleRate), bufferSize, in)
	if err != nil {
		return nil, fmt.Errorf("failed to open PortAudio input stream: %w", err)
	}

	return &CaptureDevice{stream: stream, in: in, encodingInfo: encodingInfo}, nil
}

func (c *CaptureDevice) EncodingInfo() audio.EncodingInfo {
	return c.encodingInfo
}

func (c *CaptureDevice) StartCapture(ctx context.Context, onAudio func(audio []byte)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != nil {
		return fmt.Errorf("capture device already started")
	}

	if err := c.stream.Start(); err != nil {
		return fmt.Errorf("failed to start PortAudio stream: %w", err)
	}

	c.stop = make(chan struct{})
	c.done = make(chan struct{})
	go c.read(ctx, c.stop, c.done, onAudio)
	return nil
}

func (c *CaptureDevice) read(ctx context.Context, stop, done chan struct{}, onAudio func(audio []byte)) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		default:
			if err := c.stream.Read(); err != nil {
				log.Printf("Failed to read from PortAudio stream: %v", err)
				continue
			}

			audioBuffer := bytes.Buffer{}
			_ = binary.Write(&audioBuffer, binary.LittleEndian, c.in)
			onAudio(audioBuffer.Bytes())
		}
	}
}

func (c *CaptureDevice) StopCapture() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop == nil {
		return nil
	}

	close(c.stop)
	<-c.done
	c.stop, c.done = nil, nil

	if err := c.stream.Stop(); err != nil {
		return fmt.Errorf("failed to stop PortAudio stream: %w", err)
	}
	return nil
}

type PlaybackDevice struct {
	stream       *portaudio.Stream
	out          []int16
	bufferSize   int
	encodingInfo audio.EncodingInfo

	leftoverAudio []byte
	mu            sync.Mutex
}

func newPlaybackDevice(bufferSize int, encodingInfo audio.EncodingInfo) (*PlaybackDevice, error) {
	out := make([]int16, bufferSize)
	stream, err := portaudio.OpenDefaultStream(0, 1, float64(encodingInfo.SampleRate), bufferSize, out)
	if err != nil {
		return nil, fmt.Errorf("failed to open PortAudio output stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		return nil, fmt.Errorf("failed to start PortAudio output stream: %w", err)
	}

	return &PlaybackDevice{stream: stream, out: out, bufferSize: bufferSize, encodingInfo: encodingInfo}, nil
}

func (c *PlaybackDevice) EncodingInfo() audio.EncodingInfo {
	return c.encodingInfo
}

// SendAudio blocks until all whole buffers of audio have been written to the
// device. A trailing partial buffer is kept for the next call.
func (c *PlaybackDevice) SendAudio(audio []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	bufferSize := c.bufferSize * 2
	audio = append(c.leftoverAudio, audio...)
	for len(audio) >= bufferSize {
		if err := binary.Read(bytes.NewReader(audio[:bufferSize]), binary.LittleEndian, c.out); err != nil {
			return fmt.Errorf("failed to decode audio: %w", err)
		}
		if err := c.stream.Write(); err != nil {
			return fmt.Errorf("failed to write to PortAudio stream: %w", err)
		}
		audio = audio[bufferSize:]
	}
	c.leftoverAudio = append([]byte(nil), audio...)

	return nil
}

func (c *PlaybackDevice) ClearBuffer() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.leftoverAudio = nil
}

// AwaitDrain pads and writes the trailing partial buffer.
func (c *PlaybackDevice) AwaitDrain(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.leftoverAudio) == 0 {
		return nil
	}

	padded := make([]byte, c.bufferSize*2)
	copy(padded, c.leftoverAudio)
	c.leftoverAudio = nil
	if err := binary.Read(bytes.NewReader(padded), binary.LittleEndian, c.out); err != nil {
		return fmt.Errorf("failed to decode audio: %w", err)
	}
	if err := c.stream.Write(); err != nil {
		return fmt.Errorf("failed to write to PortAudio stream: %w", err)
	}
	return nil
}
