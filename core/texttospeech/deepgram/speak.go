package deepgram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/KARAN3690/Marketplace/core/audio"
	"github.com/KARAN3690/Marketplace/core/texttospeech"
)

type websocketMessage struct {
	Type string `json:"type"`
}

type speakMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

var (
	flushMsg = websocketMessage{Type: "Flush"}
	closeMsg = websocketMessage{Type: "Close"}
)

// Synthesize speaks text over the speak websocket and returns the raw audio
// collected until the service confirms the flush.
func (c *TextToSpeechClient) Synthesize(ctx context.Context, text string, opts ...texttospeech.SynthesisOption) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "synthesize speech")
	defer span.End()

	fail := func(err error) ([]byte, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	options := texttospeech.NewSynthesisOptions(opts...)
	voice := c.voice
	if options.Voice != "" {
		if !slices.Contains(GetAvailableVoices(), deepgramVoice(options.Voice)) {
			return fail(fmt.Errorf("invalid voice: %s", options.Voice))
		}
		voice = deepgramVoice(options.Voice)
	}

	span.SetAttributes(
		attribute.String("request.voice", string(voice)),
		attribute.String("request.encoding", options.EncodingInfo.Format.Name()),
		attribute.Int("request.sample_rate", options.EncodingInfo.SampleRate),
	)

	conn, err := c.connectWebsocket(ctx, voice, options.EncodingInfo)
	if err != nil {
		return fail(fmt.Errorf("failed to open websocket: %w", err))
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	if err := conn.WriteJSON(speakMessage{Type: "Speak", Text: text}); err != nil {
		return fail(fmt.Errorf("failed to send text to deepgram through websocket: %w", err))
	}
	if err := conn.WriteJSON(flushMsg); err != nil {
		return fail(fmt.Errorf("failed to flush deepgram buffer through websocket: %w", err))
	}

	speech, err := readUntilFlushed(conn)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fail(ctxErr)
	}
	if err != nil {
		return fail(err)
	}

	if err := conn.WriteJSON(closeMsg); err != nil {
		logger.Debug("failed to send close message to deepgram websocket", "error", err)
	}

	span.SetAttributes(attribute.Int("response.audio_bytes", len(speech)))
	return speech, nil
}

func (c *TextToSpeechClient) connectWebsocket(ctx context.Context, voice deepgramVoice, encodingInfo audio.EncodingInfo) (*websocket.Conn, error) {
	speakURL, err := url.Parse(c.speakURL)
	if err != nil {
		return nil, fmt.Errorf("invalid speak url: %w", err)
	}

	urlValues := speakURL.Query()
	urlValues.Set("encoding", encodingInfo.Format.Name())
	urlValues.Set("sample_rate", strconv.Itoa(encodingInfo.SampleRate))
	urlValues.Set("model", string(voice))
	speakURL.RawQuery = urlValues.Encode()

	conn, _, err := c.dialer.DialContext(ctx, speakURL.String(),
		http.Header{"Authorization": {"token " + c.apiKey}})
	if err != nil {
		return nil, fmt.Errorf("failed to open socket connection to deepgram: %w", err)
	}

	return conn, nil
}

func readUntilFlushed(conn *websocket.Conn) ([]byte, error) {
	var speech bytes.Buffer
	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return speech.Bytes(), nil
			}
			return nil, fmt.Errorf("websocket read error: %w", err)
		}

		switch msgType {
		case websocket.BinaryMessage:
			speech.Write(msg)
		case websocket.TextMessage:
			var parsedMsg struct {
				Type        string `json:"type"`
				Description string `json:"description,omitempty"`
			}
			if err := json.Unmarshal(msg, &parsedMsg); err != nil {
				logger.Debug("failed to unmarshal deepgram message", "error", err)
				continue
			}

			switch parsedMsg.Type {
			case "Flushed":
				return speech.Bytes(), nil
			case "Error":
				return nil, fmt.Errorf("deepgram speak error: %s", parsedMsg.Description)
			}
		}
	}
}
