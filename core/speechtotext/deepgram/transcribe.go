package deepgram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	api "github.com/deepgram/deepgram-go-sdk/pkg/api/listen/v1/websocket/interfaces"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/KARAN3690/Marketplace/core/speechtotext"
)

// Transcribe streams a finished recording through the listen websocket and
// returns the concatenation of all final segments.
func (c *TranscriptionClient) Transcribe(ctx context.Context, audio []byte, opts ...speechtotext.TranscriptionOption) (string, error) {
	ctx, span := tracer.Start(ctx, "transcribe audio")
	defer span.End()

	fail := func(err error) (string, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	options := speechtotext.NewTranscriptionOptions(opts...)
	connOptions := connectionOptions{
		model:    c.model,
		language: options.Language,
	}
	if options.Model != "" {
		connOptions.model = options.Model
	}
	if connOptions.language == "" {
		connOptions.language = multiLanguage
	}
	if options.Format == "" {
		encoding, err := convertEncoding(options.EncodingInfo)
		if err != nil {
			return fail(fmt.Errorf("invalid encoding: %w", err))
		}
		connOptions.sampleRate = encoding.SampleRate
		connOptions.encoding = encoding.Format.Name()
	}

	span.SetAttributes(
		attribute.String("request.model", connOptions.model),
		attribute.String("request.format", options.Format),
		attribute.Int("request.audio_bytes", len(audio)),
	)

	conn, err := c.connectWebsocket(ctx, connOptions)
	if err != nil {
		return fail(fmt.Errorf("failed to open websocket: %w", err))
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	var (
		transcript []string
		readErr    error
		wg         sync.WaitGroup
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		transcript, readErr = readFinalTranscripts(conn)
	}()

	if err := sendAudio(conn, audio); err != nil {
		conn.Close()
		wg.Wait()
		return fail(err)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	if readErr != nil {
		return fail(readErr)
	}

	return strings.Join(transcript, " "), nil
}

type connectionOptions struct {
	model    string
	language string

	// Raw audio only; containerised audio is sniffed by the service.
	sampleRate int
	encoding   string
}

func (c *TranscriptionClient) connectWebsocket(ctx context.Context, options connectionOptions) (*websocket.Conn, error) {
	listenURL, err := url.Parse(c.listenURL)
	if err != nil {
		return nil, fmt.Errorf("invalid listen url: %w", err)
	}

	queryParams := listenURL.Query()
	if options.encoding != "" {
		queryParams.Set("encoding", options.encoding)
		queryParams.Set("sample_rate", strconv.Itoa(options.sampleRate))
		queryParams.Set("channels", "1")
	}
	queryParams.Set("model", options.model)
	queryParams.Set("language", options.language)
	queryParams.Set("smart_format", "true")
	listenURL.RawQuery = queryParams.Encode()

	conn, _, err := c.dialer.DialContext(ctx, listenURL.String(),
		http.Header{"Authorization": {"Token " + c.apiKey}})
	if err != nil {
		return nil, fmt.Errorf("failed to open socket connection to deepgram: %w", err)
	}

	return conn, nil
}

func sendAudio(conn *websocket.Conn, audio []byte) error {
	for start := 0; start < len(audio); start += chunkSize {
		end := min(start+chunkSize, len(audio))
		if err := conn.WriteMessage(websocket.BinaryMessage, audio[start:end]); err != nil {
			return fmt.Errorf("failed to write to deepgram client: %w", err)
		}
	}

	if err := conn.WriteJSON(struct {
		Type string `json:"type"`
	}{Type: string(api.TypeCloseStreamResponse)}); err != nil {
		return fmt.Errorf("failed to close deepgram stream: %w", err)
	}
	return nil
}

// readFinalTranscripts reads until the service closes the socket after
// flushing the remaining results.
func readFinalTranscripts(conn *websocket.Conn) ([]string, error) {
	var transcript []string
	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return transcript, nil
			}
			return transcript, fmt.Errorf("failed to read deepgram websocket message: %w", err)
		}
		if msgType == websocket.BinaryMessage {
			continue
		}

		segment, err := parseFinalSegment(msg)
		if errors.Is(err, errUnexpectedMessage) {
			return transcript, fmt.Errorf("deepgram reported an error: %w", err)
		}
		if err != nil {
			logger.Warn("failed to parse deepgram message", "error", err)
			continue
		}
		if segment != "" {
			transcript = append(transcript, segment)
		}
	}
}

var errUnexpectedMessage = errors.New("unexpected message")

func parseFinalSegment(msg []byte) (string, error) {
	var parsedMsg struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(msg, &parsedMsg); err != nil {
		return "", err
	}

	switch api.TypeResponse(parsedMsg.Type) {
	case api.TypeMessageResponse:
		var msgResp api.MessageResponse
		if err := json.Unmarshal(msg, &msgResp); err != nil {
			return "", err
		}
		if !msgResp.IsFinal || len(msgResp.Channel.Alternatives) == 0 {
			return "", nil
		}
		return strings.TrimSpace(msgResp.Channel.Alternatives[0].Transcript), nil
	case api.TypeResponse(api.TypeErrorResponse):
		return "", fmt.Errorf("%w: %s", errUnexpectedMessage, string(msg))
	default:
		return "", nil
	}
}
