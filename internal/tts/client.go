package tts

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	frameDeadline = 10 * time.Second

	speechConfigPayload = `{"context":{"synthesis":{"audio":{"metadataoptions":{"sentenceBoundaryEnabled":false,"wordBoundaryEnabled":false},"outputFormat":"audio-24khz-48kbitrate-mono-mp3"}}}}`
)

// Client speaks the websocket synthesis protocol: a speech.config frame,
// an SSML frame, then binary audio frames until turn.end.
type Client struct {
	endpoint string
	token    string
	dialer   *websocket.Dialer
}

func NewClient(endpoint, token string) *Client {
	return &Client{
		endpoint: endpoint,
		token:    token,
		dialer: &websocket.Dialer{
			HandshakeTimeout: frameDeadline,
		},
	}
}

// Synthesize connects to the provider and streams back the full MPEG audio
// for the given text. It returns an error on any protocol failure so the
// caller can fall back to the HTTP provider.
func (c *Client) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	header := http.Header{}
	if c.token != "" {
		header.Set("Authorization", "Bearer "+c.token)
	}

	conn, resp, err := c.dialer.DialContext(ctx, c.endpoint, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial speech endpoint: %w (status %d)", err, resp.StatusCode)
		}
		return nil, fmt.Errorf("dial speech endpoint: %w", err)
	}
	defer conn.Close()

	requestID := uuid.NewString()

	_ = conn.SetWriteDeadline(time.Now().Add(frameDeadline))
	configFrame := "Content-Type:application/json; charset=utf-8\r\nPath:speech.config\r\n\r\n" + speechConfigPayload
	if err := conn.WriteMessage(websocket.TextMessage, []byte(configFrame)); err != nil {
		return nil, fmt.Errorf("send speech config: %w", err)
	}

	_ = conn.SetWriteDeadline(time.Now().Add(frameDeadline))
	ssmlFrame := fmt.Sprintf("X-RequestId:%s\r\nContent-Type:application/ssml+xml\r\nPath:ssml\r\n\r\n%s",
		requestID, buildSSML(voice, text))
	if err := conn.WriteMessage(websocket.TextMessage, []byte(ssmlFrame)); err != nil {
		return nil, fmt.Errorf("send ssml: %w", err)
	}

	var audio bytes.Buffer
	for {
		_ = conn.SetReadDeadline(time.Now().Add(frameDeadline))
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			return nil, fmt.Errorf("read audio frame: %w", err)
		}

		switch messageType {
		case websocket.BinaryMessage:
			payload, err := parseBinaryFrame(data)
			if err != nil {
				return nil, err
			}
			audio.Write(payload)
		case websocket.TextMessage:
			if bytes.Contains(data, []byte("Path:turn.end")) {
				return audio.Bytes(), nil
			}
		}
	}
}

// parseBinaryFrame strips the length-prefixed header from a binary frame and
// returns the audio payload. The first two bytes are the big-endian header
// length; the header must carry Path:audio.
func parseBinaryFrame(data []byte) ([]byte, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("binary frame too short: %d bytes", len(data))
	}
	headerLen := int(binary.BigEndian.Uint16(data[:2]))
	if 2+headerLen > len(data) {
		return nil, fmt.Errorf("binary frame header length %d exceeds frame size %d", headerLen, len(data))
	}
	header := data[2 : 2+headerLen]
	if !bytes.Contains(header, []byte("Path:audio")) {
		return nil, fmt.Errorf("unexpected binary frame path in header %q", header)
	}
	return data[2+headerLen:], nil
}
