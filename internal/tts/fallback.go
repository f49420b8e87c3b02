package tts

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// FallbackClient synthesizes speech over plain HTTP, one request per text
// chunk. Responses are MPEG audio concatenated in chunk order.
type FallbackClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewFallbackClient(baseURL string, httpClient *http.Client) *FallbackClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &FallbackClient{baseURL: baseURL, httpClient: httpClient}
}

func (c *FallbackClient) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	chunks := splitText(text, maxChunkLen)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no synthesizable text")
	}

	var audio bytes.Buffer
	for _, chunk := range chunks {
		data, err := c.fetchChunk(ctx, chunk, voice)
		if err != nil {
			return nil, err
		}
		audio.Write(data)
	}
	return audio.Bytes(), nil
}

func (c *FallbackClient) fetchChunk(ctx context.Context, chunk, voice string) ([]byte, error) {
	q := url.Values{}
	q.Set("text", chunk)
	q.Set("voice", voice)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build fallback request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fallback synthesis request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fallback synthesis returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read fallback audio: %w", err)
	}
	return data, nil
}
