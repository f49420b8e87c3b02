package dict

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/henryli127-lang/volca/internal/domain"
	"github.com/henryli127-lang/volca/internal/metrics"
	"github.com/henryli127-lang/volca/internal/platform/retry"
)

const (
	retryInitialBackoff   = 200 * time.Millisecond
	retryRateLimitBackoff = 2 * time.Second
)

// Client queries the dictionary provider for word entries.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// dictEntry mirrors the provider's response shape.
type dictEntry struct {
	Word     string `json:"word"`
	Phonetic string `json:"phonetic"`
	Meanings []struct {
		PartOfSpeech string `json:"partOfSpeech"`
		Definitions  []struct {
			Definition string `json:"definition"`
			Example    string `json:"example"`
		} `json:"definitions"`
	} `json:"meanings"`
	Phonetics []struct {
		Text string `json:"text"`
	} `json:"phonetics"`
}

// Lookup fetches the dictionary entry for a word. Unknown words map to
// domain.ErrWordNotFound. Transient provider failures are retried with
// backoff; 404s and other client errors stop immediately.
func (c *Client) Lookup(ctx context.Context, text, language string) (*domain.WordEntry, error) {
	p := retry.Policy{
		MaxAttempts:      3,
		InitialBackoff:   retryInitialBackoff,
		RateLimitBackoff: retryRateLimitBackoff,
		OnRetry: func(attempt int, err error, backoff time.Duration) {
			slog.Warn("Dictionary lookup failed, retrying", "word", text, "attempt", attempt, "backoff_seconds", backoff.Seconds(), "error", err)
		},
	}

	entry, err := retry.Do(ctx, p, classifyLookupError, func() (*domain.WordEntry, error) {
		return c.lookupOnce(ctx, text, language)
	})
	if err != nil {
		if errors.Is(err, domain.ErrWordNotFound) {
			return nil, domain.ErrWordNotFound
		}
		return nil, err
	}
	return entry, nil
}

func (c *Client) lookupOnce(ctx context.Context, text, language string) (*domain.WordEntry, error) {
	endpoint := fmt.Sprintf("%s/entries/%s/%s", c.baseURL, url.PathEscape(language), url.PathEscape(text))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build dictionary request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.ProviderRequestDuration.WithLabelValues("dictionary").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues("dictionary", "error").Inc()
		return nil, fmt.Errorf("dictionary request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		metrics.ProviderRequestsTotal.WithLabelValues("dictionary", "not_found").Inc()
		return nil, domain.ErrWordNotFound
	case resp.StatusCode != http.StatusOK:
		metrics.ProviderRequestsTotal.WithLabelValues("dictionary", "error").Inc()
		return nil, &statusError{code: resp.StatusCode}
	}
	metrics.ProviderRequestsTotal.WithLabelValues("dictionary", "success").Inc()

	var entries []dictEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode dictionary response: %w", err)
	}
	if len(entries) == 0 {
		return nil, domain.ErrWordNotFound
	}

	return toWordEntry(entries[0]), nil
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("dictionary returned status %d", e.code)
}

func classifyLookupError(err error) retry.Action {
	if errors.Is(err, domain.ErrWordNotFound) {
		return retry.Stop
	}

	var se *statusError
	if !errors.As(err, &se) {
		return retry.Retry
	}

	switch {
	case se.code == http.StatusTooManyRequests:
		return retry.After
	case se.code >= 500:
		return retry.Retry
	default:
		return retry.Stop
	}
}

// toWordEntry flattens the provider entry to the first usable definition,
// example and phonetic.
func toWordEntry(e dictEntry) *domain.WordEntry {
	entry := &domain.WordEntry{
		Text:     e.Word,
		Phonetic: e.Phonetic,
	}

	if entry.Phonetic == "" {
		for _, p := range e.Phonetics {
			if p.Text != "" {
				entry.Phonetic = p.Text
				break
			}
		}
	}

	for _, m := range e.Meanings {
		for _, d := range m.Definitions {
			if entry.Definition == "" && d.Definition != "" {
				entry.Definition = d.Definition
			}
			if entry.Example == "" && d.Example != "" {
				entry.Example = d.Example
			}
			if entry.Definition != "" && entry.Example != "" {
				return entry
			}
		}
	}
	return entry
}
