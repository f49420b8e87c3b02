package dict

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/henryli127-lang/volca/internal/domain"
	"github.com/henryli127-lang/volca/internal/metrics"
)

// translateProvider is one HTTP translation backend.
type translateProvider struct {
	name       string
	endpoint   string
	httpClient *http.Client
}

func (p *translateProvider) translate(ctx context.Context, text, source, target string) (string, error) {
	body, err := json.Marshal(map[string]string{
		"q":      text,
		"source": source,
		"target": target,
	})
	if err != nil {
		return "", fmt.Errorf("encode translate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build translate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := p.httpClient.Do(req)
	metrics.ProviderRequestDuration.WithLabelValues(p.name).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues(p.name, "error").Inc()
		return "", fmt.Errorf("translate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.ProviderRequestsTotal.WithLabelValues(p.name, "error").Inc()
		return "", fmt.Errorf("translate provider %s returned status %d", p.name, resp.StatusCode)
	}

	var result struct {
		TranslatedText string `json:"translatedText"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues(p.name, "error").Inc()
		return "", fmt.Errorf("decode translate response: %w", err)
	}
	if strings.TrimSpace(result.TranslatedText) == "" {
		metrics.ProviderRequestsTotal.WithLabelValues(p.name, "error").Inc()
		return "", fmt.Errorf("translate provider %s returned empty translation", p.name)
	}
	metrics.ProviderRequestsTotal.WithLabelValues(p.name, "success").Inc()

	return result.TranslatedText, nil
}

// RacingTranslator fires the same request at both translation providers and
// returns the first successful response. It only fails when both do.
type RacingTranslator struct {
	providers []*translateProvider
}

var _ domain.Translator = (*RacingTranslator)(nil)

func NewRacingTranslator(primaryURL, altURL string, httpClient *http.Client) *RacingTranslator {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	var providers []*translateProvider
	if primaryURL != "" {
		providers = append(providers, &translateProvider{name: "translate_primary", endpoint: primaryURL, httpClient: httpClient})
	}
	if altURL != "" {
		providers = append(providers, &translateProvider{name: "translate_alt", endpoint: altURL, httpClient: httpClient})
	}
	return &RacingTranslator{providers: providers}
}

// Translate validates the language tags and races the configured providers.
func (t *RacingTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", domain.ErrEmptyText
	}
	if err := validateTag(source); err != nil {
		return "", err
	}
	if err := validateTag(target); err != nil {
		return "", err
	}
	if len(t.providers) == 0 {
		return "", fmt.Errorf("no translation providers configured")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type outcome struct {
		translation string
		err         error
	}
	results := make(chan outcome, len(t.providers))

	for _, p := range t.providers {
		go func(p *translateProvider) {
			translation, err := p.translate(ctx, text, source, target)
			if err != nil {
				slog.Debug("Translation provider failed", "provider", p.name, "error", err)
			}
			results <- outcome{translation: translation, err: err}
		}(p)
	}

	var lastErr error
	for range t.providers {
		r := <-results
		if r.err == nil {
			return r.translation, nil
		}
		lastErr = r.err
	}
	return "", fmt.Errorf("all translation providers failed: %w", lastErr)
}

func validateTag(tag string) error {
	if tag == "" {
		return fmt.Errorf("%w: empty", domain.ErrInvalidLanguage)
	}
	if _, err := language.Parse(tag); err != nil {
		return fmt.Errorf("%w: %q", domain.ErrInvalidLanguage, tag)
	}
	return nil
}
