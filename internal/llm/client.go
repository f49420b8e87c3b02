// Package llm generates stories, quiz options and illustrations through the
// Gemini API. Each operation is a single GenerateContent call whose JSON
// output is parsed into domain types.
package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/henryli127-lang/volca/internal/domain"
	"github.com/henryli127-lang/volca/internal/metrics"
)

// Client wraps the generative-language API for content generation.
type Client struct {
	client     *genai.Client
	textModel  string
	imageModel string
}

var _ domain.Generator = (*Client)(nil)

func NewClient(ctx context.Context, apiKey, textModel, imageModel string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Client{
		client:     client,
		textModel:  textModel,
		imageModel: imageModel,
	}, nil
}

// GenerateStory produces a short story that uses every given word, pitched
// at the given reading level.
func (c *Client) GenerateStory(ctx context.Context, words []string, level string) (*domain.Story, error) {
	prompt := fmt.Sprintf(
		`Write a short story for a child at reading level %q. The story must use every one of these words: %s.
Respond with only a JSON object: {"title": "...", "body": "...", "words": ["the words you used"]}. No markdown, no commentary.`,
		level, strings.Join(words, ", "),
	)

	text, err := c.generateText(ctx, prompt, "story")
	if err != nil {
		return nil, err
	}

	story, err := parseStory(text)
	if err != nil {
		return nil, err
	}
	metrics.StoriesGeneratedTotal.Inc()
	return story, nil
}

// GenerateOptions produces multiple-choice quiz options for a word. The
// returned answer index points at the correct definition. Options are
// shuffled server-side because models favor putting the answer first.
func (c *Client) GenerateOptions(ctx context.Context, word, definition string, count int) (*domain.QuizOptions, error) {
	prompt := fmt.Sprintf(
		`The word %q means: %s.
Write %d short definitions a child could read, exactly one of them correct for %q and the rest plausible but wrong.
Respond with only a JSON object: {"word": %q, "options": ["..."], "answer": <index of the correct option>}. No markdown, no commentary.`,
		word, definition, count, word, word,
	)

	text, err := c.generateText(ctx, prompt, "options")
	if err != nil {
		return nil, err
	}

	options, err := parseOptions(text, count)
	if err != nil {
		return nil, err
	}
	shuffleOptions(options)
	return options, nil
}

// GenerateImage produces an illustration for the given prompt.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (*domain.GeneratedImage, error) {
	result, err := c.client.Models.GenerateImages(ctx, c.imageModel,
		"A friendly, colorful illustration for children: "+prompt,
		&genai.GenerateImagesConfig{
			NumberOfImages: 1,
		},
	)
	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues("genai", "error").Inc()
		return nil, fmt.Errorf("generate image: %w", err)
	}
	metrics.ProviderRequestsTotal.WithLabelValues("genai", "success").Inc()

	if len(result.GeneratedImages) == 0 || result.GeneratedImages[0].Image == nil {
		return nil, fmt.Errorf("no image returned")
	}

	img := result.GeneratedImages[0].Image
	mimeType := img.MIMEType
	if mimeType == "" {
		mimeType = "image/png"
	}
	return &domain.GeneratedImage{
		MimeType: mimeType,
		Data:     img.ImageBytes,
	}, nil
}

func (c *Client) generateText(ctx context.Context, prompt, operation string) (string, error) {
	result, err := c.client.Models.GenerateContent(ctx, c.textModel,
		genai.Text(prompt), nil)
	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues("genai", "error").Inc()
		return "", fmt.Errorf("generate %s: %w", operation, err)
	}
	metrics.ProviderRequestsTotal.WithLabelValues("genai", "success").Inc()

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("empty %s response from model", operation)
	}
	return text, nil
}
