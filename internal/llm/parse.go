package llm

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/henryli127-lang/volca/internal/domain"
)

// stripFences removes markdown code fences the model sometimes wraps around
// its JSON output despite instructions not to.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		if idx := strings.Index(text, "\n"); idx >= 0 {
			text = text[idx+1:]
		}
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}
	return strings.TrimSpace(text)
}

func parseStory(text string) (*domain.Story, error) {
	var story domain.Story
	if err := json.Unmarshal([]byte(stripFences(text)), &story); err != nil {
		return nil, fmt.Errorf("malformed story response: %w", err)
	}
	if story.Title == "" || story.Body == "" {
		return nil, fmt.Errorf("malformed story response: missing title or body")
	}
	return &story, nil
}

func parseOptions(text string, count int) (*domain.QuizOptions, error) {
	var options domain.QuizOptions
	if err := json.Unmarshal([]byte(stripFences(text)), &options); err != nil {
		return nil, fmt.Errorf("malformed options response: %w", err)
	}
	if len(options.Options) == 0 {
		return nil, fmt.Errorf("malformed options response: no options")
	}
	if count > 0 && len(options.Options) != count {
		return nil, fmt.Errorf("malformed options response: expected %d options, got %d", count, len(options.Options))
	}
	if options.Answer < 0 || options.Answer >= len(options.Options) {
		return nil, fmt.Errorf("malformed options response: answer index %d out of range", options.Answer)
	}
	return &options, nil
}

// shuffleOptions permutes the options in place, keeping the answer
// index pointing at the correct one.
func shuffleOptions(o *domain.QuizOptions) {
	rand.Shuffle(len(o.Options), func(i, j int) {
		o.Options[i], o.Options[j] = o.Options[j], o.Options[i]
		switch o.Answer {
		case i:
			o.Answer = j
		case j:
			o.Answer = i
		}
	})
}
