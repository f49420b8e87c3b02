package domain

import "context"

// Story is the generated-story result before persistence.
type Story struct {
	Title string   `json:"title"`
	Body  string   `json:"body"`
	Words []string `json:"words"`
}

// QuizOptions is a generated multiple-choice question for one word.
type QuizOptions struct {
	Word    string   `json:"word"`
	Options []string `json:"options"`
	Answer  int      `json:"answer"`
}

// GeneratedImage carries an image payload from the generative provider.
type GeneratedImage struct {
	MimeType string `json:"mime_type"`
	Data     []byte `json:"data"`
}

// Generator wraps the generative-language provider.
type Generator interface {
	GenerateStory(ctx context.Context, words []string, level string) (*Story, error)
	GenerateOptions(ctx context.Context, word, definition string, count int) (*QuizOptions, error)
	GenerateImage(ctx context.Context, prompt string) (*GeneratedImage, error)
}

// Synthesizer converts text to speech audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
}
