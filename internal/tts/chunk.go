package tts

import "strings"

// maxChunkLen bounds how much text the fallback provider accepts per request.
const maxChunkLen = 180

// splitText breaks text into chunks of at most maxChunkLen runes, preferring
// to cut at sentence boundaries, then at word boundaries. It never returns
// empty chunks.
func splitText(text string, maxLen int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var chunks []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		s := strings.TrimSpace(current.String())
		if s != "" {
			chunks = append(chunks, s)
		}
		current.Reset()
		currentLen = 0
	}

	for _, sentence := range splitSentences(text) {
		runes := []rune(sentence)
		if currentLen+len(runes)+1 > maxLen && currentLen > 0 {
			flush()
		}
		if len(runes) <= maxLen {
			if currentLen > 0 {
				current.WriteByte(' ')
				currentLen++
			}
			current.WriteString(sentence)
			currentLen += len(runes)
			continue
		}
		// Sentence itself is too long, cut at word boundaries
		flush()
		for _, word := range strings.Fields(sentence) {
			wr := []rune(word)
			if currentLen+len(wr)+1 > maxLen && currentLen > 0 {
				flush()
			}
			if currentLen > 0 {
				current.WriteByte(' ')
				currentLen++
			}
			if len(wr) > maxLen {
				// Pathological single word, hard cut
				for len(wr) > maxLen {
					flush()
					chunks = append(chunks, string(wr[:maxLen]))
					wr = wr[maxLen:]
				}
			}
			current.WriteString(string(wr))
			currentLen += len(wr)
		}
		flush()
	}
	flush()

	return chunks
}

// splitSentences splits on terminal punctuation, keeping the punctuation
// attached to its sentence.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for _, r := range text {
		current.WriteRune(r)
		switch r {
		case '.', '!', '?', '。', '！', '？':
			s := strings.TrimSpace(current.String())
			if s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}
