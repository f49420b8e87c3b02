package tts

import (
	"fmt"
	"strings"
)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// buildSSML wraps text in a minimal SSML document for the given voice.
// The language tag is derived from the voice name prefix.
func buildSSML(voice, text string) string {
	lang := langFromVoice(voice)
	return fmt.Sprintf(
		`<speak version='1.0' xmlns='http://www.w3.org/2001/10/synthesis' xml:lang='%s'><voice name='%s'>%s</voice></speak>`,
		lang, voice, xmlEscaper.Replace(text),
	)
}

// langFromVoice extracts the locale from voice names like "en-US-AnaNeural".
func langFromVoice(voice string) string {
	parts := strings.SplitN(voice, "-", 3)
	if len(parts) >= 2 {
		return parts[0] + "-" + parts[1]
	}
	return "en-US"
}
