// Package services implements the core use cases of the retrieval engine.
package services

import "strings"

// Splitting bounds. Passages are packed up to maxChunkChars; anything at
// or below minChunkChars after trimming is too small to carry useful
// context and is discarded.
const (
	maxChunkChars = 1200
	minChunkChars = 80
)

// SplitText partitions raw text into an ordered sequence of passages by
// greedy sentence packing. Sentences are accumulated until adding the next
// one would push the buffer past maxChunkChars, at which point the buffer
// is flushed and a new one starts with that sentence. A single sentence
// longer than the bound becomes its own oversized passage; sentences are
// never split internally.
//
// The function is pure: identical input always yields the identical
// passage sequence, which is what makes content-hash idempotency hold
// across ingestion runs.
func SplitText(text string) []string {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	var chunks []string
	var buf []string
	bufLen := 0

	flush := func() {
		if len(buf) == 0 {
			return
		}
		chunk := strings.TrimSpace(strings.Join(buf, " "))
		if len(chunk) > minChunkChars {
			chunks = append(chunks, chunk)
		}
		buf = nil
		bufLen = 0
	}

	for _, sentence := range sentences {
		candidate := bufLen + len(sentence)
		if len(buf) > 0 {
			candidate++ // joining space
		}
		if len(buf) > 0 && candidate > maxChunkChars {
			flush()
			candidate = len(sentence)
		}
		buf = append(buf, sentence)
		bufLen = candidate
	}
	flush()

	return chunks
}

// splitSentences breaks text on terminal punctuation (".", "!", "?")
// followed by whitespace. The punctuation stays with its sentence.
func splitSentences(text string) []string {
	var out []string
	start := 0

	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '.' && c != '!' && c != '?' {
			continue
		}
		if i+1 >= len(text) || !isSpace(text[i+1]) {
			continue
		}
		if sentence := strings.TrimSpace(text[start : i+1]); sentence != "" {
			out = append(out, sentence)
		}
		j := i + 1
		for j < len(text) && isSpace(text[j]) {
			j++
		}
		start = j
		i = j - 1
	}

	if tail := strings.TrimSpace(text[start:]); tail != "" {
		out = append(out, tail)
	}
	return out
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
