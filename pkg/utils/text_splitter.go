package utils

import (
	"regexp"
	"strings"
)

var sentenceBoundary = regexp.MustCompile(`(?s)([.!?]+)\s+`)

// SplitResponse breaks an agent reply into chunks that fit the channel's
// message length limit, preferring natural boundaries: paragraphs first,
// then lines, then sentences, and only then raw length.
func SplitResponse(text string, maxLength int) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return []string{}
	}
	if maxLength <= 0 || len([]rune(trimmed)) <= maxLength {
		return []string{trimmed}
	}

	if paragraphs := splitAndTrim(trimmed, "\n\n"); len(paragraphs) > 1 {
		return mergeChunks(paragraphs, maxLength, "\n\n")
	}

	if lines := splitAndTrim(trimmed, "\n"); len(lines) > 1 {
		return mergeChunks(lines, maxLength, "\n")
	}

	if sentences := splitSentences(trimmed); len(sentences) > 1 {
		return mergeChunks(sentences, maxLength, " ")
	}

	return splitByLength(trimmed, maxLength)
}

func splitAndTrim(text, sep string) []string {
	var out []string
	for _, part := range strings.Split(text, sep) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func splitSentences(text string) []string {
	var out []string
	last := 0
	for _, loc := range sentenceBoundary.FindAllStringSubmatchIndex(text, -1) {
		// Keep the punctuation, drop the trailing whitespace.
		end := loc[3]
		sentence := strings.TrimSpace(text[last:end])
		if sentence != "" {
			out = append(out, sentence)
		}
		last = loc[1]
	}
	if rest := strings.TrimSpace(text[last:]); rest != "" {
		out = append(out, rest)
	}
	return out
}

// mergeChunks greedily packs parts into chunks up to maxLength. Parts that
// are individually over the limit fall through to the length splitter.
func mergeChunks(parts []string, maxLength int, sep string) []string {
	var chunks []string
	var current string

	flush := func() {
		if current != "" {
			chunks = append(chunks, current)
			current = ""
		}
	}

	for _, part := range parts {
		if len([]rune(part)) > maxLength {
			flush()
			chunks = append(chunks, splitByLength(part, maxLength)...)
			continue
		}

		if current == "" {
			current = part
		} else if len([]rune(current))+len([]rune(sep))+len([]rune(part)) <= maxLength {
			current += sep + part
		} else {
			flush()
			current = part
		}
	}
	flush()

	return chunks
}

// splitByLength splits on word boundaries where possible, hard-slicing only
// words that exceed the limit on their own.
func splitByLength(text string, maxLength int) []string {
	var chunks []string
	var current string

	for _, word := range strings.Fields(text) {
		if len([]rune(word)) > maxLength {
			if current != "" {
				chunks = append(chunks, current)
				current = ""
			}
			runes := []rune(word)
			for len(runes) > maxLength {
				chunks = append(chunks, string(runes[:maxLength]))
				runes = runes[maxLength:]
			}
			if len(runes) > 0 {
				current = string(runes)
			}
			continue
		}

		if current == "" {
			current = word
		} else if len([]rune(current))+1+len([]rune(word)) <= maxLength {
			current += " " + word
		} else {
			chunks = append(chunks, current)
			current = word
		}
	}
	if current != "" {
		chunks = append(chunks, current)
	}

	return chunks
}
