package analysis

import "strings"

// DefaultChunkLimit is the character budget per delivered segment, kept
// under the transport's 4096 cap to leave room for part headers.
const DefaultChunkLimit = 3800

// SplitMessage chunks text into segments of at most limit characters,
// preserving line boundaries where possible. A single line longer than the
// limit is hard-split.
func SplitMessage(text string, limit int) []string {
	if limit <= 0 {
		limit = DefaultChunkLimit
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}

	var parts []string
	var current []rune
	for _, line := range strings.Split(text, "\n") {
		lineRunes := []rune(line)
		// Hard-split lines that alone exceed the budget.
		for len(lineRunes) > limit {
			if len(current) > 0 {
				parts = append(parts, string(current))
				current = nil
			}
			parts = append(parts, string(lineRunes[:limit]))
			lineRunes = lineRunes[limit:]
		}

		need := len(lineRunes)
		if len(current) > 0 {
			need += len(current) + 1 // newline separator
		}
		if need > limit {
			parts = append(parts, string(current))
			current = lineRunes
			continue
		}
		if len(current) > 0 {
			current = append(current, '\n')
		}
		current = append(current, lineRunes...)
	}
	if len(current) > 0 {
		parts = append(parts, string(current))
	}
	return parts
}
