// Package validate judges whether a survey answer is acceptable.
package validate

import (
	"regexp"
	"strings"
)

// ReasonCode explains why an answer was accepted or rejected.
type ReasonCode string

const (
	// ReasonEmpty means the answer was empty after trimming.
	ReasonEmpty ReasonCode = "empty"
	// ReasonMeaningless means the answer matched a gibberish pattern.
	ReasonMeaningless ReasonCode = "meaningless"
	// ReasonTooShortWords means the answer had too few words.
	ReasonTooShortWords ReasonCode = "too_short_words"
	// ReasonTooShortChars means the answer was shorter than MinAnswerChars.
	ReasonTooShortChars ReasonCode = "too_short_chars"
	// ReasonValid means the answer passed all checks.
	ReasonValid ReasonCode = "valid"
)

// DefaultMinWords is the default word-count floor for survey answers.
const DefaultMinWords = 3

// MinAnswerChars is the character-count floor for survey answers.
const MinAnswerChars = 10

// minRepeatRun is the consecutive repeat length that marks gibberish.
const minRepeatRun = 11

// Result is the outcome of validating one answer.
type Result struct {
	Valid  bool
	Reason ReasonCode
}

var (
	allDigits      = regexp.MustCompile(`^[0-9]+$`)
	allPunctuation = regexp.MustCompile(`^[.,!?;:\s]*$`)
)

// denylist holds placeholder strings matched as case-insensitive substrings.
var denylist = []string{"asdf", "qwerty", "123", "test", "тест", "проверка", "xnj"}

// Validate checks an answer against the acceptance rules. Checks run in a
// fixed order and the first failing rule wins: empty, meaningless, word
// count, character count. Pure function; callers must re-run it on every
// submission, including re-submissions after back navigation.
func Validate(text string, minWords int) Result {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Result{Reason: ReasonEmpty}
	}

	if isMeaningless(trimmed) {
		return Result{Reason: ReasonMeaningless}
	}

	if len(strings.Fields(trimmed)) < minWords {
		return Result{Reason: ReasonTooShortWords}
	}

	if len([]rune(trimmed)) < MinAnswerChars {
		return Result{Reason: ReasonTooShortChars}
	}

	return Result{Valid: true, Reason: ReasonValid}
}

func isMeaningless(trimmed string) bool {
	if allDigits.MatchString(trimmed) || allPunctuation.MatchString(trimmed) {
		return true
	}
	if hasLongRun(trimmed) {
		return true
	}
	lower := strings.ToLower(trimmed)
	for _, token := range denylist {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

// hasLongRun reports whether any rune repeats minRepeatRun or more times in
// a row. RE2 has no backreferences, so this is a manual scan.
func hasLongRun(s string) bool {
	var prev rune
	run := 0
	for _, r := range s {
		if r == prev {
			run++
			if run >= minRepeatRun {
				return true
			}
		} else {
			prev = r
			run = 1
		}
	}
	return false
}
