package validate

import (
	"strings"
	"testing"
)

func TestValidate_Empty(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		res := Validate(text, DefaultMinWords)
		if res.Valid || res.Reason != ReasonEmpty {
			t.Errorf("Validate(%q) = %+v, expected empty", text, res)
		}
	}
}

func TestValidate_TooShortWords(t *testing.T) {
	res := Validate("ok go", DefaultMinWords)
	if res.Valid || res.Reason != ReasonTooShortWords {
		t.Errorf("expected too_short_words, got %+v", res)
	}
}

func TestValidate_TooShortChars(t *testing.T) {
	// Three words but fewer than ten characters total.
	res := Validate("a b cdef", DefaultMinWords)
	if res.Valid || res.Reason != ReasonTooShortChars {
		t.Errorf("expected too_short_chars, got %+v", res)
	}
}

func TestValidate_MeaninglessDenylist(t *testing.T) {
	cases := []string{
		"asdfasdfasdf",
		"qwerty uiop writing more here",
		"это просто тест ничего больше",
		"my number is 123 thanks a lot",
	}
	for _, text := range cases {
		res := Validate(text, DefaultMinWords)
		if res.Valid || res.Reason != ReasonMeaningless {
			t.Errorf("Validate(%q) = %+v, expected meaningless", text, res)
		}
	}
}

func TestValidate_MeaninglessPatterns(t *testing.T) {
	cases := map[string]string{
		"digits":      "4815162342",
		"punctuation": "?!.,;: ...",
		"repeat run":  strings.Repeat("ы", 12),
	}
	for name, text := range cases {
		res := Validate(text, DefaultMinWords)
		if res.Valid || res.Reason != ReasonMeaningless {
			t.Errorf("%s: Validate(%q) = %+v, expected meaningless", name, text, res)
		}
	}
}

func TestValidate_RepeatRunBoundary(t *testing.T) {
	// Ten repeats are still allowed, eleven are not.
	ok := "ну оооооооооо ладно хорошо"
	if res := Validate(ok, DefaultMinWords); res.Reason == ReasonMeaningless {
		t.Errorf("ten-repeat run should not be meaningless: %+v", res)
	}
	bad := strings.Repeat("о", 11)
	if res := Validate(bad, DefaultMinWords); res.Reason != ReasonMeaningless {
		t.Errorf("eleven-repeat run should be meaningless: %+v", res)
	}
}

func TestValidate_Valid(t *testing.T) {
	res := Validate("Я считаю себя целеустремленным человеком", DefaultMinWords)
	if !res.Valid || res.Reason != ReasonValid {
		t.Errorf("expected valid, got %+v", res)
	}
}

func TestValidate_CustomMinWords(t *testing.T) {
	res := Validate("работаю усердно каждый день", 5)
	if res.Valid || res.Reason != ReasonTooShortWords {
		t.Errorf("expected too_short_words with minWords=5, got %+v", res)
	}
}
