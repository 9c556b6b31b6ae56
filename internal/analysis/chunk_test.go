package analysis

import (
	"strings"
	"testing"
)

func TestSplitMessage_ShortTextSinglePart(t *testing.T) {
	parts := SplitMessage("короткий текст", 100)
	if len(parts) != 1 || parts[0] != "короткий текст" {
		t.Errorf("expected single untouched part, got %v", parts)
	}
}

func TestSplitMessage_PreservesLineBoundaries(t *testing.T) {
	var lines []string
	for i := 0; i < 40; i++ {
		lines = append(lines, strings.Repeat("a", 50))
	}
	text := strings.Join(lines, "\n")

	parts := SplitMessage(text, 200)
	if len(parts) < 2 {
		t.Fatalf("expected multiple parts, got %d", len(parts))
	}
	for i, part := range parts {
		if len([]rune(part)) > 200 {
			t.Errorf("part %d exceeds limit: %d runes", i, len([]rune(part)))
		}
	}
	if strings.Join(parts, "\n") != text {
		t.Error("line-preserving split must reassemble to the original text")
	}
}

func TestSplitMessage_HardSplitsOverlongLine(t *testing.T) {
	text := strings.Repeat("б", 450)
	parts := SplitMessage(text, 200)
	if len(parts) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(parts))
	}
	if strings.Join(parts, "") != text {
		t.Error("hard split must not lose characters")
	}
}
