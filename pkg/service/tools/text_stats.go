package tools

import (
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/secmon-lab/toolhub/pkg/domain/model"
)

// isSpace is unicode.IsSpace plus the byte order mark, which browsers and
// JSON producers commonly treat as whitespace.
func isSpace(r rune) bool {
	return r == '\ufeff' || unicode.IsSpace(r)
}

// CountText computes word, character and line counts. Character counts are in
// UTF-16 code units. Every "\n" starts a new line, so "" has one line and a
// trailing newline adds an empty one.
func CountText(text string) *model.TextStats {
	noSpaces := strings.Map(func(r rune) rune {
		if isSpace(r) {
			return -1
		}
		return r
	}, text)

	return &model.TextStats{
		WordCount:         len(strings.FieldsFunc(text, isSpace)),
		CharCount:         codeUnits(text),
		CharCountNoSpaces: codeUnits(noSpaces),
		LineCount:         len(strings.Split(text, "\n")),
	}
}

func codeUnits(s string) int {
	n := 0
	for _, r := range s {
		n += max(utf16.RuneLen(r), 1)
	}
	return n
}
