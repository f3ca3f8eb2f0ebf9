package tools_test

import (
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/toolhub/pkg/domain/model"
	"github.com/secmon-lab/toolhub/pkg/service/tools"
)

func TestCountText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want model.TextStats
	}{
		{
			name: "empty text has one line",
			text: "",
			want: model.TextStats{WordCount: 0, CharCount: 0, CharCountNoSpaces: 0, LineCount: 1},
		},
		{
			name: "two lines",
			text: "a\nb",
			want: model.TextStats{WordCount: 2, CharCount: 3, CharCountNoSpaces: 2, LineCount: 2},
		},
		{
			name: "trailing newline adds an empty line",
			text: "a\nb\n",
			want: model.TextStats{WordCount: 2, CharCount: 4, CharCountNoSpaces: 2, LineCount: 3},
		},
		{
			name: "collapsed whitespace runs and blank line",
			text: "Hello   world\n\nfoo",
			want: model.TextStats{WordCount: 3, CharCount: 18, CharCountNoSpaces: 13, LineCount: 3},
		},
		{
			name: "leading and trailing whitespace",
			text: "  \t spaced out \t ",
			want: model.TextStats{WordCount: 2, CharCount: 17, CharCountNoSpaces: 9, LineCount: 1},
		},
		{
			name: "whitespace only",
			text: " \n ",
			want: model.TextStats{WordCount: 0, CharCount: 3, CharCountNoSpaces: 0, LineCount: 2},
		},
		{
			name: "astral characters count as two code units",
			text: "hi 😀",
			want: model.TextStats{WordCount: 2, CharCount: 5, CharCountNoSpaces: 4, LineCount: 1},
		},
		{
			name: "byte order mark is whitespace",
			text: "\ufeffa b\ufeff",
			want: model.TextStats{WordCount: 2, CharCount: 5, CharCountNoSpaces: 2, LineCount: 1},
		},
		{
			name: "carriage returns do not split lines",
			text: "a\r\nb",
			want: model.TextStats{WordCount: 2, CharCount: 4, CharCountNoSpaces: 2, LineCount: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tools.CountText(tt.text)
			gt.Value(t, *got).Equal(tt.want)
		})
	}
}

func TestCountText_WordsMatchTokens(t *testing.T) {
	inputs := []string{
		"one",
		"one two three",
		"tabs\tand\nnewlines\r\nmixed",
		"punctuation, counts! as-part of words.",
	}
	for _, in := range inputs {
		gt.Value(t, tools.CountText(in).WordCount).Equal(len(strings.Fields(in)))
	}
}
