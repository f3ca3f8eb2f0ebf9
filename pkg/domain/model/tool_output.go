package model

import "github.com/secmon-lab/toolhub/pkg/domain/types"

// ToolOutput is the result of a successful tool operation
type ToolOutput interface {
	Kind() types.ToolKind
	toolOutput()
}

type TextStats struct {
	WordCount         int `json:"wordCount"`
	CharCount         int `json:"charCount"`
	CharCountNoSpaces int `json:"charCountNoSpaces"`
	LineCount         int `json:"lineCount"`
}

// ResizedImage carries encoded image bytes; it is written raw, not as JSON
type ResizedImage struct {
	Data     []byte
	MimeType string
}

type OGTags struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type PageMetadata struct {
	Title       string            `json:"title"`
	MetaTags    map[string]string `json:"metaTags"`
	Description string            `json:"description"`
	Keywords    string            `json:"keywords"`
	OGTags      OGTags            `json:"ogTags"`
}

type PlainText struct {
	Text string `json:"text"`
}

type PercentageResult struct {
	OriginalValue  float64 `json:"originalValue"`
	Percentage     float64 `json:"percentage"`
	Result         float64 `json:"result"`
	IncreasedValue float64 `json:"increasedValue"`
	DecreasedValue float64 `json:"decreasedValue"`
}

func (*TextStats) Kind() types.ToolKind        { return types.ToolKindTextStats }
func (*ResizedImage) Kind() types.ToolKind     { return types.ToolKindImageResize }
func (*PageMetadata) Kind() types.ToolKind     { return types.ToolKindPageMetadata }
func (*PlainText) Kind() types.ToolKind        { return types.ToolKindMarkupToText }
func (*PercentageResult) Kind() types.ToolKind { return types.ToolKindPercentage }

func (*TextStats) toolOutput()        {}
func (*ResizedImage) toolOutput()     {}
func (*PageMetadata) toolOutput()     {}
func (*PlainText) toolOutput()        {}
func (*PercentageResult) toolOutput() {}
