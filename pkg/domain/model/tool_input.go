package model

import (
	"net/url"

	"github.com/secmon-lab/toolhub/pkg/domain/types"
)

// RawInput is an unvalidated tool request. Fields holds decoded JSON members
// or multipart form values; Image holds an uploaded file, if any.
type RawInput struct {
	Fields map[string]any
	Image  []byte
}

// ToolInput is a validated, typed request for one tool kind. The set of
// implementations is closed to this package.
type ToolInput interface {
	Kind() types.ToolKind
	toolInput()
}

type TextStatsInput struct {
	Text string
}

// Dimension is an image side length. Valid is false when the raw value could
// not be parsed as a decimal integer; the resize operation rejects it.
type Dimension struct {
	Value int
	Valid bool
}

type ImageResizeInput struct {
	Image  []byte
	Width  Dimension
	Height Dimension
}

type PageMetadataInput struct {
	URL *url.URL
}

type MarkupToTextInput struct {
	HTML string
}

type PercentageInput struct {
	Value      float64
	Percentage float64
}

func (TextStatsInput) Kind() types.ToolKind    { return types.ToolKindTextStats }
func (ImageResizeInput) Kind() types.ToolKind  { return types.ToolKindImageResize }
func (PageMetadataInput) Kind() types.ToolKind { return types.ToolKindPageMetadata }
func (MarkupToTextInput) Kind() types.ToolKind { return types.ToolKindMarkupToText }
func (PercentageInput) Kind() types.ToolKind   { return types.ToolKindPercentage }

func (TextStatsInput) toolInput()    {}
func (ImageResizeInput) toolInput()  {}
func (PageMetadataInput) toolInput() {}
func (MarkupToTextInput) toolInput() {}
func (PercentageInput) toolInput()   {}
