package types

import "fmt"

// ToolKind identifies one of the built-in transformation operations
type ToolKind string

const (
	ToolKindTextStats    ToolKind = "text-stats"
	ToolKindImageResize  ToolKind = "image-resize"
	ToolKindPageMetadata ToolKind = "page-metadata"
	ToolKindMarkupToText ToolKind = "markup-to-text"
	ToolKindPercentage   ToolKind = "percentage"
)

// AllToolKinds returns all built-in tool kinds
func AllToolKinds() []ToolKind {
	return []ToolKind{
		ToolKindTextStats,
		ToolKindImageResize,
		ToolKindPageMetadata,
		ToolKindMarkupToText,
		ToolKindPercentage,
	}
}

// IsValid checks if the tool kind is one of the built-in kinds
func (k ToolKind) IsValid() bool {
	switch k {
	case ToolKindTextStats,
		ToolKindImageResize,
		ToolKindPageMetadata,
		ToolKindMarkupToText,
		ToolKindPercentage:
		return true
	default:
		return false
	}
}

// String returns the string representation of the tool kind
func (k ToolKind) String() string {
	return string(k)
}

// ParseToolKind parses a string into a ToolKind
func ParseToolKind(s string) (ToolKind, error) {
	kind := ToolKind(s)
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid tool kind: %s", s)
	}
	return kind, nil
}
