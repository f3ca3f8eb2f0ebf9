package model

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/secmon-lab/toolhub/pkg/domain/types"
)

// FieldViolation describes one invalid request field
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type FieldViolations []FieldViolation

func (v *FieldViolations) add(field, message string) {
	*v = append(*v, FieldViolation{Field: field, Message: message})
}

// ValidateToolInput checks raw against the rules of kind. It returns either a
// typed input or a non-empty violation list, never both.
func ValidateToolInput(kind types.ToolKind, raw *RawInput) (ToolInput, FieldViolations) {
	if raw == nil {
		raw = &RawInput{}
	}

	switch kind {
	case types.ToolKindTextStats:
		return validateTextStats(raw)
	case types.ToolKindImageResize:
		return validateImageResize(raw)
	case types.ToolKindPageMetadata:
		return validatePageMetadata(raw)
	case types.ToolKindMarkupToText:
		return validateMarkupToText(raw)
	case types.ToolKindPercentage:
		return validatePercentage(raw)
	default:
		return nil, FieldViolations{{Field: "tool", Message: fmt.Sprintf("unknown tool kind %q", kind)}}
	}
}

func validateTextStats(raw *RawInput) (ToolInput, FieldViolations) {
	var violations FieldViolations
	text, ok := requireString(raw, "text", &violations)
	if !ok {
		return nil, violations
	}
	return &TextStatsInput{Text: text}, nil
}

func validateImageResize(raw *RawInput) (ToolInput, FieldViolations) {
	if len(raw.Image) == 0 {
		return nil, FieldViolations{{Field: "image", Message: "image file is required"}}
	}

	// Unparsable dimensions pass through as invalid; the resize operation rejects them.
	return &ImageResizeInput{
		Image:  raw.Image,
		Width:  parseDimension(raw.Fields["width"]),
		Height: parseDimension(raw.Fields["height"]),
	}, nil
}

func validatePageMetadata(raw *RawInput) (ToolInput, FieldViolations) {
	var violations FieldViolations
	s, ok := requireString(raw, "url", &violations)
	if !ok {
		return nil, violations
	}

	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || !u.IsAbs() || u.Host == "" {
		violations.add("url", "must be a valid absolute URL")
		return nil, violations
	}
	return &PageMetadataInput{URL: u}, nil
}

func validateMarkupToText(raw *RawInput) (ToolInput, FieldViolations) {
	var violations FieldViolations
	html, ok := requireString(raw, "html", &violations)
	if !ok {
		return nil, violations
	}
	return &MarkupToTextInput{HTML: html}, nil
}

func validatePercentage(raw *RawInput) (ToolInput, FieldViolations) {
	var violations FieldViolations

	value, valueErr := coerceNumber(raw.Fields["value"])
	if valueErr != "" {
		violations.add("value", valueErr)
	}
	percentage, percentageErr := coerceNumber(raw.Fields["percentage"])
	if percentageErr != "" {
		violations.add("percentage", percentageErr)
	}

	if len(violations) > 0 {
		return nil, violations
	}
	return &PercentageInput{Value: value, Percentage: percentage}, nil
}

func requireString(raw *RawInput, field string, violations *FieldViolations) (string, bool) {
	v, exists := raw.Fields[field]
	if !exists || v == nil {
		violations.add(field, "is required")
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		violations.add(field, "must be a string")
		return "", false
	}
	if s == "" {
		violations.add(field, "must not be empty")
		return "", false
	}
	return s, true
}

// coerceNumber accepts JSON numbers and numeric strings. It returns a
// violation message instead of an error.
func coerceNumber(v any) (float64, string) {
	var f float64
	switch n := v.(type) {
	case nil:
		return 0, "is required"
	case float64:
		f = n
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, "must be numeric"
		}
		f = parsed
	default:
		return 0, "must be numeric"
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, "must be a finite number"
	}
	return f, ""
}

func parseDimension(v any) Dimension {
	switch n := v.(type) {
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return Dimension{}
		}
		return Dimension{Value: parsed, Valid: true}
	case float64:
		if n != math.Trunc(n) || math.Abs(n) > math.MaxInt32 {
			return Dimension{}
		}
		return Dimension{Value: int(n), Valid: true}
	default:
		return Dimension{}
	}
}
