package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/toolhub/pkg/domain/model"
	"github.com/secmon-lab/toolhub/pkg/domain/types"
)

func fields(kv ...any) *model.RawInput {
	raw := &model.RawInput{Fields: map[string]any{}}
	for i := 0; i+1 < len(kv); i += 2 {
		raw.Fields[kv[i].(string)] = kv[i+1]
	}
	return raw
}

func TestValidateToolInput_TextStats(t *testing.T) {
	tests := []struct {
		name      string
		raw       *model.RawInput
		wantField string
	}{
		{name: "valid", raw: fields("text", "hello world")},
		{name: "whitespace only is not empty", raw: fields("text", "   ")},
		{name: "missing", raw: fields(), wantField: "text"},
		{name: "empty", raw: fields("text", ""), wantField: "text"},
		{name: "not a string", raw: fields("text", 12.0), wantField: "text"},
		{name: "nil raw", raw: nil, wantField: "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, violations := model.ValidateToolInput(types.ToolKindTextStats, tt.raw)
			if tt.wantField != "" {
				gt.Value(t, input).Nil()
				gt.Array(t, violations).Length(1)
				gt.Value(t, violations[0].Field).Equal(tt.wantField)
				return
			}
			gt.Array(t, violations).Length(0)
			in, ok := input.(*model.TextStatsInput)
			gt.Bool(t, ok).True()
			gt.Value(t, in.Text).Equal(tt.raw.Fields["text"].(string))
		})
	}
}

func TestValidateToolInput_ImageResize(t *testing.T) {
	image := []byte{0x89, 0x50, 0x4e, 0x47}

	t.Run("requires image", func(t *testing.T) {
		raw := fields("width", "10", "height", "10")
		input, violations := model.ValidateToolInput(types.ToolKindImageResize, raw)
		gt.Value(t, input).Nil()
		gt.Array(t, violations).Length(1)
		gt.Value(t, violations[0].Field).Equal("image")
	})

	t.Run("parses decimal dimensions", func(t *testing.T) {
		raw := fields("width", "320", "height", " 240 ")
		raw.Image = image
		input, violations := model.ValidateToolInput(types.ToolKindImageResize, raw)
		gt.Array(t, violations).Length(0)

		in := input.(*model.ImageResizeInput)
		gt.Value(t, in.Width).Equal(model.Dimension{Value: 320, Valid: true})
		gt.Value(t, in.Height).Equal(model.Dimension{Value: 240, Valid: true})
	})

	t.Run("unparsable dimensions pass validation unset", func(t *testing.T) {
		raw := fields("width", "wide", "height", "1.5")
		raw.Image = image
		input, violations := model.ValidateToolInput(types.ToolKindImageResize, raw)
		gt.Array(t, violations).Length(0)

		in := input.(*model.ImageResizeInput)
		gt.Bool(t, in.Width.Valid).False()
		gt.Bool(t, in.Height.Valid).False()
	})

	t.Run("missing dimensions pass validation unset", func(t *testing.T) {
		raw := fields()
		raw.Image = image
		input, violations := model.ValidateToolInput(types.ToolKindImageResize, raw)
		gt.Array(t, violations).Length(0)
		gt.Bool(t, input.(*model.ImageResizeInput).Width.Valid).False()
	})
}

func TestValidateToolInput_PageMetadata(t *testing.T) {
	tests := []struct {
		name    string
		url     any
		wantErr bool
	}{
		{name: "https url", url: "https://example.com/page?q=1"},
		{name: "http url with port", url: "http://example.com:8080/"},
		{name: "relative path", url: "/just/a/path", wantErr: true},
		{name: "no scheme", url: "example.com", wantErr: true},
		{name: "scheme without host", url: "mailto:someone@example.com", wantErr: true},
		{name: "garbage", url: "http://[::1", wantErr: true},
		{name: "not a string", url: true, wantErr: true},
		{name: "missing", url: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, violations := model.ValidateToolInput(types.ToolKindPageMetadata, fields("url", tt.url))
			if tt.wantErr {
				gt.Value(t, input).Nil()
				gt.Array(t, violations).Length(1)
				gt.Value(t, violations[0].Field).Equal("url")
				return
			}
			gt.Array(t, violations).Length(0)
			gt.Value(t, input.(*model.PageMetadataInput).URL.String()).Equal(tt.url.(string))
		})
	}
}

func TestValidateToolInput_MarkupToText(t *testing.T) {
	input, violations := model.ValidateToolInput(types.ToolKindMarkupToText, fields("html", "<p>hi</p>"))
	gt.Array(t, violations).Length(0)
	gt.Value(t, input.(*model.MarkupToTextInput).HTML).Equal("<p>hi</p>")

	_, violations = model.ValidateToolInput(types.ToolKindMarkupToText, fields("html", ""))
	gt.Array(t, violations).Length(1)
	gt.Value(t, violations[0].Field).Equal("html")
}

func TestValidateToolInput_Percentage(t *testing.T) {
	t.Run("numbers and numeric strings", func(t *testing.T) {
		input, violations := model.ValidateToolInput(types.ToolKindPercentage, fields("value", 200.0, "percentage", "12.5"))
		gt.Array(t, violations).Length(0)

		in := input.(*model.PercentageInput)
		gt.Value(t, in.Value).Equal(200.0)
		gt.Value(t, in.Percentage).Equal(12.5)
	})

	t.Run("reports every invalid field", func(t *testing.T) {
		input, violations := model.ValidateToolInput(types.ToolKindPercentage, fields("value", "abc", "percentage", true))
		gt.Value(t, input).Nil()
		gt.Array(t, violations).Length(2)
		gt.Value(t, violations[0].Field).Equal("value")
		gt.Value(t, violations[1].Field).Equal("percentage")
	})

	t.Run("rejects non-finite strings", func(t *testing.T) {
		_, violations := model.ValidateToolInput(types.ToolKindPercentage, fields("value", "NaN", "percentage", "Infinity"))
		gt.Array(t, violations).Length(2)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, violations := model.ValidateToolInput(types.ToolKindPercentage, fields())
		gt.Array(t, violations).Length(2)
	})
}

func TestValidateToolInput_UnknownKind(t *testing.T) {
	input, violations := model.ValidateToolInput(types.ToolKind("unknown"), fields("text", "x"))
	gt.Value(t, input).Nil()
	gt.Array(t, violations).Length(1)
	gt.Value(t, violations[0].Field).Equal("tool")
}
