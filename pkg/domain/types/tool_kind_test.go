package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/toolhub/pkg/domain/types"
)

func TestToolKind_IsValid(t *testing.T) {
	tests := []struct {
		name string
		kind types.ToolKind
		want bool
	}{
		{name: "text stats", kind: types.ToolKindTextStats, want: true},
		{name: "image resize", kind: types.ToolKindImageResize, want: true},
		{name: "page metadata", kind: types.ToolKindPageMetadata, want: true},
		{name: "markup to text", kind: types.ToolKindMarkupToText, want: true},
		{name: "percentage", kind: types.ToolKindPercentage, want: true},
		{name: "empty", kind: types.ToolKind(""), want: false},
		{name: "unknown", kind: types.ToolKind("json-format"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, tt.kind.IsValid()).Equal(tt.want)
		})
	}
}

func TestAllToolKinds(t *testing.T) {
	kinds := types.AllToolKinds()
	gt.Array(t, kinds).Length(5)
	for _, k := range kinds {
		gt.Bool(t, k.IsValid()).True()
	}
}

func TestParseToolKind(t *testing.T) {
	kind, err := types.ParseToolKind("percentage")
	gt.NoError(t, err).Required()
	gt.Value(t, kind).Equal(types.ToolKindPercentage)

	_, err = types.ParseToolKind("PERCENTAGE")
	gt.Value(t, err).NotNil()
}

func TestValidateSlug(t *testing.T) {
	tests := []struct {
		id      string
		wantErr bool
	}{
		{id: "text-stats", wantErr: false},
		{id: "tool1", wantErr: false},
		{id: "", wantErr: true},
		{id: "Text-Stats", wantErr: true},
		{id: "text--stats", wantErr: true},
		{id: "-text", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			err := types.ValidateSlug(tt.id)
			gt.Value(t, err != nil).Equal(tt.wantErr)
		})
	}
}
