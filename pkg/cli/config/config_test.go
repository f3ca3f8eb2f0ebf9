package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/toolhub/pkg/cli/config"
	"github.com/secmon-lab/toolhub/pkg/domain/types"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()
	return path
}

func TestLoadCatalog(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name: "valid catalog",
			content: `
[[tool]]
id = "text-stats"
name = "Text Statistics"
category = "text"
description = "Counts words and characters"
kind = "text-stats"

[[tool]]
id = "color-picker"
name = "Color Picker"
category = "design"

[[user]]
id = "u1"
name = "Alice"
email = "alice@example.com"
last_login = 2024-03-01T10:00:00Z
favorites = ["text-stats", "color-picker"]
`,
		},
		{
			name: "invalid tool id",
			content: `
[[tool]]
id = "Text Stats"
name = "Text Statistics"
category = "text"
`,
			wantErr: config.ErrInvalidToolID,
		},
		{
			name: "unknown kind",
			content: `
[[tool]]
id = "foo"
name = "Foo"
category = "text"
kind = "foo"
`,
			wantErr: config.ErrInvalidToolKind,
		},
		{
			name: "duplicate tool id",
			content: `
[[tool]]
id = "foo"
name = "Foo"
category = "text"

[[tool]]
id = "foo"
name = "Foo again"
category = "text"
`,
			wantErr: config.ErrDuplicateToolID,
		},
		{
			name: "kind served twice",
			content: `
[[tool]]
id = "text-stats"
name = "Text Statistics"
category = "text"

[[tool]]
id = "word-counter"
name = "Word Counter"
category = "text"
kind = "text-stats"
`,
			wantErr: config.ErrDuplicateKind,
		},
		{
			name: "missing category",
			content: `
[[tool]]
id = "foo"
name = "Foo"
`,
			wantErr: config.ErrMissingCategory,
		},
		{
			name: "user without name",
			content: `
[[user]]
id = "u1"
`,
			wantErr: config.ErrMissingName,
		},
		{
			name: "duplicate user id",
			content: `
[[user]]
id = "u1"
name = "A"

[[user]]
id = "u1"
name = "B"
`,
			wantErr: config.ErrDuplicateUserID,
		},
		{
			name:    "broken toml",
			content: `[[tool]`,
			wantErr: config.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog, err := config.LoadCatalog(writeCatalog(t, tt.content))
			if tt.wantErr != nil {
				gt.Error(t, err).Is(tt.wantErr)
				return
			}
			gt.NoError(t, err).Required()
			gt.Array(t, catalog.Tools).Length(2)
			gt.Array(t, catalog.Users).Length(1)

			tool := catalog.Tools[0].ToModel()
			gt.Value(t, tool.Kind).Equal(types.ToolKindTextStats)
			gt.Value(t, tool.UsageCount).Equal(int64(0))
			gt.Value(t, tool.LastUsed).Nil()

			user := catalog.Users[0].ToModel()
			gt.Array(t, user.Favorites).Length(2)
			gt.Value(t, user.LastLogin.Year()).Equal(2024)
		})
	}
}

func TestLoadCatalog_GeneratesUserID(t *testing.T) {
	catalog, err := config.LoadCatalog(writeCatalog(t, `
[[user]]
name = "Anonymous"
`))
	gt.NoError(t, err).Required()
	gt.Array(t, catalog.Users).Length(1)
	gt.String(t, catalog.Users[0].ID).NotEqual("")
}

func TestLoadCatalog_NotFound(t *testing.T) {
	_, err := config.LoadCatalog(filepath.Join(t.TempDir(), "missing.toml"))
	gt.Error(t, err).Is(config.ErrConfigNotFound)
}

func TestCatalogTool_ServedKind(t *testing.T) {
	explicit := config.CatalogTool{ID: "word-counter", Name: "W", Category: "text", Kind: "text-stats"}
	gt.Value(t, explicit.ToModel().Kind).Equal(types.ToolKindTextStats)

	inferred := config.CatalogTool{ID: "percentage", Name: "P", Category: "math"}
	gt.Value(t, inferred.ToModel().Kind).Equal(types.ToolKindPercentage)

	listed := config.CatalogTool{ID: "color-picker", Name: "C", Category: "design"}
	gt.Value(t, listed.ToModel().Kind).Equal(types.ToolKind(""))
}
