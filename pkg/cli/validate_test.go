package cli_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/toolhub/pkg/cli"
	"github.com/secmon-lab/toolhub/pkg/cli/config"
	"github.com/secmon-lab/toolhub/pkg/domain/model"
	"github.com/secmon-lab/toolhub/pkg/repository/memory"
)

const validCatalog = `
[[tool]]
id = "text-stats"
name = "Text Statistics"
category = "text"
kind = "text-stats"

[[tool]]
id = "percentage"
name = "Percentage"
category = "math"
kind = "percentage"

[[user]]
id = "u1"
name = "Alice"
favorites = ["percentage"]
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()
	return path
}

func TestRun_ValidateCommand_ValidCatalog(t *testing.T) {
	path := writeFile(t, validCatalog)
	err := cli.Run(context.Background(), []string{"toolhub", "validate", "--catalog", path}, "test")
	gt.NoError(t, err)
}

func TestRun_ValidateCommand_InvalidCatalog(t *testing.T) {
	path := writeFile(t, `
[[tool]]
id = "INVALID_ID"
name = "Bad"
category = "text"
`)
	err := cli.Run(context.Background(), []string{"toolhub", "validate", "--catalog", path}, "test")
	gt.Value(t, err).NotNil()
}

func TestRun_ValidateCommand_UnknownFavoriteWithRepository(t *testing.T) {
	path := writeFile(t, `
[[user]]
id = "u1"
name = "Alice"
favorites = ["missing"]
`)
	err := cli.Run(context.Background(), []string{
		"toolhub", "validate",
		"--catalog", path,
		"--check-repository",
		"--repository-backend", "memory",
	}, "test")
	gt.Value(t, err).NotNil()
}

func TestRun_SeedCommand(t *testing.T) {
	path := writeFile(t, validCatalog)
	err := cli.Run(context.Background(), []string{
		"toolhub", "seed",
		"--catalog", path,
		"--repository-backend", "memory",
	}, "test")
	gt.NoError(t, err)
}

func TestSeedCatalog(t *testing.T) {
	ctx := context.Background()
	catalog, err := config.LoadCatalog(writeFile(t, validCatalog))
	gt.NoError(t, err).Required()

	repo := memory.New()
	gt.NoError(t, cli.SeedCatalog(ctx, repo, catalog)).Required()

	tool, err := repo.Tool().Get(ctx, "percentage")
	gt.NoError(t, err).Required()
	gt.Value(t, tool.Category).Equal("math")

	user, err := repo.User().Get(ctx, "u1")
	gt.NoError(t, err).Required()
	gt.Bool(t, user.HasFavorite("percentage")).True()

	t.Run("reseeding keeps usage counters", func(t *testing.T) {
		gt.NoError(t, repo.Tool().IncrementUsage(ctx, "percentage", time.Now())).Required()
		gt.NoError(t, cli.SeedCatalog(ctx, repo, catalog)).Required()

		tool, err := repo.Tool().Get(ctx, "percentage")
		gt.NoError(t, err).Required()
		gt.Value(t, tool.UsageCount).Equal(int64(1))
		gt.Value(t, tool.LastUsed).NotNil()
	})
}

func TestFindUnknownFavorites(t *testing.T) {
	ctx := context.Background()
	catalog, err := config.LoadCatalog(writeFile(t, `
[[tool]]
id = "a"
name = "A"
category = "x"

[[user]]
id = "u1"
name = "Alice"
favorites = ["a", "b", "c"]
`))
	gt.NoError(t, err).Required()

	t.Run("without repository", func(t *testing.T) {
		n, err := cli.CountUnknownFavorites(ctx, nil, catalog)
		gt.NoError(t, err).Required()
		gt.Value(t, n).Equal(2)
	})

	t.Run("with repository", func(t *testing.T) {
		repo := memory.New()
		gt.NoError(t, repo.Tool().Put(ctx, &model.Tool{ID: "b", Name: "B", Category: "x"})).Required()

		n, err := cli.CountUnknownFavorites(ctx, repo, catalog)
		gt.NoError(t, err).Required()
		gt.Value(t, n).Equal(1)
	})
}

func TestGetIndexConfig(t *testing.T) {
	cfg := cli.GetIndexConfig("dev")
	gt.Array(t, cfg.Collections).Length(1)
	gt.Value(t, cfg.Collections[0].Name).Equal("dev_tools")
	gt.Array(t, cfg.Collections[0].Indexes).Length(1)
}
