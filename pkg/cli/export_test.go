package cli

import (
	"context"

	"github.com/secmon-lab/toolhub/pkg/cli/config"
	"github.com/secmon-lab/toolhub/pkg/domain/interfaces"
)

var (
	SeedCatalog    = seedCatalog
	GetIndexConfig = getIndexConfig

	LoadServeCatalog = loadServeCatalog
	BuiltinCatalog   = builtinCatalog
)

// CountUnknownFavorites exposes findUnknownFavorites for tests
var CountUnknownFavorites = func(ctx context.Context, repo interfaces.Repository, catalog *config.Catalog) (int, error) {
	missing, err := findUnknownFavorites(ctx, repo, catalog)
	return len(missing), err
}
