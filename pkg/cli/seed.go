package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/toolhub/pkg/cli/config"
	"github.com/secmon-lab/toolhub/pkg/domain/interfaces"
	"github.com/secmon-lab/toolhub/pkg/domain/types"
	"github.com/secmon-lab/toolhub/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdSeed() *cli.Command {
	var catalogPath string
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "catalog",
			Aliases:     []string{"c"},
			Usage:       "Path to the catalog TOML file",
			Required:    true,
			Sources:     cli.EnvVars("TOOLHUB_CATALOG"),
			Destination: &catalogPath,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "seed",
		Usage: "Load tools and users from a catalog file into the repository",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			catalog, err := config.LoadCatalog(catalogPath)
			if err != nil {
				return goerr.Wrap(err, "failed to load catalog")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			return seedCatalog(ctx, repo, catalog)
		},
	}
}

// seedCatalog writes catalog entries. Existing tools keep their usage counters.
func seedCatalog(ctx context.Context, repo interfaces.Repository, catalog *config.Catalog) error {
	logger := logging.From(ctx)

	for _, entry := range catalog.Tools {
		if err := repo.Tool().Put(ctx, entry.ToModel()); err != nil {
			return goerr.Wrap(err, "failed to put tool", goerr.V(config.ToolIDKey, entry.ID))
		}
	}
	for _, entry := range catalog.Users {
		if err := repo.User().Put(ctx, entry.ToModel()); err != nil {
			return goerr.Wrap(err, "failed to put user", goerr.V(config.UserIDKey, entry.ID))
		}
	}

	logger.Info("Catalog seeded",
		"tools", len(catalog.Tools),
		"users", len(catalog.Users),
	)
	return nil
}

var builtinTools = map[types.ToolKind]config.CatalogTool{
	types.ToolKindTextStats:    {Name: "Text Statistics", Category: "text", Description: "Counts words, characters and lines"},
	types.ToolKindImageResize:  {Name: "Image Resizer", Category: "image", Description: "Resizes an image to exact dimensions"},
	types.ToolKindPageMetadata: {Name: "Page Metadata", Category: "web", Description: "Extracts meta and Open Graph tags of a page"},
	types.ToolKindMarkupToText: {Name: "HTML to Text", Category: "text", Description: "Strips markup and returns the visible text"},
	types.ToolKindPercentage:   {Name: "Percentage Calculator", Category: "math", Description: "Computes a percentage of a value"},
}

// builtinCatalog lists one tool per built-in operation, keyed by the kind slug
func builtinCatalog() *config.Catalog {
	catalog := &config.Catalog{}
	for _, kind := range types.AllToolKinds() {
		entry := builtinTools[kind]
		entry.ID = kind.String()
		entry.Kind = kind.String()
		catalog.Tools = append(catalog.Tools, entry)
	}
	return catalog
}
