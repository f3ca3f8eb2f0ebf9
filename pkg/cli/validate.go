package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/toolhub/pkg/cli/config"
	"github.com/secmon-lab/toolhub/pkg/domain/interfaces"
	"github.com/secmon-lab/toolhub/pkg/domain/model"
	"github.com/secmon-lab/toolhub/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var catalogPath string
	var checkRepository bool
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
		&cli.BoolFlag{
			Name:        "check-repository",
			Usage:       "Resolve favorites that are not in the catalog against the repository",
			Destination: &checkRepository,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate a catalog file and optionally check favorites against the repository",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			catalog, err := config.LoadCatalog(catalogPath)
			if err != nil {
				return goerr.Wrap(err, "catalog validation failed")
			}
			logger.Info("Catalog validation passed",
				"tools", len(catalog.Tools),
				"users", len(catalog.Users),
			)

			var repo interfaces.Repository
			if checkRepository {
				repo, err = repoCfg.Configure(ctx)
				if err != nil {
					return goerr.Wrap(err, "failed to initialize repository")
				}
				defer func() {
					if err := repo.Close(); err != nil {
						logger.Error("failed to close repository", "error", err.Error())
					}
				}()
			}

			missing, err := findUnknownFavorites(ctx, repo, catalog)
			if err != nil {
				return err
			}
			for _, m := range missing {
				logger.Warn("Favorite references unknown tool", "user_id", m.userID, "tool_id", m.toolID)
			}
			if len(missing) > 0 && checkRepository {
				return goerr.New(fmt.Sprintf("%d favorite(s) reference unknown tools", len(missing)))
			}

			return nil
		},
	}
}

type unknownFavorite struct {
	userID string
	toolID model.ToolID
}

// findUnknownFavorites lists favorites that are neither in the catalog nor,
// when repo is set, in the repository
func findUnknownFavorites(ctx context.Context, repo interfaces.Repository, catalog *config.Catalog) ([]unknownFavorite, error) {
	known := make(map[model.ToolID]bool, len(catalog.Tools))
	for _, tool := range catalog.Tools {
		known[model.ToolID(tool.ID)] = true
	}

	var candidates []unknownFavorite
	var lookup []model.ToolID
	for _, user := range catalog.Users {
		for _, fav := range user.Favorites {
			id := model.ToolID(fav)
			if known[id] {
				continue
			}
			candidates = append(candidates, unknownFavorite{userID: user.ID, toolID: id})
			lookup = append(lookup, id)
		}
	}

	if repo == nil || len(lookup) == 0 {
		return candidates, nil
	}

	found, err := repo.Tool().GetMany(ctx, lookup)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to look up favorite tools")
	}
	for _, tool := range found {
		known[tool.ID] = true
	}

	var missing []unknownFavorite
	for _, c := range candidates {
		if !known[c.toolID] {
			missing = append(missing, c)
		}
	}
	return missing, nil
}
