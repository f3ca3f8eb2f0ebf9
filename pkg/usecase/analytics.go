package usecase

import (
	"context"
	"errors"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/toolhub/pkg/domain/interfaces"
	"github.com/secmon-lab/toolhub/pkg/domain/model"
	"golang.org/x/sync/errgroup"
)

const (
	// MaxDailyUsageRows caps the rollup returned by ToolUsage
	MaxDailyUsageRows = 30
	// RecentlyUsedLimit is the size of the global recently used list
	RecentlyUsedLimit = 5

	dateLayout = "2006-01-02"
)

type AnalyticsUseCase struct {
	repo interfaces.Repository
}

func NewAnalyticsUseCase(repo interfaces.Repository) *AnalyticsUseCase {
	return &AnalyticsUseCase{
		repo: repo,
	}
}

// ListTools returns the catalog sorted by category, then name
func (uc *AnalyticsUseCase) ListTools(ctx context.Context) ([]*model.Tool, error) {
	toolList, err := uc.repo.Tool().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list tools")
	}

	sort.SliceStable(toolList, func(i, j int) bool {
		if toolList[i].Category != toolList[j].Category {
			return toolList[i].Category < toolList[j].Category
		}
		if toolList[i].Name != toolList[j].Name {
			return toolList[i].Name < toolList[j].Name
		}
		return toolList[i].ID < toolList[j].ID
	})

	return toolList, nil
}

// ToolUsage returns the daily usage rollup of one tool.
//
// Only the latest invocation time is stored per tool, so every recorded use is
// attributed to the UTC date of LastUsed. A tool that was never used has an
// empty rollup.
func (uc *AnalyticsUseCase) ToolUsage(ctx context.Context, id model.ToolID) (*model.ToolUsageReport, error) {
	tool, err := uc.getTool(ctx, id)
	if err != nil {
		return nil, err
	}

	return &model.ToolUsageReport{
		Tool:       tool,
		DailyUsage: dailyRollup([]*model.Tool{tool}),
	}, nil
}

func dailyRollup(toolList []*model.Tool) []model.DailyUsage {
	byDate := make(map[string]int64)
	for _, t := range toolList {
		if t.LastUsed == nil {
			continue
		}
		// A stamped tool keeps its date bucket even when its counter was reset
		byDate[t.LastUsed.UTC().Format(dateLayout)] += max(t.UsageCount, 0)
	}

	rows := make([]model.DailyUsage, 0, len(byDate))
	for date, count := range byDate {
		rows = append(rows, model.DailyUsage{Date: date, Count: count})
	}

	// YYYY-MM-DD sorts lexically in date order
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Date > rows[j].Date
	})

	if len(rows) > MaxDailyUsageRows {
		rows = rows[:MaxDailyUsageRows]
	}
	return rows
}

// CategoryStats groups the catalog by category. Results are ordered by total
// usage descending, then category name.
func (uc *AnalyticsUseCase) CategoryStats(ctx context.Context) ([]model.CategoryStat, error) {
	toolList, err := uc.repo.Tool().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list tools")
	}

	index := make(map[string]int)
	stats := make([]model.CategoryStat, 0)
	for _, t := range toolList {
		i, ok := index[t.Category]
		if !ok {
			i = len(stats)
			index[t.Category] = i
			stats = append(stats, model.CategoryStat{Category: t.Category})
		}
		stats[i].Count++
		stats[i].TotalUsage += t.UsageCount
	}

	for i := range stats {
		stats[i].AvgUsage = float64(stats[i].TotalUsage) / float64(stats[i].Count)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].TotalUsage != stats[j].TotalUsage {
			return stats[i].TotalUsage > stats[j].TotalUsage
		}
		return stats[i].Category < stats[j].Category
	})

	return stats, nil
}

// UserActivity returns the user's favorite tools and the globally most
// recently used tools. Favorites that are no longer in the catalog are skipped.
func (uc *AnalyticsUseCase) UserActivity(ctx context.Context, id model.UserID) (*model.UserActivity, error) {
	user, err := uc.repo.User().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrUserNotFound, "failed to get user", goerr.V(UserIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get user", goerr.V(UserIDKey, id))
	}

	var (
		favorites []*model.Tool
		recent    []*model.Tool
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if len(user.Favorites) == 0 {
			favorites = []*model.Tool{}
			return nil
		}
		found, err := uc.repo.Tool().GetMany(egCtx, user.Favorites)
		if err != nil {
			return goerr.Wrap(err, "failed to get favorite tools", goerr.V(UserIDKey, id))
		}
		favorites = orderByFavorites(found, user.Favorites)
		return nil
	})
	eg.Go(func() error {
		found, err := uc.repo.Tool().ListRecentlyUsed(egCtx, RecentlyUsedLimit)
		if err != nil {
			return goerr.Wrap(err, "failed to list recently used tools")
		}
		recent = found
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return &model.UserActivity{
		User:          user,
		FavoriteTools: favorites,
		RecentlyUsed:  recent,
	}, nil
}

// orderByFavorites keeps the user's favorite order and drops duplicates
func orderByFavorites(found []*model.Tool, order []model.ToolID) []*model.Tool {
	byID := make(map[model.ToolID]*model.Tool, len(found))
	for _, t := range found {
		byID[t.ID] = t
	}

	result := make([]*model.Tool, 0, len(found))
	seen := make(map[model.ToolID]struct{}, len(order))
	for _, id := range order {
		t, ok := byID[id]
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, t)
	}
	return result
}

func (uc *AnalyticsUseCase) getTool(ctx context.Context, id model.ToolID) (*model.Tool, error) {
	tool, err := uc.repo.Tool().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrToolNotFound, "failed to get tool", goerr.V(ToolIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get tool", goerr.V(ToolIDKey, id))
	}
	return tool, nil
}
