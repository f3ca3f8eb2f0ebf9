package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/toolhub/pkg/domain/interfaces"
	"github.com/secmon-lab/toolhub/pkg/domain/model"
	"github.com/secmon-lab/toolhub/pkg/domain/types"
)

// UsageUseCase records tool invocations against the catalog
type UsageUseCase struct {
	repo interfaces.Repository
	now  func() time.Time
}

func NewUsageUseCase(repo interfaces.Repository, now func() time.Time) *UsageUseCase {
	if now == nil {
		now = time.Now
	}
	return &UsageUseCase{
		repo: repo,
		now:  now,
	}
}

// TrackUsage adds one use to the tool and stamps LastUsed with the current
// UTC time. Unknown tools yield ErrToolNotFound and nothing is written.
func (uc *UsageUseCase) TrackUsage(ctx context.Context, id model.ToolID) error {
	if id == "" {
		return goerr.Wrap(ErrToolNotFound, "tool ID is required")
	}

	if err := uc.repo.Tool().IncrementUsage(ctx, id, uc.now().UTC()); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return goerr.Wrap(ErrToolNotFound, "failed to track usage", goerr.V(ToolIDKey, id))
		}
		return goerr.Wrap(err, "failed to increment tool usage", goerr.V(ToolIDKey, id))
	}

	return nil
}

// TrackInvocation records one use of the catalog tool served by kind. The
// tool is resolved by its Kind, so its ID may differ from the kind slug.
func (uc *UsageUseCase) TrackInvocation(ctx context.Context, kind types.ToolKind) error {
	tool, err := uc.repo.Tool().FindByKind(ctx, kind)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return goerr.Wrap(ErrToolNotFound, "no catalog tool for kind", goerr.V(ToolKindKey, kind))
		}
		return goerr.Wrap(err, "failed to resolve tool by kind", goerr.V(ToolKindKey, kind))
	}

	return uc.TrackUsage(ctx, tool.ID)
}
