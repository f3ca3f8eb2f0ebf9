package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/toolhub/pkg/domain/interfaces"
	"github.com/secmon-lab/toolhub/pkg/domain/model"
	"github.com/secmon-lab/toolhub/pkg/domain/types"
	"github.com/secmon-lab/toolhub/pkg/repository/memory"
	"github.com/secmon-lab/toolhub/pkg/usecase"
)

func TestUsageUseCase_TrackUsage(t *testing.T) {
	fixed := time.Date(2024, 3, 15, 23, 30, 0, 0, time.FixedZone("JST", 9*60*60))

	t.Run("increments and stamps UTC time", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()
		gt.NoError(t, repo.Tool().Put(ctx, &model.Tool{ID: "t1", Name: "T1", Category: "text"})).Required()

		uc := usecase.New(repo, usecase.WithClock(func() time.Time { return fixed }))
		gt.NoError(t, uc.Usage.TrackUsage(ctx, "t1")).Required()
		gt.NoError(t, uc.Usage.TrackUsage(ctx, "t1")).Required()

		tool, err := repo.Tool().Get(ctx, "t1")
		gt.NoError(t, err).Required()
		gt.Value(t, tool.UsageCount).Equal(int64(2))
		gt.Value(t, tool.LastUsed).NotNil()
		gt.Bool(t, tool.LastUsed.Equal(fixed)).True()
		gt.Value(t, tool.LastUsed.Location()).Equal(time.UTC)
	})

	t.Run("unknown tool is not found and nothing changes", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()
		gt.NoError(t, repo.Tool().Put(ctx, &model.Tool{ID: "t1", Name: "T1", Category: "text"})).Required()

		uc := usecase.New(repo)
		err := uc.Usage.TrackUsage(ctx, "missing")
		gt.Error(t, err).Is(usecase.ErrToolNotFound)
		gt.Error(t, err).Is(interfaces.ErrNotFound)

		toolList, err := repo.Tool().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, toolList).Length(1)
		gt.Value(t, toolList[0].UsageCount).Equal(int64(0))
	})

	t.Run("empty id is not found", func(t *testing.T) {
		uc := usecase.New(memory.New())
		gt.Error(t, uc.Usage.TrackUsage(context.Background(), "")).Is(usecase.ErrToolNotFound)
	})
}

func TestUsageUseCase_TrackInvocation(t *testing.T) {
	t.Run("resolves the tool by kind", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()
		gt.NoError(t, repo.Tool().Put(ctx, &model.Tool{ID: "calc", Name: "Calc", Category: "math", Kind: types.ToolKindPercentage})).Required()
		gt.NoError(t, repo.Tool().Put(ctx, &model.Tool{ID: "other", Name: "Other", Category: "math"})).Required()

		uc := usecase.New(repo)
		gt.NoError(t, uc.Usage.TrackInvocation(ctx, types.ToolKindPercentage)).Required()

		calc, err := repo.Tool().Get(ctx, "calc")
		gt.NoError(t, err).Required()
		gt.Value(t, calc.UsageCount).Equal(int64(1))

		other, err := repo.Tool().Get(ctx, "other")
		gt.NoError(t, err).Required()
		gt.Value(t, other.UsageCount).Equal(int64(0))
	})

	t.Run("kind without catalog tool is not found", func(t *testing.T) {
		uc := usecase.New(memory.New())
		err := uc.Usage.TrackInvocation(context.Background(), types.ToolKindImageResize)
		gt.Error(t, err).Is(usecase.ErrToolNotFound)
	})
}
