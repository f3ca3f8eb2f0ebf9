package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/toolhub/pkg/domain/interfaces"
	"github.com/secmon-lab/toolhub/pkg/domain/model"
	"github.com/secmon-lab/toolhub/pkg/domain/types"
)

type toolRepository struct {
	mu    sync.RWMutex
	tools map[model.ToolID]*model.Tool
}

var _ interfaces.ToolRepository = &toolRepository{}

func newToolRepository() *toolRepository {
	return &toolRepository{
		tools: make(map[model.ToolID]*model.Tool),
	}
}

func (r *toolRepository) Get(ctx context.Context, id model.ToolID) (*model.Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tool, exists := r.tools[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "tool not found", goerr.V("id", id))
	}
	return tool.Copy(), nil
}

func (r *toolRepository) GetMany(ctx context.Context, ids []model.ToolID) ([]*model.Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[model.ToolID]bool, len(ids))
	tools := make([]*model.Tool, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		if tool, exists := r.tools[id]; exists {
			tools = append(tools, tool.Copy())
		}
	}
	return tools, nil
}

func (r *toolRepository) FindByKind(ctx context.Context, kind types.ToolKind) (*model.Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var found *model.Tool
	for _, tool := range r.tools {
		if tool.Kind != kind {
			continue
		}
		if found == nil || tool.ID < found.ID {
			found = tool
		}
	}
	if found == nil {
		return nil, goerr.Wrap(ErrNotFound, "tool not found", goerr.V("kind", kind))
	}
	return found.Copy(), nil
}

func (r *toolRepository) List(ctx context.Context) ([]*model.Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]*model.Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		tools = append(tools, tool.Copy())
	}
	return tools, nil
}

func (r *toolRepository) ListRecentlyUsed(ctx context.Context, limit int) ([]*model.Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var tools []*model.Tool
	for _, tool := range r.tools {
		if tool.LastUsed != nil {
			tools = append(tools, tool.Copy())
		}
	}

	sort.Slice(tools, func(i, j int) bool {
		if tools[i].LastUsed.Equal(*tools[j].LastUsed) {
			return tools[i].ID < tools[j].ID
		}
		return tools[i].LastUsed.After(*tools[j].LastUsed)
	})

	if limit >= 0 && len(tools) > limit {
		tools = tools[:limit]
	}
	if tools == nil {
		tools = []*model.Tool{}
	}
	return tools, nil
}

func (r *toolRepository) Put(ctx context.Context, tool *model.Tool) error {
	if tool == nil || tool.ID == "" {
		return goerr.New("tool ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Only catalog metadata is written; counters belong to IncrementUsage
	stored := tool.Copy()
	stored.UsageCount = 0
	stored.LastUsed = nil
	if existing, exists := r.tools[tool.ID]; exists {
		stored.UsageCount = existing.UsageCount
		stored.LastUsed = existing.Copy().LastUsed
	}
	r.tools[tool.ID] = stored
	return nil
}

func (r *toolRepository) IncrementUsage(ctx context.Context, id model.ToolID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tool, exists := r.tools[id]
	if !exists {
		return goerr.Wrap(ErrNotFound, "tool not found", goerr.V("id", id))
	}

	lastUsed := at.UTC()
	tool.UsageCount++
	tool.LastUsed = &lastUsed
	return nil
}
