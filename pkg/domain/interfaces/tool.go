package interfaces

import (
	"context"
	"time"

	"github.com/secmon-lab/toolhub/pkg/domain/model"
	"github.com/secmon-lab/toolhub/pkg/domain/types"
)

// ToolRepository defines the interface for Tool data access
type ToolRepository interface {
	// Get retrieves a tool by ID. Returns ErrNotFound if it does not exist.
	Get(ctx context.Context, id model.ToolID) (*model.Tool, error)

	// GetMany retrieves the tools with the given IDs. Unknown IDs are skipped.
	GetMany(ctx context.Context, ids []model.ToolID) ([]*model.Tool, error)

	// FindByKind returns the catalog tool served by the given built-in
	// operation. When several tools share the kind, the lowest ID wins.
	// Returns ErrNotFound if no tool has the kind.
	FindByKind(ctx context.Context, kind types.ToolKind) (*model.Tool, error)

	// List retrieves all tools
	List(ctx context.Context) ([]*model.Tool, error)

	// ListRecentlyUsed returns up to limit tools with a non-nil LastUsed,
	// most recent first
	ListRecentlyUsed(ctx context.Context, limit int) ([]*model.Tool, error)

	// Put creates or replaces catalog metadata of a tool. Usage counters in
	// tool are ignored: a new tool starts at zero and an existing tool keeps
	// its counters.
	Put(ctx context.Context, tool *model.Tool) error

	// IncrementUsage atomically adds one to UsageCount and sets LastUsed to at.
	// Returns ErrNotFound without mutation if the tool does not exist.
	IncrementUsage(ctx context.Context, id model.ToolID, at time.Time) error
}
