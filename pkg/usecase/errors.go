package usecase

import (
	"fmt"

	"github.com/secmon-lab/toolhub/pkg/domain/interfaces"
)

// Sentinel errors for use case layer. Both wrap interfaces.ErrNotFound so
// callers may match either.
var (
	ErrToolNotFound = fmt.Errorf("tool not found: %w", interfaces.ErrNotFound)
	ErrUserNotFound = fmt.Errorf("user not found: %w", interfaces.ErrNotFound)
)

// Context keys for error values
const (
	ToolIDKey   = "tool_id"
	UserIDKey   = "user_id"
	ToolKindKey = "tool_kind"
)
