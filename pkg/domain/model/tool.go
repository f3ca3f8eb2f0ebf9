package model

import (
	"time"

	"github.com/secmon-lab/toolhub/pkg/domain/types"
)

type ToolID string

func (id ToolID) String() string {
	return string(id)
}

// Tool is a catalog entry with its usage counter. Kind is empty for entries
// that are listed in the catalog but not served by a built-in operation.
type Tool struct {
	ID          ToolID
	Name        string
	Category    string
	Description string
	Kind        types.ToolKind
	UsageCount  int64
	LastUsed    *time.Time
}

// Copy returns a deep copy of the tool
func (t *Tool) Copy() *Tool {
	if t == nil {
		return nil
	}
	copied := *t
	if t.LastUsed != nil {
		lastUsed := *t.LastUsed
		copied.LastUsed = &lastUsed
	}
	return &copied
}
