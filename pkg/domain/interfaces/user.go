package interfaces

import (
	"context"

	"github.com/secmon-lab/toolhub/pkg/domain/model"
)

// UserRepository defines the interface for User data access
type UserRepository interface {
	// Get retrieves a user by ID. Returns ErrNotFound if it does not exist.
	Get(ctx context.Context, id model.UserID) (*model.User, error)

	// Put creates or replaces a user
	Put(ctx context.Context, user *model.User) error
}
