package model

import (
	"time"

	"github.com/google/uuid"
)

type UserID string

func (id UserID) String() string {
	return string(id)
}

// NewUserID generates a random user ID
func NewUserID() UserID {
	return UserID(uuid.New().String())
}

// User is an account that consumes tools. Only Favorites and LastLogin are
// read by the analytics queries.
type User struct {
	ID        UserID
	Name      string
	Email     string `masq:"secret"`
	LastLogin time.Time
	Favorites []ToolID
}

// Copy returns a deep copy of the user
func (u *User) Copy() *User {
	if u == nil {
		return nil
	}
	copied := *u
	if u.Favorites != nil {
		copied.Favorites = make([]ToolID, len(u.Favorites))
		copy(copied.Favorites, u.Favorites)
	}
	return &copied
}

// HasFavorite reports whether id is in the user's favorites
func (u *User) HasFavorite(id ToolID) bool {
	for _, fav := range u.Favorites {
		if fav == id {
			return true
		}
	}
	return false
}
