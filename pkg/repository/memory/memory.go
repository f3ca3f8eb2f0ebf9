package memory

import (
	"github.com/secmon-lab/toolhub/pkg/domain/interfaces"
)

// ErrNotFound is the repository-wide not-found sentinel
var ErrNotFound = interfaces.ErrNotFound

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	tool *toolRepository
	user *userRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		tool: newToolRepository(),
		user: newUserRepository(),
	}
}

func (m *Memory) Tool() interfaces.ToolRepository {
	return m.tool
}

func (m *Memory) User() interfaces.UserRepository {
	return m.user
}

func (m *Memory) Close() error {
	return nil
}
