package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Tool() ToolRepository
	User() UserRepository

	Close() error
}
