package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound  = goerr.New("configuration file not found")
	ErrInvalidConfig   = goerr.New("invalid configuration")
	ErrInvalidToolID   = goerr.New("invalid tool ID format")
	ErrInvalidToolKind = goerr.New("invalid tool kind")
	ErrDuplicateToolID = goerr.New("duplicate tool ID")
	ErrDuplicateKind   = goerr.New("tool kind is served by more than one entry")
	ErrDuplicateUserID = goerr.New("duplicate user ID")
	ErrMissingName     = goerr.New("name is required")
	ErrMissingCategory = goerr.New("category is required")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
	ToolIDKey     = "tool_id"
	ToolKindKey   = "tool_kind"
	UserIDKey     = "user_id"
)
