package config

import "time"

// NewRepositoryForTest creates a Repository config for testing purposes
func NewRepositoryForTest(backend, projectID string) *Repository {
	return &Repository{
		backend:   backend,
		projectID: projectID,
	}
}

// NewFetchForTest creates a Fetch config for testing purposes
func NewFetchForTest(timeout time.Duration, maxBytes int64, allowPrivate bool) *Fetch {
	return &Fetch{
		timeout:      timeout,
		maxBytes:     maxBytes,
		allowPrivate: allowPrivate,
	}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}
