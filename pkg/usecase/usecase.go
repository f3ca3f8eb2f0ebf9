package usecase

import (
	"time"

	"github.com/secmon-lab/toolhub/pkg/domain/interfaces"
	"github.com/secmon-lab/toolhub/pkg/service/tools"
	"github.com/secmon-lab/toolhub/pkg/utils/metrics"
)

type UseCases struct {
	repo     interfaces.Repository
	executor ToolExecutor
	metrics  *metrics.Metrics
	now      func() time.Time

	Tool      *ToolUseCase
	Usage     *UsageUseCase
	Analytics *AnalyticsUseCase
}

type Option func(*UseCases)

// WithExecutor replaces the tool executor. Defaults to tools.New() which has
// no page fetcher configured.
func WithExecutor(executor ToolExecutor) Option {
	return func(uc *UseCases) {
		uc.executor = executor
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(uc *UseCases) {
		uc.metrics = m
	}
}

// WithClock overrides the time source used for LastUsed
func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
		now:  time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.executor == nil {
		uc.executor = tools.New()
	}

	uc.Usage = NewUsageUseCase(repo, uc.now)
	uc.Tool = NewToolUseCase(uc.executor, uc.Usage, uc.metrics)
	uc.Analytics = NewAnalyticsUseCase(repo)

	return uc
}
