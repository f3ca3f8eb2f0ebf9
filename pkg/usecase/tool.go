package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/toolhub/pkg/domain/model"
	"github.com/secmon-lab/toolhub/pkg/domain/types"
	"github.com/secmon-lab/toolhub/pkg/service/tools"
	"github.com/secmon-lab/toolhub/pkg/utils/async"
	"github.com/secmon-lab/toolhub/pkg/utils/errutil"
	"github.com/secmon-lab/toolhub/pkg/utils/logging"
	"github.com/secmon-lab/toolhub/pkg/utils/metrics"
)

// ToolExecutor runs a validated tool input. Implemented by tools.Executor.
type ToolExecutor interface {
	Execute(ctx context.Context, input model.ToolInput) (model.ToolOutput, error)
}

// UsageTracker is the recording side of a tool invocation
type UsageTracker interface {
	TrackInvocation(ctx context.Context, kind types.ToolKind) error
}

const internalOperationMessage = "tool operation failed"

type ToolUseCase struct {
	executor ToolExecutor
	usage    UsageTracker
	metrics  *metrics.Metrics
}

func NewToolUseCase(executor ToolExecutor, usage UsageTracker, m *metrics.Metrics) *ToolUseCase {
	return &ToolUseCase{
		executor: executor,
		usage:    usage,
		metrics:  m,
	}
}

// Invoke validates raw, runs the tool and returns the result envelope. A
// successful invocation records one use of the tool in the background; the
// response never waits for or reports on that write.
func (uc *ToolUseCase) Invoke(ctx context.Context, kind types.ToolKind, raw *model.RawInput) *model.ToolResult {
	logger := logging.From(ctx)

	input, violations := model.ValidateToolInput(kind, raw)
	if len(violations) > 0 {
		// Client fault: logged at debug and never reported to Sentry
		logger.Debug("tool input rejected", "kind", kind, "violations", violations)
		uc.metrics.ObserveInvocation(kind, metrics.OutcomeValidationError)
		return model.NewToolValidationFailure(violations)
	}

	started := time.Now()
	output, err := uc.executor.Execute(ctx, input)
	uc.metrics.ObserveOperation(kind, time.Since(started))

	if err != nil {
		uc.metrics.ObserveInvocation(kind, metrics.OutcomeOperationError)
		msg, ok := tools.OperationMessage(err)
		if !ok {
			msg = internalOperationMessage
		}
		_ = errutil.Handle(ctx, goerr.Wrap(err, "tool operation failed", goerr.V(ToolKindKey, kind)), "tool operation failed")
		return model.NewToolOperationFailure(msg)
	}

	uc.metrics.ObserveInvocation(kind, metrics.OutcomeSuccess)

	async.Dispatch(ctx, func(ctx context.Context) error {
		if err := uc.usage.TrackInvocation(ctx, kind); err != nil {
			uc.metrics.RecordingFailed()
			return goerr.Wrap(err, "failed to record tool usage", goerr.V(ToolKindKey, kind))
		}
		return nil
	})

	return model.NewToolSuccess(output)
}
