package safe

import (
	"context"
	"io"
	"log/slog"

	"github.com/secmon-lab/toolhub/pkg/utils/logging"
)

// maxDrainBytes bounds how much of an unread body is discarded before close
const maxDrainBytes = 64 << 10

// Close closes closer and logs any error. Nil closers are ignored.
func Close(ctx context.Context, closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.From(ctx).Error("Failed to close", slog.Any("error", err))
	}
}

// DrainAndClose discards a bounded remainder of body and closes it, so the
// underlying keep-alive connection can be reused.
func DrainAndClose(ctx context.Context, body io.ReadCloser) {
	if body == nil {
		return
	}
	if _, err := io.Copy(io.Discard, io.LimitReader(body, maxDrainBytes)); err != nil {
		logging.From(ctx).Debug("Failed to drain body", slog.Any("error", err))
	}
	Close(ctx, body)
}

// Write writes data to w and logs any error. The status line is already
// committed when this is called, so there is nothing else to do on failure.
func Write(ctx context.Context, w io.Writer, data []byte) {
	if w == nil {
		return
	}
	if _, err := w.Write(data); err != nil {
		logging.From(ctx).Warn("Failed to write response", slog.Any("error", err))
	}
}
