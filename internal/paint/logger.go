package paint

import "log/slog"

// newNopLogger keeps the engine silent unless the host passes WithLogger.
func newNopLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }
