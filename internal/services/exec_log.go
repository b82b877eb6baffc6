package services

import "log/slog"

// logExecFailure records an infrastructure failure exactly once, in the
// "<UsecaseName>#execute => <originalMessage>" format, before the usecase
// re-throws its generic failure kind. Authorization conditions are never
// logged through this path; they propagate verbatim.
func logExecFailure(logger *slog.Logger, usecase string, err error) {
	logger.Error(usecase + "#execute => " + err.Error())
}
