// Package notify carries user-facing signals out of the session core. The
// log-backed implementation stands in where no richer notification surface
// exists (CLI, headless deployments).
package notify

import "github.com/rs/zerolog"

// Notifier is the notification surface: a titled success signal and a
// single-line error message.
type Notifier interface {
	Success(title, message string)
	Error(message string)
}

var _ Notifier = (*LogNotifier)(nil)

// LogNotifier writes notifications to a zerolog logger.
type LogNotifier struct {
	logger zerolog.Logger
}

func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Success(title, message string) {
	n.logger.Info().Str("title", title).Msg(message)
}

func (n *LogNotifier) Error(message string) {
	n.logger.Error().Msg(message)
}
