package events

import (
	"context"

	"github.com/vsinha/importdesk/pkg/logger"
)

// LogHandler writes every event it receives to the structured log
type LogHandler struct {
	log *logger.Logger
}

func NewLogHandler(log *logger.Logger) *LogHandler {
	return &LogHandler{log: log}
}

var _ EventHandler = (*LogHandler)(nil)

func (h *LogHandler) Handle(event Event) error {
	ctx := h.log.WithFields(context.Background(), map[string]any{
		"event_type": event.Type(),
		"stream":     event.StreamID(),
		"version":    event.Version(),
	})
	summary, err := Describe(event)
	if err != nil {
		return err
	}
	h.log.Info(h.log.WithField(ctx, "summary", summary), "tracker event")
	return nil
}

func (h *LogHandler) CanHandle(string) bool { return true }
