package sinks

import (
	"context"

	"github.com/sirupsen/logrus"
)

// LogNotifier delivers notifications to the application log
type LogNotifier struct {
	log logrus.FieldLogger
}

// NewLogNotifier creates a notifier. A nil logger falls back to the logrus standard logger.
func NewLogNotifier(log logrus.FieldLogger) *LogNotifier {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, message string) {
	n.log.WithField("channel", "notification").Info("[NOTIFICATION] " + message)
}
