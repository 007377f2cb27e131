package b2ginfo

import (
	"github.com/go-logr/logr"
	"github.com/hashicorp/go-hclog"
)

// NewHCLogLogger wraps an hclog logger in a logr.Logger so hclog-based
// callers (like the CLI) can feed the library's logging.
func NewHCLogLogger(logger hclog.Logger) logr.Logger {
	return logr.New(&hclogSink{logger: logger})
}

type hclogSink struct {
	logger hclog.Logger
}

func (s *hclogSink) Init(logr.RuntimeInfo) {}

func (s *hclogSink) Enabled(level int) bool {
	if level > 0 {
		return s.logger.IsDebug()
	}
	return s.logger.IsInfo()
}

func (s *hclogSink) Info(level int, msg string, keysAndValues ...interface{}) {
	if level > 0 {
		s.logger.Debug(msg, keysAndValues...)
		return
	}
	s.logger.Info(msg, keysAndValues...)
}

func (s *hclogSink) Error(err error, msg string, keysAndValues ...interface{}) {
	if err == nil {
		s.logger.Error(msg, keysAndValues...)
		return
	}
	// Appending in place could scribble on the caller's backing array.
	kv := make([]interface{}, 0, len(keysAndValues)+2)
	kv = append(kv, keysAndValues...)
	kv = append(kv, "error", err)
	s.logger.Error(msg, kv...)
}

func (s *hclogSink) WithValues(keysAndValues ...interface{}) logr.LogSink {
	return &hclogSink{logger: s.logger.With(keysAndValues...)}
}

func (s *hclogSink) WithName(name string) logr.LogSink {
	return &hclogSink{logger: s.logger.Named(name)}
}
