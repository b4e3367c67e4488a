package diff

import "github.com/sirupsen/logrus"

// ProgressInterval is the number of source packages between progress reports
const ProgressInterval = 100

// Reporter is notified while a diff runs. It cannot influence the result.
type Reporter interface {
	Progress(processed, total int)
}

// ReporterFunc adapts a function to the Reporter interface
type ReporterFunc func(processed, total int)

// Progress calls f(processed, total)
func (f ReporterFunc) Progress(processed, total int) {
	f(processed, total)
}

// NopReporter discards progress reports
type NopReporter struct{}

// Progress implements Reporter
func (NopReporter) Progress(int, int) {}

// LogReporter logs progress at info level
type LogReporter struct {
	Logger logrus.FieldLogger
}

// Progress implements Reporter
func (r LogReporter) Progress(processed, total int) {
	logger := r.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	logger.Infof("- %d/%d packages processed", processed, total)
}

// notify calls the reporter and swallows any panic it raises
func notify(r Reporter, processed, total int) {
	defer func() {
		if rec := recover(); rec != nil {
			logrus.Warnf("Progress reporter failed: %v", rec)
		}
	}()
	r.Progress(processed, total)
}
