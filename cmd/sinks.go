package cmd

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/cachesim/cachesim/sim"
	"github.com/cachesim/cachesim/sim/trace"
)

// accessSink is a recorder backed by a file that must be closed.
type accessSink interface {
	trace.Recorder
	Close() error
}

// openSinks initializes the CSV and SQLite access logs requested in opts.
func openSinks(opts runOptions) ([]accessSink, error) {
	var sinks []accessSink
	if opts.AccessLogPath != "" {
		w := trace.NewCSVWriter(opts.AccessLogPath)
		if err := w.Init(); err != nil {
			_ = closeSinks(sinks)
			return nil, &sim.ResourceError{Resource: "access log", Err: err}
		}
		logrus.Infof("Access log is collected in %s", w.Path())
		sinks = append(sinks, w)
	}
	if opts.AccessDBPath != "" {
		w := trace.NewSQLiteWriter(opts.AccessDBPath)
		if err := w.Init(); err != nil {
			_ = closeSinks(sinks)
			return nil, &sim.ResourceError{Resource: "access database", Err: err}
		}
		logrus.Infof("Access log is collected in database %s (run %s)", w.Filename(), w.RunID())
		sinks = append(sinks, w)
	}
	return sinks, nil
}

func closeSinks(sinks []accessSink) error {
	var errs []error
	for _, sk := range sinks {
		if err := sk.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return &sim.ResourceError{Resource: "access log", Err: errors.Join(errs...)}
	}
	return nil
}
