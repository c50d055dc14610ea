package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

// newLogger creates logger with timestamp formatting. Messages go to w and, if logFile is set, to that file as well.
// Returned closer must be called once logging is done
func newLogger(w io.Writer, logFile string, level log.Level) (*log.Logger, io.Closer, error) {
	var closer io.Closer = nopCloser{}
	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
			return nil, nil, errors.Wrap(err, "can't create log directory")
		}
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, errors.Wrap(err, "can't open log file")
		}
		w = io.MultiWriter(w, file)
		closer = file
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
