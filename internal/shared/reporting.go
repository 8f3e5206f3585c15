package shared

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
)

const transcriptLogMessageConstant = "console output"

// Reporter prints the step-by-step messages a person reads while setup runs.
type Reporter interface {
	Printf(format string, args ...any)
}

// ReporterOption customizes a writer-backed Reporter.
type ReporterOption func(reporter *writerReporter)

// WithTranscriptLogger mirrors every non-blank message to the logger at debug level,
// so structured logs carry the same narrative the console shows.
func WithTranscriptLogger(logger *zap.Logger) ReporterOption {
	return func(reporter *writerReporter) {
		reporter.transcript = logger
	}
}

type writerReporter struct {
	writer     io.Writer
	transcript *zap.Logger
}

// NewWriterReporter constructs a Reporter that writes to the provided io.Writer, defaulting to stdout.
func NewWriterReporter(writer io.Writer, options ...ReporterOption) Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	reporter := &writerReporter{writer: writer}
	for _, option := range options {
		if option != nil {
			option(reporter)
		}
	}
	return reporter
}

func (reporter *writerReporter) Printf(format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	_, _ = io.WriteString(reporter.writer, message)

	if reporter.transcript == nil {
		return
	}
	if trimmedMessage := strings.TrimSpace(message); len(trimmedMessage) > 0 {
		reporter.transcript.Debug(transcriptLogMessageConstant, zap.String("message", trimmedMessage))
	}
}
