package shared_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/quickrepo/internal/shared"
)

func TestWriterReporterMirrorsTranscript(testInstance *testing.T) {
	testCases := []struct {
		name               string
		format             string
		arguments          []any
		expectedOutput     string
		expectedTranscript []string
	}{
		{
			name:               "formatted message",
			format:             "✅ Remote origin set: %s\n\n",
			arguments:          []any{"git@github.com:alice/demo.git"},
			expectedOutput:     "✅ Remote origin set: git@github.com:alice/demo.git\n\n",
			expectedTranscript: []string{"✅ Remote origin set: git@github.com:alice/demo.git"},
		},
		{
			name:               "blank line",
			format:             "\n",
			expectedOutput:     "\n",
			expectedTranscript: []string{},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			observerCore, observedLogs := observer.New(zapcore.DebugLevel)
			output := &bytes.Buffer{}
			reporter := shared.NewWriterReporter(output, shared.WithTranscriptLogger(zap.New(observerCore)))

			reporter.Printf(testCase.format, testCase.arguments...)

			require.Equal(testInstance, testCase.expectedOutput, output.String())
			transcript := []string{}
			for _, entry := range observedLogs.All() {
				transcript = append(transcript, entry.ContextMap()["message"].(string))
			}
			require.Equal(testInstance, testCase.expectedTranscript, transcript)
		})
	}
}

func TestWriterReporterWithoutTranscript(testInstance *testing.T) {
	output := &bytes.Buffer{}
	reporter := shared.NewWriterReporter(output, nil)

	reporter.Printf("➤ Git user already set: %s / %s\n", "alice", "alice@example.com")

	require.Equal(testInstance, "➤ Git user already set: alice / alice@example.com\n", output.String())
}
