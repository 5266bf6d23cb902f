package observability_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/emcapi/emcapi/internal/observability"
)

func TestLoggers(t *testing.T) {
	t.Run("CLI logger", func(t *testing.T) {
		observability.InitCLILogger("emcapi-test", true)
		require.NotNil(t, observability.CLILogger)

		observability.CLILogger.Debug("debug message", zap.String("mode", "verbose"))
	})

	t.Run("server logger takes precedence", func(t *testing.T) {
		observability.InitServerLogger("emcapi-test", "debug", "aurora")
		require.NotNil(t, observability.ServerLogger)
		require.Same(t, observability.ServerLogger, observability.Logger())

		observability.ServerLogger.Info("structured message", zap.String("component", "test"))
	})
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]string{
		"trace":   "TRACE",
		"DEBUG":   "DEBUG",
		"warning": "WARN",
		"error":   "ERROR",
		"":        "INFO",
		"bogus":   "INFO",
	}
	for input, want := range cases {
		require.Equal(t, want, observability.ParseLogLevelForTest(input), input)
	}
}
