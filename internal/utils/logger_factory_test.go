package utils_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitcat/internal/utils"
)

func TestLoggerFactoryCreateLogger(testInstance *testing.T) {
	testCases := []struct {
		name          string
		logLevel      utils.LogLevel
		logFormat     utils.LogFormat
		expectFailure bool
	}{
		{name: "structured_info", logLevel: utils.LogLevelInfo, logFormat: utils.LogFormatStructured},
		{name: "structured_debug", logLevel: utils.LogLevelDebug, logFormat: utils.LogFormatStructured},
		{name: "console_warn", logLevel: utils.LogLevelWarn, logFormat: utils.LogFormatConsole},
		{name: "console_error", logLevel: utils.LogLevelError, logFormat: utils.LogFormatConsole},
		{name: "unknown_level", logLevel: utils.LogLevel("verbose"), logFormat: utils.LogFormatStructured, expectFailure: true},
		{name: "unknown_format", logLevel: utils.LogLevelInfo, logFormat: utils.LogFormat("plain"), expectFailure: true},
	}

	loggerFactory := utils.NewLoggerFactory()

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			logger, creationError := loggerFactory.CreateLogger(testCase.logLevel, testCase.logFormat)
			if testCase.expectFailure {
				require.Error(testInstance, creationError)
				require.Nil(testInstance, logger)
				return
			}
			require.NoError(testInstance, creationError)
			require.NotNil(testInstance, logger)
		})
	}
}
