package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		name     string
		logType  string
		expected Severity
	}{
		{name: "Error", logType: "Error", expected: Actionable},
		{name: "Exception", logType: "Exception", expected: Actionable},
		{name: "Assert", logType: "Assert", expected: Actionable},
		{name: "Warning", logType: "Warning", expected: Informational},
		{name: "Log", logType: "Log", expected: Informational},
		{name: "LowercaseErrorNotMatched", logType: "error", expected: Informational},
		{name: "UppercaseExceptionNotMatched", logType: "EXCEPTION", expected: Informational},
		{name: "Empty", logType: "", expected: Informational},
		{name: "Unknown", logType: "Unknown", expected: Informational},
		{name: "FutureLogType", logType: "Telemetry", expected: Informational},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Classify(tc.logType))
		})
	}
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "actionable", Actionable.String())
	assert.Equal(t, "informational", Informational.String())
	assert.Equal(t, "unknown", Severity(99).String())
}
