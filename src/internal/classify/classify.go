package classify

// Severity partitions log entries by how the pipeline reacts to them.
type Severity int

const (
	// Informational entries get a console notice and nothing else.
	Informational Severity = iota
	// Actionable entries are materialized as debug artifacts.
	Actionable
)

// Log types that warrant a debug artifact. Matching is exact and
// case-sensitive against the string the engine wrote; unrecognized or
// future log types fall through to Informational.
var actionableTypes = map[string]struct{}{
	"Error":     {},
	"Exception": {},
	"Assert":    {},
}

// Classify maps a source-provided log type to a severity.
func Classify(logType string) Severity {
	if _, ok := actionableTypes[logType]; ok {
		return Actionable
	}
	return Informational
}

// String returns the severity name.
func (s Severity) String() string {
	switch s {
	case Actionable:
		return "actionable"
	case Informational:
		return "informational"
	default:
		return "unknown"
	}
}
