package core

// LogEntry is a single record decoded from the engine's error log file.
// Entries are read-only snapshots of whatever the external writer
// produced; nothing downstream mutates them after Normalize.
type LogEntry struct {
	Timestamp  string `json:"timestamp"`
	LogType    string `json:"logType"`
	Message    string `json:"message"`
	StackTrace string `json:"stackTrace"`
	Scene      string `json:"scene"`
}

// Placeholder values substituted for fields the writer left out.
const (
	UnknownType    = "Unknown"
	UnknownMessage = "Unknown error"
	UnknownTime    = "Unknown time"
	UnknownScene   = "Unknown"
)

// Normalize fills missing fields with their placeholder values.
// An empty stack trace stays empty; the artifact renderer supplies
// its own placeholder text there.
func (e *LogEntry) Normalize() {
	if e.LogType == "" {
		e.LogType = UnknownType
	}
	if e.Message == "" {
		e.Message = UnknownMessage
	}
	if e.Timestamp == "" {
		e.Timestamp = UnknownTime
	}
	if e.Scene == "" {
		e.Scene = UnknownScene
	}
}

// ID returns the stable identity used for deduplication. Two entries
// with identical type, message, and timestamp are the same logical
// event, regardless of which read cycle produced them.
func (e LogEntry) ID() string {
	return e.LogType + ":" + e.Message + ":" + e.Timestamp
}
