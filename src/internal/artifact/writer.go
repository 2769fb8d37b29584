package artifact

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"text/template"
	"time"
	"unicode"

	"errlens/src/internal/core"

	"github.com/lixenwraith/log"
)

const (
	// Length of the message excerpt used in filenames, counted in
	// source characters before filler substitution.
	maxMessagePrefix = 50
	fillerRune       = '_'
	extension        = ".md"

	// Rendered into the stack block when the entry carries none.
	noStackTrace = "No stack trace available"

	filenameTimeLayout = "2006-01-02_15-04-05"
)

// The fixed document rendered for every actionable entry. Content is
// static apart from the entry fields.
const documentTemplate = `# {{.LogType}}: {{.Message}}

## Error Details
- **Type:** {{.LogType}}
- **Timestamp:** {{.Timestamp}}
- **Scene:** {{.Scene}}

## Stack Trace
` + "```" + `
{{.StackTrace}}
` + "```" + `

## Debugging Tips
1. Check the error message above - what is it trying to tell you?
2. Review the stack trace to find the problematic code location
3. Look at the scene name - what was happening when this occurred?
4. Common issues:
   - NullReferenceException: Trying to use an object that doesn't exist
   - OutOfRangeException: Accessing array/list index that's out of bounds
   - ArgumentException: Invalid argument passed to a function
   - MissingComponentException: Missing required component on GameObject

## Next Steps
1. Ask your coding assistant: "Help me debug this {{.LogType}}"
2. Provide context about what was happening when the error occurred
3. Ask for suggestions on how to fix the issue

---
*Auto-generated debug file from errlens*
`

var docTmpl = template.Must(template.New("artifact").Parse(documentTemplate))

// Writer renders actionable entries into Markdown debug artifacts
// under a dedicated directory. Artifacts are created once and never
// updated or deleted. Filenames carry second-precision timestamps;
// two entries of the same type and message prefix within the same
// second overwrite each other, last write wins.
type Writer struct {
	dir    string
	logger *log.Logger
	now    func() time.Time

	// Statistics
	totalWritten  atomic.Uint64
	writeFailures atomic.Uint64
}

// NewWriter creates a writer targeting dir. The directory is created
// lazily on first write, not here.
func NewWriter(dir string, logger *log.Logger) (*Writer, error) {
	if dir == "" {
		return nil, fmt.Errorf("artifact directory cannot be empty")
	}

	return &Writer{
		dir:    dir,
		logger: logger,
		now:    time.Now,
	}, nil
}

// Write renders the entry and persists it, returning the artifact
// path. A failure here aborts the pipeline for this entry only.
func (w *Writer) Write(entry core.LogEntry) (string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		w.writeFailures.Add(1)
		return "", fmt.Errorf("failed to create artifact directory: %w", err)
	}

	path := filepath.Join(w.dir, w.filename(entry))

	content, err := render(entry)
	if err != nil {
		w.writeFailures.Add(1)
		return "", fmt.Errorf("failed to render artifact: %w", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		w.writeFailures.Add(1)
		return "", fmt.Errorf("failed to write artifact: %w", err)
	}

	w.totalWritten.Add(1)
	w.logger.Info("msg", "Debug artifact created",
		"component", "artifact_writer",
		"path", path,
		"type", entry.LogType)

	return path, nil
}

// Dir returns the artifact output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// GetStats returns writer statistics.
func (w *Writer) GetStats() map[string]any {
	return map[string]any{
		"directory":      w.dir,
		"total_written":  w.totalWritten.Load(),
		"write_failures": w.writeFailures.Load(),
	}
}

// filename builds {timestamp}_{logType}_{sanitizedMessage}.md with a
// lexicographically sortable timestamp component.
func (w *Writer) filename(entry core.LogEntry) string {
	ts := w.now().Format(filenameTimeLayout)
	return ts + "_" + entry.LogType + "_" + sanitizeMessage(entry.Message) + extension
}

func render(entry core.LogEntry) ([]byte, error) {
	data := map[string]string{
		"LogType":    entry.LogType,
		"Message":    entry.Message,
		"Timestamp":  entry.Timestamp,
		"Scene":      entry.Scene,
		"StackTrace": entry.StackTrace,
	}
	if data["Scene"] == "" {
		data["Scene"] = core.UnknownScene
	}
	if data["StackTrace"] == "" {
		data["StackTrace"] = noStackTrace
	}

	var buf bytes.Buffer
	if err := docTmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// sanitizeMessage truncates the message to maxMessagePrefix characters
// and replaces every non-alphanumeric character with the filler.
func sanitizeMessage(msg string) string {
	runes := []rune(msg)
	if len(runes) > maxMessagePrefix {
		runes = runes[:maxMessagePrefix]
	}
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			runes[i] = fillerRune
		}
	}
	return string(runes)
}
