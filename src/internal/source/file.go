package source

import (
	"encoding/json"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"errlens/src/internal/core"

	"github.com/lixenwraith/log"
)

// FileSource reads the engine's JSON error log. Every call to Read
// performs a full independent read of whatever content currently
// exists; no lock is held between calls, since an external process is
// expected to be appending to the file concurrently.
type FileSource struct {
	path   string
	logger *log.Logger

	// Statistics
	totalEntries  atomic.Uint64
	readCycles    atomic.Uint64
	parseFailures atomic.Uint64
	lastReadTime  atomic.Value // time.Time
}

// logDocument is the top-level shape of the source file. Unknown
// fields are ignored, there is no schema version.
type logDocument struct {
	Logs []core.LogEntry `json:"logs"`
}

// SourceStats contains statistics about a source.
type SourceStats struct {
	Path          string
	TotalEntries  uint64
	ReadCycles    uint64
	ParseFailures uint64
	LastReadTime  time.Time
}

// NewFileSource creates a source for the given log file path. The file
// does not need to exist yet; a missing file means the engine has not
// written anything.
func NewFileSource(path string, logger *log.Logger) (*FileSource, error) {
	if path == "" {
		return nil, fmt.Errorf("source file path cannot be empty")
	}

	fs := &FileSource{
		path:   path,
		logger: logger,
	}
	fs.lastReadTime.Store(time.Time{})

	return fs, nil
}

// Read returns all entries currently present in the source file, in
// the order the writer appended them. A missing file is "waiting for
// first data" and yields an empty slice. A file caught mid-write (or
// otherwise malformed) yields an empty slice for this cycle only; the
// next cycle re-reads from scratch.
func (fs *FileSource) Read() []core.LogEntry {
	fs.readCycles.Add(1)
	fs.lastReadTime.Store(time.Now())

	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		fs.parseFailures.Add(1)
		fs.logger.Warn("msg", "Failed to read source file",
			"component", "file_source",
			"path", fs.path,
			"error", err)
		return nil
	}

	var doc logDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		fs.parseFailures.Add(1)
		fs.logger.Warn("msg", "Failed to parse source file",
			"component", "file_source",
			"path", fs.path,
			"error", err)
		return nil
	}

	for i := range doc.Logs {
		doc.Logs[i].Normalize()
	}

	fs.totalEntries.Add(uint64(len(doc.Logs)))
	return doc.Logs
}

// Path returns the monitored file path.
func (fs *FileSource) Path() string {
	return fs.path
}

// GetStats returns the source's statistics.
func (fs *FileSource) GetStats() SourceStats {
	lastRead, _ := fs.lastReadTime.Load().(time.Time)

	return SourceStats{
		Path:          fs.path,
		TotalEntries:  fs.totalEntries.Load(),
		ReadCycles:    fs.readCycles.Load(),
		ParseFailures: fs.parseFailures.Load(),
		LastReadTime:  lastRead,
	}
}
