package source

import (
	"os"
	"path/filepath"
	"testing"

	"errlens/src/internal/core"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *log.Logger {
	return log.NewLogger()
}

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "unity_errors.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewFileSource(t *testing.T) {
	t.Run("EmptyPath", func(t *testing.T) {
		fs, err := NewFileSource("", newTestLogger())
		assert.Error(t, err)
		assert.Nil(t, fs)
	})

	t.Run("NonExistentPathAccepted", func(t *testing.T) {
		fs, err := NewFileSource("/no/such/file.json", newTestLogger())
		assert.NoError(t, err)
		assert.NotNil(t, fs)
	})
}

func TestFileSource_Read(t *testing.T) {
	logger := newTestLogger()

	t.Run("MissingFileYieldsEmpty", func(t *testing.T) {
		fs, err := NewFileSource(filepath.Join(t.TempDir(), "absent.json"), logger)
		require.NoError(t, err)

		entries := fs.Read()
		assert.Empty(t, entries)
		assert.Zero(t, fs.GetStats().ParseFailures)
	})

	t.Run("MalformedJSONYieldsEmpty", func(t *testing.T) {
		path := writeSource(t, `{"logs": [truncated mid-wri`)
		fs, err := NewFileSource(path, logger)
		require.NoError(t, err)

		entries := fs.Read()
		assert.Empty(t, entries)
		assert.Equal(t, uint64(1), fs.GetStats().ParseFailures)
	})

	t.Run("MissingLogsKeyYieldsEmpty", func(t *testing.T) {
		path := writeSource(t, `{"version": 2}`)
		fs, err := NewFileSource(path, logger)
		require.NoError(t, err)

		entries := fs.Read()
		assert.Empty(t, entries)
		assert.Zero(t, fs.GetStats().ParseFailures)
	})

	t.Run("EntriesInSourceOrder", func(t *testing.T) {
		path := writeSource(t, `{"logs": [
			{"timestamp": "T1", "logType": "Error", "message": "first", "stackTrace": "at A()", "scene": "Main"},
			{"timestamp": "T2", "logType": "Warning", "message": "second", "stackTrace": "", "scene": "Menu"}
		]}`)
		fs, err := NewFileSource(path, logger)
		require.NoError(t, err)

		entries := fs.Read()
		require.Len(t, entries, 2)
		assert.Equal(t, "first", entries[0].Message)
		assert.Equal(t, "second", entries[1].Message)
		assert.Equal(t, uint64(2), fs.GetStats().TotalEntries)
	})

	t.Run("MissingFieldsDefaulted", func(t *testing.T) {
		path := writeSource(t, `{"logs": [{"stackTrace": "at Foo()"}]}`)
		fs, err := NewFileSource(path, logger)
		require.NoError(t, err)

		entries := fs.Read()
		require.Len(t, entries, 1)
		assert.Equal(t, core.UnknownType, entries[0].LogType)
		assert.Equal(t, core.UnknownMessage, entries[0].Message)
		assert.Equal(t, core.UnknownTime, entries[0].Timestamp)
		assert.Equal(t, "at Foo()", entries[0].StackTrace)
	})

	t.Run("UnknownFieldsIgnored", func(t *testing.T) {
		path := writeSource(t, `{"logs": [{"logType": "Error", "message": "m", "timestamp": "T", "futureField": 42}], "extra": true}`)
		fs, err := NewFileSource(path, logger)
		require.NoError(t, err)

		entries := fs.Read()
		require.Len(t, entries, 1)
		assert.Equal(t, "Error", entries[0].LogType)
	})

	t.Run("SelfHealsAfterRewrite", func(t *testing.T) {
		path := writeSource(t, `not json`)
		fs, err := NewFileSource(path, logger)
		require.NoError(t, err)

		assert.Empty(t, fs.Read())

		require.NoError(t, os.WriteFile(path, []byte(`{"logs": [{"logType": "Error", "message": "m", "timestamp": "T"}]}`), 0644))
		assert.Len(t, fs.Read(), 1)
		assert.Equal(t, uint64(2), fs.GetStats().ReadCycles)
	})
}
