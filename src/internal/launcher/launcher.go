package launcher

import (
	"fmt"
	"os/exec"
	"runtime"
	"sync/atomic"

	"github.com/lixenwraith/log"
	"golang.org/x/time/rate"
)

// Launcher opens an artifact in an external tool.
type Launcher interface {
	Open(path string) error
}

// Disabled is a Launcher that never spawns anything. Used when the
// operator turns editor integration off; artifacts are still written.
type Disabled struct{}

func (Disabled) Open(string) error { return nil }

// editorCommand is one OS family's launch invocation; the artifact
// path is appended as the final argument.
type editorCommand struct {
	name string
	args []string
}

// Per-OS dispatch table. Anything not listed is an unsupported host
// and the operator is asked to open the artifact manually.
var editorCommands = map[string]editorCommand{
	"darwin":  {name: "open", args: []string{"-a", "Cursor"}},
	"linux":   {name: "code", args: nil},
	"windows": {name: "cmd", args: []string{"/c", "start", "cursor"}},
}

// EditorLauncher spawns the host editor on an artifact, best effort.
// The spawned process is fire-and-forget: its exit status is never
// inspected and its lifetime is independent of this process. A rate
// limiter caps launch frequency so an error storm does not spawn an
// editor window per entry; throttled launches are dropped silently
// apart from a debug log.
type EditorLauncher struct {
	command string // override; empty selects by OS family
	goos    string
	limiter *rate.Limiter
	logger  *log.Logger

	// Seam for tests; spawns the command without waiting.
	spawn func(name string, args ...string) error

	// Statistics
	totalLaunched  atomic.Uint64
	totalFailed    atomic.Uint64
	totalThrottled atomic.Uint64
}

// NewEditorLauncher creates a launcher. commandOverride, when
// non-empty, replaces OS-family dispatch. launchesPerMinute <= 0
// disables throttling.
func NewEditorLauncher(commandOverride string, launchesPerMinute, burst int, logger *log.Logger) *EditorLauncher {
	var limiter *rate.Limiter
	if launchesPerMinute > 0 {
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(float64(launchesPerMinute)/60.0), burst)
	}

	return &EditorLauncher{
		command: commandOverride,
		goos:    runtime.GOOS,
		limiter: limiter,
		logger:  logger,
		spawn:   spawnDetached,
	}
}

// Open issues one asynchronous launch of the editor with the artifact
// path as argument. It returns an error only so callers can surface an
// advisory; no failure here is ever fatal and nothing waits on the
// spawned process.
func (el *EditorLauncher) Open(path string) error {
	if el.limiter != nil && !el.limiter.Allow() {
		el.totalThrottled.Add(1)
		el.logger.Debug("msg", "Editor launch throttled",
			"component", "launcher",
			"path", path)
		return nil
	}

	cmd, err := el.resolveCommand()
	if err != nil {
		el.totalFailed.Add(1)
		return err
	}

	args := append(append([]string{}, cmd.args...), path)
	if err := el.spawn(cmd.name, args...); err != nil {
		el.totalFailed.Add(1)
		return fmt.Errorf("failed to launch %q: %w", cmd.name, err)
	}

	el.totalLaunched.Add(1)
	el.logger.Info("msg", "Opening artifact in editor",
		"component", "launcher",
		"command", cmd.name,
		"path", path)
	return nil
}

// GetStats returns launcher statistics.
func (el *EditorLauncher) GetStats() map[string]any {
	return map[string]any{
		"total_launched":  el.totalLaunched.Load(),
		"total_failed":    el.totalFailed.Load(),
		"total_throttled": el.totalThrottled.Load(),
	}
}

func (el *EditorLauncher) resolveCommand() (editorCommand, error) {
	if el.command != "" {
		return editorCommand{name: el.command}, nil
	}

	cmd, ok := editorCommands[el.goos]
	if !ok {
		return editorCommand{}, fmt.Errorf("unsupported host OS %q", el.goos)
	}
	return cmd, nil
}

// spawnDetached starts the command and releases it without waiting.
func spawnDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	// Detach; the editor outlives us and we never read its status.
	return cmd.Process.Release()
}
