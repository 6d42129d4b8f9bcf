// Package debug is an opt-in file logger for timing and device
// diagnostics. While disabled every call returns after a mutex check, so
// the hooks can stay in hot paths.
package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	mu     sync.Mutex
	sink   *os.File
	counts map[string]int
)

// Enable starts logging to ~/.config/rgbseq/debug.log
func Enable() error {
	home, _ := os.UserHomeDir()
	return EnableAt(filepath.Join(home, ".config", "rgbseq", "debug.log"))
}

// EnableAt starts logging to path, truncating it. A second call while
// enabled keeps the first sink.
func EnableAt(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if sink != nil {
		return nil
	}

	os.MkdirAll(filepath.Dir(path), 0755)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	sink = f
	counts = make(map[string]int)
	writeLine("debug", "=== logging started ===")
	return nil
}

// Disable stops logging and closes the file.
func Disable() {
	mu.Lock()
	defer mu.Unlock()

	if sink != nil {
		sink.Close()
		sink = nil
	}
}

// Log writes one timestamped line under a category.
func Log(category, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if sink == nil {
		return
	}
	writeLine(category, format, args...)
}

// LogEvery writes every nth call per category+format pair. Use it for
// tick-frequency events like frame pushes and DMX sends.
func LogEvery(n int, category, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if sink == nil {
		return
	}
	key := category + format
	counts[key]++
	if c := counts[key]; c%n == 0 {
		writeLine(category, format+" (count=%d)", append(args, c)...)
	}
}

// writeLine formats and syncs one line. Callers hold mu. The sync keeps
// the tail readable after a crash.
func writeLine(category, format string, args ...any) {
	ts := time.Now().Format("15:04:05.000")
	fmt.Fprintf(sink, "[%s] %-10s %s\n", ts, category, fmt.Sprintf(format, args...))
	sink.Sync()
}
