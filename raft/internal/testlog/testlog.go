// Package testlog installs a logrus test hook so _test.go files across the
// raft package can assert on "logged but not raised" conditions (spec §7):
// non-monotonic fetch warnings, high-watermark regressions, and info-level
// high-watermark establishment.
package testlog

import (
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Hook records every entry logged while installed.
type Hook struct {
	mu      sync.Mutex
	entries []logrus.Entry
}

// Install attaches h to logrus's standard logger and returns a teardown
// function that detaches it again.
func Install() (*Hook, func()) {
	h := &Hook{}
	logrus.AddHook(h)
	return h, func() { logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks)) }
}

func (h *Hook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *Hook) Fire(e *logrus.Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, *e)
	return nil
}

// Entries returns every entry captured so far at or above the given level.
func (h *Hook) Entries(level logrus.Level) []logrus.Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []logrus.Entry
	for _, e := range h.entries {
		if e.Level <= level {
			out = append(out, e)
		}
	}
	return out
}

// ContainsMessageSubstring reports whether any captured entry's message
// contains substr.
func (h *Hook) ContainsMessageSubstring(substr string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, e := range h.entries {
		if strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
