package repository

import (
	"fmt"
	"os"
	"sync"
)

// FileLineLog appends lines to a plain text file. The file is opened and
// closed per line so it can be rotated or tailed while the server runs.
type FileLineLog struct {
	mu   sync.Mutex
	path string
}

func NewFileLineLog(path string) *FileLineLog { return &FileLineLog{path: path} }

func (l *FileLineLog) Path() string { return l.path }

// Append writes line followed by a newline. Concurrent calls never interleave.
func (l *FileLineLog) Append(line string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", l.path, err)
	}
	if _, err := f.WriteString(line + "\n"); err != nil {
		_ = f.Close()
		return fmt.Errorf("append to %s: %w", l.path, err)
	}
	return f.Close()
}
