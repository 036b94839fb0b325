package relay

import (
	"fmt"
	"sync"
)

// Level is the electrical level of an output line. High is the active level.
type Level bool

const (
	Low  Level = false
	High Level = true
)

func (l Level) String() string {
	if l {
		return "HIGH"
	}
	return "LOW"
}

// Line is a single digital output.
type Line interface {
	Drive(level Level) error
}

// Driver hands out output lines by GPIO number.
type Driver interface {
	Line(number int) (Line, error)
}

// MemoryDriver keeps line levels in memory. It backs the dry-run mode and tests.
type MemoryDriver struct {
	mu      sync.Mutex
	levels  map[int]Level
	history map[int][]Level
	fail    map[int]error
}

func NewMemoryDriver() *MemoryDriver {
	return &MemoryDriver{
		levels:  make(map[int]Level),
		history: make(map[int][]Level),
		fail:    make(map[int]error),
	}
}

// Line never fails; failures are injected with FailLine.
func (d *MemoryDriver) Line(number int) (Line, error) {
	return &memoryLine{d: d, number: number}, nil
}

// Level returns the last level driven on a line and whether it was ever driven.
func (d *MemoryDriver) Level(number int) (Level, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	l, ok := d.levels[number]
	return l, ok
}

// History returns every level driven on a line, oldest first.
func (d *MemoryDriver) History(number int) []Level {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Level(nil), d.history[number]...)
}

// FailLine makes every later Drive on the line return err.
func (d *MemoryDriver) FailLine(number int, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fail[number] = err
}

type memoryLine struct {
	d      *MemoryDriver
	number int
}

func (l *memoryLine) Drive(level Level) error {
	l.d.mu.Lock()
	defer l.d.mu.Unlock()
	if err := l.d.fail[l.number]; err != nil {
		return fmt.Errorf("drive GPIO%d: %w", l.number, err)
	}
	l.d.levels[l.number] = level
	l.d.history[l.number] = append(l.d.history[l.number], level)
	return nil
}
