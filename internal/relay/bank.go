package relay

import (
	"fmt"
	"sync"

	"home_automation/internal/models"
)

// Bank owns the channel table and the output line behind every channel.
type Bank struct {
	mu       sync.Mutex
	channels []models.Channel
	lines    map[int]Line // by channel index
}

// NewBank claims one output line per channel. The table is copied.
func NewBank(table []models.Channel, drv Driver) (*Bank, error) {
	b := &Bank{
		channels: make([]models.Channel, len(table)),
		lines:    make(map[int]Line, len(table)),
	}
	copy(b.channels, table)

	seen := make(map[int]bool, len(table))
	for i, ch := range b.channels {
		if ch.Index != i {
			return nil, fmt.Errorf("channel table entry %d has index %d", i, ch.Index)
		}
		if seen[ch.Line] {
			return nil, fmt.Errorf("GPIO%d is assigned to more than one channel", ch.Line)
		}
		seen[ch.Line] = true

		line, err := drv.Line(ch.Line)
		if err != nil {
			return nil, fmt.Errorf("claim line for channel %d: %w", ch.Index, err)
		}
		b.lines[ch.Index] = line
	}
	return b, nil
}

// LevelFor returns the level a line is driven to for a commanded state.
// The relay board is active-low: a command of 0 (off) energises the line.
func LevelFor(desiredOn bool) Level {
	if desiredOn {
		return Low
	}
	return High
}

// SetChannel drives the channel's line and records the commanded state.
// It returns the state commanded before this call.
func (b *Bank) SetChannel(index int, desiredOn bool) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if index < 0 || index >= len(b.channels) {
		return false, fmt.Errorf("index %d: %w", index, ErrInvalidChannel)
	}
	prev := b.channels[index].On
	if err := b.lines[index].Drive(LevelFor(desiredOn)); err != nil {
		return prev, err
	}
	b.channels[index].On = desiredOn
	return prev, nil
}

// Channel returns a copy of one channel.
func (b *Bank) Channel(index int) (models.Channel, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if index < 0 || index >= len(b.channels) {
		return models.Channel{}, false
	}
	return b.channels[index], true
}

// Channels returns a copy of the whole table.
func (b *Bank) Channels() []models.Channel {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Channel, len(b.channels))
	copy(out, b.channels)
	return out
}

// Indices lists every configured channel index in table order.
func (b *Bank) Indices() []int {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]int, len(b.channels))
	for i, ch := range b.channels {
		out[i] = ch.Index
	}
	return out
}
