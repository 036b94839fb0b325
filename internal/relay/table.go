package relay

import (
	"errors"
	"fmt"
	"strconv"

	"home_automation/internal/models"
)

// ErrInvalidChannel is returned for an index outside the channel table.
var ErrInvalidChannel = errors.New("invalid relay channel")

// DefaultTable maps virtual pins V0..V7 to the GPIO lines of the 8-way relay board.
// Both the controller and the audit server resolve physical lines through it.
var DefaultTable = []models.Channel{
	{Index: 0, Line: 12, Label: "Relay 1"},
	{Index: 1, Line: 13, Label: "Relay 2"},
	{Index: 2, Line: 14, Label: "Relay 3"},
	{Index: 3, Line: 15, Label: "Relay 4"},
	{Index: 4, Line: 21, Label: "Relay 5"},
	{Index: 5, Line: 23, Label: "Relay 6"},
	{Index: 6, Line: 25, Label: "Relay 7"},
	{Index: 7, Line: 26, Label: "Relay 8"},
}

// LineFor resolves the physical line of a channel given its textual pin ("0".."7").
func LineFor(table []models.Channel, pin string) (int, error) {
	idx, err := strconv.Atoi(pin)
	if err != nil {
		return 0, fmt.Errorf("pin %q: %w", pin, ErrInvalidChannel)
	}
	for _, ch := range table {
		if ch.Index == idx {
			return ch.Line, nil
		}
	}
	return 0, fmt.Errorf("pin %d: %w", idx, ErrInvalidChannel)
}

// StatusMessage is the human-readable line for a relay command.
func StatusMessage(pin string, line int, value string) string {
	return fmt.Sprintf("Virtual pin V%s mapped to relay GPIO%d changed state to %s", pin, line, value)
}
