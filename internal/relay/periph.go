package relay

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// PeriphDriver drives real GPIO lines through periph.io.
type PeriphDriver struct{}

// NewPeriphDriver loads the host drivers. It fails on boards periph cannot detect.
func NewPeriphDriver() (*PeriphDriver, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init periph host: %w", err)
	}
	return &PeriphDriver{}, nil
}

func (PeriphDriver) Line(number int) (Line, error) {
	name := fmt.Sprintf("GPIO%d", number)
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("gpio line %s not found", name)
	}
	return periphLine{pin: p}, nil
}

type periphLine struct {
	pin gpio.PinIO
}

func (l periphLine) Drive(level Level) error {
	if err := l.pin.Out(gpio.Level(level)); err != nil {
		return fmt.Errorf("drive %s: %w", l.pin.Name(), err)
	}
	return nil
}
