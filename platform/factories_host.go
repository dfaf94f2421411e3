//go:build !rp2040 && !rp2350

package platform

import "sync"

// HostGPIOMax is the highest digital pin on a Teensy 3.1 header.
const HostGPIOMax = 33

// Mode records how a FakePin was last configured.
type Mode uint8

const (
	ModeUnset Mode = iota
	ModeInput
	ModeOutput
)

func (m Mode) String() string {
	switch m {
	case ModeInput:
		return "input"
	case ModeOutput:
		return "output"
	default:
		return "unset"
	}
}

// FakePin implements GPIOPin for host builds and tests.
type FakePin struct {
	mu     sync.RWMutex
	number int
	level  bool
	mode   Mode
	pull   Pull
}

func (p *FakePin) ConfigureInput(pull Pull) error {
	p.mu.Lock()
	p.mode = ModeInput
	p.pull = pull
	// A pulled input idles at its bias level until driven.
	p.level = pull == PullUp
	p.mu.Unlock()
	return nil
}

func (p *FakePin) ConfigureOutput(initial bool) error {
	p.mu.Lock()
	p.mode = ModeOutput
	p.pull = PullNone
	p.level = initial
	p.mu.Unlock()
	return nil
}

// Set drives the level. On an input it stands in for the external signal.
func (p *FakePin) Set(level bool) {
	p.mu.Lock()
	p.level = level
	p.mu.Unlock()
}

func (p *FakePin) Get() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.level
}

func (p *FakePin) Number() int { return p.number }

// State returns the configured mode and pull.
func (p *FakePin) State() (Mode, Pull) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.mode, p.pull
}

// HostPinFactory returns stable *FakePin instances per number.
type HostPinFactory struct {
	mu   sync.Mutex
	max  int
	pins map[int]*FakePin
}

// NewHostPinFactory serves pins 0..max.
func NewHostPinFactory(max int) *HostPinFactory {
	return &HostPinFactory{max: max, pins: make(map[int]*FakePin)}
}

func (f *HostPinFactory) ByNumber(n int) (GPIOPin, bool) {
	p, ok := f.pin(n)
	if !ok {
		return nil, false
	}
	return p, true
}

// Get exposes the underlying *FakePin for tests.
func (f *HostPinFactory) Get(n int) (*FakePin, bool) { return f.pin(n) }

func (f *HostPinFactory) pin(n int) (*FakePin, bool) {
	if n < 0 || n > f.max {
		return nil, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pins[n]
	if !ok {
		p = &FakePin{number: n}
		f.pins[n] = p
	}
	return p, true
}

// DefaultPinFactory provides the host GPIO factory.
func DefaultPinFactory() PinFactory { return NewHostPinFactory(HostGPIOMax) }
