//go:build rp2040 || rp2350

package platform

import (
	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
)

// DefaultPinFactory maps logical numbers directly to machine.Pin(n), which
// matches RP2 GP numbering.
func DefaultPinFactory() PinFactory { return rp2PinFactory{} }

type rp2PinFactory struct{}

func (rp2PinFactory) ByNumber(n int) (GPIOPin, bool) {
	// RP2 user GPIOs are GP0..GP28.
	if n < 0 || n > 28 {
		return nil, false
	}
	return &rp2Pin{p: machine.Pin(n), n: n}, true
}

type rp2Pin struct {
	p machine.Pin
	n int
}

func (r *rp2Pin) ConfigureInput(pull Pull) error {
	mode := machine.PinInput
	switch pull {
	case PullUp:
		mode = machine.PinInputPullup
	case PullDown:
		mode = machine.PinInputPulldown
	}
	r.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (r *rp2Pin) ConfigureOutput(initial bool) error {
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Set(initial)
	return nil
}

func (r *rp2Pin) Set(level bool) { r.p.Set(level) }
func (r *rp2Pin) Get() bool      { return r.p.Get() }
func (r *rp2Pin) Number() int    { return r.n }

// Serial is the controller's command input. It satisfies input.Source and
// input.Notifier.
type Serial struct{ u *uartx.UART }

// OpenSerial configures uart0 on GP0/GP1 at baud (0 => uartx default).
func OpenSerial(baud uint32) (*Serial, error) {
	hw := uartx.UART0
	if err := hw.Configure(uartx.UARTConfig{
		BaudRate: baud,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	}); err != nil {
		return nil, err
	}
	return &Serial{u: hw}, nil
}

func (s *Serial) Buffered() int               { return s.u.Buffered() }
func (s *Serial) Readable() <-chan struct{}   { return s.u.Readable() }
func (s *Serial) Read(p []byte) (int, error)  { return s.u.Read(p) }
func (s *Serial) Write(p []byte) (int, error) { return s.u.Write(p) }
