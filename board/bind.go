package board

import (
	"strconv"

	"ledarena-go/errcode"
	"ledarena-go/platform"
)

// Lines holds the configured pins for a layout.
type Lines struct {
	Latch        platform.GPIOPin
	Clock        platform.GPIOPin
	Data         platform.GPIOPin
	OutputEnable platform.GPIOPin
	Next         platform.GPIOPin
}

// Pin returns the line bound to r, or nil.
func (ls *Lines) Pin(r Role) platform.GPIOPin {
	switch r {
	case RoleLatch:
		return ls.Latch
	case RoleClock:
		return ls.Clock
	case RoleData:
		return ls.Data
	case RoleOutputEnable:
		return ls.OutputEnable
	case RoleNext:
		return ls.Next
	}
	return nil
}

// NextLevel reads the DAQ trigger input.
func (ls *Lines) NextLevel() bool { return ls.Next.Get() }

// Bind validates l, then claims and configures every line from f. The
// shift-register lines start low, OE starts high so the register outputs
// stay disabled, and Next is a pulled-down input.
func Bind(f platform.PinFactory, l Layout) (*Lines, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	ls := &Lines{}
	for _, a := range l.Assignments() {
		p, ok := f.ByNumber(a.Pin)
		if !ok {
			return nil, errcode.Wrap(errcode.UnknownPin, "bind",
				a.Role.String()+" pin "+strconv.Itoa(a.Pin), nil)
		}
		var err error
		switch {
		case a.Dir == Input:
			err = p.ConfigureInput(platform.PullDown)
		case a.Role == RoleOutputEnable:
			err = p.ConfigureOutput(true)
		default:
			err = p.ConfigureOutput(false)
		}
		if err != nil {
			return nil, errcode.Wrap(errcode.Error, "bind", a.Role.String(), err)
		}
		switch a.Role {
		case RoleLatch:
			ls.Latch = p
		case RoleClock:
			ls.Clock = p
		case RoleData:
			ls.Data = p
		case RoleOutputEnable:
			ls.OutputEnable = p
		case RoleNext:
			ls.Next = p
		}
	}
	return ls, nil
}
