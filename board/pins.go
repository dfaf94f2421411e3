// Package board describes how the arena's shift-register chain and the DAQ
// trigger are wired to the controller.
//
// STCP, SHCP and DS are the SPI SS, SCK and MOSI lines feeding the shift
// registers. OE is PWM-driven and sets the overall brightness. Next is an
// input from the DAQ that advances the display to the next pattern.
package board

import (
	"strconv"

	"go.uber.org/multierr"

	"ledarena-go/errcode"
)

// Teensy 3.1 pin numbers.
const (
	STCPPin = 10
	SHCPPin = 13
	DSPin   = 11
	OEPin   = 3
	NextPin = 23
)

// Role names one wired line.
type Role uint8

const (
	RoleLatch Role = iota // STCP
	RoleClock             // SHCP
	RoleData              // DS
	RoleOutputEnable      // OE
	RoleNext
)

func (r Role) String() string {
	switch r {
	case RoleLatch:
		return "stcp"
	case RoleClock:
		return "shcp"
	case RoleData:
		return "ds"
	case RoleOutputEnable:
		return "oe"
	case RoleNext:
		return "next"
	default:
		return "role(" + strconv.Itoa(int(r)) + ")"
	}
}

// Direction of a line as seen from the controller.
type Direction uint8

const (
	Output Direction = iota
	PWM
	Input
)

func (d Direction) String() string {
	switch d {
	case PWM:
		return "pwm"
	case Input:
		return "input"
	default:
		return "output"
	}
}

// Assignment binds one role to one pin.
type Assignment struct {
	Role Role
	Pin  int
	Dir  Direction
}

// Layout is a full set of pin assignments.
type Layout struct {
	Name string
	STCP int
	SHCP int
	DS   int
	OE   int
	Next int
}

// Teensy31 is the stock controller wiring.
var Teensy31 = Layout{
	Name: "teensy31",
	STCP: STCPPin,
	SHCP: SHCPPin,
	DS:   DSPin,
	OE:   OEPin,
	Next: NextPin,
}

// Assignments lists the roles in a fixed order: latch, clock, data, OE, next.
func (l Layout) Assignments() []Assignment {
	return []Assignment{
		{RoleLatch, l.STCP, Output},
		{RoleClock, l.SHCP, Output},
		{RoleData, l.DS, Output},
		{RoleOutputEnable, l.OE, PWM},
		{RoleNext, l.Next, Input},
	}
}

// Validate rejects negative pins and roles that share a pin. Every problem
// is reported, not only the first.
func (l Layout) Validate() error {
	var err error
	owner := make(map[int]Role, 5)
	for _, a := range l.Assignments() {
		if a.Pin < 0 {
			err = multierr.Append(err, errcode.Wrap(errcode.UnknownPin, "validate",
				a.Role.String()+" pin "+strconv.Itoa(a.Pin), nil))
			continue
		}
		if prev, taken := owner[a.Pin]; taken {
			err = multierr.Append(err, errcode.Wrap(errcode.PinInUse, "validate",
				a.Role.String()+" and "+prev.String()+" share pin "+strconv.Itoa(a.Pin), nil))
			continue
		}
		owner[a.Pin] = a.Role
	}
	return err
}
