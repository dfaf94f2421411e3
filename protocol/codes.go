// Package protocol holds the byte codes shared by the arena firmware and the
// host, and the host-side frame encoders.
package protocol

import (
	"strconv"
	"strings"

	"ledarena-go/errcode"
	"ledarena-go/x/mathx"
)

// GetCommand is the opcode that starts every host frame.
const GetCommand byte = 0xcc

// Sub-commands following GetCommand.
const (
	CmdBrightness byte = 0x01
	CmdPattern    byte = 0x02
)

// Direction selects one of the arena's motion patterns.
type Direction uint16

const (
	Forward Direction = iota
	Backward
	Clockwise
	CounterClockwise
	SpotClockwise
	SpotCounterClockwise
)

// Directions lists every defined direction in code order.
var Directions = [...]Direction{
	Forward, Backward, Clockwise, CounterClockwise, SpotClockwise, SpotCounterClockwise,
}

var directionNames = [...]string{
	"forward",
	"backward",
	"clockwise",
	"counterclockwise",
	"spot clockwise",
	"spot counterclockwise",
}

func (d Direction) Valid() bool { return mathx.Between(int(d), int(Forward), int(SpotCounterClockwise)) }

func (d Direction) String() string {
	if !d.Valid() {
		return "direction(" + strconv.Itoa(int(d)) + ")"
	}
	return directionNames[d]
}

// ParseDirection accepts a host mode name ("spot clockwise"), the same name
// with '-' or '_' in place of the space, or a numeric code "0".."5".
func ParseDirection(s string) (Direction, error) {
	k := strings.ToLower(strings.TrimSpace(s))
	k = strings.NewReplacer("-", " ", "_", " ").Replace(k)
	for i, n := range directionNames {
		if k == n {
			return Direction(i), nil
		}
	}
	if n, err := strconv.Atoi(k); err == nil {
		if d := Direction(n); n >= 0 && d.Valid() {
			return d, nil
		}
	}
	return 0, errcode.Wrap(errcode.UnknownDirection, "parse_direction", strconv.Quote(s), nil)
}

// MarshalText and UnmarshalText let a Direction appear by name in config.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, errcode.UnknownDirection
	}
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(b []byte) error {
	v, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
