package protocol

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"ledarena-go/errcode"
)

func TestDirectionCodes(t *testing.T) {
	want := map[Direction]uint16{
		Forward:              0,
		Backward:             1,
		Clockwise:            2,
		CounterClockwise:     3,
		SpotClockwise:        4,
		SpotCounterClockwise: 5,
	}
	for d, code := range want {
		if uint16(d) != code {
			t.Errorf("%s = %d, want %d", d, uint16(d), code)
		}
	}
	if len(Directions) != len(want) {
		t.Fatalf("Directions has %d entries, want %d", len(Directions), len(want))
	}
}

func TestCodesAreDistinct(t *testing.T) {
	seen := map[uint16]Direction{}
	for _, d := range Directions {
		if prev, dup := seen[uint16(d)]; dup {
			t.Fatalf("%s and %s share code %d", prev, d, uint16(d))
		}
		seen[uint16(d)] = d
		if uint16(GetCommand) == uint16(d) {
			t.Fatalf("GetCommand collides with %s", d)
		}
	}
	if GetCommand != 0xcc {
		t.Fatalf("GetCommand=%#x", GetCommand)
	}
	if CmdBrightness == CmdPattern {
		t.Fatal("sub-commands collide")
	}
}

func TestParseDirection(t *testing.T) {
	cases := []struct {
		in   string
		want Direction
	}{
		{"forward", Forward},
		{"Backward", Backward},
		{"clockwise", Clockwise},
		{"counterclockwise", CounterClockwise},
		{"spot clockwise", SpotClockwise},
		{"spot-counterclockwise", SpotCounterClockwise},
		{"spot_clockwise", SpotClockwise},
		{" 3 ", CounterClockwise},
		{"5", SpotCounterClockwise},
	}
	for _, tc := range cases {
		got, err := ParseDirection(tc.in)
		if err != nil {
			t.Errorf("ParseDirection(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseDirection(%q)=%s want %s", tc.in, got, tc.want)
		}
	}

	for _, bad := range []string{"", "up", "6", "-1", "spot"} {
		if _, err := ParseDirection(bad); !errors.Is(err, errcode.UnknownDirection) {
			t.Errorf("ParseDirection(%q) err=%v want unknown_direction", bad, err)
		}
	}
}

func TestDirectionStringRoundTrip(t *testing.T) {
	for _, d := range Directions {
		got, err := ParseDirection(d.String())
		if err != nil || got != d {
			t.Errorf("%s did not round-trip: %v %v", d, got, err)
		}
	}
	if s := Direction(9).String(); s != "direction(9)" {
		t.Errorf("undefined direction String()=%q", s)
	}
	if _, err := Direction(9).MarshalText(); err == nil {
		t.Error("MarshalText accepted an undefined direction")
	}
}

func TestBrightnessLevel(t *testing.T) {
	cases := []struct {
		percent float64
		want    uint16
	}{
		{0, 65535},
		{2, 65247},
		{50, 55670},
		{90, 32767},
		{99, 0},
		{99.5, 0},
		{100, 0},
		{150, 0},
		{-10, 65535},
		{math.NaN(), 65535},
	}
	for _, tc := range cases {
		if got := BrightnessLevel(tc.percent); got != tc.want {
			t.Errorf("BrightnessLevel(%v)=%d want %d", tc.percent, got, tc.want)
		}
	}
}

func TestEncodeBrightness(t *testing.T) {
	got := EncodeBrightness(65247)
	want := []byte{0xcc, 0x01, 0xdf, 0xfe}
	if !bytes.Equal(got, want) {
		t.Fatalf("frame=% x want % x", got, want)
	}
}

func TestEncodePattern(t *testing.T) {
	got, err := EncodePattern(SpotCounterClockwise, 300)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0xcc, 0x02, 0x05, 0x00, 0x2c, 0x01}
	if !bytes.Equal(got, want) {
		t.Fatalf("frame=% x want % x", got, want)
	}

	if _, err := EncodePattern(Direction(6), 10); errcode.Of(err) != errcode.UnknownDirection {
		t.Fatalf("undefined direction err=%v", err)
	}
}
