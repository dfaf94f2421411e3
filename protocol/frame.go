package protocol

import (
	"math"

	"ledarena-go/errcode"
	"ledarena-go/x/mathx"
)

const (
	// MaxLevel is the full-scale OE duty value carried by a brightness frame.
	MaxLevel = math.MaxUint16

	DefaultBrightnessPercent = 2
	DefaultAngularSize       = 10
)

// BrightnessLevel maps a brightness percentage onto the OE duty value.
// OE is active low, so 0% is full scale and 100% is zero. The curve is
// log10(100-p)/2 of full scale; p is clamped to [0, 100] and the result to
// [0, MaxLevel].
func BrightnessLevel(percent float64) uint16 {
	if math.IsNaN(percent) {
		percent = 0
	}
	p := mathx.Clamp(percent, 0, 100)
	if p >= 100 {
		return 0
	}
	v := math.Log10(100-p) / 2 * MaxLevel
	// log10 of exact powers of ten can land a hair below the integer.
	v = math.Floor(v + 1e-9)
	return uint16(mathx.Clamp(v, 0, MaxLevel))
}

// EncodeBrightness returns the 4-byte set-brightness frame for an OE level.
func EncodeBrightness(level uint16) []byte {
	lo, hi := mathx.Split16(level)
	return []byte{GetCommand, CmdBrightness, lo, hi}
}

// EncodePattern returns the 6-byte pattern frame. Only defined directions
// are accepted.
func EncodePattern(d Direction, angularSize uint16) ([]byte, error) {
	if !d.Valid() {
		return nil, errcode.Wrap(errcode.UnknownDirection, "encode_pattern", d.String(), nil)
	}
	dlo, dhi := mathx.Split16(d)
	slo, shi := mathx.Split16(angularSize)
	return []byte{GetCommand, CmdPattern, dlo, dhi, slo, shi}, nil
}
