package timex

import (
	"time"

	"github.com/benbjohnson/clock"
)

// NowMs returns Unix milliseconds from c as int64. A nil clock reads the
// wall clock.
func NowMs(c clock.Clock) int64 {
	if c == nil {
		return time.Now().UnixMilli()
	}
	return c.Now().UnixMilli()
}

// Millis mirrors an MCU millis() counter: the low 32 bits of NowMs.
func Millis(c clock.Clock) uint32 { return uint32(NowMs(c)) }

// BudgetMs converts a duration to whole milliseconds, rounding up so a
// sub-millisecond budget is never treated as zero.
func BudgetMs(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	ms := int64(d / time.Millisecond)
	if d%time.Millisecond != 0 {
		ms++
	}
	return ms
}
