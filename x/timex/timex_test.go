package timex

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
)

func TestNowMsAndMillisFollowClock(t *testing.T) {
	m := clock.NewMock()
	start := NowMs(m)
	m.Add(25 * time.Millisecond)
	if got := NowMs(m) - start; got != 25 {
		t.Fatalf("NowMs delta=%d want 25", got)
	}
	if got := Millis(m) - uint32(start); got != 25 {
		t.Fatalf("Millis delta=%d want 25", got)
	}
}

func TestNowMsNilClock(t *testing.T) {
	before := time.Now().UnixMilli()
	got := NowMs(nil)
	if got < before {
		t.Fatalf("NowMs(nil)=%d earlier than %d", got, before)
	}
}

func TestBudgetMs(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want int64
	}{
		{0, 0},
		{-time.Second, 0},
		{10 * time.Millisecond, 10},
		{500 * time.Microsecond, 1},
		{10*time.Millisecond + 1, 11},
	}
	for _, tc := range cases {
		if got := BudgetMs(tc.d); got != tc.want {
			t.Errorf("BudgetMs(%v)=%d want %d", tc.d, got, tc.want)
		}
	}
}
