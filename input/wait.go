// Package input waits, with a bounded budget, for bytes to arrive on a
// serial-like source.
package input

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"

	"ledarena-go/errcode"
	"ledarena-go/x/timex"
)

// DefaultTimeout is the controller's serial wait budget.
const DefaultTimeout = 10 * time.Millisecond

const (
	minInterval     = 50 * time.Microsecond
	maxInterval     = 10 * time.Millisecond
	defaultInterval = time.Millisecond
)

// Source reports how many received bytes are waiting to be read.
type Source interface {
	Buffered() int
}

// Notifier is optionally implemented by a Source that can signal new data.
type Notifier interface {
	Readable() <-chan struct{}
}

// Outcome tells the caller why a wait ended.
type Outcome uint8

const (
	Ready Outcome = iota
	TimedOut
	Canceled
)

func (o Outcome) String() string {
	switch o {
	case Ready:
		return "ready"
	case TimedOut:
		return "timed_out"
	case Canceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Err maps an outcome to an error code; Ready is nil.
func (o Outcome) Err() error {
	switch o {
	case Ready:
		return nil
	case TimedOut:
		return errcode.Timeout
	default:
		return errcode.Canceled
	}
}

// Rule selects how the elapsed-time test is evaluated.
type Rule uint8

const (
	// RuleElapsed times out once now-start exceeds the budget.
	RuleElapsed Rule = iota
	// RuleInverted evaluates start-now > budget in signed arithmetic. On a
	// non-decreasing clock it never fires; only ctx ends the wait.
	RuleInverted
	// RuleInvertedWrap evaluates start-now > budget in unsigned 32-bit
	// millisecond arithmetic, as the controller does with an int start and
	// an unsigned millis(). Any clock advance wraps to a huge value, so the
	// wait ends about 1 ms after it starts.
	RuleInvertedWrap
)

func (r Rule) String() string {
	switch r {
	case RuleInverted:
		return "inverted"
	case RuleInvertedWrap:
		return "inverted_wrap"
	default:
		return "elapsed"
	}
}

// ParseRule accepts the names produced by Rule.String.
func ParseRule(s string) (Rule, error) {
	switch s {
	case "", "elapsed":
		return RuleElapsed, nil
	case "inverted":
		return RuleInverted, nil
	case "inverted_wrap":
		return RuleInvertedWrap, nil
	}
	return 0, errcode.Wrap(errcode.InvalidParams, "parse_rule", s, nil)
}

func (r Rule) expired(startMs, nowMs, budgetMs int64) bool {
	switch r {
	case RuleInverted:
		return startMs-nowMs > budgetMs
	case RuleInvertedWrap:
		return uint32(startMs)-uint32(nowMs) > uint32(budgetMs)
	default:
		return nowMs-startMs > budgetMs
	}
}

// Config holds the waiter timings. Zero values select defaults.
type Config struct {
	Timeout  time.Duration // 0 => DefaultTimeout; <0 => zero budget
	Interval time.Duration // clamp 50µs..10ms
	Rule     Rule
	Clock    clock.Clock // nil => wall clock
}

// Waiter holds immutable settings; every Wait keeps its own start time, so
// one Waiter may be shared between goroutines.
type Waiter struct {
	budgetMs int64
	interval time.Duration
	rule     Rule
	clk      clock.Clock
}

func New(cfg Config) *Waiter {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	iv := cfg.Interval
	switch {
	case iv == 0:
		iv = defaultInterval
	case iv < minInterval:
		iv = minInterval
	case iv > maxInterval:
		iv = maxInterval
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}
	return &Waiter{
		budgetMs: timex.BudgetMs(timeout),
		interval: iv,
		rule:     cfg.Rule,
		clk:      clk,
	}
}

// Budget returns the effective timeout.
func (w *Waiter) Budget() time.Duration { return time.Duration(w.budgetMs) * time.Millisecond }

func (w *Waiter) Rule() Rule { return w.rule }

// Wait blocks until src has buffered input, the budget is exhausted under
// the waiter's rule, or ctx is done.
func (w *Waiter) Wait(ctx context.Context, src Source) Outcome {
	var readable <-chan struct{}
	if n, ok := src.(Notifier); ok {
		readable = n.Readable()
	}
	start := timex.NowMs(w.clk)
	for {
		if src.Buffered() > 0 {
			return Ready
		}
		if w.rule.expired(start, timex.NowMs(w.clk), w.budgetMs) {
			return TimedOut
		}
		t := w.clk.Timer(w.interval)
		select {
		case <-ctx.Done():
			t.Stop()
			if src.Buffered() > 0 {
				return Ready
			}
			return Canceled
		case <-readable:
			t.Stop()
		case <-t.C:
		}
	}
}

// UntilAvailable waits on src with DefaultTimeout and the corrected rule.
func UntilAvailable(ctx context.Context, src Source) Outcome {
	return New(Config{}).Wait(ctx, src)
}
