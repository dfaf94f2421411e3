//go:build rp2040 || rp2350

// Command arena-fw brings up the arena controller lines on an RP2 board and
// reports how each serial wait ends.
package main

import (
	"context"
	"time"

	"ledarena-go/board"
	"ledarena-go/input"
	"ledarena-go/platform"
)

const baud = 115200

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("[arena] boot")

	lines, err := board.Bind(platform.DefaultPinFactory(), board.Teensy31)
	if err != nil {
		println("[arena] FAIL: bind:", err.Error())
		return
	}
	ser, err := platform.OpenSerial(baud)
	if err != nil {
		println("[arena] FAIL: uart:", err.Error())
		return
	}

	ctx := context.Background()
	w := input.New(input.Config{Timeout: input.DefaultTimeout})

	var ready, timedOut uint32
	tick := time.NewTicker(time.Second)
	defer tick.Stop()
	buf := make([]byte, 64)

	for {
		switch w.Wait(ctx, ser) {
		case input.Ready:
			ready++
			// Commands are not interpreted here; keep the buffer from filling.
			_, _ = ser.Read(buf)
		case input.TimedOut:
			timedOut++
		}
		select {
		case <-tick.C:
			println("[arena] ready", ready, "timeout", timedOut, "next", lines.NextLevel())
		default:
		}
	}
}
