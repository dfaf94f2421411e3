// Package link carries bytes between the host and the arena controller over
// a serial port.
package link

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goburrow/serial"

	"ledarena-go/errcode"
	"ledarena-go/input"
)

const (
	DefaultBaud        = 115200
	DefaultReadTimeout = 50 * time.Millisecond
	DefaultRXSize      = 1024
)

// Config describes the serial port. Zero values select 115200 8N1, a 50 ms
// read timeout and a 1 KiB receive buffer.
type Config struct {
	Address     string
	BaudRate    int
	DataBits    int
	StopBits    int
	Parity      string // "N", "E" or "O"
	ReadTimeout time.Duration
	RXSize      int // clamp 64..64 KiB
}

func (c Config) serialConfig() *serial.Config {
	sc := &serial.Config{
		Address:  c.Address,
		BaudRate: c.BaudRate,
		DataBits: c.DataBits,
		StopBits: c.StopBits,
		Parity:   c.Parity,
		Timeout:  c.ReadTimeout,
	}
	if sc.BaudRate == 0 {
		sc.BaudRate = DefaultBaud
	}
	if sc.DataBits == 0 {
		sc.DataBits = 8
	}
	if sc.StopBits == 0 {
		sc.StopBits = 1
	}
	if sc.Parity == "" {
		sc.Parity = "N"
	}
	if sc.Timeout <= 0 {
		sc.Timeout = DefaultReadTimeout
	}
	return sc
}

// Link owns a port and a reader goroutine that fills a bounded RX buffer.
type Link struct {
	port io.ReadWriteCloser

	mu  sync.Mutex
	rx  []byte
	max int

	readable chan struct{}
	done     chan struct{}
	closed   atomic.Bool
	drops    atomic.Uint32
	wmu      sync.Mutex

	errMu   sync.Mutex
	readErr error
}

var _ input.Source = (*Link)(nil)
var _ input.Notifier = (*Link)(nil)

// Open opens the serial port described by cfg and starts the reader.
func Open(cfg Config) (*Link, error) {
	if cfg.Address == "" {
		return nil, errcode.Wrap(errcode.InvalidParams, "open", "empty port address", nil)
	}
	p, err := serial.Open(cfg.serialConfig())
	if err != nil {
		return nil, errcode.Wrap(errcode.PortClosed, "open", cfg.Address, err)
	}
	return New(p, cfg.RXSize), nil
}

// New wraps an already open port. The link takes ownership of it.
func New(port io.ReadWriteCloser, rxSize int) *Link {
	switch {
	case rxSize <= 0:
		rxSize = DefaultRXSize
	case rxSize < 64:
		rxSize = 64
	case rxSize > 64*1024:
		rxSize = 64 * 1024
	}
	l := &Link{
		port:     port,
		rx:       make([]byte, 0, rxSize),
		max:      rxSize,
		readable: make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	go l.readLoop()
	return l
}

func (l *Link) readLoop() {
	defer close(l.done)
	buf := make([]byte, 256)
	for {
		n, err := l.port.Read(buf)
		if n > 0 {
			l.push(buf[:n])
			if err == nil {
				continue
			}
		}
		// An idle port times out; anything else, including a zero-byte read
		// from a hung-up tty, ends the reader.
		if errors.Is(err, serial.ErrTimeout) {
			continue
		}
		if l.closed.Load() {
			return
		}
		if err == nil {
			err = io.EOF
		}
		l.errMu.Lock()
		l.readErr = err
		l.errMu.Unlock()
		l.signal()
		return
	}
}

func (l *Link) signal() {
	select {
	case l.readable <- struct{}{}:
	default:
	}
}

func (l *Link) push(p []byte) {
	l.mu.Lock()
	before := len(l.rx)
	space := l.max - before
	keep := p
	if len(keep) > space {
		keep = keep[:space]
		l.drops.Add(uint32(len(p) - space))
	}
	l.rx = append(l.rx, keep...)
	l.mu.Unlock()
	if before == 0 && len(keep) > 0 {
		l.signal()
	}
}

// Buffered reports received bytes not yet read.
func (l *Link) Buffered() int {
	l.mu.Lock()
	n := len(l.rx)
	l.mu.Unlock()
	return n
}

// Readable signals an empty to non-empty transition of the RX buffer.
func (l *Link) Readable() <-chan struct{} { return l.readable }

// Read copies buffered bytes into p without blocking. It returns 0, nil when
// nothing is buffered.
func (l *Link) Read(p []byte) (int, error) {
	l.mu.Lock()
	n := copy(p, l.rx)
	l.rx = l.rx[:copy(l.rx, l.rx[n:])]
	l.mu.Unlock()
	if n == 0 {
		if err := l.dead("read"); err != nil {
			return 0, err
		}
	}
	return n, nil
}

// dead reports why no more input can arrive: the link was closed or the
// reader stopped.
func (l *Link) dead(op string) error {
	if l.closed.Load() {
		return errcode.PortClosed
	}
	if err := l.Err(); err != nil {
		return errcode.Wrap(errcode.PortClosed, op, "", err)
	}
	return nil
}

// Write sends p in full. Concurrent writers are serialised.
func (l *Link) Write(p []byte) (int, error) {
	if l.closed.Load() {
		return 0, errcode.PortClosed
	}
	l.wmu.Lock()
	defer l.wmu.Unlock()
	total := 0
	for total < len(p) {
		n, err := l.port.Write(p[total:])
		total += n
		if err != nil {
			return total, errcode.Wrap(errcode.Error, "write", "", err)
		}
		if n == 0 {
			return total, errcode.Wrap(errcode.Error, "write", "short write", io.ErrShortWrite)
		}
	}
	return total, nil
}

// ReadAll collects bytes until a wait ends without input. It mirrors a
// timed serial readall: the controller's reply is whatever arrives before
// the line goes quiet. Once the buffer is empty and the reader has stopped,
// it returns what it has with a port_closed error.
func (l *Link) ReadAll(ctx context.Context, w *input.Waiter) ([]byte, error) {
	var out []byte
	buf := make([]byte, 256)
	for {
		if l.Buffered() == 0 {
			if err := l.dead("read_all"); err != nil {
				return out, err
			}
		}
		switch oc := w.Wait(ctx, l); oc {
		case input.Ready:
			n, err := l.Read(buf)
			out = append(out, buf[:n]...)
			if err != nil {
				return out, err
			}
		case input.TimedOut:
			if err := l.dead("read_all"); err != nil && l.Buffered() == 0 {
				return out, err
			}
			return out, nil
		default:
			return out, oc.Err()
		}
	}
}

// Drops reports bytes discarded because the RX buffer was full.
func (l *Link) Drops() uint32 { return l.drops.Load() }

// Err returns the error that stopped the reader, if any.
func (l *Link) Err() error {
	l.errMu.Lock()
	defer l.errMu.Unlock()
	return l.readErr
}

// Close closes the port and waits briefly for the reader to exit.
func (l *Link) Close() error {
	if l.closed.Swap(true) {
		return nil
	}
	err := l.port.Close()
	select {
	case <-l.done:
	case <-time.After(time.Second):
	}
	return err
}
