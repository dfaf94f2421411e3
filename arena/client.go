// Package arena drives the LED arena controller from the host.
package arena

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"

	"ledarena-go/errcode"
	"ledarena-go/input"
	"ledarena-go/protocol"
)

// Conn is the byte link to the controller; *link.Link satisfies it.
type Conn interface {
	io.Writer
	input.Source
	ReadAll(ctx context.Context, w *input.Waiter) ([]byte, error)
	Close() error
}

// DefaultReplyTimeout is the quiet gap that ends a reply, matching the
// host's serial read timeout.
const DefaultReplyTimeout = 50 * time.Millisecond

// Client sends display commands and collects the controller's replies.
// Commands are written in call order.
type Client struct {
	conn   Conn
	waiter *input.Waiter
	log    *zap.Logger
}

// New wraps conn. A reply is complete once the line has been quiet for
// replyTimeout (0 selects DefaultReplyTimeout). The controller's own wait
// rule does not apply here; replies always end on elapsed quiet time or ctx.
// A nil logger is a no-op.
func New(conn Conn, replyTimeout time.Duration, logger *zap.Logger) *Client {
	if replyTimeout <= 0 {
		replyTimeout = DefaultReplyTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		conn:   conn,
		waiter: input.New(input.Config{Timeout: replyTimeout, Rule: input.RuleElapsed}),
		log:    logger,
	}
}

// ReplyTimeout returns the quiet gap that completes a reply.
func (c *Client) ReplyTimeout() time.Duration { return c.waiter.Budget() }

// SetBrightness sets overall brightness in percent (clamped to 0..100) and
// returns the controller's reply.
func (c *Client) SetBrightness(ctx context.Context, percent float64) ([]byte, error) {
	level := protocol.BrightnessLevel(percent)
	c.log.Debug("set brightness", zap.Float64("percent", percent), zap.Uint16("level", level))
	return c.exchange(ctx, "set_brightness", protocol.EncodeBrightness(level))
}

// SendPattern selects a motion pattern and its angular size in degrees.
func (c *Client) SendPattern(ctx context.Context, d protocol.Direction, angularSize uint16) ([]byte, error) {
	frame, err := protocol.EncodePattern(d, angularSize)
	if err != nil {
		return nil, err
	}
	c.log.Debug("send pattern", zap.Stringer("mode", d), zap.Uint16("angular_size", angularSize))
	return c.exchange(ctx, "send_pattern", frame)
}

// Drain returns whatever the controller has sent until the line goes quiet.
func (c *Client) Drain(ctx context.Context) ([]byte, error) {
	b, err := c.conn.ReadAll(ctx, c.waiter)
	if len(b) > 0 {
		c.log.Info("controller output", zap.ByteString("data", b))
	}
	return b, err
}

func (c *Client) exchange(ctx context.Context, op string, frame []byte) ([]byte, error) {
	if _, err := c.conn.Write(frame); err != nil {
		c.log.Warn("write failed", zap.String("op", op), zap.Error(err))
		return nil, errcode.Wrap(errcode.Of(err), op, "write", err)
	}
	reply, err := c.Drain(ctx)
	if err != nil {
		c.log.Warn("reply incomplete", zap.String("op", op), zap.Int("bytes", len(reply)), zap.Error(err))
		return reply, errcode.Wrap(errcode.Of(err), op, "reply", err)
	}
	c.log.Debug("command done", zap.String("op", op), zap.Binary("frame", frame), zap.Int("reply_bytes", len(reply)))
	return reply, nil
}

// Close closes the underlying link.
func (c *Client) Close() error {
	return c.conn.Close()
}
