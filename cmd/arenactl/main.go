// Command arenactl sends brightness and pattern commands to the LED arena
// controller over its USB serial port.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"ledarena-go/arena"
	"ledarena-go/board"
	"ledarena-go/config"
	"ledarena-go/input"
	"ledarena-go/link"
	"ledarena-go/logging"
	"ledarena-go/platform"
	"ledarena-go/protocol"
)

const (
	flagConfig   = "config"
	flagPort     = "port"
	flagLogLevel = "log-level"
	flagSize     = "size"
	flagFor      = "for"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "arenactl:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "arenactl",
		Usage: "drive the 1D LED arena controller",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "YAML configuration file",
				EnvVars: []string{"ARENACTL_CONFIG"},
			},
			&cli.StringFlag{
				Name:    flagPort,
				Aliases: []string{"p"},
				Usage:   "serial port (overrides serial.port)",
				EnvVars: []string{"ARENACTL_PORT"},
			},
			&cli.StringFlag{
				Name:  flagLogLevel,
				Usage: "debug, info, warn or error (overrides log.level)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "brightness",
				Usage:     "set overall brightness",
				ArgsUsage: "[percent]",
				Action:    brightnessAction,
			},
			{
				Name:      "pattern",
				Usage:     "select a motion pattern",
				ArgsUsage: "[mode]",
				Flags: []cli.Flag{
					&cli.UintFlag{
						Name:  flagSize,
						Usage: "angular size in degrees (default display.angular_size)",
					},
				},
				Action: patternAction,
			},
			{
				Name:  "listen",
				Usage: "print controller output",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  flagFor,
						Usage: "stop after this long (0 runs until interrupted)",
					},
				},
				Action: listenAction,
			},
			{
				Name:   "pins",
				Usage:  "print and check the controller pin layout and serial wait",
				Action: pinsAction,
			},
		},
	}
}

// ---- shared setup ----

// openLink opens the controller's serial port. It's a variable so tests can
// substitute a fake link.
var openLink = func(cfg link.Config) (arena.Conn, error) {
	return link.Open(cfg)
}

type session struct {
	cfg    *config.Config
	log    *zap.Logger
	client *arena.Client
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := &config.Config{}
	if path := c.String(flagConfig); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if p := c.String(flagPort); p != "" {
		cfg.Serial.Port = p
	}
	if l := c.String(flagLogLevel); l != "" {
		cfg.Log.Level = l
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	config.Normalize(cfg)
	return cfg, nil
}

func open(c *cli.Context) (*session, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New("arenactl", cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		return nil, err
	}
	l, err := openLink(cfg.LinkConfig())
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}
	logger.Info("link open",
		zap.String("port", cfg.Serial.Port),
		zap.Int("baud", cfg.Serial.Baud),
		zap.Duration("reply_timeout", cfg.ReplyTimeout()))

	s := &session{
		cfg:    cfg,
		log:    logger,
		client: arena.New(l, cfg.ReplyTimeout(), logger),
	}
	// Print whatever the controller sent on connect.
	ctx, cancel := commandContext(c.Context)
	defer cancel()
	if _, err := s.client.Drain(ctx); err != nil {
		logger.Debug("initial drain", zap.Error(err))
	}
	return s, nil
}

func (s *session) close() {
	if err := s.client.Close(); err != nil {
		s.log.Warn("close", zap.Error(err))
	}
	_ = s.log.Sync()
}

// commandContext bounds a command exchange so a wait rule that never times
// out cannot hang the tool.
func commandContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, 2*time.Second)
}

// ---- actions ----

func brightnessAction(c *cli.Context) error {
	s, err := open(c)
	if err != nil {
		return err
	}
	defer s.close()

	percent := *s.cfg.Display.BrightnessPercent
	if c.Args().Present() {
		if percent, err = strconv.ParseFloat(c.Args().First(), 64); err != nil {
			return fmt.Errorf("brightness %q: %w", c.Args().First(), err)
		}
	}
	ctx, cancel := commandContext(c.Context)
	defer cancel()
	_, err = s.client.SetBrightness(ctx, percent)
	if err == nil {
		s.log.Info("brightness set", zap.Float64("percent", percent), zap.Uint16("level", protocol.BrightnessLevel(percent)))
	}
	return err
}

func patternAction(c *cli.Context) error {
	s, err := open(c)
	if err != nil {
		return err
	}
	defer s.close()

	mode := s.cfg.Display.Mode
	if c.Args().Present() {
		mode = c.Args().First()
	}
	d, err := protocol.ParseDirection(mode)
	if err != nil {
		return err
	}
	size := uint(s.cfg.Display.AngularSize)
	if c.IsSet(flagSize) {
		size = c.Uint(flagSize)
	}
	if size > 0xffff {
		return fmt.Errorf("angular size %d exceeds 65535", size)
	}
	ctx, cancel := commandContext(c.Context)
	defer cancel()
	_, err = s.client.SendPattern(ctx, d, uint16(size))
	if err == nil {
		s.log.Info("pattern sent", zap.Stringer("mode", d), zap.Uint("angular_size", size))
	}
	return err
}

func listenAction(c *cli.Context) error {
	s, err := open(c)
	if err != nil {
		return err
	}
	defer s.close()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	if d := c.Duration(flagFor); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}
	for ctx.Err() == nil {
		if _, err := s.client.Drain(ctx); err != nil && ctx.Err() == nil {
			return err
		}
	}
	return nil
}

func pinsAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	l := board.Teensy31
	if _, err := board.Bind(platform.DefaultPinFactory(), l); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "layout %s\n", l.Name)
	for _, a := range l.Assignments() {
		fmt.Fprintf(c.App.Writer, "  %-5s pin %2d  %s\n", a.Role, a.Pin, a.Dir)
	}
	w := input.New(cfg.WaitConfig())
	fmt.Fprintf(c.App.Writer, "serial wait %v (%s), opcode %#02x\n", w.Budget(), w.Rule(), protocol.GetCommand)
	return nil
}
