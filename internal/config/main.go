package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hamoci/rhythme/internal/game"
	"github.com/hamoci/rhythme/internal/input"
	"gopkg.in/alecthomas/kingpin.v2"
)

const Version = "0.1.0"

type Config struct {
	Directory   string
	Input       string // "terminal" or "evdev"
	Device      string
	Keys        string
	EvdevCodes  string
	Countdown   time.Duration
	Speed       float64
	FramePeriod time.Duration
	Offset      time.Duration
	Volume      float64
	Database    string
	LogFile     string
	LogLevel    string

	Bindings input.Bindings
}

// Parse reads the command line. Every flag can also be set through a
// RHYTHME_ prefixed environment variable.
func Parse(args []string) (*Config, error) {
	var c Config
	app := kingpin.New("rhythme", "A four lane rhythm game for the terminal.")
	app.Version(Version)
	app.DefaultEnvars()

	app.Arg("directory", "Song directory containing a .chart and an audio file").Required().ExistingDirVar(&c.Directory)
	app.Flag("input", "Key source").Default("terminal").Short('i').EnumVar(&c.Input, "terminal", "evdev")
	app.Flag("device", "Input device for the evdev source").Default("/dev/input/event0").StringVar(&c.Device)
	app.Flag("keys", "Lane keys, first to fourth").Default("dfjk").Short('k').StringVar(&c.Keys)
	app.Flag("evdev-codes", "Lane key codes for the evdev source").Default("32,33,36,37").StringVar(&c.EvdevCodes)
	app.Flag("countdown", "Hold before play starts").Default("3s").Short('c').DurationVar(&c.Countdown)
	app.Flag("speed", "Note approach speed multiplier").Default("1.0").Short('s').Float64Var(&c.Speed)
	app.Flag("frame-period", "Render frame period").Default("8ms").Short('p').DurationVar(&c.FramePeriod)
	app.Flag("offset", "Global audio offset").Default("0ms").Short('o').DurationVar(&c.Offset)
	app.Flag("volume", "Key sound volume, 0 to 1").Default("0.1").Float64Var(&c.Volume)
	app.Flag("db", "Score database").Default("./scores.db").StringVar(&c.Database)
	app.Flag("log-file", "Log file").Default("./rhythme.log").StringVar(&c.LogFile)
	app.Flag("log-level", "Log level").Default("info").EnumVar(&c.LogLevel, "debug", "info", "warn", "error")

	if _, err := app.Parse(args); nil != err {
		return nil, err
	}
	if err := c.bind(); nil != err {
		return nil, err
	}
	return &c, nil
}

func (c *Config) bind() error {
	c.Bindings = input.DefaultBindings

	keys := []rune(c.Keys)
	if len(keys) != game.NumLanes {
		return fmt.Errorf("expected %d lane keys, got %q", game.NumLanes, c.Keys)
	}
	copy(c.Bindings.Lanes[:], keys)

	codes := strings.Split(c.EvdevCodes, ",")
	if len(codes) != game.NumLanes {
		return fmt.Errorf("expected %d evdev codes, got %q", game.NumLanes, c.EvdevCodes)
	}
	for i, s := range codes {
		code, err := strconv.ParseUint(strings.TrimSpace(s), 10, 16)
		if nil != err {
			return fmt.Errorf("bad evdev code %q: %w", s, err)
		}
		c.Bindings.Codes[i] = uint16(code)
	}

	if c.Speed <= 0 {
		return fmt.Errorf("speed must be positive, got %v", c.Speed)
	}
	if c.Countdown < 0 {
		return fmt.Errorf("countdown must not be negative, got %v", c.Countdown)
	}
	return nil
}
