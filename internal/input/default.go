package input

import (
	"encoding/binary"
	"os"
	"syscall"

	"github.com/eiannone/keyboard"
	"github.com/hamoci/rhythme/internal/game"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Source delivers raw key events until it is closed.
type Source interface {
	Events() <-chan Event
	Close() error
}

// Bindings map device keys to actions. Lanes are bound by index.
type Bindings struct {
	Lanes     [game.NumLanes]rune
	Pause     rune
	Codes     [game.NumLanes]uint16 // evdev key codes for the lanes
	PauseCode uint16
	QuitCode  uint16
}

// https://github.com/torvalds/linux/blob/master/include/uapi/linux/input-event-codes.h
const (
	evKey    = 0x01
	KeyEsc   = 1
	KeyD     = 32
	KeyF     = 33
	KeyJ     = 36
	KeyK     = 37
	KeySpace = 57
)

var DefaultBindings = Bindings{
	Lanes:     [game.NumLanes]rune{'d', 'f', 'j', 'k'},
	Pause:     ' ',
	Codes:     [game.NumLanes]uint16{KeyD, KeyF, KeyJ, KeyK},
	PauseCode: KeySpace,
	QuitCode:  KeyEsc,
}

func (b *Bindings) fromRune(r rune) (Event, bool) {
	if r == b.Pause {
		return Event{Action: PauseKey, Down: true}, true
	}
	for i, c := range b.Lanes {
		if r == c {
			return Event{Action: LaneKey, Lane: game.Lane(i), Down: true}, true
		}
	}
	return Event{}, false
}

func (b *Bindings) fromCode(code uint16, down bool) (Event, bool) {
	switch code {
	case b.PauseCode:
		return Event{Action: PauseKey, Down: down}, true
	case b.QuitCode:
		return Event{Action: QuitKey, Down: down}, true
	}
	for i, c := range b.Codes {
		if code == c {
			return Event{Action: LaneKey, Lane: game.Lane(i), Down: down}, true
		}
	}
	return Event{}, false
}

// Terminal reads keys from the controlling terminal. Terminals only
// report presses, so pair it with a Tracker in AutoRelease mode.
type Terminal struct {
	events chan Event
}

func OpenTerminal(b Bindings, log *zap.Logger) (*Terminal, error) {
	keys, err := keyboard.GetKeys(128)
	if nil != err {
		return nil, errors.Wrap(err, "unable to open keyboard")
	}
	t := &Terminal{events: make(chan Event, 128)}
	go func() {
		defer close(t.events)
		for key := range keys {
			if nil != key.Err {
				log.Warn("unable to read key", zap.Error(key.Err))
				continue
			}
			switch {
			case key.Key == keyboard.KeyEsc || key.Key == keyboard.KeyCtrlC:
				t.events <- Event{Action: QuitKey, Down: true}
			case key.Key == keyboard.KeySpace:
				if ev, ok := b.fromRune(' '); ok {
					t.events <- ev
				}
			default:
				if ev, ok := b.fromRune(key.Rune); ok {
					t.events <- ev
				}
			}
		}
	}()
	return t, nil
}

func (t *Terminal) Events() <-chan Event {
	return t.events
}

func (t *Terminal) Close() error {
	return keyboard.Close()
}

type keyEvent struct {
	Time  syscall.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

// Evdev reads a Linux input device, which reports releases as well as
// presses. Auto repeat events are dropped.
type Evdev struct {
	file   *os.File
	events chan Event
}

func OpenEvdev(device string, b Bindings, log *zap.Logger) (*Evdev, error) {
	file, err := os.Open(device)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open input device")
	}
	d := &Evdev{file: file, events: make(chan Event, 128)}
	go func() {
		defer close(d.events)

		var ev keyEvent
		for {
			if err := binary.Read(file, binary.LittleEndian, &ev); nil != err {
				log.Info("input device closed", zap.String("device", device), zap.Error(err))
				return
			}
			if ev.Type != evKey || ev.Value > 1 {
				continue
			}
			if e, ok := b.fromCode(ev.Code, ev.Value == 1); ok {
				d.events <- e
			}
		}
	}()
	return d, nil
}

func (d *Evdev) Events() <-chan Event {
	return d.events
}

func (d *Evdev) Close() error {
	return d.file.Close()
}

// Drain applies every pending event of a source to the tracker without
// blocking.
func Drain(src Source, t *Tracker) (open bool) {
	for {
		select {
		case ev, ok := <-src.Events():
			if !ok {
				return false
			}
			t.Apply(ev)
		default:
			return true
		}
	}
}
