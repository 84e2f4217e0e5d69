package parser

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hamoci/rhythme/internal/game"
	"github.com/pkg/errors"
)

var (
	ErrMalformedLine = errors.New("malformed line")
	ErrUnknownLane   = errors.New("unknown lane")
	ErrUnknownKind   = errors.New("unknown note kind")
	ErrBadTiming     = errors.New("bad timing field")
)

type DefaultParser struct{}

// 0,Short,1000       lane First, short note at 1s
// 2,Long,2000,2500   lane Third, long note held from 2s to 2.5s

func parseLane(s string) (game.Lane, error) {
	i, err := strconv.ParseUint(s, 10, 8)
	if nil != err || !game.Lane(i).Valid() {
		return 0, errors.Wrapf(ErrUnknownLane, "%q", s)
	}
	return game.Lane(i), nil
}

func parseKind(s string) (game.Kind, error) {
	switch s {
	case "Short":
		return game.Short, nil
	case "Long":
		return game.Long, nil
	}
	return 0, errors.Wrapf(ErrUnknownKind, "%q", s)
}

func parseMs(s string) (time.Duration, error) {
	ms, err := strconv.ParseUint(s, 10, 32)
	if nil != err {
		return 0, errors.Wrapf(ErrBadTiming, "%q", s)
	}
	return time.Duration(ms) * time.Millisecond, nil
}

// ParseLine parses a single note line.
func ParseLine(line string) (*game.Note, error) {
	fields := strings.Split(strings.TrimRight(line, "\r"), ",")
	if len(fields) < 3 || len(fields) > 4 {
		return nil, errors.Wrapf(ErrMalformedLine, "%d fields", len(fields))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	lane, err := parseLane(fields[0])
	if nil != err {
		return nil, err
	}
	kind, err := parseKind(fields[1])
	if nil != err {
		return nil, err
	}
	start, err := parseMs(fields[2])
	if nil != err {
		return nil, err
	}

	end := start
	if kind == game.Long {
		if len(fields) < 4 {
			return nil, errors.Wrap(ErrMalformedLine, "long note without end time")
		}
		end, err = parseMs(fields[3])
		if nil != err {
			return nil, err
		}
		if end < start {
			return nil, errors.Wrapf(ErrBadTiming, "end %v before start %v", end, start)
		}
	}

	return game.NewNote(lane, kind, start, end), nil
}

func (p *DefaultParser) ParseReader(r io.Reader) (*game.Chart, error) {
	chart := &game.Chart{}
	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		note, err := ParseLine(line)
		if nil != err {
			return nil, errors.WithMessagef(err, "line %d", lineNumber)
		}
		chart.Push(note)
	}
	if err := scanner.Err(); nil != err {
		return nil, errors.Wrap(err, "unable to read chart")
	}

	chart.Sort()
	return chart, nil
}

func (p *DefaultParser) Parse(file string) (*game.Chart, error) {
	f, err := os.Open(file)
	if nil != err {
		return nil, errors.Wrap(err, "unable to open chart")
	}
	defer f.Close()

	chart, err := p.ParseReader(f)
	if nil != err {
		return nil, errors.WithMessage(err, file)
	}
	return chart, nil
}
