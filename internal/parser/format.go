package parser

import (
	"bufio"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hamoci/rhythme/internal/game"
	"github.com/pkg/errors"
)

// Format renders a note in the chart line format, without the newline.
func Format(n *game.Note) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(int(n.Lane)))
	b.WriteByte(',')
	b.WriteString(n.Kind.String())
	b.WriteByte(',')
	b.WriteString(strconv.FormatInt(n.Start.Milliseconds(), 10))
	if n.Kind == game.Long {
		b.WriteByte(',')
		b.WriteString(strconv.FormatInt(n.End.Milliseconds(), 10))
	}
	return b.String()
}

// Write serialises a chart lane by lane, each lane in queue order.
func Write(w io.Writer, c *game.Chart) error {
	bw := bufio.NewWriter(w)
	for l := game.First; l < game.NumLanes; l++ {
		for _, n := range c.Notes(l) {
			if _, err := bw.WriteString(Format(n) + "\n"); nil != err {
				return err
			}
		}
	}
	return bw.Flush()
}

// Sum identifies a chart by its content, independent of line order.
func Sum(c *game.Chart) string {
	h := sha256.New()
	_ = Write(h, c)
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// Song is a playable song directory.
type Song struct {
	Name      string
	ChartFile string
	AudioFile string
	KeySounds [game.NumLanes]string // Optional key1..key4 samples
}

// Find walks a song directory for a chart, the main audio track and the
// optional per-lane key sounds.
func Find(dir string) (*Song, error) {
	song := &Song{Name: filepath.Base(dir)}
	if err := filepath.Walk(dir, func(p string, info os.FileInfo, err error) error {
		if nil != err {
			return err
		}
		if info.IsDir() {
			return nil
		}
		name := info.Name()
		ext := path.Ext(name)
		switch ext {
		case ".chart", ".txt":
			song.ChartFile = p
		case ".ogg", ".mp3", ".wav":
			base := strings.TrimSuffix(name, ext)
			if len(base) == 4 && strings.HasPrefix(base, "key") && base[3] >= '1' && base[3] <= '4' {
				song.KeySounds[base[3]-'1'] = p
				return nil
			}
			song.AudioFile = p
		}
		return nil
	}); nil != err {
		return nil, errors.Wrap(err, "unable to walk song directory")
	}

	if song.ChartFile == "" {
		return nil, errors.Errorf("unable to find a .chart file in %v", dir)
	}
	return song, nil
}
