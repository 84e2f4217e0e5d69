package audio

import (
	"math"
	"os"
	"path"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
	"github.com/hamoci/rhythme/internal/clock"
	"github.com/hamoci/rhythme/internal/game"
	"github.com/hamoci/rhythme/internal/parser"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const resampleQuality = 4

func decode(file string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, beep.Format{}, errors.Wrap(err, "unable to open audio")
	}
	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch path.Ext(file) {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		f.Close()
		return nil, beep.Format{}, errors.Errorf("unsupported audio file %v", file)
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, errors.Wrapf(err, "unable to decode %v", file)
	}
	return streamer, format, nil
}

// gain converts a linear volume into the exponent effects.Volume expects.
func gain(volume float64) (float64, bool) {
	if volume <= 0 {
		return 0, true
	}
	return math.Log2(volume), false
}

// Player plays the song and the per lane key sounds. It follows the
// song clock: the track starts once song time passes the offset and
// pauses and resumes on the clock's edges.
type Player struct {
	format    beep.Format
	track     beep.StreamSeekCloser
	ctrl      *beep.Ctrl
	keySounds [game.NumLanes]*beep.Buffer
	volume    float64
	offset    time.Duration
	started   bool
	log       *zap.Logger
}

// Open decodes the song's audio and initializes the speaker at its
// sample rate. Missing key sounds are skipped.
func Open(song *parser.Song, volume float64, offset time.Duration, log *zap.Logger) (*Player, error) {
	if song.AudioFile == "" {
		return nil, errors.New("song has no audio file")
	}
	track, format, err := decode(song.AudioFile)
	if nil != err {
		return nil, err
	}

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/60)); nil != err {
		track.Close()
		return nil, errors.Wrap(err, "unable to initialize speaker")
	}

	p := &Player{
		format: format,
		track:  track,
		ctrl:   &beep.Ctrl{Streamer: track},
		volume: volume,
		offset: offset,
		log:    log,
	}
	for l, file := range song.KeySounds {
		if file == "" {
			continue
		}
		buf, err := p.load(file)
		if nil != err {
			log.Warn("unable to load key sound", zap.String("file", file), zap.Error(err))
			continue
		}
		p.keySounds[l] = buf
	}
	log.Info("audio opened", zap.String("file", song.AudioFile), zap.Int("rate", int(format.SampleRate)))
	return p, nil
}

func (p *Player) load(file string) (*beep.Buffer, error) {
	s, format, err := decode(file)
	if nil != err {
		return nil, err
	}
	defer s.Close()

	buf := beep.NewBuffer(p.format)
	if format.SampleRate == p.format.SampleRate {
		buf.Append(s)
	} else {
		buf.Append(beep.Resample(resampleQuality, format.SampleRate, p.format.SampleRate, s))
	}
	return buf, nil
}

// Follow keeps the track in step with the song clock for one frame.
func (p *Player) Follow(elapsed time.Duration, transitions []clock.Transition) {
	if !p.started {
		if elapsed <= 0 || elapsed < p.offset {
			return
		}
		p.started = true
		if p.offset < 0 {
			speaker.Lock()
			if err := p.track.Seek(p.format.SampleRate.N(-p.offset)); nil != err {
				p.log.Warn("unable to seek track", zap.Error(err))
			}
			speaker.Unlock()
		}
		speaker.Play(p.ctrl)
		p.log.Info("play music")
		return
	}

	for _, t := range transitions {
		switch t {
		case clock.PausedEdge:
			p.setPaused(true)
			p.log.Info("music paused")
		case clock.Resumed:
			p.setPaused(false)
			p.log.Info("music resumed")
		}
	}
}

func (p *Player) setPaused(paused bool) {
	speaker.Lock()
	p.ctrl.Paused = paused
	speaker.Unlock()
}

// KeySound plays a lane's key sound, if it has one.
func (p *Player) KeySound(l game.Lane) {
	buf := p.keySounds[l]
	if buf == nil {
		return
	}
	g, silent := gain(p.volume)
	speaker.Play(&effects.Volume{
		Streamer: buf.Streamer(0, buf.Len()),
		Base:     2,
		Volume:   g,
		Silent:   silent,
	})
}

func (p *Player) Close() error {
	speaker.Lock()
	defer speaker.Unlock()
	p.ctrl.Streamer = nil
	return p.track.Close()
}
