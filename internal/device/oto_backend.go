//go:build !headless

package device

import (
	"encoding/binary"

	"github.com/ebitengine/oto/v3"
)

// otoDevice backs onto github.com/ebitengine/oto/v3. It always opens in
// FormatSignedInt16LE so the Mixer's native i16 output needs no float
// conversion on the hot path.
type otoDevice struct {
	ctx *oto.Context
}

func newPlatformDevice() Device {
	return &otoDevice{}
}

func (d *otoDevice) Enumerate() ([]Config, error) {
	// oto negotiates the device's native config at context-open time
	// rather than exposing a query surface; offer the preference-ranked
	// candidates the Supervisor will try in order.
	return []Config{
		{SampleRate: 48000, Channels: 2, Format: "i16", MinRate: 8000, MaxRate: 192000},
		{SampleRate: 44100, Channels: 2, Format: "i16", MinRate: 8000, MaxRate: 192000},
		{SampleRate: 48000, Channels: 1, Format: "i16", MinRate: 8000, MaxRate: 192000},
	}, nil
}

func (d *otoDevice) Open(cfg Config, pull PullFunc) (Stream, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   int(cfg.SampleRate),
		ChannelCount: int(cfg.Channels),
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	r := &pullReader{pull: pull, channels: int(cfg.Channels)}
	player := ctx.NewPlayer(r)
	player.Play()

	return &otoStream{ctx: ctx, player: player}, nil
}

// pullReader adapts a PullFunc (interleaved i16) to the io.Reader oto's
// player expects (interleaved little-endian bytes).
type pullReader struct {
	pull     PullFunc
	channels int
	samples  []int16
}

func (r *pullReader) Read(p []byte) (int, error) {
	frames := len(p) / 2
	if cap(r.samples) < frames {
		r.samples = make([]int16, frames)
	}
	samples := r.samples[:frames]
	n := r.pull(samples)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint16(p[i*2:], uint16(samples[i]))
	}
	for i := n; i < frames; i++ {
		binary.LittleEndian.PutUint16(p[i*2:], 0)
	}
	return frames * 2, nil
}

type otoStream struct {
	ctx    *oto.Context
	player *oto.Player
}

func (s *otoStream) Close() error {
	return s.player.Close()
}
