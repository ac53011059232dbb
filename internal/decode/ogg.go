package decode

import (
	"fmt"
	"io"
	"math"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/vorbis"
)

// OGGSource streams an OGG Vorbis file through gopxl/beep's vorbis
// decoder, converting each [][2]float64 frame to interleaved i16 on the
// fly. Unlike a music-player loop, it reports EOS rather than looping
// internally — looping is the Mixer's job.
type OGGSource struct {
	stream     beep.StreamSeeker
	channels   uint16
	sampleRate uint32
	frameBuf   [][2]float64
}

// DecodeOGG decodes the OGG Vorbis stream read from r. r is retained by
// the decoder for the lifetime of the returned source and is not closed
// here; callers that opened it from a file should close it once the
// source is discarded.
func DecodeOGG(r io.ReadCloser) (*OGGSource, error) {
	stream, format, err := vorbis.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode: ogg vorbis: %w", err)
	}
	channels := uint16(format.NumChannels)
	if channels == 0 {
		channels = 1
	}
	return &OGGSource{
		stream:     stream,
		channels:   channels,
		sampleRate: uint32(format.SampleRate),
	}, nil
}

func (o *OGGSource) Channels() uint16   { return o.channels }
func (o *OGGSource) SampleRate() uint32 { return o.sampleRate }

func (o *OGGSource) Reset() {
	o.stream.Seek(0)
}

func (o *OGGSource) WriteSamples(buf []int16) int {
	if len(buf) == 0 {
		return 0
	}
	frames := len(buf) / int(o.channels)
	if frames == 0 {
		return 0
	}
	if cap(o.frameBuf) < frames {
		o.frameBuf = make([][2]float64, frames)
	}
	frameBuf := o.frameBuf[:frames]

	n, _ := o.stream.Stream(frameBuf)
	if n <= 0 {
		return 0
	}

	written := 0
	for i := 0; i < n; i++ {
		l, r := frameBuf[i][0], frameBuf[i][1]
		switch o.channels {
		case 1:
			buf[written] = floatToInt16((l + r) / 2)
			written++
		default:
			buf[written] = floatToInt16(l)
			written++
			if written < len(buf) {
				buf[written] = floatToInt16(r)
				written++
			}
			for c := 2; c < int(o.channels) && written < len(buf); c++ {
				buf[written] = floatToInt16(r)
				written++
			}
		}
	}
	return written
}

// floatToInt16 clamps a beep-format sample (nominally [-1, 1]) to that
// range, so overshoot from decoder gain saturates instead of wrapping,
// then scales it by 32767 and rounds to i16.
func floatToInt16(f float64) int16 {
	if f > 1 {
		f = 1
	} else if f < -1 {
		f = -1
	}
	return int16(math.Round(f * 32767))
}
