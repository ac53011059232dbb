// Package engine implements the mixing core of the audio playback engine:
// the SoundSource capability, the two sample converters, the Mixer state
// machine, sound handles, and the façade over the Mixer whose
// WriteSamples a device backend pulls from. This file defines the capability every producer of PCM
// implements.
package engine

// SoundSource is a pull-based producer of 16-bit signed interleaved PCM.
// Implementations include file decoders, generators, the two converters,
// and the Mixer itself (a Mixer is a SoundSource over its playing
// children).
//
// Samples are interleaved by frame: for N channels, frame f occupies
// buf[f*N : f*N+N], one sample per channel. Full scale is
// [math.MinInt16, math.MaxInt16].
type SoundSource interface {
	// Channels returns the channel count. Constant for the source's
	// lifetime.
	Channels() uint16

	// SampleRate returns the sample rate in Hz. Constant for the
	// source's lifetime.
	SampleRate() uint32

	// Reset restarts production from the beginning. Idempotent.
	Reset()

	// WriteSamples fills up to len(buf) samples and returns how many
	// were written. A return less than len(buf) means end-of-source.
	// len(buf) and the return value must both be multiples of
	// Channels().
	WriteSamples(buf []int16) int
}

func gcd(a, b uint32) uint32 {
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}
