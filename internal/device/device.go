// Package device negotiates an output stream with the host audio
// subsystem and feeds it from a pull callback shaped exactly like the
// engine Mixer's WriteSamples, so the façade can hand the Mixer itself
// (already lock-guarded) straight through as the callback.
package device

import "sort"

// Config describes one candidate output format a backend can open.
type Config struct {
	SampleRate uint32
	Channels   uint16
	Format     string // "i16", "f32", ...
	MinRate    uint32
	MaxRate    uint32
}

// PullFunc fills buf with interleaved samples and returns the count
// actually written. It must not block on I/O or allocate on the hot
// path — it is invoked from the backend's audio callback.
type PullFunc func(buf []int16) int

// Stream is a running output stream. Closing it stops playback and
// releases backend resources.
type Stream interface {
	Close() error
}

// Device enumerates candidate output configurations and opens a stream
// against one of them.
type Device interface {
	Enumerate() ([]Config, error)
	Open(cfg Config, pull PullFunc) (Stream, error)
}

// New returns the platform's default backend: a real device on builds
// without the headless tag, or the discarding Noop backend on builds
// with it.
func New() Device {
	return newPlatformDevice()
}

// rank scores a Config against the preference tuple from §6: 48kHz,
// then 44.1kHz, then stereo-or-mono, then i16, then raw rate as a
// tie-breaker. Higher is more preferred.
func rank(c Config) [5]int {
	channelsPreferred := 0
	if c.Channels == 2 || c.Channels == 1 {
		channelsPreferred = 1
	}
	formatPreferred := 0
	if c.Format == "i16" {
		formatPreferred = 1
	}
	return [5]int{
		boolScore(c.SampleRate == 48000),
		boolScore(c.SampleRate == 44100),
		channelsPreferred,
		formatPreferred,
		int(c.SampleRate),
	}
}

func boolScore(b bool) int {
	if b {
		return 1
	}
	return 0
}

// SortByPreference orders configs highest-preference first, per the
// tuple comparison in §6.
func SortByPreference(configs []Config) {
	sort.SliceStable(configs, func(i, j int) bool {
		a, b := rank(configs[i]), rank(configs[j])
		for k := range a {
			if a[k] != b[k] {
				return a[k] > b[k]
			}
		}
		return false
	})
}
