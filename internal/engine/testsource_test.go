package engine

// fakeSource is a SoundSource backed by a fixed sample slice, for
// deterministic engine tests. It reports EOS once its slice is
// exhausted and restarts from the top on Reset.
type fakeSource struct {
	channels   uint16
	sampleRate uint32
	data       []int16
	pos        int
}

func newFakeSource(channels uint16, sampleRate uint32, data []int16) *fakeSource {
	return &fakeSource{channels: channels, sampleRate: sampleRate, data: data}
}

func (f *fakeSource) Channels() uint16   { return f.channels }
func (f *fakeSource) SampleRate() uint32 { return f.sampleRate }
func (f *fakeSource) Reset()             { f.pos = 0 }

func (f *fakeSource) WriteSamples(buf []int16) int {
	n := copy(buf, f.data[f.pos:])
	f.pos += n
	return n
}

// constSource produces a fixed value for a fixed number of samples, then
// reports EOS; Reset does not restore them. Used for volume-mixing
// scenarios that need sources of different lengths.
type constSource struct {
	channels   uint16
	sampleRate uint32
	value      int16
	remaining  int
}

func newConstSource(channels uint16, sampleRate uint32, value int16, length int) *constSource {
	return &constSource{channels: channels, sampleRate: sampleRate, value: value, remaining: length}
}

func (c *constSource) Channels() uint16   { return c.channels }
func (c *constSource) SampleRate() uint32 { return c.sampleRate }
func (c *constSource) Reset()             {}

func (c *constSource) WriteSamples(buf []int16) int {
	n := len(buf)
	if n > c.remaining {
		n = c.remaining
	}
	for i := 0; i < n; i++ {
		buf[i] = c.value
	}
	c.remaining -= n
	return n
}
