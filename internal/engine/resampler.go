package engine

// SampleRateConverter resamples an inner SoundSource to a target rate
// using linear interpolation over rational cycles: after exactly
// out_rate/g output frames, exactly in_rate/g input frames have been
// consumed, for g = gcd(in_rate, out_rate). This keeps the resampler
// phase-exact regardless of how the caller chunks its buffers, unlike a
// running fractional-position accumulator which drifts over long runs.
type SampleRateConverter struct {
	inner    SoundSource
	outRate  uint32
	channels int

	equalRate bool

	inLen  int // samples per cycle consumed from inner
	outLen int // samples per cycle produced, nominal (pre-truncation)
	inBuf  []int16

	currOutLen int // this cycle's actual output length (<= outLen)
	iter       int
	eos        bool
}

// NewSampleRateConverter wraps inner, resampling to outRate.
func NewSampleRateConverter(inner SoundSource, outRate uint32) *SampleRateConverter {
	c := &SampleRateConverter{
		inner:    inner,
		outRate:  outRate,
		channels: int(inner.Channels()),
	}
	if inner.SampleRate() == outRate {
		c.equalRate = true
		return c
	}
	g := gcd(inner.SampleRate(), outRate)
	c.inLen = int(inner.SampleRate()/g) * c.channels
	c.outLen = int(outRate/g) * c.channels
	c.inBuf = make([]int16, c.inLen+c.channels)
	c.Reset()
	return c
}

func (c *SampleRateConverter) Channels() uint16 { return uint16(c.channels) }
func (c *SampleRateConverter) SampleRate() uint32 { return c.outRate }

func (c *SampleRateConverter) Reset() {
	c.inner.Reset()
	if c.equalRate {
		return
	}
	n := c.inner.WriteSamples(c.inBuf)
	c.currOutLen = c.cycleOutLen(n - c.channels)
	c.iter = 0
	c.eos = false
}

// cycleOutLen computes this cycle's truncated output length given fresh
// (how many newly-read samples, beyond the carried boundary frame, the
// refill produced). A full refill (fresh >= inLen) yields the nominal
// outLen unchanged. Note: this does not account for the anchor-only
// output position available when fresh == 0 after a prior valid cycle —
// see refill, which special-cases that.
func (c *SampleRateConverter) cycleOutLen(fresh int) int {
	if fresh < 0 {
		fresh = 0
	}
	if fresh >= c.inLen {
		return c.outLen
	}
	x := ceilDiv(c.outLen*fresh, c.inLen)
	return (x / c.channels) * c.channels
}

func ceilDiv(a, b int) int {
	if b == 0 {
		return 0
	}
	return (a + b - 1) / b
}

func (c *SampleRateConverter) WriteSamples(buf []int16) int {
	if c.equalRate {
		return c.inner.WriteSamples(buf)
	}
	i := 0
	for i < len(buf) {
		if c.iter >= c.currOutLen {
			if c.eos {
				return i
			}
			c.refill()
			if c.currOutLen == 0 {
				return i
			}
			continue
		}
		k := c.iter / c.channels
		ch := c.iter % c.channels
		buf[i] = c.interpolate(k, ch)
		i++
		c.iter++
	}
	return len(buf)
}

func (c *SampleRateConverter) refill() {
	copy(c.inBuf[0:c.channels], c.inBuf[c.inLen:c.inLen+c.channels])
	n := c.inner.WriteSamples(c.inBuf[c.channels:])
	if n < c.inLen {
		c.eos = true
	}
	if n == 0 {
		// No fresh input this cycle, but the carried boundary frame is
		// still a valid anchor: k=0 lands exactly on it (pos=0, t=0),
		// so one last frame is producible before true EOS.
		c.currOutLen = c.channels
	} else {
		c.currOutLen = c.cycleOutLen(n)
	}
	c.iter = 0
}

func (c *SampleRateConverter) interpolate(k, ch int) int16 {
	pos := float32(k*c.inLen) / float32(c.outLen)
	j := int(pos)
	t := pos - float32(j)
	a := float32(c.inBuf[j*c.channels+ch])
	b := float32(c.inBuf[(j+1)*c.channels+ch])
	return int16(a*(1-t) + b*t)
}
