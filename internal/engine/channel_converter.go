package engine

// ChannelConverter wraps a SoundSource and presents a different channel
// count. Two shapes are supported, matching every channel remap the
// engine façade ever needs (spec.md §4.6 only ever wraps when one side
// is mono or the counts already match):
//
//   - expand (inner channels < out channels): the inner's samples fit
//     inside the caller's buffer directly (inCh*frames <= outCh*frames),
//     so the inner is read straight into the front of buf and then each
//     frame's mean is broadcast outward into the full frame width,
//     walking frames back to front so a write never clobbers a frame
//     that hasn't been read yet.
//   - reduce (inner channels > out channels): the inner needs more room
//     than buf provides, so it's read into a scratch buffer sized for
//     the full frame count, then each frame is averaged down into buf.
//
// Equal channel counts are a straight pass-through.
type ChannelConverter struct {
	inner   SoundSource
	outCh   uint16
	scratch []int16
}

// NewChannelConverter wraps inner, presenting outCh channels.
func NewChannelConverter(inner SoundSource, outCh uint16) *ChannelConverter {
	return &ChannelConverter{inner: inner, outCh: outCh}
}

func (c *ChannelConverter) Channels() uint16    { return c.outCh }
func (c *ChannelConverter) SampleRate() uint32   { return c.inner.SampleRate() }
func (c *ChannelConverter) Reset()               { c.inner.Reset() }

func (c *ChannelConverter) WriteSamples(buf []int16) int {
	inCh, outCh := int(c.inner.Channels()), int(c.outCh)
	if inCh == outCh {
		return c.inner.WriteSamples(buf)
	}
	if len(buf) == 0 {
		return 0
	}
	frames := len(buf) / outCh

	if inCh < outCh {
		inLen := frames * inCh
		n := c.inner.WriteSamples(buf[:inLen])
		got := n / inCh
		for i := got - 1; i >= 0; i-- {
			mean := meanFrame(buf, i*inCh, inCh)
			for ch := 0; ch < outCh; ch++ {
				buf[i*outCh+ch] = mean
			}
		}
		return got * outCh
	}

	needed := frames * inCh
	if cap(c.scratch) < needed {
		c.scratch = make([]int16, needed)
	}
	in := c.scratch[:needed]
	n := c.inner.WriteSamples(in)
	got := n / inCh
	for i := 0; i < got; i++ {
		mean := meanFrame(in, i*inCh, inCh)
		for ch := 0; ch < outCh; ch++ {
			buf[i*outCh+ch] = mean
		}
	}
	return got * outCh
}

func meanFrame(buf []int16, off, n int) int16 {
	var sum int32
	for i := 0; i < n; i++ {
		sum += int32(buf[off+i])
	}
	return int16(sum / int32(n))
}
