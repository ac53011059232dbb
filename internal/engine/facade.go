package engine

import "github.com/pkg/errors"

// Config describes a candidate output format a device backend can
// open: sample rate, channel count, and an opaque format tag the device
// package interprets. The façade's wrapping decisions read rate and
// channels from the Mixer, not from a Config; preference ordering of
// device configs is done by the device package on its own Config type.
type Config struct {
	SampleRate uint32
	Channels   uint16
	Format     string
}

// Engine is the public façade over a Mixer; it holds no device stream.
// G is the group tag type; New returns Engine[struct{}]
// for callers with no grouping needs.
type Engine[G comparable] struct {
	mixer *Mixer[G]
}

// New returns an ungrouped engine at the given output format. Wiring a
// real device is the caller's job (see the device package) — the
// façade's own contract is the Mixer plus the wrapping rules below.
func New(channels uint16, sampleRate uint32) *Engine[struct{}] {
	return NewWithGroups[struct{}](channels, sampleRate)
}

// NewWithGroups returns an engine whose sounds are tagged with group
// values of type G.
func NewWithGroups[G comparable](channels uint16, sampleRate uint32) *Engine[G] {
	return &Engine[G]{mixer: NewMixer[G](channels, sampleRate)}
}

// Mixer exposes the underlying Mixer, e.g. for wiring it as a device's
// pull callback.
func (e *Engine[G]) Mixer() *Mixer[G] { return e.mixer }

// Attach wires m to record this engine's Mixer activity.
func (e *Engine[G]) Attach(m *Metrics) { e.mixer.Attach(m) }

// SampleRate returns the engine's output sample rate.
func (e *Engine[G]) SampleRate() uint32 { return e.mixer.SampleRate() }

// Channels returns the engine's output channel count.
func (e *Engine[G]) Channels() uint16 { return e.mixer.Channels() }

// SetGroupVolume sets the linear gain applied to every sound in group.
func (e *Engine[G]) SetGroupVolume(group G, volume float32) {
	e.mixer.SetGroupVolume(group, volume)
}

// GroupVolume returns group's stored gain, or 1.0 if unset.
func (e *Engine[G]) GroupVolume(group G) float32 {
	return e.mixer.GroupVolume(group)
}

// VUMeter reports the peak and RMS level of the most recently mixed
// buffer, both normalized to [0, 1].
func (e *Engine[G]) VUMeter() (peak, rms float64) {
	return e.mixer.VUMeter()
}

// NewSound registers source with the engine's default group (G's zero
// value) and returns a handle to it.
func (e *Engine[G]) NewSound(source SoundSource) (*Sound[G], error) {
	var zero G
	return e.NewSoundWithGroup(zero, source)
}

// NewSoundWithGroup registers source under group, wrapping it with a
// SampleRateConverter and/or ChannelConverter as needed to reconcile its
// native format with the engine's, and returns a handle.
//
// Handles created here default to remove_on_end = false: stop() pauses
// and resets rather than discarding the entry, so a caller holding the
// handle can replay it. (The original engine additionally flips
// remove_on_end to true when the handle itself is dropped, relying on
// destructor semantics Go doesn't have; this façade leaves that decision
// to the caller via Sound.MarkToRemove instead of a finalizer — see
// DESIGN.md.)
func (e *Engine[G]) NewSoundWithGroup(group G, source SoundSource) (*Sound[G], error) {
	wrapped, err := e.wrap(source)
	if err != nil {
		return nil, err
	}
	id := e.mixer.AddSound(group, wrapped, false)
	return newSound(e.mixer, id), nil
}

func (e *Engine[G]) wrap(source SoundSource) (SoundSource, error) {
	srcRate, srcCh := source.SampleRate(), source.Channels()
	outRate, outCh := e.mixer.SampleRate(), e.mixer.Channels()

	sameRate := srcRate == outRate
	sameCh := srcCh == outCh
	compatibleCh := sameCh || srcCh == 1 || outCh == 1

	switch {
	case sameRate && sameCh:
		return source, nil
	case sameRate && compatibleCh:
		return NewChannelConverter(source, outCh), nil
	case !sameRate && sameCh:
		return NewSampleRateConverter(source, outRate), nil
	case !sameRate && compatibleCh:
		return NewChannelConverter(NewSampleRateConverter(source, outRate), outCh), nil
	default:
		return nil, newError(ErrIncompatibleChannels, errors.Errorf(
			"source has %d channels, output has %d, neither is mono", srcCh, outCh))
	}
}
