package engine

import "testing"

func assertSamples(t *testing.T, got, want []int16) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d: got %v want %v", i, got, want)
		}
	}
}

// S1 — start stopped, play, remove-on-end.
func TestMixer_S1_StartStoppedPlayRemoveOnEnd(t *testing.T) {
	m := NewMixer[struct{}](1, 1)
	id := m.AddSound(struct{}{}, newFakeSource(1, 1, []int16{2, 2, 2, 2, 2}), true)

	buf := make([]int16, 10)
	m.WriteSamples(buf)
	assertSamples(t, buf, make([]int16, 10))

	m.Play(id)
	m.WriteSamples(buf)
	assertSamples(t, buf, []int16{2, 2, 2, 2, 2, 0, 0, 0, 0, 0})

	m.ResetSound(id)
	m.Play(id)
	m.WriteSamples(buf)
	assertSamples(t, buf, make([]int16, 10))
}

// S2 — keep entry across stop.
func TestMixer_S2_KeepEntryAcrossStop(t *testing.T) {
	m := NewMixer[struct{}](1, 1)
	id := m.AddSound(struct{}{}, newFakeSource(1, 1, []int16{2, 2, 2, 2, 2}), true)
	m.MarkToRemove(id, false)

	buf := make([]int16, 10)
	m.Play(id)
	m.WriteSamples(buf)
	assertSamples(t, buf, []int16{2, 2, 2, 2, 2, 0, 0, 0, 0, 0})

	m.Stop(id)
	m.WriteSamples(buf)
	assertSamples(t, buf, make([]int16, 10))

	m.Play(id)
	m.WriteSamples(buf)
	assertSamples(t, buf, []int16{2, 2, 2, 2, 2, 0, 0, 0, 0, 0})

	m.Play(id)
	m.WriteSamples(buf)
	assertSamples(t, buf, []int16{2, 2, 2, 2, 2, 0, 0, 0, 0, 0})
}

// S3 — volume mixing.
func TestMixer_S3_VolumeMixing(t *testing.T) {
	m := NewMixer[struct{}](1, 1)
	id1 := m.AddSound(struct{}{}, newConstSource(1, 1, 10, 2), true)
	id2 := m.AddSound(struct{}{}, newConstSource(1, 1, 10, 4), true)
	id3 := m.AddSound(struct{}{}, newConstSource(1, 1, 10, 6), true)
	m.SetVolume(id1, 0.2)
	m.SetVolume(id2, 0.4)
	m.SetVolume(id3, 0.8)
	m.Play(id1)
	m.Play(id2)
	m.Play(id3)

	buf := make([]int16, 10)
	m.WriteSamples(buf)
	assertSamples(t, buf, []int16{14, 14, 12, 12, 8, 8, 0, 0, 0, 0})
}

// S4 — group volume.
func TestMixer_S4_GroupVolume(t *testing.T) {
	type group string
	const groupA, groupB group = "A", "B"

	m := NewMixer[group](1, 1)
	a1 := m.AddSound(groupA, newConstSource(1, 1, 10, 2), true)
	a2 := m.AddSound(groupA, newConstSource(1, 1, 10, 4), true)
	a3 := m.AddSound(groupA, newConstSource(1, 1, 10, 6), true)
	b1 := m.AddSound(groupB, newConstSource(1, 1, 10, 8), true)
	b2 := m.AddSound(groupB, newConstSource(1, 1, 10, 10), true)
	b3 := m.AddSound(groupB, newConstSource(1, 1, 10, 12), true)

	m.SetVolume(a1, 0.2)
	m.SetVolume(a2, 0.4)
	m.SetVolume(a3, 0.8)
	m.SetVolume(b1, 0.2)
	m.SetVolume(b2, 0.4)
	m.SetVolume(b3, 0.8)
	m.SetGroupVolume(groupA, 2.0)
	m.SetGroupVolume(groupB, 4.0)

	for _, id := range []SoundId{a1, a2, a3, b1, b2, b3} {
		m.Play(id)
	}

	buf := make([]int16, 10)
	m.WriteSamples(buf)
	assertSamples(t, buf, []int16{84, 84, 80, 80, 72, 72, 56, 56, 48, 48})

	m.WriteSamples(buf)
	assertSamples(t, buf, []int16{32, 32, 0, 0, 0, 0, 0, 0, 0, 0})

	m.mu.Lock()
	n := len(m.entries)
	m.mu.Unlock()
	if n != 0 {
		t.Fatalf("expected all entries removed, got %d remaining", n)
	}
}

func TestMixer_EmptyBufferNoOp(t *testing.T) {
	m := NewMixer[struct{}](1, 1)
	called := false
	src := &probeSource{fakeSource: *newFakeSource(1, 1, []int16{1}), onPull: func() { called = true }}
	id := m.AddSound(struct{}{}, src, true)
	m.Play(id)
	if n := m.WriteSamples(nil); n != 0 {
		t.Fatalf("expected 0, got %d", n)
	}
	if called {
		t.Fatal("empty buffer must not touch any source")
	}
}

func TestMixer_ZeroOnFirstCallIsImmediateEOS(t *testing.T) {
	m := NewMixer[struct{}](1, 1)
	id := m.AddSound(struct{}{}, newFakeSource(1, 1, nil), true)
	m.Play(id)
	buf := make([]int16, 4)
	m.WriteSamples(buf)
	assertSamples(t, buf, make([]int16, 4))
	m.mu.Lock()
	n := len(m.entries)
	m.mu.Unlock()
	if n != 0 {
		t.Fatalf("expected entry removed after immediate EOS, got %d remaining", n)
	}
}

func TestMixer_SaturatingSum(t *testing.T) {
	m := NewMixer[struct{}](1, 1)
	id1 := m.AddSound(struct{}{}, newConstSource(1, 1, 32767, 1), true)
	id2 := m.AddSound(struct{}{}, newConstSource(1, 1, 32767, 1), true)
	m.Play(id1)
	m.Play(id2)
	buf := make([]int16, 1)
	m.WriteSamples(buf)
	if buf[0] != 32767 {
		t.Fatalf("expected saturated 32767, got %d", buf[0])
	}
}

func TestMixer_NoPlayingEntriesZerosBuffer(t *testing.T) {
	m := NewMixer[struct{}](1, 1)
	buf := []int16{9, 9, 9}
	m.WriteSamples(buf)
	assertSamples(t, buf, []int16{0, 0, 0})
}

// probeSource wraps fakeSource to detect whether WriteSamples was ever
// invoked, for the empty-buffer boundary test.
type probeSource struct {
	fakeSource
	onPull func()
}

func (p *probeSource) WriteSamples(buf []int16) int {
	p.onPull()
	return p.fakeSource.WriteSamples(buf)
}
