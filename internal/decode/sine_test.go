package decode

import "testing"

func TestSineSource_NeverEOS(t *testing.T) {
	s := NewSineSource(1, 8000, 440, 1.0)
	buf := make([]int16, 1000)
	for i := 0; i < 50; i++ {
		if n := s.WriteSamples(buf); n != len(buf) {
			t.Fatalf("iteration %d: expected a full buffer, got %d", i, n)
		}
	}
}

func TestSineSource_BroadcastsToAllChannels(t *testing.T) {
	s := NewSineSource(4, 8000, 440, 1.0)
	buf := make([]int16, 4)
	s.WriteSamples(buf)
	for c := 1; c < 4; c++ {
		if buf[c] != buf[0] {
			t.Fatalf("channel %d: got %d want %d (same frame)", c, buf[c], buf[0])
		}
	}
}

func TestSineSource_StartsAtZeroPhase(t *testing.T) {
	s := NewSineSource(1, 8000, 440, 1.0)
	buf := make([]int16, 1)
	s.WriteSamples(buf)
	if buf[0] != 0 {
		t.Fatalf("expected first sample near 0 (sin(0)), got %d", buf[0])
	}
}

func TestSineSource_ResetRestartsPhase(t *testing.T) {
	s := NewSineSource(1, 8000, 440, 1.0)
	buf := make([]int16, 5)
	s.WriteSamples(buf)
	first := append([]int16{}, buf...)
	s.Reset()
	s.WriteSamples(buf)
	for i := range first {
		if buf[i] != first[i] {
			t.Fatalf("sample %d: got %d want %d after reset", i, buf[i], first[i])
		}
	}
}

func TestSineSource_AmplitudeClamped(t *testing.T) {
	s := NewSineSource(1, 8000, 440, 5.0) // out of range, clamps to 1.0
	if s.amplitude != 1.0 {
		t.Fatalf("expected amplitude clamped to 1.0, got %v", s.amplitude)
	}
}
