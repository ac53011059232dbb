package device

import "testing"

func TestSupervisor_OpensAgainstNoop(t *testing.T) {
	sup, err := NewSupervisor(NewNoop(), func(buf []int16) int {
		return len(buf)
	})
	if err != nil {
		t.Fatalf("NewSupervisor: %v", err)
	}
	defer sup.Close()

	if sup.Config().SampleRate != 48000 {
		t.Fatalf("expected the noop device's only config, got %+v", sup.Config())
	}
}

func TestSupervisor_CloseIsIdempotentSafe(t *testing.T) {
	sup, err := NewSupervisor(NewNoop(), func(buf []int16) int { return len(buf) })
	if err != nil {
		t.Fatalf("NewSupervisor: %v", err)
	}
	if err := sup.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := sup.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

type alwaysFailsDevice struct{}

func (alwaysFailsDevice) Enumerate() ([]Config, error) {
	return nil, nil
}

func (alwaysFailsDevice) Open(cfg Config, pull PullFunc) (Stream, error) {
	return nil, errConfigExhausted{}
}

func TestSupervisor_NoConfigsIsAnError(t *testing.T) {
	_, err := NewSupervisor(alwaysFailsDevice{}, func(buf []int16) int { return len(buf) })
	if err == nil {
		t.Fatal("expected an error when no config can be opened")
	}
}
