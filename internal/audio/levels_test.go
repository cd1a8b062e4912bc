package audio

import (
	"encoding/binary"
	"testing"
)

// sine-ish full-scale square wave: loudest possible LINEAR16 input.
func loudPCM(samples int) []byte {
	buf := make([]byte, samples*2)
	for i := 0; i < samples; i++ {
		v := int16(32767)
		if i%2 == 1 {
			v = -32767
		}
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(v))
	}
	return buf
}

func silentPCM(samples int) []byte {
	return make([]byte, samples*2)
}

func TestLevelBounds(t *testing.T) {
	m := NewLevelMonitor()
	m.Start("trk-1")

	if err := m.Sample("trk-1", loudPCM(160)); err != nil {
		t.Fatalf("sample: %v", err)
	}
	if got := m.Level(); got < 0 || got > 100 {
		t.Errorf("level = %d, want within [0,100]", got)
	}
	if m.Level() < 90 {
		t.Errorf("full-scale input level = %d, want near 100", m.Level())
	}

	m.Start("trk-1") // restart clears the window
	m.Sample("trk-1", silentPCM(160))
	if got := m.Level(); got != 0 {
		t.Errorf("silent level = %d, want 0", got)
	}
}

func TestStaleTrackSampleIsAnError(t *testing.T) {
	m := NewLevelMonitor()
	m.Start("trk-1")

	if err := m.Sample("trk-2", loudPCM(160)); err != ErrStaleTrack {
		t.Errorf("sample from other track = %v, want ErrStaleTrack", err)
	}

	m.Stop()
	if err := m.Sample("trk-1", loudPCM(160)); err != ErrStaleTrack {
		t.Errorf("sample after stop = %v, want ErrStaleTrack", err)
	}
}

func TestRestartReplacesWindow(t *testing.T) {
	m := NewLevelMonitor()
	m.Start("trk-1")
	for i := 0; i < levelWindow; i++ {
		m.Sample("trk-1", loudPCM(160))
	}
	if m.Level() == 0 {
		t.Fatal("expected a nonzero level")
	}

	// Restart against a swapped-in track: old frames must not leak into the
	// new window.
	m.Start("trk-2")
	if m.Level() != 0 {
		t.Errorf("level after restart = %d, want 0", m.Level())
	}
	if err := m.Sample("trk-1", loudPCM(160)); err != ErrStaleTrack {
		t.Errorf("old track after restart = %v, want ErrStaleTrack", err)
	}
	if err := m.Sample("trk-2", silentPCM(160)); err != nil {
		t.Errorf("new track sample: %v", err)
	}
	if len(m.frames) != 1 {
		t.Errorf("frames = %d, want 1 (window replaced, not stacked)", len(m.frames))
	}
}

func TestWindowIsBounded(t *testing.T) {
	m := NewLevelMonitor()
	m.Start("trk-1")
	for i := 0; i < levelWindow*3; i++ {
		m.Sample("trk-1", loudPCM(160))
	}
	if len(m.frames) != levelWindow {
		t.Errorf("frames = %d, want %d", len(m.frames), levelWindow)
	}
}

func TestStoppedMonitorReportsZero(t *testing.T) {
	m := NewLevelMonitor()
	m.Start("trk-1")
	m.Sample("trk-1", loudPCM(160))
	m.Stop()
	if m.Level() != 0 {
		t.Errorf("level after stop = %d, want 0", m.Level())
	}
	if m.Running() {
		t.Error("monitor should not be running after stop")
	}
}
