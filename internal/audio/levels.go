package audio

import (
	"errors"
	"math"
)

// ErrStaleTrack is returned when a sample arrives for a track the monitor is
// not watching: a swapped or released handle, which must not be read
// silently.
var ErrStaleTrack = errors.New("level monitor: sample from stale track")

// levelWindow is how many recent frames feed the displayed level.
const levelWindow = 8

// LevelMonitor derives a bounded 0–100 loudness value from the live
// microphone PCM stream. Each Start owns exactly one analysis window; a
// restart replaces it rather than stacking.
type LevelMonitor struct {
	trackID string
	running bool
	frames  []float64 // per-chunk RMS, most recent last
	level   int
}

// NewLevelMonitor returns a stopped monitor.
func NewLevelMonitor() *LevelMonitor {
	return &LevelMonitor{}
}

// Start begins analysis for the given track, discarding any previous window.
func (m *LevelMonitor) Start(trackID string) {
	m.trackID = trackID
	m.running = true
	m.frames = m.frames[:0]
	m.level = 0
}

// Stop releases the analysis window. Sampling after Stop is an error.
func (m *LevelMonitor) Stop() {
	m.running = false
	m.trackID = ""
	m.frames = nil
	m.level = 0
}

// Running reports whether a window is active.
func (m *LevelMonitor) Running() bool { return m.running }

// Sample feeds one LINEAR16 PCM fragment into the analysis window.
func (m *LevelMonitor) Sample(trackID string, pcm []byte) error {
	if !m.running || trackID != m.trackID {
		return ErrStaleTrack
	}
	if len(pcm) < AudioBytesPerSample {
		return nil
	}

	var sum float64
	n := len(pcm) / AudioBytesPerSample
	for i := 0; i < n; i++ {
		s := int16(uint16(pcm[2*i]) | uint16(pcm[2*i+1])<<8)
		f := float64(s) / math.MaxInt16
		sum += f * f
	}
	rms := math.Sqrt(sum / float64(n))

	m.frames = append(m.frames, rms)
	if len(m.frames) > levelWindow {
		m.frames = m.frames[len(m.frames)-levelWindow:]
	}

	var avg float64
	for _, f := range m.frames {
		avg += f
	}
	avg /= float64(len(m.frames))

	// Perceptual-ish scaling: full scale RMS is rare, so boost quiet input.
	level := int(math.Sqrt(avg) * 100)
	if level > 100 {
		level = 100
	}
	m.level = level
	return nil
}

// Level returns the current loudness, 0–100.
func (m *LevelMonitor) Level() int {
	if !m.running {
		return 0
	}
	return m.level
}
