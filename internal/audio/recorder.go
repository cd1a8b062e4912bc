// Package audio implements the answer recorder and the microphone level
// monitor. Both operate on LINEAR16 PCM fragments streamed from the capture
// daemon.
package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"time"
)

const (
	SampleRate          = 16000
	Channels            = 1
	AudioBytesPerSample = 2  // LINEAR16 → 2 bytes per sample
	AudioBitsPerSample  = 16 // LINEAR16 → 16 bits per sample
	audioPCMFormat      = 1  // WAV PCM format tag
)

// ErrRecordingUnavailable is returned by Start when no enabled audio track
// exists. The controller treats it like a stop with an empty buffer.
var ErrRecordingUnavailable = errors.New("recording unavailable: no enabled audio track")

// Phase is the recorder lifecycle.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseRecording Phase = "recording"
)

// Recorder accumulates ordered PCM fragments for a single answer and renders
// them into one transcription-ready WAV on Stop. Internal state is cleared on
// every Stop regardless of what happens downstream.
type Recorder struct {
	phase   Phase
	trackID string
	chunks  [][]byte
	started time.Time
	// clock is injectable for testing; defaults to time.Now.
	clock func() time.Time
}

// NewRecorder returns an idle recorder.
func NewRecorder() *Recorder {
	return &Recorder{phase: PhaseIdle, clock: time.Now}
}

// Phase returns the current lifecycle phase.
func (r *Recorder) Phase() Phase { return r.phase }

// Start begins capturing chunks from the given audio track. Fails with
// ErrRecordingUnavailable when the track is missing or disabled.
func (r *Recorder) Start(trackID string, enabled bool) error {
	if trackID == "" || !enabled {
		return ErrRecordingUnavailable
	}
	if r.phase == PhaseRecording {
		// Already recording: ignore, never stack sessions.
		return nil
	}
	r.trackID = trackID
	r.chunks = r.chunks[:0]
	r.started = r.clock()
	r.phase = PhaseRecording
	return nil
}

// Append adds one PCM fragment in arrival order. Fragments from other tracks
// or outside a recording window are dropped.
func (r *Recorder) Append(trackID string, pcm []byte) {
	if r.phase != PhaseRecording || trackID != r.trackID || len(pcm) == 0 {
		return
	}
	buf := make([]byte, len(pcm))
	copy(buf, pcm)
	r.chunks = append(r.chunks, buf)
}

// Reset discards buffered chunks without leaving the recording phase. Used
// for re-record: the session status is unchanged, only the buffer restarts.
func (r *Recorder) Reset() {
	r.chunks = r.chunks[:0]
	if r.phase == PhaseRecording {
		r.started = r.clock()
	}
}

// Stop concatenates the buffered fragments into a single WAV and clears all
// internal state immediately. Calling Stop while idle returns an empty buffer
// and never errors, since exit-during-recording must not crash.
func (r *Recorder) Stop() []byte {
	if r.phase != PhaseRecording {
		return nil
	}
	var pcm bytes.Buffer
	for _, c := range r.chunks {
		pcm.Write(c)
	}
	r.chunks = nil
	r.trackID = ""
	r.phase = PhaseIdle

	if pcm.Len() == 0 {
		return nil
	}
	return encodeWAV(pcm.Bytes())
}

// ElapsedSeconds reports how long the current recording has been running.
func (r *Recorder) ElapsedSeconds() int {
	if r.phase != PhaseRecording {
		return 0
	}
	return int(r.clock().Sub(r.started).Seconds())
}

// encodeWAV wraps raw LINEAR16 PCM in a RIFF header.
func encodeWAV(pcm []byte) []byte {
	var buf bytes.Buffer
	bps := SampleRate * Channels * AudioBytesPerSample

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(audioPCMFormat))
	binary.Write(&buf, binary.LittleEndian, uint16(Channels))
	binary.Write(&buf, binary.LittleEndian, uint32(SampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(bps))
	binary.Write(&buf, binary.LittleEndian, uint16(AudioBytesPerSample*Channels))
	binary.Write(&buf, binary.LittleEndian, uint16(AudioBitsPerSample))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)

	return buf.Bytes()
}
