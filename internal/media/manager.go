package media

import (
	"fmt"
	"sync"
)

// DeviceError reports that the camera/microphone could not be acquired or
// toggled. Callers degrade to text-only mode instead of aborting the session.
type DeviceError struct {
	Op     string
	Detail string
}

func (e *DeviceError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("media device %s failed: %s", e.Op, e.Detail)
	}
	return fmt.Sprintf("media device %s failed", e.Op)
}

// Commander is the slice of the daemon client the manager drives. Split out
// so tests can substitute a fake daemon.
type Commander interface {
	SendCommand(Command) (Response, error)
}

// TrackHandle is a weak reference to a daemon-owned track. Handles are copied
// out to renderers, the level monitor and the recorder; only the Manager may
// enable, disable or stop the underlying track.
type TrackHandle struct {
	ID      string
	Kind    TrackKind
	Enabled bool
}

// Handles bundles the two track handles acquired for a session.
type Handles struct {
	Audio TrackHandle
	Video TrackHandle
}

// Manager is the sole owner of the capture tracks. Toggles operate on one
// track without disturbing the other; Release stops everything exactly once.
type Manager struct {
	mu       sync.Mutex
	cmd      Commander
	audio    TrackHandle
	video    TrackHandle
	acquired bool
	released bool
}

// NewManager wraps a daemon connection (or fake) in a Manager.
func NewManager(cmd Commander) *Manager {
	return &Manager{cmd: cmd}
}

// Acquire requests combined audio+video capture. Called once per session;
// calling again returns the existing handles. Failure yields *DeviceError.
func (m *Manager) Acquire() (Handles, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.acquired && !m.released {
		return m.handles(), nil
	}
	if m.released {
		return Handles{}, &DeviceError{Op: "acquire", Detail: "manager already released"}
	}

	resp, err := m.cmd.SendCommand(Command{Cmd: "acquire"})
	if err != nil {
		return Handles{}, &DeviceError{Op: "acquire", Detail: err.Error()}
	}
	if !resp.OK {
		return Handles{}, &DeviceError{Op: "acquire", Detail: resp.Error}
	}

	m.audio = TrackHandle{ID: resp.AudioTrackID, Kind: TrackAudio, Enabled: resp.AudioTrackID != ""}
	m.video = TrackHandle{ID: resp.VideoTrackID, Kind: TrackVideo, Enabled: resp.VideoTrackID != ""}
	m.acquired = true
	return m.handles(), nil
}

// ToggleCamera flips the video track. Disabling stops and releases only the
// video track; re-enabling swaps in a fresh one without restarting audio.
func (m *Manager) ToggleCamera() (Handles, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.toggle(&m.video)
}

// ToggleMicrophone flips the audio track, leaving video untouched.
func (m *Manager) ToggleMicrophone() (Handles, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.toggle(&m.audio)
}

func (m *Manager) toggle(h *TrackHandle) (Handles, error) {
	if !m.acquired || m.released {
		return m.handles(), &DeviceError{Op: "toggle", Detail: "no active capture"}
	}

	if h.Enabled {
		resp, err := m.cmd.SendCommand(Command{Cmd: "disable_track", Kind: h.Kind})
		if err != nil {
			return m.handles(), &DeviceError{Op: "toggle", Detail: err.Error()}
		}
		if !resp.OK {
			return m.handles(), &DeviceError{Op: "toggle", Detail: resp.Error}
		}
		h.Enabled = false
		return m.handles(), nil
	}

	// Re-enable requests a fresh track; the daemon hands back a new id that
	// replaces the stale handle.
	resp, err := m.cmd.SendCommand(Command{Cmd: "enable_track", Kind: h.Kind})
	if err != nil {
		return m.handles(), &DeviceError{Op: "toggle", Detail: err.Error()}
	}
	if !resp.OK {
		return m.handles(), &DeviceError{Op: "toggle", Detail: resp.Error}
	}
	if resp.TrackID != "" {
		h.ID = resp.TrackID
	}
	h.Enabled = true
	return m.handles(), nil
}

// Release stops every owned track. Idempotent: safe on teardown and on
// explicit exit even if already called.
func (m *Manager) Release() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.acquired || m.released {
		m.released = m.acquired
		return nil
	}
	m.released = true
	m.audio.Enabled = false
	m.video.Enabled = false

	resp, err := m.cmd.SendCommand(Command{Cmd: "release"})
	if err != nil {
		return fmt.Errorf("release tracks: %w", err)
	}
	if !resp.OK {
		return fmt.Errorf("release tracks: %s", resp.Error)
	}
	return nil
}

// Handles returns copies of the current track handles.
func (m *Manager) Handles() Handles {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.handles()
}

func (m *Manager) handles() Handles {
	return Handles{Audio: m.audio, Video: m.video}
}

// MicrophoneEnabled reports whether the audio track is live.
func (m *Manager) MicrophoneEnabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.audio.Enabled && !m.released
}

// CameraEnabled reports whether the video track is live.
func (m *Manager) CameraEnabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.video.Enabled && !m.released
}
