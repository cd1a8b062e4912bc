// Package db persists small client preferences in SQLite. Interview session
// state is intentionally never stored; only the server holds durable records.
package db

// Prefs are the user's device and input preferences, restored on startup.
type Prefs struct {
	CameraEnabled     bool
	MicrophoneEnabled bool
	TextOnly          bool // force text-only mode even when devices exist
}

// DefaultPrefs enables both devices.
func DefaultPrefs() Prefs {
	return Prefs{CameraEnabled: true, MicrophoneEnabled: true}
}
