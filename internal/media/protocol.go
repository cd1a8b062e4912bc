// Package media provides the client and protocol types for the aivis-mediad
// capture daemon, reached over a Unix socket using NDJSON, plus the device
// manager that owns the acquired tracks.
package media

// TrackKind distinguishes the two capture tracks.
type TrackKind string

const (
	TrackAudio TrackKind = "audio"
	TrackVideo TrackKind = "video"
)

// Command is sent from the client to the daemon.
type Command struct {
	Cmd     string    `json:"cmd"`
	Kind    TrackKind `json:"kind,omitempty"`    // enable_track / disable_track
	Path    string    `json:"path,omitempty"`    // play: local cue file
	TrackID string    `json:"trackId,omitempty"` // record_start: audio track to tap
	Events  []string  `json:"events,omitempty"`  // subscribe filter, empty = all
}

// Response is returned by the daemon after processing a command.
type Response struct {
	OK           bool   `json:"ok"`
	AudioTrackID string `json:"audioTrackId,omitempty"`
	VideoTrackID string `json:"videoTrackId,omitempty"`
	TrackID      string `json:"trackId,omitempty"` // fresh track from enable_track
	Error        string `json:"error,omitempty"`
}

// Event is streamed from the daemon to subscribed clients.
type Event struct {
	Event   string    `json:"event"`
	TrackID string    `json:"trackId,omitempty"`
	Kind    TrackKind `json:"kind,omitempty"`
	Chunk   []byte    `json:"chunk,omitempty"` // base64 LINEAR16 PCM on the wire
	Enabled *bool     `json:"enabled,omitempty"`
	Message string    `json:"message,omitempty"`
}

// Event names streamed by the daemon.
const (
	EventChunk        = "chunk"         // PCM fragment from the tapped audio track
	EventPlaybackDone = "playback_done" // cue finished playing
	EventTrack        = "track"         // track enabled-state changed
	EventError        = "error"
)
