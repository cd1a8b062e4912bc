package media

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestCommandOmitsEmptyFields(t *testing.T) {
	data, err := json.Marshal(Command{Cmd: "release"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}

	for _, field := range []string{"kind", "path", "trackId", "events"} {
		if _, ok := raw[field]; ok {
			t.Errorf("release command should omit %q", field)
		}
	}
}

func TestCommandEnableTrackCarriesKind(t *testing.T) {
	data, err := json.Marshal(Command{Cmd: "enable_track", Kind: TrackVideo})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"kind":"video"`) {
		t.Errorf("wire form = %s, want kind:video", data)
	}
}

func TestEventChunkDecodesBase64PCM(t *testing.T) {
	// "AAEAAQ==" is the 4 bytes 00 01 00 01.
	j := `{"event":"chunk","trackId":"aud-1","chunk":"AAEAAQ=="}`

	var ev Event
	if err := json.Unmarshal([]byte(j), &ev); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if ev.Event != EventChunk || ev.TrackID != "aud-1" {
		t.Errorf("event = %+v", ev)
	}
	want := []byte{0x00, 0x01, 0x00, 0x01}
	if len(ev.Chunk) != len(want) {
		t.Fatalf("chunk len = %d, want %d", len(ev.Chunk), len(want))
	}
	for i := range want {
		if ev.Chunk[i] != want[i] {
			t.Fatalf("chunk[%d] = %#x, want %#x", i, ev.Chunk[i], want[i])
		}
	}
}

func TestEventTrackEnabledState(t *testing.T) {
	j := `{"event":"track","trackId":"vid-2","kind":"video","enabled":true}`

	var ev Event
	if err := json.Unmarshal([]byte(j), &ev); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if ev.Kind != TrackVideo {
		t.Errorf("kind = %q, want video", ev.Kind)
	}
	if ev.Enabled == nil || !*ev.Enabled {
		t.Errorf("enabled = %v, want true", ev.Enabled)
	}
}

func TestEventErrorMessage(t *testing.T) {
	j := `{"event":"error","message":"camera disconnected"}`

	var ev Event
	if err := json.Unmarshal([]byte(j), &ev); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if ev.Event != EventError || ev.Message != "camera disconnected" {
		t.Errorf("event = %+v", ev)
	}
}
