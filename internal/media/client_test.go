package media

import (
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"testing"
)

// startMockDaemon creates a Unix socket that accepts one connection,
// reads a command, and writes back a canned response.
func startMockDaemon(t *testing.T, response Response) (string, func()) {
	t.Helper()

	dir := t.TempDir()
	sockPath := filepath.Join(dir, "test.sock")

	ln, err := net.Listen("unix", sockPath)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		// Read one line (the command)
		buf := make([]byte, 4096)
		if _, err := conn.Read(buf); err != nil {
			return
		}

		data, _ := json.Marshal(response)
		data = append(data, '\n')
		conn.Write(data)
	}()

	return sockPath, func() {
		ln.Close()
		os.Remove(sockPath)
	}
}

func TestClientSendCommand(t *testing.T) {
	resp := Response{
		OK:           true,
		AudioTrackID: "aud-1",
		VideoTrackID: "vid-1",
	}

	sockPath, cleanup := startMockDaemon(t, resp)
	defer cleanup()

	client, err := Connect(sockPath)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Close()

	got, err := client.SendCommand(Command{Cmd: "acquire"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if !got.OK {
		t.Error("ok = false, want true")
	}
	if got.AudioTrackID != "aud-1" {
		t.Errorf("audioTrackId = %q, want %q", got.AudioTrackID, "aud-1")
	}
	if got.VideoTrackID != "vid-1" {
		t.Errorf("videoTrackId = %q, want %q", got.VideoTrackID, "vid-1")
	}
}

func TestClientConnectFailure(t *testing.T) {
	_, err := Connect("/nonexistent/path/aivis-mediad.sock")
	if err == nil {
		t.Error("expected error connecting to nonexistent socket")
	}
}

// startMockEventStream creates a daemon that sends a subscribe response
// then streams events.
func startMockEventStream(t *testing.T, events []Event) (string, func()) {
	t.Helper()

	dir := t.TempDir()
	sockPath := filepath.Join(dir, "test.sock")

	ln, err := net.Listen("unix", sockPath)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		// Read subscribe command
		buf := make([]byte, 4096)
		conn.Read(buf)

		resp, _ := json.Marshal(Response{OK: true})
		conn.Write(append(resp, '\n'))

		for _, ev := range events {
			data, _ := json.Marshal(ev)
			conn.Write(append(data, '\n'))
		}
	}()

	return sockPath, func() {
		ln.Close()
		os.Remove(sockPath)
	}
}

func TestClientReadEvents(t *testing.T) {
	enabled := false
	events := []Event{
		{Event: EventChunk, TrackID: "aud-1", Chunk: []byte{0x01, 0x02, 0x03, 0x04}},
		{Event: EventTrack, TrackID: "vid-1", Kind: TrackVideo, Enabled: &enabled},
		{Event: EventPlaybackDone},
	}

	sockPath, cleanup := startMockEventStream(t, events)
	defer cleanup()

	client, err := Connect(sockPath)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Close()

	_, err = client.SendCommand(Command{Cmd: "subscribe"})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	ev1, err := client.ReadEvent()
	if err != nil {
		t.Fatalf("read event 1: %v", err)
	}
	if ev1.Event != EventChunk || ev1.TrackID != "aud-1" {
		t.Errorf("event1 = %+v", ev1)
	}
	if len(ev1.Chunk) != 4 || ev1.Chunk[0] != 0x01 {
		t.Errorf("chunk = %v, want 4 PCM bytes", ev1.Chunk)
	}

	ev2, err := client.ReadEvent()
	if err != nil {
		t.Fatalf("read event 2: %v", err)
	}
	if ev2.Event != EventTrack || ev2.Kind != TrackVideo {
		t.Errorf("event2 = %+v", ev2)
	}
	if ev2.Enabled == nil || *ev2.Enabled {
		t.Errorf("enabled = %v, want false", ev2.Enabled)
	}

	ev3, err := client.ReadEvent()
	if err != nil {
		t.Fatalf("read event 3: %v", err)
	}
	if ev3.Event != EventPlaybackDone {
		t.Errorf("event3 = %+v", ev3)
	}
}

func TestClientReadEventAfterClose(t *testing.T) {
	sockPath, cleanup := startMockEventStream(t, nil)
	defer cleanup()

	client, err := Connect(sockPath)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Close()

	if _, err := client.SendCommand(Command{Cmd: "subscribe"}); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	// The mock closes the connection after its last event.
	if _, err := client.ReadEvent(); err == nil {
		t.Error("expected error reading from a closed stream")
	}
}
