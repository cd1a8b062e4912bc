package cue

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/jaadu20/aivis-interview/internal/media"
)

type fakeCommander struct {
	commands []media.Command
	resp     media.Response
}

func (f *fakeCommander) SendCommand(cmd media.Command) (media.Response, error) {
	f.commands = append(f.commands, cmd)
	return f.resp, nil
}

func TestFetchDownloadsAndCaches(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte("fake-audio-bytes"))
	}))
	defer srv.Close()

	p := NewPlayer(&fakeCommander{}, t.TempDir())

	path, err := p.Fetch(context.Background(), srv.URL+"/q1.mp3")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read cached file: %v", err)
	}
	if string(data) != "fake-audio-bytes" {
		t.Errorf("cached bytes = %q", data)
	}

	// Replay: same url resolves from cache without a second request.
	path2, err := p.Fetch(context.Background(), srv.URL+"/q1.mp3")
	if err != nil {
		t.Fatalf("refetch: %v", err)
	}
	if path2 != path {
		t.Errorf("cache paths differ: %q vs %q", path, path2)
	}
	if hits.Load() != 1 {
		t.Errorf("server hits = %d, want 1", hits.Load())
	}
}

func TestFetchDistinctURLsDistinctFiles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.URL.Path))
	}))
	defer srv.Close()

	p := NewPlayer(&fakeCommander{}, t.TempDir())

	a, err := p.Fetch(context.Background(), srv.URL+"/a.mp3")
	if err != nil {
		t.Fatalf("fetch a: %v", err)
	}
	b, err := p.Fetch(context.Background(), srv.URL+"/b.mp3")
	if err != nil {
		t.Fatalf("fetch b: %v", err)
	}
	if a == b {
		t.Error("different urls must cache to different files")
	}
}

func TestFetchErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	p := NewPlayer(&fakeCommander{}, t.TempDir())

	if _, err := p.Fetch(context.Background(), srv.URL+"/missing.mp3"); err == nil {
		t.Error("404 download should fail")
	}
	if _, err := p.Fetch(context.Background(), ""); err == nil {
		t.Error("empty url should fail")
	}
}

func TestPlaySendsPathToDaemon(t *testing.T) {
	cmd := &fakeCommander{resp: media.Response{OK: true}}
	p := NewPlayer(cmd, t.TempDir())

	if err := p.Play("/cache/abc.audio"); err != nil {
		t.Fatalf("play: %v", err)
	}
	if len(cmd.commands) != 1 {
		t.Fatalf("commands = %d, want 1", len(cmd.commands))
	}
	if cmd.commands[0].Cmd != "play" || cmd.commands[0].Path != "/cache/abc.audio" {
		t.Errorf("command = %+v", cmd.commands[0])
	}
}

func TestPlayDaemonError(t *testing.T) {
	cmd := &fakeCommander{resp: media.Response{OK: false, Error: "no audio output"}}
	p := NewPlayer(cmd, t.TempDir())

	if err := p.Play("/cache/abc.audio"); err == nil {
		t.Error("daemon refusal should surface as an error")
	}
}
