package db

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "prefs.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoadPrefsDefaults(t *testing.T) {
	s := openTestStore(t)

	p, err := s.LoadPrefs()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !p.CameraEnabled || !p.MicrophoneEnabled {
		t.Errorf("defaults = %+v, want both devices enabled", p)
	}
	if p.TextOnly {
		t.Error("text-only should default to false")
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	s := openTestStore(t)

	want := Prefs{CameraEnabled: false, MicrophoneEnabled: true, TextOnly: true}
	if err := s.SavePrefs(want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.LoadPrefs()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Errorf("prefs = %+v, want %+v", got, want)
	}
}

func TestSaveOverwrites(t *testing.T) {
	s := openTestStore(t)

	if err := s.SavePrefs(Prefs{CameraEnabled: false}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.SavePrefs(Prefs{CameraEnabled: true, MicrophoneEnabled: true}); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := s.LoadPrefs()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !got.CameraEnabled || !got.MicrophoneEnabled {
		t.Errorf("prefs = %+v, want second save to win", got)
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "prefs.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open with missing parent dirs: %v", err)
	}
	s.Close()
}
