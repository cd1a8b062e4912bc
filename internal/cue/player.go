// Package cue downloads server-supplied narration audio and plays it through
// the capture daemon. Completion arrives on the daemon event stream as a
// playback_done event; the controller gates the next transition on it.
package cue

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jaadu20/aivis-interview/internal/media"
)

// Player fetches cue audio into a local cache and drives daemon playback.
type Player struct {
	http     *resty.Client
	cacheDir string
	cmd      media.Commander
}

// NewPlayer builds a player caching downloads under cacheDir.
func NewPlayer(cmd media.Commander, cacheDir string) *Player {
	return &Player{
		http:     resty.New().SetTimeout(30 * time.Second),
		cacheDir: cacheDir,
		cmd:      cmd,
	}
}

// Fetch downloads the cue at url into the cache and returns the local path.
// Re-fetching the same url (cue replay) hits the cache.
func (p *Player) Fetch(ctx context.Context, url string) (string, error) {
	if url == "" {
		return "", fmt.Errorf("fetch cue: empty url")
	}
	if err := os.MkdirAll(p.cacheDir, 0o755); err != nil {
		return "", fmt.Errorf("fetch cue: %w", err)
	}

	sum := sha256.Sum256([]byte(url))
	path := filepath.Join(p.cacheDir, hex.EncodeToString(sum[:8])+".audio")
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	resp, err := p.http.R().
		SetContext(ctx).
		SetOutput(path).
		Get(url)
	if err != nil {
		return "", fmt.Errorf("fetch cue: %w", err)
	}
	if resp.IsError() {
		os.Remove(path)
		return "", fmt.Errorf("fetch cue: server returned %d", resp.StatusCode())
	}
	return path, nil
}

// Play asks the daemon to play the cached cue. It returns as soon as playback
// has started; the playback_done event signals completion.
func (p *Player) Play(path string) error {
	resp, err := p.cmd.SendCommand(media.Command{Cmd: "play", Path: path})
	if err != nil {
		return fmt.Errorf("play cue: %w", err)
	}
	if !resp.OK {
		return fmt.Errorf("play cue: %s", resp.Error)
	}
	return nil
}
