// Package config loads client configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the interview client needs at startup.
type Config struct {
	APIBaseURL     string // recruitment backend, e.g. https://api.ai-vis.com
	APIToken       string // bearer token for the authenticated candidate
	ApplicationID  string // optional job application this interview belongs to
	TotalQuestions int    // question cap shown in the progress header
	SocketPath     string // media capture daemon socket
	CacheDir       string // downloaded cue audio
	LogPath        string // rotated log file (stdout belongs to the TUI)
	DBPath         string // preferences database
	LogLevel       string
}

// Load reads .env if present, then the environment. Missing values fall back
// to defaults that work against a local stack.
func Load() Config {
	_ = godotenv.Load()

	dataDir := defaultDataDir()
	return Config{
		APIBaseURL:     getenv("AIVIS_API_URL", "http://localhost:8000/api"),
		APIToken:       getenv("AIVIS_API_TOKEN", ""),
		ApplicationID:  getenv("AIVIS_APPLICATION_ID", ""),
		TotalQuestions: getenvInt("AIVIS_TOTAL_QUESTIONS", 15),
		SocketPath:     getenv("AIVIS_MEDIAD_SOCKET", filepath.Join(dataDir, "mediad.sock")),
		CacheDir:       getenv("AIVIS_CACHE_DIR", filepath.Join(dataDir, "cues")),
		LogPath:        getenv("AIVIS_LOG_FILE", filepath.Join(dataDir, "interview.log")),
		DBPath:         getenv("AIVIS_DB_PATH", filepath.Join(dataDir, "prefs.sqlite")),
		LogLevel:       getenv("LOG_LEVEL", "info"),
	}
}

func defaultDataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".aivis")
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return d
	}
	return n
}
