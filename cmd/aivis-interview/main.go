// aivis-interview is the terminal client for AI-VIS video interviews: it
// drives a candidate through a timed, multi-stage spoken interview against
// the recruitment backend.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jaadu20/aivis-interview/internal/app"
	"github.com/jaadu20/aivis-interview/internal/config"
	"github.com/jaadu20/aivis-interview/internal/db"
	"github.com/jaadu20/aivis-interview/internal/interview"
	"github.com/jaadu20/aivis-interview/internal/logger"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogPath, cfg.LogLevel)

	prefs := db.DefaultPrefs()
	store, err := db.Open(cfg.DBPath)
	if err != nil {
		// Preferences are a convenience; run with defaults if unavailable.
		log.WithError(err).Warn("preferences database unavailable")
		store = nil
	} else {
		defer store.Close()
		if p, err := store.LoadPrefs(); err == nil {
			prefs = p
		} else {
			log.WithError(err).Warn("loading preferences failed")
		}
	}

	m := app.New(app.Deps{
		API:   interview.NewClient(cfg.APIBaseURL, cfg.APIToken),
		Store: store,
		Log:   log,
		Prefs: prefs,
		Config: app.Config{
			SocketPath:     cfg.SocketPath,
			CacheDir:       cfg.CacheDir,
			ApplicationID:  cfg.ApplicationID,
			TotalQuestions: cfg.TotalQuestions,
		},
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "aivis-interview: %v\n", err)
		os.Exit(1)
	}
}
