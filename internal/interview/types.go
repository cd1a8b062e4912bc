// Package interview holds the interview session data model and the REST
// client for the recruitment backend.
package interview

// SessionStatus models the interview lifecycle. Progression is linear; the
// only terminal states are Completed and Exited.
type SessionStatus string

const (
	StatusUninitialized    SessionStatus = "uninitialized"
	StatusPlayingIntro     SessionStatus = "playing_intro"
	StatusAwaitingQuestion SessionStatus = "awaiting_question"
	StatusPlayingQuestion  SessionStatus = "playing_question"
	StatusAwaitingAnswer   SessionStatus = "awaiting_answer"
	StatusRecording        SessionStatus = "recording"
	StatusTranscribing     SessionStatus = "transcribing"
	StatusSubmitting       SessionStatus = "submitting"
	StatusCompleted        SessionStatus = "completed"
	StatusExited           SessionStatus = "exited"
)

// Active reports whether the session is still in progress.
func (s SessionStatus) Active() bool {
	switch s {
	case StatusCompleted, StatusExited, StatusUninitialized:
		return false
	}
	return true
}

// Question is immutable once fetched. Questions arrive one at a time and are
// appended in order.
type Question struct {
	ID         string
	Text       string
	Difficulty string
	AudioURL   string // narration cue, may be empty
}

// Answer is the editable draft for the current question. Sealed on submit.
type Answer struct {
	QuestionID               string
	Text                     string
	RecordingDurationSeconds int
}
