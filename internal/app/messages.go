package app

import (
	"github.com/jaadu20/aivis-interview/internal/interview"
	"github.com/jaadu20/aivis-interview/internal/media"
)

// Session-scoped messages carry the generation they were issued under. A
// message whose generation no longer matches the model is dropped on entry,
// so a late response arriving after exit can never mutate session state.

// MediaConnectedMsg is sent when both media daemon connections are
// established: one for commands, one for the event subscription.
type MediaConnectedMsg struct {
	Cmd *media.Client
	Ev  *media.Client
}

// MediaConnectErrorMsg is sent when the daemon connection fails. The session
// proceeds in text-only mode.
type MediaConnectErrorMsg struct {
	Err error
}

// MediaEventMsg wraps a streamed event from the media daemon.
type MediaEventMsg struct {
	Event media.Event
}

// MediaEventErrorMsg is sent when the event stream breaks.
type MediaEventErrorMsg struct {
	Err error
}

// MediaAcquiredMsg carries the track handles after a successful acquire.
type MediaAcquiredMsg struct {
	Gen     int
	Handles media.Handles
}

// MediaAcquireErrorMsg degrades the session to text-only mode.
type MediaAcquireErrorMsg struct {
	Gen int
	Err error
}

// CameraToggledMsg carries the handle state after a camera toggle.
type CameraToggledMsg struct {
	Gen     int
	Handles media.Handles
	Err     error
}

// MicToggledMsg carries the handle state after a microphone toggle.
type MicToggledMsg struct {
	Gen     int
	Handles media.Handles
	Err     error
}

// SessionStartedMsg carries the backend-assigned session identity.
type SessionStartedMsg struct {
	Gen           int
	ID            string
	IntroAudioURL string
}

// SessionStartErrorMsg is sent when session start fails; the ready screen
// stays up for a manual retry.
type SessionStartErrorMsg struct {
	Gen int
	Err error
}

// QuestionFetchedMsg carries the next question, or completion.
type QuestionFetchedMsg struct {
	Gen    int
	Result interview.NextQuestionResult
}

// QuestionFetchErrorMsg is sent when the fetch fails; status is unchanged and
// the fetch is retried manually.
type QuestionFetchErrorMsg struct {
	Gen int
	Err error
}

// CuePlayErrorMsg is sent when a cue could not be fetched or started. The
// controller advances as if the cue had ended.
type CuePlayErrorMsg struct {
	Gen int
	Err error
}

// RecordStartedMsg reports the daemon's answer to record_start.
type RecordStartedMsg struct {
	Gen int
	Err error
}

// RecordStoppedMsg reports the daemon's answer to record_stop.
type RecordStoppedMsg struct {
	Gen int
	Err error
}

// TranscriptMsg carries the speech-to-text result for the stopped recording.
type TranscriptMsg struct {
	Gen  int
	Text string
}

// TranscriptErrorMsg returns the session to an empty, re-recordable answer.
type TranscriptErrorMsg struct {
	Gen int
	Err error
}

// AnswerSubmittedMsg reports a successful submission.
type AnswerSubmittedMsg struct {
	Gen       int
	Completed bool
}

// SubmitErrorMsg is sent when submission fails; the answer stays editable for
// a manual retry.
type SubmitErrorMsg struct {
	Gen int
	Err error
}

// ElapsedTickMsg advances the session wall clock once per second.
type ElapsedTickMsg struct {
	Gen int
}

// LevelTickMsg re-renders the level meter on a fixed cadence while recording.
type LevelTickMsg struct {
	Gen int
}

// ClearNoticeMsg clears a transient notice after a timeout.
type ClearNoticeMsg struct{}
