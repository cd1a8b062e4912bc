package app

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jaadu20/aivis-interview/internal/audio"
	"github.com/jaadu20/aivis-interview/internal/cue"
	"github.com/jaadu20/aivis-interview/internal/db"
	"github.com/jaadu20/aivis-interview/internal/interview"
	"github.com/jaadu20/aivis-interview/internal/media"
)

// Focus tracks whether keys drive the controls or edit the answer text.
type Focus int

const (
	FocusControls Focus = iota
	FocusAnswer
)

// Config is the controller's slice of the app configuration.
type Config struct {
	SocketPath     string
	CacheDir       string
	ApplicationID  string
	TotalQuestions int
}

// Deps are the collaborators injected at startup. Store may be nil when the
// preferences database is unavailable.
type Deps struct {
	API    *interview.Client
	Store  *db.Store
	Log    logrus.FieldLogger
	Prefs  db.Prefs
	Config Config
}

// Model is the interview session controller: the root bubbletea model whose
// Update function is the state-transition table. All session mutations happen
// here, serialized by the runtime's message queue.
type Model struct {
	api    *interview.Client
	store  *db.Store
	log    logrus.FieldLogger
	prefs  db.Prefs
	config Config

	// Media daemon connections and the components built on them.
	cmdClient *media.Client // command connection
	evClient  *media.Client // event subscription connection
	manager   *media.Manager
	player    *cue.Player
	recorder  *audio.Recorder
	levels    *audio.LevelMonitor

	// Session state. gen is bumped on exit; async results carrying a stale
	// generation are dropped, so late responses cannot mutate anything.
	gen              int
	status           interview.SessionStatus
	sessionID        string
	questionIndex    int
	answersSubmitted int
	questions        []interview.Question
	answer           interview.Answer
	elapsedSeconds   int

	// Media state mirrored for the view; the manager owns the tracks.
	mediaConnected bool
	mediaReady     bool
	textOnly       bool
	handles        media.Handles

	// In-flight guards against double-pressed keys and overlapping requests.
	starting      bool
	pendingFetch  bool
	pendingRecord bool
	pendingStop   bool

	// UI state
	focus           Focus
	width           int
	height          int
	notice          string
	noticeTransient bool
	confirmingExit  bool
	statusText      string
}

// New creates the controller in the Uninitialized state.
func New(deps Deps) Model {
	return Model{
		api:        deps.API,
		store:      deps.Store,
		log:        deps.Log,
		prefs:      deps.Prefs,
		config:     deps.Config,
		recorder:   audio.NewRecorder(),
		levels:     audio.NewLevelMonitor(),
		status:     interview.StatusUninitialized,
		textOnly:   deps.Prefs.TextOnly,
		statusText: "Connecting to media devices...",
	}
}

// Status exposes the current session status, mainly for tests.
func (m Model) Status() interview.SessionStatus { return m.status }

// Init connects to the media capture daemon.
func (m Model) Init() tea.Cmd {
	return connectCmd(m.config.SocketPath)
}

// connectCmd dials the media daemon with two connections: one for commands,
// one for the event subscription.
func connectCmd(socketPath string) tea.Cmd {
	return func() tea.Msg {
		cmdClient, err := media.Connect(socketPath)
		if err != nil {
			return MediaConnectErrorMsg{Err: err}
		}
		evClient, err := media.Connect(socketPath)
		if err != nil {
			cmdClient.Close()
			return MediaConnectErrorMsg{Err: err}
		}
		return MediaConnectedMsg{Cmd: cmdClient, Ev: evClient}
	}
}

// subscribeCmd subscribes on the event client and starts reading events.
func subscribeCmd(evClient *media.Client) tea.Cmd {
	return func() tea.Msg {
		if _, err := evClient.SendCommand(media.Command{Cmd: "subscribe"}); err != nil {
			return MediaEventErrorMsg{Err: err}
		}
		return readEventCmd(evClient)()
	}
}

// readEventCmd reads the next event from the event client.
func readEventCmd(evClient *media.Client) tea.Cmd {
	return func() tea.Msg {
		ev, err := evClient.ReadEvent()
		if err != nil {
			return MediaEventErrorMsg{Err: err}
		}
		return MediaEventMsg{Event: ev}
	}
}

func acquireCmd(manager *media.Manager, gen int) tea.Cmd {
	return func() tea.Msg {
		handles, err := manager.Acquire()
		if err != nil {
			return MediaAcquireErrorMsg{Gen: gen, Err: err}
		}
		return MediaAcquiredMsg{Gen: gen, Handles: handles}
	}
}

func toggleCameraCmd(manager *media.Manager, gen int) tea.Cmd {
	return func() tea.Msg {
		handles, err := manager.ToggleCamera()
		return CameraToggledMsg{Gen: gen, Handles: handles, Err: err}
	}
}

func toggleMicCmd(manager *media.Manager, gen int) tea.Cmd {
	return func() tea.Msg {
		handles, err := manager.ToggleMicrophone()
		return MicToggledMsg{Gen: gen, Handles: handles, Err: err}
	}
}

func startSessionCmd(api *interview.Client, applicationID string, gen int) tea.Cmd {
	return func() tea.Msg {
		res, err := api.StartSession(context.Background(), applicationID)
		if err != nil {
			return SessionStartErrorMsg{Gen: gen, Err: err}
		}
		return SessionStartedMsg{Gen: gen, ID: res.InterviewID, IntroAudioURL: res.IntroAudioURL}
	}
}

func nextQuestionCmd(api *interview.Client, sessionID string, gen int) tea.Cmd {
	return func() tea.Msg {
		res, err := api.NextQuestion(context.Background(), sessionID)
		if err != nil {
			return QuestionFetchErrorMsg{Gen: gen, Err: err}
		}
		return QuestionFetchedMsg{Gen: gen, Result: res}
	}
}

// playCueCmd downloads and starts a narration cue. Completion arrives later
// as a playback_done event; only failures produce a message here.
func playCueCmd(player *cue.Player, url string, gen int) tea.Cmd {
	return func() tea.Msg {
		path, err := player.Fetch(context.Background(), url)
		if err != nil {
			return CuePlayErrorMsg{Gen: gen, Err: err}
		}
		if err := player.Play(path); err != nil {
			return CuePlayErrorMsg{Gen: gen, Err: err}
		}
		return nil
	}
}

func recordStartCmd(cmdClient *media.Client, trackID string, gen int) tea.Cmd {
	return func() tea.Msg {
		resp, err := cmdClient.SendCommand(media.Command{Cmd: "record_start", TrackID: trackID})
		if err == nil && !resp.OK {
			err = &media.DeviceError{Op: "record_start", Detail: resp.Error}
		}
		return RecordStartedMsg{Gen: gen, Err: err}
	}
}

func recordStopCmd(cmdClient *media.Client, gen int) tea.Cmd {
	return func() tea.Msg {
		resp, err := cmdClient.SendCommand(media.Command{Cmd: "record_stop"})
		if err == nil && !resp.OK {
			err = &media.DeviceError{Op: "record_stop", Detail: resp.Error}
		}
		return RecordStoppedMsg{Gen: gen, Err: err}
	}
}

func transcribeCmd(api *interview.Client, wav []byte, gen int) tea.Cmd {
	return func() tea.Msg {
		text, err := api.Transcribe(context.Background(), wav)
		if err != nil {
			return TranscriptErrorMsg{Gen: gen, Err: err}
		}
		return TranscriptMsg{Gen: gen, Text: text}
	}
}

func submitCmd(api *interview.Client, sessionID, questionID, text string, gen int) tea.Cmd {
	requestID := uuid.NewString()
	return func() tea.Msg {
		res, err := api.SubmitAnswer(context.Background(), sessionID, questionID, text, requestID)
		if err != nil {
			return SubmitErrorMsg{Gen: gen, Err: err}
		}
		return AnswerSubmittedMsg{Gen: gen, Completed: res.Completed}
	}
}

// elapsedTickCmd drives the per-second session clock. It re-arms itself for
// as long as the session is active, independent of status transitions.
func elapsedTickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return ElapsedTickMsg{Gen: gen}
	})
}

// levelTickCmd re-renders the level meter on a fixed cadence while recording.
func levelTickCmd(gen int) tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
		return LevelTickMsg{Gen: gen}
	})
}

func clearNoticeCmd() tea.Cmd {
	return tea.Tick(5*time.Second, func(time.Time) tea.Msg {
		return ClearNoticeMsg{}
	})
}

// sessionGen extracts the generation from session-scoped messages.
func sessionGen(msg tea.Msg) (int, bool) {
	switch msg := msg.(type) {
	case MediaAcquiredMsg:
		return msg.Gen, true
	case MediaAcquireErrorMsg:
		return msg.Gen, true
	case CameraToggledMsg:
		return msg.Gen, true
	case MicToggledMsg:
		return msg.Gen, true
	case SessionStartedMsg:
		return msg.Gen, true
	case SessionStartErrorMsg:
		return msg.Gen, true
	case QuestionFetchedMsg:
		return msg.Gen, true
	case QuestionFetchErrorMsg:
		return msg.Gen, true
	case CuePlayErrorMsg:
		return msg.Gen, true
	case RecordStartedMsg:
		return msg.Gen, true
	case RecordStoppedMsg:
		return msg.Gen, true
	case TranscriptMsg:
		return msg.Gen, true
	case TranscriptErrorMsg:
		return msg.Gen, true
	case AnswerSubmittedMsg:
		return msg.Gen, true
	case SubmitErrorMsg:
		return msg.Gen, true
	case ElapsedTickMsg:
		return msg.Gen, true
	case LevelTickMsg:
		return msg.Gen, true
	}
	return 0, false
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Stale-generation messages are no-ops: the session they belong to has
	// been exited or completed.
	if gen, ok := sessionGen(msg); ok && gen != m.gen {
		return m, nil
	}

	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case MediaConnectedMsg:
		m.cmdClient = msg.Cmd
		m.evClient = msg.Ev
		m.manager = media.NewManager(msg.Cmd)
		m.player = cue.NewPlayer(msg.Cmd, m.config.CacheDir)
		m.mediaConnected = true
		m.statusText = "Ready"
		return m, subscribeCmd(m.evClient)

	case MediaConnectErrorMsg:
		m.log.WithError(msg.Err).Warn("media daemon unavailable, degrading to text-only")
		m.mediaConnected = false
		m.textOnly = true
		m.statusText = "Ready (text-only: media devices unavailable)"
		return m, nil

	case MediaEventMsg:
		cmd := m.handleMediaEvent(msg.Event)
		if m.status == interview.StatusExited {
			return m, cmd
		}
		return m, tea.Batch(cmd, readEventCmd(m.evClient))

	case MediaEventErrorMsg:
		if m.status == interview.StatusExited || m.status == interview.StatusCompleted {
			return m, nil
		}
		m.log.WithError(msg.Err).Error("media event stream broken")
		return m.degradeToTextOnly("Media device connection lost")

	case MediaAcquiredMsg:
		m.handles = msg.Handles
		m.mediaReady = true
		var cmds []tea.Cmd
		// Restore saved device preferences by toggling what should be off.
		if !m.prefs.CameraEnabled && msg.Handles.Video.Enabled {
			cmds = append(cmds, toggleCameraCmd(m.manager, m.gen))
		}
		if !m.prefs.MicrophoneEnabled && msg.Handles.Audio.Enabled {
			cmds = append(cmds, toggleMicCmd(m.manager, m.gen))
		}
		return m, tea.Batch(cmds...)

	case MediaAcquireErrorMsg:
		m.log.WithError(msg.Err).Warn("device acquisition failed")
		return m.degradeToTextOnly("Camera/microphone unavailable")

	case CameraToggledMsg:
		m.handles = msg.Handles
		if msg.Err != nil {
			return m.transientNotice("Camera toggle failed")
		}
		return m, nil

	case MicToggledMsg:
		m.handles = msg.Handles
		if msg.Err != nil {
			return m.transientNotice("Microphone toggle failed")
		}
		return m, nil

	case SessionStartedMsg:
		m.starting = false
		m.sessionID = msg.ID
		m.log.WithField("interview_id", msg.ID).Info("session started")
		if msg.IntroAudioURL != "" && m.mediaConnected {
			m.status = interview.StatusPlayingIntro
			m.statusText = "Playing introduction"
			return m, tea.Batch(
				playCueCmd(m.player, msg.IntroAudioURL, m.gen),
				elapsedTickCmd(m.gen),
			)
		}
		m.status = interview.StatusAwaitingQuestion
		m.statusText = "Fetching first question"
		return m, tea.Batch(
			m.fetchQuestion(),
			elapsedTickCmd(m.gen),
		)

	case SessionStartErrorMsg:
		m.starting = false
		m.log.WithError(msg.Err).Error("session start failed")
		return m.transientNotice("Could not start interview. Press Enter to retry")

	case QuestionFetchedMsg:
		m.pendingFetch = false
		// Question fetches are only handled while waiting for one. A late
		// response in any other state, Completed included, is dropped.
		if m.status != interview.StatusAwaitingQuestion {
			return m, nil
		}
		if msg.Result.Completed {
			return m.finishSession()
		}
		q := interview.Question{
			ID:         msg.Result.QuestionID,
			Text:       msg.Result.Text,
			Difficulty: msg.Result.Difficulty,
			AudioURL:   msg.Result.AudioURL,
		}
		m.questions = append(m.questions, q)
		m.answer = interview.Answer{QuestionID: q.ID}
		if q.AudioURL != "" && m.mediaConnected {
			m.status = interview.StatusPlayingQuestion
			m.statusText = "Playing question"
			return m, playCueCmd(m.player, q.AudioURL, m.gen)
		}
		return m.enableAnswer()

	case QuestionFetchErrorMsg:
		m.pendingFetch = false
		m.log.WithError(msg.Err).Error("question fetch failed")
		return m.transientNotice("Could not fetch question. Press r to retry")

	case CuePlayErrorMsg:
		// A cue that cannot play must not block the interview: advance as if
		// it had finished.
		m.log.WithError(msg.Err).Warn("cue playback failed, skipping")
		return m.cueEnded()

	case RecordStartedMsg:
		m.pendingRecord = false
		if m.status != interview.StatusAwaitingAnswer {
			return m, nil
		}
		if msg.Err != nil {
			m.log.WithError(msg.Err).Warn("record start failed")
			return m.transientNotice("Recording unavailable. Type your answer instead")
		}
		if err := m.recorder.Start(m.handles.Audio.ID, m.handles.Audio.Enabled); err != nil {
			return m.transientNotice("Recording unavailable. Type your answer instead")
		}
		// A fresh take supersedes any earlier transcript or typed draft.
		m.answer.Text = ""
		m.status = interview.StatusRecording
		m.statusText = "Recording"
		m.levels.Start(m.handles.Audio.ID)
		return m, levelTickCmd(m.gen)

	case RecordStoppedMsg:
		m.pendingStop = false
		if m.status != interview.StatusRecording {
			return m, nil
		}
		if msg.Err != nil {
			m.log.WithError(msg.Err).Warn("record stop reported an error")
		}
		m.levels.Stop()
		duration := m.recorder.ElapsedSeconds()
		wav := m.recorder.Stop()
		if len(wav) == 0 {
			m.status = interview.StatusAwaitingAnswer
			m.statusText = "Your answer"
			return m.transientNotice("Nothing was recorded. Try again or type your answer")
		}
		m.answer.RecordingDurationSeconds = duration
		m.status = interview.StatusTranscribing
		m.statusText = "Transcribing"
		return m, transcribeCmd(m.api, wav, m.gen)

	case TranscriptMsg:
		if m.status != interview.StatusTranscribing {
			return m, nil
		}
		m.status = interview.StatusAwaitingAnswer
		m.statusText = "Your answer (editable)"
		m.answer.Text = msg.Text
		m.focus = FocusAnswer
		return m, nil

	case TranscriptErrorMsg:
		if m.status != interview.StatusTranscribing {
			return m, nil
		}
		m.log.WithError(msg.Err).Error("transcription failed")
		m.status = interview.StatusAwaitingAnswer
		m.statusText = "Your answer"
		m.answer.Text = ""
		return m.transientNotice("Transcription failed. Record again or type your answer")

	case AnswerSubmittedMsg:
		if m.status != interview.StatusSubmitting {
			return m, nil
		}
		m.answersSubmitted++
		if msg.Completed {
			return m.finishSession()
		}
		m.questionIndex++
		m.status = interview.StatusAwaitingQuestion
		m.statusText = "Fetching next question"
		m.focus = FocusControls
		return m, m.fetchQuestion()

	case SubmitErrorMsg:
		if m.status != interview.StatusSubmitting {
			return m, nil
		}
		m.log.WithError(msg.Err).Error("answer submission failed")
		m.status = interview.StatusAwaitingAnswer
		return m.transientNotice("Submission failed. Press Enter to retry")

	case ElapsedTickMsg:
		if !m.status.Active() {
			return m, nil
		}
		m.elapsedSeconds++
		return m, elapsedTickCmd(m.gen)

	case LevelTickMsg:
		if m.status != interview.StatusRecording {
			return m, nil
		}
		return m, levelTickCmd(m.gen)

	case ClearNoticeMsg:
		if m.noticeTransient {
			m.notice = ""
			m.noticeTransient = false
		}
		return m, nil
	}

	return m, nil
}

// handleMediaEvent processes a streamed daemon event.
func (m *Model) handleMediaEvent(ev media.Event) tea.Cmd {
	switch ev.Event {
	case media.EventChunk:
		if m.status != interview.StatusRecording {
			return nil
		}
		m.recorder.Append(ev.TrackID, ev.Chunk)
		if err := m.levels.Sample(ev.TrackID, ev.Chunk); err != nil {
			m.log.WithError(err).Debug("level sample dropped")
		}

	case media.EventPlaybackDone:
		model, cmd := m.cueEnded()
		*m = model
		return cmd

	case media.EventTrack:
		if ev.Enabled == nil {
			return nil
		}
		switch ev.Kind {
		case media.TrackAudio:
			m.handles.Audio.Enabled = *ev.Enabled
		case media.TrackVideo:
			m.handles.Video.Enabled = *ev.Enabled
		}

	case media.EventError:
		m.notice = ev.Message
		m.noticeTransient = true
		return clearNoticeCmd()
	}

	return nil
}

// cueEnded is the shared transition for playback_done and cue failures.
func (m Model) cueEnded() (Model, tea.Cmd) {
	switch m.status {
	case interview.StatusPlayingIntro:
		m.status = interview.StatusAwaitingQuestion
		m.statusText = "Fetching first question"
		return m, m.fetchQuestion()
	case interview.StatusPlayingQuestion:
		model, cmd := m.enableAnswer()
		return model.(Model), cmd
	}
	return m, nil
}

// enableAnswer opens the answer phase: recording control armed, text editable.
func (m Model) enableAnswer() (tea.Model, tea.Cmd) {
	m.status = interview.StatusAwaitingAnswer
	if m.textOnly {
		m.statusText = "Type your answer"
		m.focus = FocusAnswer
	} else {
		m.statusText = "Your answer"
		m.focus = FocusControls
	}
	return m, nil
}

// degradeToTextOnly switches to the no-device fallback without ending the
// session: the answer field becomes directly editable.
func (m Model) degradeToTextOnly(reason string) (tea.Model, tea.Cmd) {
	m.textOnly = true
	m.mediaReady = false
	m.handles = media.Handles{}
	m.levels.Stop()
	if m.status == interview.StatusRecording {
		m.recorder.Stop()
		m.status = interview.StatusAwaitingAnswer
		m.statusText = "Type your answer"
	}
	m.notice = reason + ". Continuing in text-only mode"
	m.noticeTransient = false
	return m, nil
}

func (m Model) transientNotice(text string) (tea.Model, tea.Cmd) {
	m.notice = text
	m.noticeTransient = true
	return m, clearNoticeCmd()
}

// finishSession is the Completed transition: release everything, keep the
// results screen up.
func (m Model) finishSession() (tea.Model, tea.Cmd) {
	m.status = interview.StatusCompleted
	m.statusText = "Interview complete"
	m.releaseMedia()
	m.savePrefs()
	return m, nil
}

// beginExit is the one cancellation primitive: bump the generation so every
// in-flight response is discarded, stop timers and sampling, release tracks,
// discard session state, and quit. Nothing is saved.
func (m Model) beginExit() (tea.Model, tea.Cmd) {
	m.gen++
	m.status = interview.StatusExited
	m.levels.Stop()
	m.recorder.Stop()
	m.releaseMedia()
	m.savePrefs()
	m.log.WithField("interview_id", m.sessionID).Info("session exited by user")
	return m, tea.Quit
}

func (m *Model) releaseMedia() {
	if m.manager != nil {
		if err := m.manager.Release(); err != nil {
			m.log.WithError(err).Warn("track release failed")
		}
	}
	if m.cmdClient != nil {
		m.cmdClient.Close()
	}
	if m.evClient != nil {
		m.evClient.Close()
	}
	m.mediaReady = false
	m.handles = media.Handles{}
}

// savePrefs persists device preferences only. Session state is never stored.
func (m *Model) savePrefs() {
	if m.store == nil {
		return
	}
	p := db.Prefs{
		CameraEnabled:     m.prefs.CameraEnabled,
		MicrophoneEnabled: m.prefs.MicrophoneEnabled,
		TextOnly:          m.prefs.TextOnly,
	}
	if m.mediaReady || m.handles.Audio.ID != "" {
		p.CameraEnabled = m.handles.Video.Enabled
		p.MicrophoneEnabled = m.handles.Audio.Enabled
	}
	if err := m.store.SavePrefs(p); err != nil {
		m.log.WithError(err).Warn("saving preferences failed")
	}
}

// fetchQuestion issues the next-question request, at most one in flight.
func (m *Model) fetchQuestion() tea.Cmd {
	m.pendingFetch = true
	return nextQuestionCmd(m.api, m.sessionID, m.gen)
}

// currentQuestion returns the question being answered, if any.
func (m Model) currentQuestion() (interview.Question, bool) {
	if len(m.questions) == 0 {
		return interview.Question{}, false
	}
	return m.questions[len(m.questions)-1], true
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Ctrl+C always works, with the same cleanup as a confirmed exit.
	if key == KeyCtrlC {
		return m.beginExit()
	}

	// The exit confirmation overlay captures everything.
	if m.confirmingExit {
		switch key {
		case KeyConfirmYes:
			return m.beginExit()
		case KeyConfirmNo, KeyEsc:
			m.confirmingExit = false
		}
		return m, nil
	}

	switch m.status {
	case interview.StatusUninitialized:
		return m.handleReadyKey(key)
	case interview.StatusCompleted:
		switch key {
		case KeyEnter, KeyQuit, KeyQuitUpper:
			return m, tea.Quit
		}
		return m, nil
	case interview.StatusExited:
		return m, nil
	}

	// Active session.
	if m.focus == FocusAnswer && m.status == interview.StatusAwaitingAnswer {
		return m.handleAnswerKey(msg)
	}
	return m.handleControlKey(key)
}

// handleReadyKey drives the pre-session screen.
func (m Model) handleReadyKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case KeyEnter:
		if m.starting {
			return m, nil
		}
		m.starting = true
		m.statusText = "Starting interview..."
		cmds := []tea.Cmd{startSessionCmd(m.api, m.config.ApplicationID, m.gen)}
		if m.mediaConnected && !m.textOnly {
			cmds = append(cmds, acquireCmd(m.manager, m.gen))
		}
		return m, tea.Batch(cmds...)
	case KeyQuit, KeyQuitUpper:
		return m.beginExit()
	}
	return m, nil
}

// handleAnswerKey edits the answer draft while it has focus.
func (m Model) handleAnswerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyEnter:
		return m.submitAnswer()
	case KeyEsc, KeyTab:
		m.focus = FocusControls
		return m, nil
	case KeyBackspace:
		if len(m.answer.Text) > 0 {
			runes := []rune(m.answer.Text)
			m.answer.Text = string(runes[:len(runes)-1])
		}
		return m, nil
	case KeySpace:
		m.answer.Text += " "
		return m, nil
	}
	if msg.Type == tea.KeyRunes {
		m.answer.Text += string(msg.Runes)
	}
	return m, nil
}

// handleControlKey drives recording, toggles and navigation.
func (m Model) handleControlKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case KeyExit, KeyEsc:
		m.confirmingExit = true
		return m, nil

	case KeySpace:
		return m.toggleRecording()

	case KeyEnter:
		return m.submitAnswer()

	case KeyTab, KeyEdit:
		if m.status == interview.StatusAwaitingAnswer {
			m.focus = FocusAnswer
		}
		return m, nil

	case KeyCamera:
		if !m.mediaReady {
			return m, nil
		}
		m.prefs.CameraEnabled = !m.handles.Video.Enabled
		return m, toggleCameraCmd(m.manager, m.gen)

	case KeyMicrophone:
		if !m.mediaReady {
			return m, nil
		}
		if m.status == interview.StatusRecording || m.status == interview.StatusTranscribing {
			return m.transientNotice("Stop recording before toggling the microphone")
		}
		m.prefs.MicrophoneEnabled = !m.handles.Audio.Enabled
		return m, toggleMicCmd(m.manager, m.gen)

	case KeyRetry:
		switch m.status {
		case interview.StatusRecording:
			// Re-record: drop the buffered take, stay recording.
			m.recorder.Reset()
			return m.transientNotice("Recording restarted")
		case interview.StatusAwaitingQuestion:
			if m.pendingFetch {
				return m, nil
			}
			m.statusText = "Fetching question"
			return m, m.fetchQuestion()
		case interview.StatusAwaitingAnswer:
			// Replay the question cue. The only backward transition.
			if q, ok := m.currentQuestion(); ok && q.AudioURL != "" && m.mediaConnected {
				m.status = interview.StatusPlayingQuestion
				m.statusText = "Playing question"
				return m, playCueCmd(m.player, q.AudioURL, m.gen)
			}
		}
		return m, nil
	}

	return m, nil
}

// toggleRecording starts or stops the recorder depending on status.
func (m Model) toggleRecording() (tea.Model, tea.Cmd) {
	switch m.status {
	case interview.StatusAwaitingAnswer:
		if m.textOnly || !m.handles.Audio.Enabled {
			return m.transientNotice("Recording unavailable. Type your answer instead")
		}
		if m.pendingRecord {
			return m, nil
		}
		m.pendingRecord = true
		return m, recordStartCmd(m.cmdClient, m.handles.Audio.ID, m.gen)

	case interview.StatusRecording:
		if m.pendingStop {
			return m, nil
		}
		m.pendingStop = true
		return m, recordStopCmd(m.cmdClient, m.gen)
	}
	return m, nil
}

// submitAnswer seals and posts the draft. Inert unless AwaitingAnswer with
// non-empty text, which also makes it inert while Submitting.
func (m Model) submitAnswer() (tea.Model, tea.Cmd) {
	if m.status != interview.StatusAwaitingAnswer {
		return m, nil
	}
	text := strings.TrimSpace(m.answer.Text)
	if text == "" {
		return m.transientNotice("Answer is empty. Record or type something first")
	}
	m.status = interview.StatusSubmitting
	m.statusText = "Submitting answer"
	return m, submitCmd(m.api, m.sessionID, m.answer.QuestionID, text, m.gen)
}
