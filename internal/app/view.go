package app

import (
	"fmt"
	"strings"

	"github.com/jaadu20/aivis-interview/internal/interview"
	"github.com/jaadu20/aivis-interview/internal/ui"
)

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	switch m.status {
	case interview.StatusUninitialized:
		return m.renderReadyScreen()
	case interview.StatusCompleted:
		return m.renderCompletedScreen()
	case interview.StatusExited:
		return ""
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderStatusBar())
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))
	sections = append(sections, m.renderQuestionPanel())
	sections = append(sections, m.renderAnswerPanel())
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))

	if m.textOnly {
		sections = append(sections, ui.WarningStyle.Render("⚠ Text-only mode")+
			ui.DimStyle.Render(": camera/microphone unavailable, answers are typed"))
	}
	if m.notice != "" {
		sections = append(sections, ui.ErrorTextStyle.Render(m.notice))
	}
	if m.confirmingExit {
		sections = append(sections, ui.WarningStyle.Render("Exit interview? Progress is not saved. ")+
			ui.FooterKeyStyle.Render("y")+ui.FooterDescStyle.Render(" yes  ")+
			ui.FooterKeyStyle.Render("n")+ui.FooterDescStyle.Render(" no"))
	}

	sections = append(sections, m.renderFooter())
	return strings.Join(sections, "\n")
}

func (m Model) renderReadyScreen() string {
	var lines []string
	lines = append(lines, ui.TitleStyle.Render("AI-VIS INTERVIEW"))
	lines = append(lines, "")
	lines = append(lines, ui.StatusStyle.Render(m.statusText))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("You will be asked up to %d questions.", m.config.TotalQuestions))
	lines = append(lines, "Each question is read aloud; answer by voice or by typing.")
	lines = append(lines, "")

	if m.textOnly {
		lines = append(lines, ui.WarningStyle.Render("⚠ No camera/microphone")+
			ui.DimStyle.Render(": the interview will run in text-only mode"))
	} else if m.mediaConnected {
		lines = append(lines, ui.DimStyle.Render("Camera and microphone will be requested when you begin."))
	}
	lines = append(lines, "")
	if m.notice != "" {
		lines = append(lines, ui.ErrorTextStyle.Render(m.notice))
		lines = append(lines, "")
	}
	lines = append(lines, ui.FooterKeyStyle.Render("Enter")+ui.FooterDescStyle.Render(" Begin interview  ")+
		ui.FooterKeyStyle.Render("q")+ui.FooterDescStyle.Render(" Quit"))
	return strings.Join(lines, "\n")
}

func (m Model) renderCompletedScreen() string {
	var lines []string
	lines = append(lines, ui.TitleStyle.Render("INTERVIEW COMPLETE"))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("You answered %d question(s) in %s.", m.answersSubmitted, formatElapsed(m.elapsedSeconds)))
	lines = append(lines, "")
	lines = append(lines, "Your responses are being scored. Results will appear on your dashboard.")
	lines = append(lines, "")
	lines = append(lines, ui.FooterKeyStyle.Render("Enter")+ui.FooterDescStyle.Render(" Close"))
	return strings.Join(lines, "\n")
}

func (m Model) renderHeader() string {
	title := ui.TitleStyle.Render("AI-VIS INTERVIEW")
	progress := ui.DimStyle.Render(fmt.Sprintf("  question %d / %d", min(m.questionIndex+1, m.config.TotalQuestions), m.config.TotalQuestions))
	elapsed := ui.DimStyle.Render("  " + formatElapsed(m.elapsedSeconds))
	return title + progress + elapsed
}

func (m Model) renderStatusBar() string {
	var dot string
	if m.status == interview.StatusRecording {
		dot = ui.RecordingDotStyle.Render("● REC")
	} else {
		dot = ui.IdleDotStyle.Render("○ " + strings.ToUpper(string(m.status)))
	}

	var levels string
	if m.status == interview.StatusRecording {
		levels = "  " + renderLevelMeter(m.levels.Level()) +
			ui.DimStyle.Render(fmt.Sprintf("  %ds", m.recorder.ElapsedSeconds()))
	}

	var devices string
	if !m.textOnly {
		devices = "  " + deviceBadge("CAM", m.handles.Video.Enabled) + " " + deviceBadge("MIC", m.handles.Audio.Enabled)
	}

	return dot + levels + devices + "  " + ui.StatusStyle.Render(m.statusText)
}

func deviceBadge(label string, on bool) string {
	if on {
		return ui.LevelGreenStyle.Render(label)
	}
	return ui.LevelGrayStyle.Render(label)
}

// renderLevelMeter draws the 0–100 loudness as a fixed-width bar.
func renderLevelMeter(level int) string {
	const barLen = 10
	filled := level * barLen / 100
	if filled > barLen {
		filled = barLen
	}

	var bar string
	for i := 0; i < barLen; i++ {
		if i < filled {
			if float64(i)/barLen > 0.6 {
				bar += ui.LevelYellowStyle.Render("█")
			} else {
				bar += ui.LevelGreenStyle.Render("█")
			}
		} else {
			bar += ui.LevelGrayStyle.Render("░")
		}
	}
	return bar
}

func (m Model) renderQuestionPanel() string {
	var lines []string
	q, ok := m.currentQuestion()
	if !ok {
		lines = append(lines, ui.DimStyle.Render("  Waiting for the next question..."))
		return strings.Join(lines, "\n")
	}

	header := ui.QuestionStyle.Render("QUESTION")
	if q.Difficulty != "" {
		header += "  " + ui.DifficultyStyle.Render("["+q.Difficulty+"]")
	}
	lines = append(lines, header)

	for _, l := range wrapText(q.Text, max(20, m.width-4)) {
		lines = append(lines, "  "+l)
	}

	switch m.status {
	case interview.StatusPlayingQuestion:
		lines = append(lines, ui.DimStyle.Render("  ♪ playing..."))
	case interview.StatusAwaitingAnswer:
		if q.AudioURL != "" && m.mediaConnected {
			lines = append(lines, ui.DimStyle.Render("  (r to replay)"))
		}
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderAnswerPanel() string {
	var lines []string

	header := ui.QuestionStyle.Render("YOUR ANSWER")
	if m.focus == FocusAnswer && m.status == interview.StatusAwaitingAnswer {
		header += ui.SelectedStyle.Render("  EDITING")
	}
	lines = append(lines, header)

	switch m.status {
	case interview.StatusRecording:
		lines = append(lines, ui.DimStyle.Render("  Listening... press Space to stop."))
	case interview.StatusTranscribing:
		lines = append(lines, ui.DimStyle.Render("  Transcribing your answer..."))
	case interview.StatusSubmitting:
		lines = append(lines, ui.DimStyle.Render("  Submitting..."))
	default:
		text := m.answer.Text
		if m.focus == FocusAnswer && m.status == interview.StatusAwaitingAnswer {
			text += ui.CursorStyle.Render("▌")
		}
		if text == "" {
			if m.textOnly {
				lines = append(lines, ui.DimStyle.Render("  Type your answer, Enter to submit."))
			} else {
				lines = append(lines, ui.DimStyle.Render("  Space to record, or e to type."))
			}
		} else {
			for _, l := range wrapText(text, max(20, m.width-4)) {
				lines = append(lines, "  "+ui.AnswerStyle.Render(l))
			}
		}
	}

	if m.answer.RecordingDurationSeconds > 0 && m.status == interview.StatusAwaitingAnswer {
		lines = append(lines, ui.DimStyle.Render(fmt.Sprintf("  (recorded %ds)", m.answer.RecordingDurationSeconds)))
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderFooter() string {
	var parts []string

	if m.focus == FocusAnswer && m.status == interview.StatusAwaitingAnswer {
		parts = append(parts, ui.FooterKeyStyle.Render("Enter")+ui.FooterDescStyle.Render(" Submit"))
		parts = append(parts, ui.FooterKeyStyle.Render("Esc")+ui.FooterDescStyle.Render(" Controls"))
	} else {
		switch m.status {
		case interview.StatusAwaitingAnswer:
			if !m.textOnly {
				parts = append(parts, ui.FooterKeyStyle.Render("Space")+ui.FooterDescStyle.Render(" Record"))
			}
			parts = append(parts, ui.FooterKeyStyle.Render("e")+ui.FooterDescStyle.Render(" Type"))
			parts = append(parts, ui.FooterKeyStyle.Render("Enter")+ui.FooterDescStyle.Render(" Submit"))
		case interview.StatusRecording:
			parts = append(parts, ui.FooterKeyStyle.Render("Space")+ui.FooterDescStyle.Render(" Stop"))
			parts = append(parts, ui.FooterKeyStyle.Render("r")+ui.FooterDescStyle.Render(" Restart"))
		case interview.StatusAwaitingQuestion:
			parts = append(parts, ui.FooterKeyStyle.Render("r")+ui.FooterDescStyle.Render(" Retry fetch"))
		}
		if !m.textOnly && m.mediaReady {
			parts = append(parts, ui.FooterKeyStyle.Render("c")+ui.FooterDescStyle.Render(" Camera"))
			parts = append(parts, ui.FooterKeyStyle.Render("m")+ui.FooterDescStyle.Render(" Mic"))
		}
	}

	parts = append(parts, ui.FooterKeyStyle.Render("x")+ui.FooterDescStyle.Render(" Exit"))
	return strings.Join(parts, "  ")
}

func formatElapsed(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Helpers

func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		var current string
		for _, word := range strings.Fields(paragraph) {
			if current == "" {
				current = word
			} else if len(current)+1+len(word) <= width {
				current += " " + word
			} else {
				lines = append(lines, current)
				current = word
			}
		}
		if current != "" {
			lines = append(lines, current)
		} else {
			lines = append(lines, "")
		}
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
