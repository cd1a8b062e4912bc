package interview

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// APIError carries the HTTP status and server-provided detail for a failed
// backend call.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("backend returned %d", e.Status)
}

// TranscriptionError wraps a failed speech-to-text round-trip. Non-fatal: the
// caller keeps the session going with an empty answer.
type TranscriptionError struct {
	Err error
}

func (e *TranscriptionError) Error() string { return "transcription failed: " + e.Err.Error() }
func (e *TranscriptionError) Unwrap() error { return e.Err }

// Client is a thin request/response wrapper over the interview endpoints.
// There is no automatic retry anywhere: failed calls are reported and the
// user retries the same action manually.
type Client struct {
	http *resty.Client
}

// NewClient builds a client for the given base URL. The token authenticates
// the candidate on every request.
func NewClient(baseURL, token string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetRetryCount(0)
	if token != "" {
		c.SetAuthToken(token)
	}
	return &Client{http: c}
}

// StartSessionResult is the response to a session start.
type StartSessionResult struct {
	InterviewID   string `json:"interview_id"`
	IntroAudioURL string `json:"intro_audio_url,omitempty"`
}

// StartSession creates a new interview server-side. applicationID is optional
// and links the interview to a job application.
func (c *Client) StartSession(ctx context.Context, applicationID string) (StartSessionResult, error) {
	body := map[string]string{}
	if applicationID != "" {
		body["application_id"] = applicationID
	}

	var out StartSessionResult
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		ForceContentType("application/json").
		Post("/interviews/start/")
	if err != nil {
		return StartSessionResult{}, fmt.Errorf("start session: %w", err)
	}
	if resp.IsError() {
		return StartSessionResult{}, &APIError{Status: resp.StatusCode(), Detail: errorDetail(resp)}
	}
	if out.InterviewID == "" {
		return StartSessionResult{}, fmt.Errorf("start session: empty interview_id")
	}
	return out, nil
}

// NextQuestionResult is the response to a question fetch. When Completed is
// true the remaining fields are absent.
type NextQuestionResult struct {
	Completed  bool   `json:"completed"`
	QuestionID string `json:"question_id,omitempty"`
	Text       string `json:"question_text,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	AudioURL   string `json:"question_audio_url,omitempty"`
}

// NextQuestion fetches the next question for the session.
func (c *Client) NextQuestion(ctx context.Context, interviewID string) (NextQuestionResult, error) {
	var out NextQuestionResult
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		ForceContentType("application/json").
		Get(fmt.Sprintf("/interviews/%s/next-question/", interviewID))
	if err != nil {
		return NextQuestionResult{}, fmt.Errorf("fetch question: %w", err)
	}
	if resp.IsError() {
		return NextQuestionResult{}, &APIError{Status: resp.StatusCode(), Detail: errorDetail(resp)}
	}
	return out, nil
}

// SubmitAnswerResult is the response to an answer submission.
type SubmitAnswerResult struct {
	Completed bool `json:"completed"`
}

// SubmitAnswer posts the sealed answer text. requestID is a client-generated
// idempotency key so a manual retry of the same submission is not double
// counted by the backend.
func (c *Client) SubmitAnswer(ctx context.Context, interviewID, questionID, text, requestID string) (SubmitAnswerResult, error) {
	var out SubmitAnswerResult
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", requestID).
		SetBody(map[string]string{"text": text}).
		SetResult(&out).
		ForceContentType("application/json").
		Post(fmt.Sprintf("/interviews/%s/answer/%s/", interviewID, questionID))
	if err != nil {
		return SubmitAnswerResult{}, fmt.Errorf("submit answer: %w", err)
	}
	if resp.IsError() {
		return SubmitAnswerResult{}, &APIError{Status: resp.StatusCode(), Detail: errorDetail(resp)}
	}
	return out, nil
}

// Transcribe sends one recorded WAV to the speech-to-text endpoint. At most
// one call per recording; a failure leaves the answer empty and re-recordable.
func (c *Client) Transcribe(ctx context.Context, wav []byte) (string, error) {
	var out struct {
		Text string `json:"text"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetFileReader("audio", "answer.wav", bytes.NewReader(wav)).
		SetResult(&out).
		ForceContentType("application/json").
		Post("/interviews/stt/")
	if err != nil {
		return "", &TranscriptionError{Err: err}
	}
	if resp.IsError() {
		return "", &TranscriptionError{Err: &APIError{Status: resp.StatusCode(), Detail: errorDetail(resp)}}
	}
	return out.Text, nil
}

func errorDetail(resp *resty.Response) string {
	body := resp.String()
	if len(body) > 200 {
		body = body[:200]
	}
	return body
}
