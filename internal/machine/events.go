package machine

// #region imports
import "github.com/mockstage/interview-engine/internal/session"

// #endregion

// #region event-kind

// EventKind tags what a single Advance call produced.
type EventKind string

const (
	EventQuestionAsked      EventKind = "question_asked"
	EventInterviewConcluded EventKind = "interview_concluded"
)

// #endregion

// #region event

// Event is the output surfaced to the caller after one Advance call.
// Degraded marks a turn where a generation call failed and the machine
// proceeded with empty text; callers should surface it as a degraded
// response, not a blank one.
type Event struct {
	Kind          EventKind
	Question      string
	QuestionCount int
	Thinking      string
	Degraded      bool

	// Final is set only on EventInterviewConcluded.
	Final *session.State
}

// #endregion
