// Package machine drives the interview turn cycle: ask, analyze, give
// feedback, decide whether to continue. It is a synchronous finite-state
// machine over session.State; the only blocking points are the generation
// calls, and a failed generation degrades to empty text instead of failing
// the turn.
package machine

// #region imports
import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/mockstage/interview-engine/internal/genai"
	"github.com/mockstage/interview-engine/internal/prompt"
	"github.com/mockstage/interview-engine/internal/session"
)

// #endregion

// #region errors

// ErrIgnoredInput reports a caller-side transition error: a candidate message
// arrived before any question was asked, or an empty message arrived while a
// question was pending. The state is returned unchanged.
var ErrIgnoredInput = errors.New("input ignored: no transition for this message in the current state")

// #endregion

// #region machine-struct

// Machine advances interview sessions. Safe for concurrent use across
// different sessions; callers must serialize Advance calls per session.
type Machine struct {
	gen genai.Client
}

// New creates a machine backed by the given generation client.
func New(gen genai.Client) *Machine {
	return &Machine{gen: gen}
}

// #endregion

// #region advance

// Advance runs one turn of the interview and returns the updated state plus
// the emitted event. The input state is never mutated; the returned state is
// owned by the caller.
//
// Generation failures never produce an error here: the turn proceeds with
// empty text and Event.Degraded set. Re-running Advance on the same persisted
// state after a crash generates a new question or evaluation rather than
// replaying the lost one.
func (m *Machine) Advance(ctx context.Context, st session.State, userMessage string) (session.State, Event, error) {
	switch st.Status {
	case session.StatusTerminated:
		// Absorbing state: re-emit the concluded event, leave state frozen.
		next := st.Clone()
		return next, concludedEvent(&next), nil

	case session.StatusCreated:
		if strings.TrimSpace(userMessage) != "" {
			return st, Event{}, ErrIgnoredInput
		}
		next := st.Clone()
		m.initialize(&next)
		if ShouldEnd(next) { // zero-question session: nothing to ask
			next.Status = session.StatusTerminated
			return next, concludedEvent(&next), nil
		}
		degraded := m.askQuestion(ctx, &next)
		next.Status = session.StatusAwaitingResponse
		log.Printf("[MACHINE] session=%s first question asked count=%d degraded=%v", next.ID, next.QuestionCount, degraded)
		return next, questionEvent(&next, degraded), nil

	case session.StatusAwaitingResponse:
		if strings.TrimSpace(userMessage) == "" {
			return st, Event{}, ErrIgnoredInput
		}
		next := st.Clone()
		next.PendingResponse = userMessage
		next.AppendTurn(session.SpeakerCandidate, userMessage)

		degraded := m.analyzeResponse(ctx, &next)
		degraded = m.provideFeedback(ctx, &next) || degraded
		next.PendingResponse = ""

		// The termination check is pure and always runs, whatever the
		// generation calls returned.
		if ShouldEnd(next) {
			next.Status = session.StatusTerminated
			next.CurrentQuestion = ""
			log.Printf("[MACHINE] session=%s concluded count=%d notes=%d", next.ID, next.QuestionCount, len(next.Notes))
			ev := concludedEvent(&next)
			ev.Degraded = degraded
			return next, ev, nil
		}

		degraded = m.askQuestion(ctx, &next) || degraded
		log.Printf("[MACHINE] session=%s question asked count=%d degraded=%v", next.ID, next.QuestionCount, degraded)
		return next, questionEvent(&next, degraded), nil

	default:
		return st, Event{}, fmt.Errorf("unknown session status %q", st.Status)
	}
}

// #endregion

// #region sub-operations

// initialize resets counters and prepares the session for the first question.
func (m *Machine) initialize(st *session.State) {
	st.QuestionCount = 0
	st.Notes = nil
	st.Thinking = fmt.Sprintf("Initializing interview for %s position...", st.Role)
}

// askQuestion generates the next question and increments the counter.
// The question is surfaced via the event, not appended to history; the
// caller records it. Returns true when generation degraded.
func (m *Machine) askQuestion(ctx context.Context, st *session.State) bool {
	st.Thinking = "Analyzing candidate profile and generating next question..."

	text, degraded := m.generate(ctx, genai.Request{
		Prompt:       prompt.Question(st.Role, st.Difficulty, st.Profile, Window(st.History), st.QuestionCount+1),
		SystemPrompt: prompt.SystemQuestion,
		MaxTokens:    200,
		Temperature:  0.8,
	})

	st.CurrentQuestion = text
	st.QuestionCount++
	return degraded
}

// analyzeResponse produces one evaluation note for the pending answer.
// No-op when there is nothing to analyze.
func (m *Machine) analyzeResponse(ctx context.Context, st *session.State) bool {
	if st.PendingResponse == "" {
		return false
	}
	st.Thinking = "Analyzing response quality and depth..."

	text, degraded := m.generate(ctx, genai.Request{
		Prompt:       prompt.Analysis(st.CurrentQuestion, st.PendingResponse),
		SystemPrompt: prompt.SystemAnalysis,
		MaxTokens:    150,
	})

	st.AppendNote(session.EvaluationNote{
		Question:   st.CurrentQuestion,
		Response:   st.PendingResponse,
		Evaluation: text,
	})
	return degraded
}

// provideFeedback appends a brief acknowledgment or follow-up as an
// interviewer turn.
func (m *Machine) provideFeedback(ctx context.Context, st *session.State) bool {
	st.Thinking = "Formulating follow-up or feedback..."

	text, degraded := m.generate(ctx, genai.Request{
		Prompt:      prompt.Feedback(st.CurrentQuestion, st.PendingResponse),
		MaxTokens:   100,
		Temperature: 0.7,
	})

	st.AppendTurn(session.SpeakerInterviewer, text)
	return degraded
}

// #endregion

// #region generate

// generate wraps the client call with the empty-on-failure contract:
// at most one attempt, errors absorbed, empty text reported as degraded.
func (m *Machine) generate(ctx context.Context, req genai.Request) (string, bool) {
	text, err := m.gen.Generate(ctx, req)
	if err != nil {
		log.Printf("[MACHINE] generation failed, continuing with empty text: %v", err)
		return "", true
	}
	text = strings.TrimSpace(text)
	return text, text == ""
}

// #endregion

// #region event-constructors

func questionEvent(st *session.State, degraded bool) Event {
	return Event{
		Kind:          EventQuestionAsked,
		Question:      st.CurrentQuestion,
		QuestionCount: st.QuestionCount,
		Thinking:      st.Thinking,
		Degraded:      degraded,
	}
}

func concludedEvent(st *session.State) Event {
	final := st.Clone()
	return Event{
		Kind:          EventInterviewConcluded,
		QuestionCount: st.QuestionCount,
		Thinking:      st.Thinking,
		Final:         &final,
	}
}

// #endregion
