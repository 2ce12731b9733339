// Package replay drives the interview machine through recorded interactions
// with scripted generations, so a whole session can be reproduced
// deterministically and checked against expected transitions.
package replay

// #region imports
import (
	"context"
	"fmt"

	"github.com/mockstage/interview-engine/internal/genai"
	"github.com/mockstage/interview-engine/internal/machine"
	"github.com/mockstage/interview-engine/internal/session"
)

// #endregion

// #region types

// Interaction is one Advance call: the candidate message applied to the
// session. An empty message on a fresh session starts the interview.
type Interaction struct {
	TurnID  string `json:"turn_id"`
	Message string `json:"message"`
}

// Result captures what one interaction produced.
type Result struct {
	TurnID        string `json:"turn_id"`
	EventKind     string `json:"event_kind"`
	QuestionCount int    `json:"question_count"`
	Status        string `json:"status"`
	Degraded      bool   `json:"degraded"`
	Question      string `json:"question,omitempty"`
}

// #endregion

// #region run

// Run replays the fixture's interactions against a fresh session, feeding the
// machine from the fixture's generation script. Questions surfaced by events
// are appended to history the same way the live controller does, so context
// windows match production behavior.
func Run(ctx context.Context, fx Fixture) ([]Result, error) {
	gen := genai.NewScripted(fx.Generations...)
	m := machine.New(gen)
	st := session.New(fx.Role, fx.Difficulty, fx.Profile, fx.MaxQuestions)

	results := make([]Result, 0, len(fx.Interactions))
	for i, in := range fx.Interactions {
		next, ev, err := m.Advance(ctx, st, in.Message)
		if err != nil {
			return results, fmt.Errorf("interaction %d (%s): %w", i, in.TurnID, err)
		}
		if ev.Kind == machine.EventQuestionAsked && ev.Question != "" {
			next.AppendTurn(session.SpeakerInterviewer, ev.Question)
		}
		st = next
		results = append(results, Result{
			TurnID:        in.TurnID,
			EventKind:     string(ev.Kind),
			QuestionCount: ev.QuestionCount,
			Status:        string(next.Status),
			Degraded:      ev.Degraded,
			Question:      ev.Question,
		})
	}
	return results, nil
}

// #endregion

// #region compare

// Compare reports human-readable mismatches between a replay run and the
// fixture's expected results. An empty slice means the run matched.
func Compare(got, want []Result) []string {
	var diffs []string
	if len(got) != len(want) {
		diffs = append(diffs, fmt.Sprintf("result count: got %d, want %d", len(got), len(want)))
	}
	n := len(got)
	if len(want) < n {
		n = len(want)
	}
	for i := 0; i < n; i++ {
		g, w := got[i], want[i]
		if g.EventKind != w.EventKind {
			diffs = append(diffs, fmt.Sprintf("%s: event %q, want %q", w.TurnID, g.EventKind, w.EventKind))
		}
		if g.QuestionCount != w.QuestionCount {
			diffs = append(diffs, fmt.Sprintf("%s: question count %d, want %d", w.TurnID, g.QuestionCount, w.QuestionCount))
		}
		if g.Status != w.Status {
			diffs = append(diffs, fmt.Sprintf("%s: status %q, want %q", w.TurnID, g.Status, w.Status))
		}
		if g.Degraded != w.Degraded {
			diffs = append(diffs, fmt.Sprintf("%s: degraded %v, want %v", w.TurnID, g.Degraded, w.Degraded))
		}
		if w.Question != "" && g.Question != w.Question {
			diffs = append(diffs, fmt.Sprintf("%s: question %q, want %q", w.TurnID, g.Question, w.Question))
		}
	}
	return diffs
}

// #endregion
