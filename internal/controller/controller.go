// Package controller serializes access to interview sessions and wires the
// state machine to its collaborators: the keyed session store for state
// between turns, the evaluation pipeline at the terminal transition, and the
// durable archive for transcripts and reports.
package controller

// #region imports
import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mockstage/interview-engine/internal/archive"
	"github.com/mockstage/interview-engine/internal/eval"
	"github.com/mockstage/interview-engine/internal/genai"
	"github.com/mockstage/interview-engine/internal/machine"
	"github.com/mockstage/interview-engine/internal/session"
	"github.com/mockstage/interview-engine/internal/store"
	"github.com/mockstage/interview-engine/internal/transitionlog"
)

// #endregion

// #region errors

var (
	// ErrSessionBusy reports a second in-flight advance for the same session.
	ErrSessionBusy = errors.New("session has an advance in flight")
	// ErrInvalidRole reports a role outside the platform's role list.
	ErrInvalidRole = errors.New("invalid role")
	// ErrInvalidDifficulty reports a difficulty outside easy/medium/hard.
	ErrInvalidDifficulty = errors.New("invalid difficulty")
)

// #endregion

// #region roles

// ValidRoles is the platform's interview role list.
var ValidRoles = []string{
	"Software Engineer", "Data Scientist", "Product Manager",
	"Sales Manager", "Marketing Manager", "Business Analyst",
	"UI/UX Designer", "DevOps Engineer", "Project Manager",
	"Customer Success Manager", "Retail Associate", "HR Manager",
}

func validRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

func validDifficulty(d string) bool {
	return d == "easy" || d == "medium" || d == "hard"
}

// #endregion

// #region config

// Config tunes session creation and persistence.
type Config struct {
	MaxQuestions int
	SessionTTL   time.Duration
}

// DefaultConfig returns the platform defaults.
func DefaultConfig() Config {
	return Config{
		MaxQuestions: 10,
		SessionTTL:   time.Hour,
	}
}

// #endregion

// #region controller-struct

// Controller owns the per-session single-writer discipline: at most one
// in-flight advance per session id. Different sessions run concurrently.
type Controller struct {
	sessions store.Store
	machine  *machine.Machine
	pipeline *eval.Pipeline
	archive  *archive.Archive
	config   Config

	locks sync.Map // session id -> *sync.Mutex
}

// New wires a controller from its collaborators.
func New(gen genai.Client, sessions store.Store, arch *archive.Archive, config Config) *Controller {
	return &Controller{
		sessions: sessions,
		machine:  machine.New(gen),
		pipeline: eval.NewPipeline(gen, eval.DefaultConfig()),
		archive:  arch,
		config:   config,
	}
}

// #endregion

// #region result

// Result bundles the outcome of one advance as seen by the transport layer.
type Result struct {
	State  session.State
	Event  machine.Event
	Report *eval.Report // set only when this call concluded the interview
}

// #endregion

// #region start

// StartInterview creates a session, runs the first advance, and persists the
// state with the first question recorded in history.
func (c *Controller) StartInterview(ctx context.Context, role, difficulty string, profile session.CandidateProfile) (Result, error) {
	if !validRole(role) {
		return Result{}, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	if difficulty == "" {
		difficulty = "medium"
	}
	if !validDifficulty(difficulty) {
		return Result{}, fmt.Errorf("%w: %q", ErrInvalidDifficulty, difficulty)
	}

	st := session.New(role, difficulty, profile, c.config.MaxQuestions)

	next, ev, err := c.machine.Advance(ctx, st, "")
	if err != nil {
		return Result{}, err
	}
	c.recordQuestion(&next, ev)
	c.persist(next)
	c.logTransition(st.Status, next, ev)

	log.Printf("[CTRL] session=%s started role=%q difficulty=%s", next.ID, role, difficulty)
	return Result{State: next, Event: ev}, nil
}

// #endregion

// #region respond

// Respond applies one candidate message to the session. On the terminal
// transition it runs the evaluation pipeline, archives transcript and report,
// and drops the session-store entry. Advancing a terminated session again
// retries that hand-off when no report made it to the archive.
func (c *Controller) Respond(ctx context.Context, id, message string) (Result, error) {
	unlock, err := c.lock(id)
	if err != nil {
		return Result{}, err
	}
	defer unlock()

	st, err := c.sessions.Get(id)
	if err != nil {
		return Result{}, err
	}
	fromStatus := st.Status

	next, ev, err := c.machine.Advance(ctx, st, message)
	if err != nil {
		return Result{}, err
	}
	c.recordQuestion(&next, ev)
	c.persist(next)
	c.logTransition(fromStatus, next, ev)

	res := Result{State: next, Event: ev}

	if ev.Kind == machine.EventInterviewConcluded && c.needsConclusion(fromStatus, next.ID) {
		report, err := c.conclude(ctx, next)
		if err != nil {
			// A terminated interview with no report is a hard failure;
			// the terminal state itself is already persisted.
			return Result{}, err
		}
		res.Report = &report
	}
	return res, nil
}

// needsConclusion reports whether the terminal hand-off still has to run:
// on the fresh terminal transition, or on a terminal re-advance whose earlier
// hand-off failed before a report was archived.
func (c *Controller) needsConclusion(from session.Status, id string) bool {
	if from != session.StatusTerminated {
		return true
	}
	_, err := c.archive.GetReport(id)
	return errors.Is(err, archive.ErrNotFound)
}

// conclude runs the scoring pipeline exactly once and moves the session from
// the ephemeral store to the durable archive.
func (c *Controller) conclude(ctx context.Context, st session.State) (eval.Report, error) {
	report, err := c.pipeline.Evaluate(ctx, st.History, st.Notes, st.Role, st.Profile)
	if err != nil {
		return eval.Report{}, fmt.Errorf("evaluation pipeline: %w", err)
	}
	if err := c.archive.SaveTranscript(st); err != nil {
		return eval.Report{}, fmt.Errorf("archive transcript: %w", err)
	}
	if err := c.archive.SaveReport(st.ID, report); err != nil {
		return eval.Report{}, fmt.Errorf("archive report: %w", err)
	}
	if err := c.sessions.Delete(st.ID); err != nil {
		log.Printf("[CTRL] session=%s store delete failed: %v", st.ID, err)
	}
	c.locks.Delete(st.ID)
	log.Printf("[CTRL] session=%s concluded overall=%.1f", st.ID, report.OverallScore)
	return report, nil
}

// #endregion

// #region getters

// GetSession loads the live state of an in-progress session.
func (c *Controller) GetSession(id string) (session.State, error) {
	return c.sessions.Get(id)
}

// GetInterview loads an archived interview.
func (c *Controller) GetInterview(id string) (archive.InterviewRecord, error) {
	return c.archive.GetInterview(id)
}

// GetReport loads the scored report of a completed interview.
func (c *Controller) GetReport(id string) (eval.Report, error) {
	return c.archive.GetReport(id)
}

// ListInterviews returns recently completed interviews.
func (c *Controller) ListInterviews(limit int) ([]archive.InterviewRecord, error) {
	return c.archive.ListInterviews(limit)
}

// #endregion

// #region helpers

// lock enforces the single-writer-per-session discipline without blocking:
// a concurrent caller is told the session is busy rather than queued.
func (c *Controller) lock(id string) (func(), error) {
	v, _ := c.locks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	if !mu.TryLock() {
		return nil, fmt.Errorf("%w: %s", ErrSessionBusy, id)
	}
	return mu.Unlock, nil
}

// recordQuestion appends the surfaced question to history. The machine never
// stores questions itself; that is the caller's job.
func (c *Controller) recordQuestion(st *session.State, ev machine.Event) {
	if ev.Kind == machine.EventQuestionAsked && ev.Question != "" {
		st.AppendTurn(session.SpeakerInterviewer, ev.Question)
	}
}

// persist writes the state back to the session store. Best effort: losing an
// ephemeral session entry degrades the session, it does not fail the turn.
func (c *Controller) persist(st session.State) {
	if err := c.sessions.Set(st.ID, st, c.config.SessionTTL); err != nil {
		log.Printf("[CTRL] session=%s store write failed, proceeding without persistence: %v", st.ID, err)
	}
}

// logTransition records the audit row. Best effort.
func (c *Controller) logTransition(from session.Status, st session.State, ev machine.Event) {
	turnID := fmt.Sprintf("turn-%d", ev.QuestionCount)
	if ev.Kind == machine.EventInterviewConcluded {
		turnID = "turn-final"
	}
	reason := ""
	if ev.Degraded {
		reason = "generation degraded to empty text"
	}
	err := transitionlog.Log(c.archive.DB(), transitionlog.Entry{
		SessionID:     st.ID,
		TurnID:        turnID,
		FromStatus:    from,
		ToStatus:      st.Status,
		Event:         string(ev.Kind),
		QuestionCount: ev.QuestionCount,
		Degraded:      ev.Degraded,
		Reason:        reason,
	})
	if err != nil {
		log.Printf("[CTRL] session=%s transition log failed: %v", st.ID, err)
	}
}

// #endregion
