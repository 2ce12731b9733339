package controller

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mockstage/interview-engine/internal/archive"
	"github.com/mockstage/interview-engine/internal/eval"
	"github.com/mockstage/interview-engine/internal/genai"
	"github.com/mockstage/interview-engine/internal/machine"
	"github.com/mockstage/interview-engine/internal/session"
	"github.com/mockstage/interview-engine/internal/store"
	"github.com/mockstage/interview-engine/internal/transitionlog"
)

// #region helpers

func newController(t *testing.T, gen genai.Client, maxQuestions int) (*Controller, store.Store, *archive.Archive) {
	t.Helper()
	arch, err := archive.New(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("archive.New: %v", err)
	}
	t.Cleanup(func() { arch.Close() })
	sessions := store.NewMemory()
	cfg := DefaultConfig()
	cfg.MaxQuestions = maxQuestions
	return New(gen, sessions, arch, cfg), sessions, arch
}

func testProfile() session.CandidateProfile {
	return session.CandidateProfile{
		Skills:          []string{"Go", "SQL"},
		ExperienceYears: 4,
		TargetRoles:     []string{"Backend Engineer"},
	}
}

func evalPipelineFailing() *eval.Pipeline {
	return eval.NewPipeline(&genai.Failing{Err: errors.New("evaluator unavailable")}, eval.DefaultConfig())
}

// fullScript covers a two-question interview plus the four evaluation calls.
func fullScript() *genai.Scripted {
	return genai.NewScripted(
		"Tell me about a system you designed.",      // question 1
		"Solid structure, lacks tradeoff analysis.", // analysis 1
		"Good. What were the bottlenecks?",          // feedback 1
		"How did you scale the write path?",         // question 2
		"Concrete numbers, good depth.",             // analysis 2
		"Thanks, that covers it.",                   // feedback 2
		"The candidate communicated clearly and showed solid fundamentals.", // overall evaluation
		"Communication: 80\nTechnical: 70\nProblem Solving: 90\nConfidence: 60", // scoring
		"STRENGTHS:\n- Clear explanations\nWEAKNESSES:\n- Light on tradeoffs",   // extraction
		"Write down the tradeoffs before each design discussion.",               // action plan
		"Practice articulating design tradeoffs out loud.",                      // recommendations
	)
}

// #endregion

// #region flow

func TestFullInterviewFlow(t *testing.T) {
	ctrl, sessions, arch := newController(t, fullScript(), 2)
	ctx := context.Background()

	res, err := ctrl.StartInterview(ctx, "Software Engineer", "medium", testProfile())
	if err != nil {
		t.Fatalf("StartInterview: %v", err)
	}
	id := res.State.ID
	if res.Event.Kind != machine.EventQuestionAsked {
		t.Fatalf("start event = %s, want question_asked", res.Event.Kind)
	}
	if res.Event.Question != "Tell me about a system you designed." {
		t.Fatalf("unexpected first question %q", res.Event.Question)
	}
	if len(res.State.History) != 1 || res.State.History[0].Speaker != session.SpeakerInterviewer {
		t.Fatalf("first question not recorded in history: %+v", res.State.History)
	}
	if _, err := sessions.Get(id); err != nil {
		t.Fatalf("session not persisted after start: %v", err)
	}

	mid, err := ctrl.Respond(ctx, id, "I built a ledger service.")
	if err != nil {
		t.Fatalf("Respond 1: %v", err)
	}
	if mid.Event.Kind != machine.EventQuestionAsked || mid.Report != nil {
		t.Fatalf("mid-interview turn should ask a question without a report")
	}
	if mid.Event.QuestionCount != 2 {
		t.Fatalf("question count = %d, want 2", mid.Event.QuestionCount)
	}

	final, err := ctrl.Respond(ctx, id, "We sharded by account id.")
	if err != nil {
		t.Fatalf("Respond 2: %v", err)
	}
	if final.Event.Kind != machine.EventInterviewConcluded {
		t.Fatalf("final event = %s, want interview_concluded", final.Event.Kind)
	}
	if final.Report == nil {
		t.Fatal("concluding turn returned no report")
	}
	if final.Report.OverallScore != 75 {
		t.Fatalf("overall score = %.1f, want 75", final.Report.OverallScore)
	}

	// The session moves from the ephemeral store to the archive.
	if _, err := sessions.Get(id); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("session still in store after conclusion: %v", err)
	}
	rec, err := arch.GetInterview(id)
	if err != nil {
		t.Fatalf("GetInterview: %v", err)
	}
	if rec.Status != session.StatusTerminated || rec.QuestionCount != 2 {
		t.Fatalf("archived record = %+v", rec)
	}
	report, err := ctrl.GetReport(id)
	if err != nil {
		t.Fatalf("GetReport: %v", err)
	}
	if report.CommunicationScore != 80 || report.ConfidenceScore != 60 {
		t.Fatalf("archived report scores = %+v", report)
	}
	if len(report.ImprovementAreas) != 1 || report.ImprovementAreas[0].Area != "Light on tradeoffs" {
		t.Fatalf("archived improvement areas = %+v", report.ImprovementAreas)
	}

	entries, err := transitionlog.List(arch.DB(), id, 0)
	if err != nil {
		t.Fatalf("transitionlog.List: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("transition rows = %d, want 3", len(entries))
	}
	if entries[2].Event != string(machine.EventInterviewConcluded) {
		t.Fatalf("last transition = %+v", entries[2])
	}
}

// #endregion

// #region validation

func TestStartRejectsUnknownRole(t *testing.T) {
	ctrl, _, _ := newController(t, genai.NewScripted(), 2)
	if _, err := ctrl.StartInterview(context.Background(), "Wizard", "medium", testProfile()); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("err = %v, want ErrInvalidRole", err)
	}
}

func TestStartRejectsUnknownDifficulty(t *testing.T) {
	ctrl, _, _ := newController(t, genai.NewScripted(), 2)
	if _, err := ctrl.StartInterview(context.Background(), "Software Engineer", "impossible", testProfile()); !errors.Is(err, ErrInvalidDifficulty) {
		t.Fatalf("err = %v, want ErrInvalidDifficulty", err)
	}
}

func TestStartDefaultsDifficulty(t *testing.T) {
	ctrl, _, _ := newController(t, genai.NewScripted("Q1"), 2)
	res, err := ctrl.StartInterview(context.Background(), "Software Engineer", "", testProfile())
	if err != nil {
		t.Fatalf("StartInterview: %v", err)
	}
	if res.State.Difficulty != "medium" {
		t.Fatalf("difficulty = %q, want medium", res.State.Difficulty)
	}
}

func TestRespondUnknownSession(t *testing.T) {
	ctrl, _, _ := newController(t, genai.NewScripted(), 2)
	if _, err := ctrl.Respond(context.Background(), "missing", "hello"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want store.ErrNotFound", err)
	}
}

func TestRespondEmptyMessageIgnored(t *testing.T) {
	ctrl, sessions, _ := newController(t, genai.NewScripted("Q1"), 2)
	res, err := ctrl.StartInterview(context.Background(), "Software Engineer", "easy", testProfile())
	if err != nil {
		t.Fatalf("StartInterview: %v", err)
	}
	if _, err := ctrl.Respond(context.Background(), res.State.ID, "   "); !errors.Is(err, machine.ErrIgnoredInput) {
		t.Fatalf("err = %v, want ErrIgnoredInput", err)
	}
	st, err := sessions.Get(res.State.ID)
	if err != nil {
		t.Fatalf("Get after ignored input: %v", err)
	}
	if st.QuestionCount != 1 || st.Status != session.StatusAwaitingResponse {
		t.Fatalf("ignored input changed state: %+v", st)
	}
}

// #endregion

// #region concurrency

// blockingClient parks the first Generate call until released.
type blockingClient struct {
	entered  chan struct{}
	release  chan struct{}
	delegate *genai.Scripted
	blocked  bool
}

func (b *blockingClient) Generate(ctx context.Context, req genai.Request) (string, error) {
	if !b.blocked {
		b.blocked = true
		close(b.entered)
		<-b.release
	}
	return b.delegate.Generate(ctx, req)
}

func TestConcurrentRespondIsRejected(t *testing.T) {
	start := genai.NewScripted("Q1")
	ctrl, _, _ := newController(t, start, 3)
	res, err := ctrl.StartInterview(context.Background(), "Software Engineer", "medium", testProfile())
	if err != nil {
		t.Fatalf("StartInterview: %v", err)
	}

	slow := &blockingClient{
		entered:  make(chan struct{}),
		release:  make(chan struct{}),
		delegate: genai.NewScripted("analysis", "feedback", "Q2"),
	}
	ctrl.machine = machine.New(slow)

	done := make(chan error, 1)
	go func() {
		_, err := ctrl.Respond(context.Background(), res.State.ID, "first answer")
		done <- err
	}()
	<-slow.entered

	if _, err := ctrl.Respond(context.Background(), res.State.ID, "second answer"); !errors.Is(err, ErrSessionBusy) {
		t.Fatalf("concurrent respond err = %v, want ErrSessionBusy", err)
	}

	close(slow.release)
	if err := <-done; err != nil {
		t.Fatalf("first respond failed: %v", err)
	}
}

// #endregion

// #region degraded-and-failures

func TestEvaluationFailureIsHardError(t *testing.T) {
	// Enough script for the interview turns, nothing for the evaluation.
	script := genai.NewScripted("Q1", "analysis", "feedback")
	ctrl, sessions, _ := newController(t, script, 1)
	ctrl.pipeline = evalPipelineFailing()

	res, err := ctrl.StartInterview(context.Background(), "Software Engineer", "medium", testProfile())
	if err != nil {
		t.Fatalf("StartInterview: %v", err)
	}
	if _, err := ctrl.Respond(context.Background(), res.State.ID, "answer"); err == nil {
		t.Fatal("expected evaluation failure to propagate")
	}
	// The terminal state itself is still persisted.
	st, err := sessions.Get(res.State.ID)
	if err != nil {
		t.Fatalf("Get after failed evaluation: %v", err)
	}
	if st.Status != session.StatusTerminated {
		t.Fatalf("status = %s, want terminated", st.Status)
	}
}

func TestConcludeRetriedAfterEvaluationFailure(t *testing.T) {
	script := genai.NewScripted("Q1", "analysis", "feedback")
	ctrl, sessions, arch := newController(t, script, 1)
	ctrl.pipeline = evalPipelineFailing()

	res, err := ctrl.StartInterview(context.Background(), "Software Engineer", "medium", testProfile())
	if err != nil {
		t.Fatalf("StartInterview: %v", err)
	}
	id := res.State.ID
	if _, err := ctrl.Respond(context.Background(), id, "answer"); err == nil {
		t.Fatal("expected evaluation failure to propagate")
	}
	if _, err := ctrl.GetReport(id); !errors.Is(err, archive.ErrNotFound) {
		t.Fatalf("report should not exist after failed evaluation: %v", err)
	}

	// Once the evaluator recovers, advancing the terminated session again
	// runs the hand-off that failed the first time.
	ctrl.pipeline = eval.NewPipeline(genai.NewScripted(
		"Recovered evaluation text.",
		"Communication: 80\nTechnical: 70\nProblem Solving: 90\nConfidence: 60",
		"STRENGTHS:\n- Calm\nWEAKNESSES:\n- Light on tradeoffs",
		"Write tradeoffs down before answering.",
		"Practice design discussions.",
	), eval.DefaultConfig())

	retry, err := ctrl.Respond(context.Background(), id, "")
	if err != nil {
		t.Fatalf("retry respond: %v", err)
	}
	if retry.Event.Kind != machine.EventInterviewConcluded || retry.Report == nil {
		t.Fatalf("expected concluded event with report, got %+v", retry)
	}
	if retry.Report.OverallScore != 75 {
		t.Fatalf("overall = %.1f, want 75", retry.Report.OverallScore)
	}
	if _, err := arch.GetReport(id); err != nil {
		t.Fatalf("report not archived on retry: %v", err)
	}
	if _, err := sessions.Get(id); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("session should be dropped after successful hand-off: %v", err)
	}
}

func TestDegradedGenerationStillAdvances(t *testing.T) {
	ctrl, _, _ := newController(t, &genai.Failing{Err: errors.New("upstream down")}, 2)
	res, err := ctrl.StartInterview(context.Background(), "Software Engineer", "medium", testProfile())
	if err != nil {
		t.Fatalf("StartInterview: %v", err)
	}
	if !res.Event.Degraded {
		t.Fatal("expected degraded event when generation fails")
	}
	if res.Event.Kind != machine.EventQuestionAsked {
		t.Fatalf("event = %s, want question_asked", res.Event.Kind)
	}
	// A degraded question is empty, so nothing lands in history.
	if len(res.State.History) != 0 {
		t.Fatalf("history = %+v, want empty", res.State.History)
	}
}

// #endregion
