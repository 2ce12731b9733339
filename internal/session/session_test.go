package session

import (
	"strings"
	"testing"
)

func TestNewDefaults(t *testing.T) {
	st := New("Software Engineer", "medium", CandidateProfile{Skills: []string{"Go"}}, 10)

	if st.ID == "" {
		t.Fatal("expected non-empty session id")
	}
	if st.Status != StatusCreated {
		t.Fatalf("expected created status, got %s", st.Status)
	}
	if st.QuestionCount != 0 || st.MaxQuestions != 10 {
		t.Fatalf("unexpected counters: %d/%d", st.QuestionCount, st.MaxQuestions)
	}
}

func TestCloneIsDeep(t *testing.T) {
	st := New("Data Scientist", "hard", CandidateProfile{
		Skills:      []string{"Python", "SQL"},
		TargetRoles: []string{"Data Scientist"},
	}, 5)
	st.AppendTurn(SpeakerInterviewer, "original feedback")
	st.AppendNote(EvaluationNote{Question: "q1", Response: "a1", Evaluation: "fine"})

	cp := st.Clone()
	cp.AppendTurn(SpeakerCandidate, "new answer")
	cp.Notes[0].Evaluation = "changed"
	cp.Profile.Skills[0] = "Rust"

	if len(st.History) != 1 {
		t.Fatalf("clone mutation leaked into history: %d turns", len(st.History))
	}
	if st.Notes[0].Evaluation != "fine" {
		t.Fatalf("clone mutation leaked into notes: %q", st.Notes[0].Evaluation)
	}
	if st.Profile.Skills[0] != "Python" {
		t.Fatalf("clone mutation leaked into profile: %q", st.Profile.Skills[0])
	}
}

func TestTranscript(t *testing.T) {
	st := New("Software Engineer", "easy", CandidateProfile{}, 3)
	st.AppendTurn(SpeakerCandidate, "I used Go at work")
	st.AppendTurn(SpeakerInterviewer, "Tell me more")

	got := st.Transcript()
	if !strings.Contains(got, "CANDIDATE: I used Go at work") {
		t.Fatalf("missing candidate line: %q", got)
	}
	if !strings.Contains(got, "INTERVIEWER: Tell me more") {
		t.Fatalf("missing interviewer line: %q", got)
	}
}
