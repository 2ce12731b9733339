package eval

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mockstage/interview-engine/internal/genai"
	"github.com/mockstage/interview-engine/internal/session"
)

func TestParseScores(t *testing.T) {
	tests := []struct {
		name string
		text string
		want categoryScores
	}{
		{
			"well-formed",
			"Communication: 85\nTechnical: 72\nProblem Solving: 90\nConfidence: 60",
			categoryScores{85, 72, 90, 60},
		},
		{
			"case-insensitive with noise",
			"Here are the scores.\ncommunication: 80 (good)\nTECHNICAL: 75\nproblem solving: 65\nConfidence: 70\nDone.",
			categoryScores{80, 75, 65, 70},
		},
		{
			"missing lines fall back to default",
			"Communication: 88",
			categoryScores{88, 70, 70, 70},
		},
		{
			"garbage falls back entirely",
			"I cannot provide scores.",
			categoryScores{70, 70, 70, 70},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseScores(tt.text, 70)
			if got != tt.want {
				t.Errorf("parseScores: got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestOverallIsMean(t *testing.T) {
	s := categoryScores{80, 60, 70, 90}
	if s.overall() != 75 {
		t.Fatalf("expected mean 75, got %.1f", s.overall())
	}
}

func TestSplitStrengthsWeaknesses(t *testing.T) {
	text := `STRENGTHS:
- Clear communication
- Strong Go fundamentals

WEAKNESSES:
- Shallow system design answers
- Hesitant under follow-ups
`
	strengths, weaknesses := splitStrengthsWeaknesses(text, 5)
	if len(strengths) != 2 || strengths[0] != "Clear communication" {
		t.Fatalf("bad strengths: %v", strengths)
	}
	if len(weaknesses) != 2 || weaknesses[1] != "Hesitant under follow-ups" {
		t.Fatalf("bad weaknesses: %v", weaknesses)
	}
}

func TestSplitStrengthsWeaknessesCap(t *testing.T) {
	text := "STRENGTHS:\n- a\n- b\n- c\n- d\n- e\n- f\n- g\nWEAKNESSES:\n- x"
	strengths, _ := splitStrengthsWeaknesses(text, 5)
	if len(strengths) != 5 {
		t.Fatalf("expected cap at 5, got %d", len(strengths))
	}
}

func TestSplitStrengthsWeaknessesMalformed(t *testing.T) {
	strengths, weaknesses := splitStrengthsWeaknesses("no structure here", 5)
	if strengths != nil || weaknesses != nil {
		t.Fatalf("expected nil lists for malformed input, got %v / %v", strengths, weaknesses)
	}
}

func TestEvaluateProducesReport(t *testing.T) {
	gen := genai.NewScripted(
		"The candidate performed well overall with clear communication.",
		"Communication: 82\nTechnical: 74\nProblem Solving: 78\nConfidence: 66",
		"STRENGTHS:\n- Communicates clearly\nWEAKNESSES:\n- Needs deeper technical examples",
		"Work through two system design case studies per week.",
		"Practice system design twice a week and review Go internals.",
	)
	p := NewPipeline(gen, DefaultConfig())

	notes := []session.EvaluationNote{{Question: "q1", Response: "a1", Evaluation: "fine"}}
	history := []session.Turn{
		{Speaker: session.SpeakerCandidate, Content: "a1"},
		{Speaker: session.SpeakerInterviewer, Content: "noted"},
	}

	report, err := p.Evaluate(context.Background(), history, notes, "Software Engineer", session.CandidateProfile{})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	if report.CommunicationScore != 82 || report.ConfidenceScore != 66 {
		t.Fatalf("bad scores: %+v", report)
	}
	if report.OverallScore != 75 {
		t.Fatalf("expected overall 75, got %.1f", report.OverallScore)
	}
	if len(report.Strengths) != 1 || len(report.Weaknesses) != 1 {
		t.Fatalf("bad extraction: %+v", report)
	}
	if report.Recommendations == "" || report.OverallEvaluation == "" {
		t.Fatal("missing text sections")
	}
	if len(report.ImprovementAreas) != 1 {
		t.Fatalf("expected one improvement area per weakness, got %+v", report.ImprovementAreas)
	}
	area := report.ImprovementAreas[0]
	if area.Area != "Needs deeper technical examples" || area.ActionPlan == "" {
		t.Fatalf("bad improvement area: %+v", area)
	}
	if area.Priority != "high" {
		t.Fatalf("technical weakness should be high priority, got %q", area.Priority)
	}
	if len(report.QuestionFeedback) != 1 {
		t.Fatalf("expected per-question feedback carried through, got %d", len(report.QuestionFeedback))
	}
	// overall, scoring, extraction, one action plan, recommendations
	if gen.Calls() != 5 {
		t.Fatalf("expected 5 generation calls, got %d", gen.Calls())
	}
	recPrompt := gen.Prompts()[4].Prompt
	if !strings.Contains(recPrompt, "Needs deeper technical examples") {
		t.Fatalf("recommendations prompt missing improvement area:\n%s", recPrompt)
	}
}

func TestImprovementAreaPriorities(t *testing.T) {
	tests := []struct {
		weakness string
		want     string
	}{
		{"Weak technical depth", "high"},
		{"Relies on Technical jargon", "high"},
		{"Rambling answers", "medium"},
	}
	for _, tt := range tests {
		if got := priorityFor(tt.weakness); got != tt.want {
			t.Errorf("priorityFor(%q) = %q, want %q", tt.weakness, got, tt.want)
		}
	}
}

func TestEvaluateGeneratesPlanPerWeakness(t *testing.T) {
	gen := genai.NewScripted(
		"Overall fine.",
		"Communication: 70\nTechnical: 70\nProblem Solving: 70\nConfidence: 70",
		"STRENGTHS:\n- Calm\nWEAKNESSES:\n- Vague examples\n- Weak technical depth",
		"Prepare three concrete stories.",
		"Drill fundamentals daily.",
		"Keep practicing.",
	)
	p := NewPipeline(gen, DefaultConfig())

	report, err := p.Evaluate(context.Background(), nil, nil, "Data Scientist", session.CandidateProfile{})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(report.ImprovementAreas) != 2 {
		t.Fatalf("expected 2 improvement areas, got %+v", report.ImprovementAreas)
	}
	if report.ImprovementAreas[0].Priority != "medium" || report.ImprovementAreas[1].Priority != "high" {
		t.Fatalf("bad priorities: %+v", report.ImprovementAreas)
	}
	if report.ImprovementAreas[1].ActionPlan != "Drill fundamentals daily." {
		t.Fatalf("plans not matched to weaknesses in order: %+v", report.ImprovementAreas)
	}
}

func TestEvaluateFailurePropagates(t *testing.T) {
	p := NewPipeline(&genai.Failing{Err: errors.New("endpoint down")}, DefaultConfig())

	_, err := p.Evaluate(context.Background(), nil, nil, "Software Engineer", session.CandidateProfile{})
	if err == nil {
		t.Fatal("expected hard error from failed evaluation")
	}
}
