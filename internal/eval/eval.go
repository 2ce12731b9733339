// Package eval turns a finished interview into a scored report: an overall
// written evaluation, numeric category scores, strengths and weaknesses, and
// preparation recommendations. Unlike the turn pipeline, failures here are
// hard errors; a terminated interview with no report is a reportable failure.
package eval

// #region imports
import (
	"context"
	"fmt"
	"strings"

	"github.com/mockstage/interview-engine/internal/genai"
	"github.com/mockstage/interview-engine/internal/prompt"
	"github.com/mockstage/interview-engine/internal/session"
)

// #endregion

// #region pipeline-struct

// Pipeline runs the post-interview scoring stages. Invoked exactly once per
// session, at the terminal transition; never retried.
type Pipeline struct {
	gen    genai.Client
	config Config
}

// NewPipeline creates a pipeline backed by the given generation client.
func NewPipeline(gen genai.Client, config Config) *Pipeline {
	return &Pipeline{gen: gen, config: config}
}

// #endregion

// #region evaluate

// Evaluate produces the scored report from the final conversation history and
// the per-turn evaluation notes.
func (p *Pipeline) Evaluate(ctx context.Context, history []session.Turn, notes []session.EvaluationNote, role string, profile session.CandidateProfile) (Report, error) {
	transcript := (session.State{History: history}).Transcript()

	overall, err := p.gen.Generate(ctx, genai.Request{
		Prompt:       prompt.OverallEvaluation(transcript, notes, role),
		SystemPrompt: prompt.SystemEvaluation,
		MaxTokens:    p.config.OverallMaxTokens,
		Temperature:  0.7,
	})
	if err != nil {
		return Report{}, fmt.Errorf("overall evaluation: %w", err)
	}

	scoresText, err := p.gen.Generate(ctx, genai.Request{
		Prompt:      prompt.Scoring(overall),
		MaxTokens:   p.config.ScoringMaxTokens,
		Temperature: 0.3,
	})
	if err != nil {
		return Report{}, fmt.Errorf("score extraction: %w", err)
	}
	scores := parseScores(scoresText, p.config.DefaultScore)

	extraction, err := p.gen.Generate(ctx, genai.Request{
		Prompt:      prompt.StrengthsWeaknesses(overall),
		MaxTokens:   p.config.ExtractionMaxTokens,
		Temperature: 0.5,
	})
	if err != nil {
		return Report{}, fmt.Errorf("strengths/weaknesses extraction: %w", err)
	}
	strengths, weaknesses := splitStrengthsWeaknesses(extraction, p.config.MaxListed)

	areas, err := p.improvementAreas(ctx, weaknesses, role)
	if err != nil {
		return Report{}, err
	}
	areaNames := make([]string, len(areas))
	for i, a := range areas {
		areaNames[i] = a.Area
	}

	recommendations, err := p.gen.Generate(ctx, genai.Request{
		Prompt: prompt.Recommendations(role, scores.overall(), scores.communication,
			scores.technical, scores.problemSolving, scores.confidence, areaNames),
		MaxTokens:   p.config.RecommendationMaxTokens,
		Temperature: 0.7,
	})
	if err != nil {
		return Report{}, fmt.Errorf("recommendations: %w", err)
	}

	return Report{
		OverallScore:        scores.overall(),
		CommunicationScore:  scores.communication,
		TechnicalScore:      scores.technical,
		ProblemSolvingScore: scores.problemSolving,
		ConfidenceScore:     scores.confidence,
		Strengths:           strengths,
		Weaknesses:          weaknesses,
		ImprovementAreas:    areas,
		OverallEvaluation:   overall,
		Recommendations:     recommendations,
		QuestionFeedback:    notes,
	}, nil
}

// #endregion

// #region improvement-areas

// improvementAreas generates one action plan per extracted weakness.
// Weaknesses touching technical ground are marked high priority.
func (p *Pipeline) improvementAreas(ctx context.Context, weaknesses []string, role string) ([]ImprovementArea, error) {
	areas := make([]ImprovementArea, 0, len(weaknesses))
	for _, weakness := range weaknesses {
		plan, err := p.gen.Generate(ctx, genai.Request{
			Prompt:      prompt.ImprovementArea(role, weakness),
			MaxTokens:   p.config.ActionPlanMaxTokens,
			Temperature: 0.7,
		})
		if err != nil {
			return nil, fmt.Errorf("action plan for %q: %w", weakness, err)
		}
		areas = append(areas, ImprovementArea{
			Area:       weakness,
			ActionPlan: plan,
			Priority:   priorityFor(weakness),
		})
	}
	return areas, nil
}

func priorityFor(weakness string) string {
	if strings.Contains(strings.ToLower(weakness), "technical") {
		return "high"
	}
	return "medium"
}

// #endregion
