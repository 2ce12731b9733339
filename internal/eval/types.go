package eval

// #region imports
import "github.com/mockstage/interview-engine/internal/session"

// #endregion

// #region report

// Report is the scored output of the evaluation pipeline, persisted
// independently of the session state.
type Report struct {
	OverallScore        float64 `json:"overall_score"`
	CommunicationScore  float64 `json:"communication_score"`
	TechnicalScore      float64 `json:"technical_score"`
	ProblemSolvingScore float64 `json:"problem_solving_score"`
	ConfidenceScore     float64 `json:"confidence_score"`

	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`

	ImprovementAreas []ImprovementArea `json:"improvement_areas"`

	OverallEvaluation string `json:"overall_evaluation"`
	Recommendations   string `json:"recommendations"`

	QuestionFeedback []session.EvaluationNote `json:"question_feedback"`
}

// ImprovementArea pairs one extracted weakness with a generated action plan.
type ImprovementArea struct {
	Area       string `json:"area"`
	ActionPlan string `json:"action_plan"`
	Priority   string `json:"priority"`
}

// #endregion

// #region config

// Config tunes the pipeline's generation calls and parse fallbacks.
type Config struct {
	OverallMaxTokens        int
	ScoringMaxTokens        int
	ExtractionMaxTokens     int
	ActionPlanMaxTokens     int
	RecommendationMaxTokens int
	DefaultScore            float64 // used when a score line cannot be parsed
	MaxListed               int     // cap on extracted strengths/weaknesses
}

// DefaultConfig returns the pipeline defaults.
func DefaultConfig() Config {
	return Config{
		OverallMaxTokens:        800,
		ScoringMaxTokens:        100,
		ExtractionMaxTokens:     300,
		ActionPlanMaxTokens:     200,
		RecommendationMaxTokens: 500,
		DefaultScore:            70,
		MaxListed:               5,
	}
}

// #endregion
