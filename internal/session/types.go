package session

// #region imports
import "time"

// #endregion

// #region speaker

// Speaker identifies who produced a conversation turn.
type Speaker string

const (
	SpeakerInterviewer Speaker = "interviewer"
	SpeakerCandidate   Speaker = "candidate"
)

// #endregion

// #region status

// Status is the lifecycle stage of an interview session.
type Status string

const (
	StatusCreated          Status = "created"
	StatusAwaitingResponse Status = "awaiting_response"
	StatusTerminated       Status = "terminated"
)

// #endregion

// #region turn

// Turn is a single utterance in the conversation, tagged with its speaker.
type Turn struct {
	Speaker   Speaker   `json:"speaker"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// #endregion

// #region evaluation-note

// EvaluationNote is the per-question qualitative evaluation, one per answered question.
type EvaluationNote struct {
	Question   string `json:"question"`
	Response   string `json:"response"`
	Evaluation string `json:"evaluation"`
}

// #endregion

// #region candidate-profile

// CandidateProfile is the snapshot of the candidate taken at session start.
// It stays fixed for the session even if the underlying profile changes.
type CandidateProfile struct {
	Skills          []string `json:"skills"`
	ExperienceYears int      `json:"experience_years"`
	TargetRoles     []string `json:"target_roles"`
	Education       string   `json:"education"`
}

// #endregion

// #region state

// State is the full mutable record of one interview session.
// History and Notes are append-only; QuestionCount never exceeds MaxQuestions.
type State struct {
	ID         string           `json:"session_id"`
	Role       string           `json:"role"`
	Difficulty string           `json:"difficulty"`
	Profile    CandidateProfile `json:"candidate_profile"`

	History []Turn           `json:"conversation_history"`
	Notes   []EvaluationNote `json:"evaluation_notes"`

	CurrentQuestion string `json:"current_question"`
	PendingResponse string `json:"pending_user_response"`
	QuestionCount   int    `json:"question_count"`
	MaxQuestions    int    `json:"max_questions"`

	Status   Status `json:"status"`
	Thinking string `json:"thinking_trace"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// #endregion
