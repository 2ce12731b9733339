package session

// #region imports
import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// #endregion

// #region constructor

// New creates a fresh session in Created status with a generated id.
func New(role, difficulty string, profile CandidateProfile, maxQuestions int) State {
	now := time.Now().UTC()
	return State{
		ID:           uuid.New().String(),
		Role:         role,
		Difficulty:   difficulty,
		Profile:      profile,
		MaxQuestions: maxQuestions,
		Status:       StatusCreated,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// #endregion

// #region clone

// Clone returns a deep copy. Callers own the returned value; mutating it
// never aliases the receiver's slices.
func (s State) Clone() State {
	out := s
	if s.History != nil {
		out.History = make([]Turn, len(s.History))
		copy(out.History, s.History)
	}
	if s.Notes != nil {
		out.Notes = make([]EvaluationNote, len(s.Notes))
		copy(out.Notes, s.Notes)
	}
	out.Profile = s.Profile.clone()
	return out
}

func (p CandidateProfile) clone() CandidateProfile {
	out := p
	if p.Skills != nil {
		out.Skills = make([]string, len(p.Skills))
		copy(out.Skills, p.Skills)
	}
	if p.TargetRoles != nil {
		out.TargetRoles = make([]string, len(p.TargetRoles))
		copy(out.TargetRoles, p.TargetRoles)
	}
	return out
}

// #endregion

// #region append-helpers

// AppendTurn records one utterance at the end of the conversation history.
func (s *State) AppendTurn(speaker Speaker, content string) {
	s.History = append(s.History, Turn{
		Speaker:   speaker,
		Content:   content,
		Timestamp: time.Now().UTC(),
	})
	s.UpdatedAt = time.Now().UTC()
}

// AppendNote records one per-question evaluation.
func (s *State) AppendNote(note EvaluationNote) {
	s.Notes = append(s.Notes, note)
	s.UpdatedAt = time.Now().UTC()
}

// #endregion

// #region transcript

// Transcript renders the full conversation as "SPEAKER: content" blocks.
func (s State) Transcript() string {
	parts := make([]string, 0, len(s.History))
	for _, t := range s.History {
		parts = append(parts, fmt.Sprintf("%s: %s", strings.ToUpper(string(t.Speaker)), t.Content))
	}
	return strings.Join(parts, "\n\n")
}

// #endregion

// #region profile-summary

// Summary renders the profile for prompt use.
func (p CandidateProfile) Summary() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("- Skills: %s\n", strings.Join(p.Skills, ", ")))
	b.WriteString(fmt.Sprintf("- Experience: %d years\n", p.ExperienceYears))
	b.WriteString(fmt.Sprintf("- Target Roles: %s", strings.Join(p.TargetRoles, ", ")))
	if p.Education != "" {
		b.WriteString(fmt.Sprintf("\n- Education: %s", p.Education))
	}
	return b.String()
}

// #endregion
