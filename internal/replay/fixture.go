package replay

// #region imports
import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mockstage/interview-engine/internal/session"
)

// #endregion

// #region fixture

// Fixture is a recorded interview scenario: the session parameters, the
// generation script, the candidate interactions, and the transitions the
// replay is expected to produce.
type Fixture struct {
	Description  string                   `json:"description"`
	Role         string                   `json:"role"`
	Difficulty   string                   `json:"difficulty"`
	Profile      session.CandidateProfile `json:"profile"`
	MaxQuestions int                      `json:"max_questions"`
	Generations  []string                 `json:"generations"`
	Interactions []Interaction            `json:"interactions"`
	Expected     []Result                 `json:"expected_results"`
}

// #endregion

// #region load

// LoadFixture reads and validates a fixture file.
func LoadFixture(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture: %w", err)
	}
	var fx Fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return Fixture{}, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	if err := fx.validate(); err != nil {
		return Fixture{}, fmt.Errorf("fixture %s: %w", path, err)
	}
	return fx, nil
}

func (fx Fixture) validate() error {
	if fx.Role == "" {
		return fmt.Errorf("role is required")
	}
	if fx.MaxQuestions <= 0 {
		return fmt.Errorf("max_questions must be positive, got %d", fx.MaxQuestions)
	}
	if len(fx.Interactions) == 0 {
		return fmt.Errorf("at least one interaction is required")
	}
	return nil
}

// #endregion
