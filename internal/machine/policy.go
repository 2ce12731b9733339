package machine

// #region imports
import "github.com/mockstage/interview-engine/internal/session"

// #endregion

// #region should-end

// ShouldEnd is the single source of truth for ending an interview.
// Pure comparison; evaluated after every analyzed answer.
func ShouldEnd(st session.State) bool {
	return st.QuestionCount >= st.MaxQuestions
}

// #endregion
