package machine

// #region imports
import (
	"fmt"
	"strings"

	"github.com/mockstage/interview-engine/internal/session"
)

// #endregion

// #region constants

// windowSize bounds how many recent turns the generator sees. Older turns
// stay in the stored history; only the prompt view is clipped.
const windowSize = 5

// noPriorConversation is the sentinel for an empty history.
const noPriorConversation = "No previous conversation"

// #endregion

// #region window

// Window formats the most recent turns as "Speaker: content" lines, newest
// last. Does not mutate history.
func Window(history []session.Turn) string {
	if len(history) == 0 {
		return noPriorConversation
	}

	start := 0
	if len(history) > windowSize {
		start = len(history) - windowSize
	}

	lines := make([]string, 0, windowSize)
	for _, t := range history[start:] {
		lines = append(lines, fmt.Sprintf("%s: %s", capitalize(string(t.Speaker)), t.Content))
	}
	return strings.Join(lines, "\n")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// #endregion
