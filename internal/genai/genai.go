package genai

// #region imports
import "context"

// #endregion

// #region request

// Request carries one text-generation call. MaxTokens and Temperature are
// advisory hints; implementations may ignore them.
type Request struct {
	Prompt       string
	SystemPrompt string
	MaxTokens    int
	Temperature  float32
}

// #endregion

// #region client

// Client abstracts the text-generation service. Implementations return an
// error for transport or quota failures; callers in the turn pipeline treat
// any error as an empty generation and continue.
type Client interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// #endregion
