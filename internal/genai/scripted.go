package genai

// #region imports
import (
	"context"
	"sync"
)

// #endregion

// #region scripted

// Scripted returns canned responses in order, then empty strings once the
// script runs out. Used by tests and the replay harness instead of a live
// generation endpoint.
type Scripted struct {
	mu        sync.Mutex
	responses []string
	next      int
	prompts   []Request
}

// NewScripted builds a scripted client from responses in call order.
func NewScripted(responses ...string) *Scripted {
	return &Scripted{responses: responses}
}

// Generate pops the next canned response. Never errors.
func (s *Scripted) Generate(_ context.Context, req Request) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, req)
	if s.next >= len(s.responses) {
		return "", nil
	}
	out := s.responses[s.next]
	s.next++
	return out, nil
}

// Calls returns how many generations were requested.
func (s *Scripted) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}

// Prompts returns the requests seen so far, in order.
func (s *Scripted) Prompts() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.prompts))
	copy(out, s.prompts)
	return out
}

// #endregion

// #region failing

// Failing always returns Err. Used to exercise the empty-on-failure contract.
type Failing struct {
	Err error
}

// Generate returns the configured error.
func (f *Failing) Generate(context.Context, Request) (string, error) {
	return "", f.Err
}

// #endregion
