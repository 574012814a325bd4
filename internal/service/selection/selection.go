package selection

import "sync"

// Selection is the ordered set of emoji currently picked on the entry screen.
type Selection struct {
	mu     sync.RWMutex
	tokens []string
}

// New returns an empty selection.
func New() *Selection {
	return &Selection{}
}

// Toggle adds token if absent and removes it otherwise. It reports whether token is now selected.
func (s *Selection) Toggle(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.tokens {
		if existing == token {
			s.tokens = append(s.tokens[:i:i], s.tokens[i+1:]...)
			return false
		}
	}
	s.tokens = append(s.tokens, token)
	return true
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.mu.Lock()
	s.tokens = nil
	s.mu.Unlock()
}

// Tokens returns the selected tokens in insertion order.
func (s *Selection) Tokens() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.tokens))
	copy(out, s.tokens)
	return out
}

func (s *Selection) Contains(token string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, existing := range s.tokens {
		if existing == token {
			return true
		}
	}
	return false
}

func (s *Selection) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tokens)
}

func (s *Selection) Empty() bool {
	return s.Len() == 0
}
