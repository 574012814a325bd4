package palette

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Store exposes the selectable emoji grid to views.
type Store interface {
	List() []Token
	Contains(token string) bool
}

// MemoryStore implements Store with an in-memory slice.
type MemoryStore struct {
	items []Token
	index map[Token]struct{}
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied tokens.
// Blank entries and repeats are dropped; order is kept.
func NewMemoryStore(items []Token) *MemoryStore {
	s := &MemoryStore{index: make(map[Token]struct{}, len(items))}
	for _, item := range items {
		item = Token(strings.TrimSpace(string(item)))
		if item == "" {
			continue
		}
		if _, dup := s.index[item]; dup {
			continue
		}
		s.index[item] = struct{}{}
		s.items = append(s.items, item)
	}
	return s
}

// List returns the palette in display order.
func (s *MemoryStore) List() []Token {
	return append([]Token(nil), s.items...)
}

// Contains reports whether token is part of the palette.
func (s *MemoryStore) Contains(token string) bool {
	_, ok := s.index[Token(token)]
	return ok
}

type paletteFile struct {
	Emojis []string `yaml:"emojis"`
}

// LoadFile reads a YAML palette of the form:
//
//	emojis: ["😀", "😢"]
func LoadFile(path string) (*MemoryStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read palette file: %w", err)
	}

	var file paletteFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse palette file %s: %w", path, err)
	}
	if len(file.Emojis) == 0 {
		return nil, fmt.Errorf("palette file %s has no emojis", path)
	}

	tokens := make([]Token, 0, len(file.Emojis))
	for _, e := range file.Emojis {
		tokens = append(tokens, Token(e))
	}
	return NewMemoryStore(tokens), nil
}
