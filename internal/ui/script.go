package ui

import (
	"sync"

	"gitlab.com/tozd/go/errors"
)

// ErrScriptExhausted is returned by ScriptedPrompter when a question has no
// scripted answer left
var ErrScriptExhausted = errors.Base("no scripted answer left")

// ScriptedPrompter answers prompts from fixed lists, in order.
// It drives the interactive workflows without a terminal.
type ScriptedPrompter struct {
	Confirms []bool
	Inputs   []string // an empty entry accepts the default
	Selects  []int    // a negative entry picks the default option
	// Exhausted, if set, is returned instead of ErrScriptExhausted
	Exhausted error

	mu    sync.Mutex
	Asked []string // every prompt message, in order
}

func (s *ScriptedPrompter) record(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Asked = append(s.Asked, message)
}

func (s *ScriptedPrompter) exhausted(message string) error {
	if s.Exhausted != nil {
		return s.Exhausted
	}
	return errors.Errorf("%w: %q", ErrScriptExhausted, message)
}

// Confirm returns the next scripted answer
func (s *ScriptedPrompter) Confirm(message string, defaultYes bool) (bool, error) {
	s.record(message)
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Confirms) == 0 {
		return false, s.exhausted(message)
	}
	answer := s.Confirms[0]
	s.Confirms = s.Confirms[1:]
	return answer, nil
}

// Input returns the next scripted line; an empty entry picks defaultValue
func (s *ScriptedPrompter) Input(message, defaultValue string) (string, error) {
	s.record(message)
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Inputs) == 0 {
		return "", s.exhausted(message)
	}
	answer := s.Inputs[0]
	s.Inputs = s.Inputs[1:]
	if answer == "" {
		return defaultValue, nil
	}
	return answer, nil
}

// Select returns the next scripted index; a negative entry picks defaultOption
func (s *ScriptedPrompter) Select(message string, options []string, defaultOption string) (int, error) {
	s.record(message)
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Selects) == 0 {
		return -1, s.exhausted(message)
	}
	answer := s.Selects[0]
	s.Selects = s.Selects[1:]
	if answer < 0 {
		for i, opt := range options {
			if opt == defaultOption {
				return i, nil
			}
		}
		return 0, nil
	}
	return answer, nil
}
