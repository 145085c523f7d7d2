package reconcile

import (
	"sync"
	"time"
)

// Inputs identifies what a Result was computed from.
type Inputs struct {
	DBPath   string `json:"db_path"`
	TableURL string `json:"table_url"`
}

// Session keeps the last successful Result together with its Inputs.
//
// A stored Result is only handed out for the exact Inputs it was computed from, so
// editing either input between "find" and "build" forces a new find.
type Session struct {
	mu     sync.RWMutex
	result *Result
	inputs Inputs
	symbol string
	built  time.Time
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{}
}

// Store records the result of a successful reconciliation.
func (s *Session) Store(in Inputs, symbol string, r *Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = r
	s.inputs = in
	s.symbol = symbol
	s.built = time.Now()
}

// Invalidate drops any stored result.
func (s *Session) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = nil
	s.inputs = Inputs{}
	s.symbol = ""
	s.built = time.Time{}
}

// Result returns the stored result if it was computed from current.
func (s *Session) Result(current Inputs) (*Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.result == nil || s.inputs != current {
		return nil, false
	}
	return s.result, true
}

// Snapshot describes the session's stored state.
type Snapshot struct {
	Valid   bool      `json:"valid"`
	Inputs  Inputs    `json:"inputs"`
	Symbol  string    `json:"symbol,omitempty"`
	Folders int       `json:"folders"`
	Missing int       `json:"missing"`
	BuiltAt time.Time `json:"built_at,omitzero"`
}

// Snapshot returns a copy of the stored state for display.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.result == nil {
		return Snapshot{}
	}
	return Snapshot{
		Valid:   true,
		Inputs:  s.inputs,
		Symbol:  s.symbol,
		Folders: len(s.result.SelectedFolders),
		Missing: len(s.result.Missing),
		BuiltAt: s.built,
	}
}
