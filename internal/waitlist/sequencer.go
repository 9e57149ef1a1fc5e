package waitlist

import "sync"

// Kind groups requests whose responses supersede one another.
type Kind int

const (
	KindLookup Kind = iota
	KindRoster
)

// Sequencer hands out increasing numbers per Kind so that only the response
// to the most recently issued request of a kind is applied.
type Sequencer struct {
	mu   sync.Mutex
	last map[Kind]uint64
}

// Next issues a new sequence number for kind. Any earlier number of the same
// kind becomes stale.
func (s *Sequencer) Next(kind Kind) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		s.last = make(map[Kind]uint64)
	}
	s.last[kind]++
	return s.last[kind]
}

// IsLatest reports whether seq is still the newest number for kind.
func (s *Sequencer) IsLatest(kind Kind, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last[kind] == seq
}
