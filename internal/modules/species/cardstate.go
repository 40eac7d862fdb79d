package species

import "sync"

// CardStates holds whether each viewer has a species card's detail modal
// open. A missing entry means closed. It is safe for concurrent use.
type CardStates struct {
	mu   sync.Mutex
	open map[string]map[string]bool // viewer -> species key -> open
}

// NewCardStates creates an empty container.
func NewCardStates() *CardStates {
	return &CardStates{open: make(map[string]map[string]bool)}
}

// IsOpen reports whether viewer has the card for key open.
func (s *CardStates) IsOpen(viewer, key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open[viewer][key]
}

// Toggle flips the viewer's flag for key and returns the new value.
func (s *CardStates) Toggle(viewer, key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards := s.open[viewer]
	if cards[key] {
		delete(cards, key)
		if len(cards) == 0 {
			delete(s.open, viewer)
		}
		return false
	}
	if cards == nil {
		cards = make(map[string]bool)
		s.open[viewer] = cards
	}
	cards[key] = true
	return true
}

// Reset closes the card for key for every viewer.
func (s *CardStates) Reset(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for viewer, cards := range s.open {
		delete(cards, key)
		if len(cards) == 0 {
			delete(s.open, viewer)
		}
	}
}
