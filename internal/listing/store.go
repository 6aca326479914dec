package listing

import "sync"

// Store keeps one mutable draft per conversation. Access to a single
// conversation is serialized by a per-conversation lock held for the
// whole read-modify-write, so events apply in acceptance order even
// when a mutation awaits external calls. Different conversations do
// not contend with each other beyond the map lookup.
//
// Abandoned drafts are kept indefinitely; there is no expiry.
type Store struct {
	mu    sync.Mutex
	convs map[int64]*conversation
}

type conversation struct {
	mu    sync.Mutex
	draft Draft
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{convs: make(map[int64]*conversation)}
}

func (s *Store) conversation(id int64) *conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.convs[id]
	if !ok {
		conv = &conversation{}
		s.convs[id] = conv
	}
	return conv
}

// Get returns a snapshot of the conversation's draft, creating an
// empty one if none exists.
func (s *Store) Get(id int64) Draft {
	conv := s.conversation(id)
	conv.mu.Lock()
	defer conv.mu.Unlock()
	return conv.draft.clone()
}

// Reset replaces the conversation's draft with an empty one.
func (s *Store) Reset(id int64) {
	conv := s.conversation(id)
	conv.mu.Lock()
	defer conv.mu.Unlock()
	conv.draft = Draft{}
}

// Mutate runs fn with exclusive access to the conversation's draft.
// An error from fn is returned as-is; mutations made before the error
// are kept, matching in-place draft semantics.
func (s *Store) Mutate(id int64, fn func(*Draft) error) error {
	conv := s.conversation(id)
	conv.mu.Lock()
	defer conv.mu.Unlock()
	return fn(&conv.draft)
}
