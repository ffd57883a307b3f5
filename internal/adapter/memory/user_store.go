package memory

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/simaogato/finquest-backend/internal/domain"
)

// Listener is notified after every state-changing mutation of a UserStore.
// ok is false once the user has been cleared.
type Listener func(state domain.UserState, ok bool)

type subscription struct {
	id       uint64
	listener Listener
}

type notification struct {
	state domain.UserState
	ok    bool
}

// UserStore implements domain.UserStore as an injectable in-process container.
// Every mutation is applied under one lock, so concurrent callers are applied in
// lock order and never observe a partial update. Notifications are queued in the
// same order and delivered one at a time by whichever caller finds the queue idle.
type UserStore struct {
	mu      sync.RWMutex
	current *domain.UserState

	subsMu sync.Mutex
	subs   []subscription
	nextID uint64

	queueMu  sync.Mutex
	queue    []notification
	draining bool

	log zerolog.Logger
}

var _ domain.UserStore = (*UserStore)(nil)

// NewUserStore creates an empty store (no user loaded)
func NewUserStore(log zerolog.Logger) *UserStore {
	return &UserStore{
		log: log.With().Str("store", "user_memory").Logger(),
	}
}

// Current returns a snapshot of the current user
func (s *UserStore) Current() (domain.UserState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return domain.UserState{}, false
	}
	return s.current.Clone(), true
}

// SetCurrent replaces the whole user state
func (s *UserStore) SetCurrent(state domain.UserState) {
	s.mu.Lock()
	next := state.Clone()
	s.current = &next
	s.enqueue(next.Clone(), true)
	s.mu.Unlock()

	s.log.Debug().Str("user_id", state.ID.String()).Msg("user state replaced")
	s.drain()
}

// Patch shallow-merges the non-nil patch fields; no-op when no user is loaded
func (s *UserStore) Patch(patch domain.UserPatch) {
	if _, err := s.Update(func(user *domain.UserState) error {
		patch.Apply(user)
		return nil
	}); err != nil {
		s.log.Debug().Msg("patch ignored: no user loaded")
	}
}

// Clear unloads the current user
func (s *UserStore) Clear() {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return
	}
	s.current = nil
	s.enqueue(domain.UserState{}, false)
	s.mu.Unlock()

	s.log.Debug().Msg("user state cleared")
	s.drain()
}

// GrantReward adds xpDelta and cashDelta in one update; no-op when no user is loaded
func (s *UserStore) GrantReward(xpDelta int, cashDelta decimal.Decimal) {
	snapshot, err := s.Update(func(user *domain.UserState) error {
		user.XP += xpDelta
		user.Cash = user.Cash.Add(cashDelta)
		return nil
	})
	if err != nil {
		s.log.Debug().Msg("reward ignored: no user loaded")
		return
	}

	s.log.Debug().
		Int("xp_delta", xpDelta).
		Str("cash_delta", cashDelta.String()).
		Int("xp", snapshot.XP).
		Str("cash", snapshot.Cash.String()).
		Msg("reward granted")
}

// AdvanceLesson records the resume index for a category.
// Lower indexes than the recorded one are ignored; no-op when no user is loaded.
func (s *UserStore) AdvanceLesson(category string, index int) {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return
	}
	next := s.current.Clone()
	if !next.AdvanceLesson(category, index) {
		s.mu.Unlock()
		return
	}
	s.current = &next
	s.enqueue(next.Clone(), true)
	s.mu.Unlock()

	s.log.Debug().Str("category", category).Int("index", index).Msg("lesson progress advanced")
	s.drain()
}

// Update runs fn on a working copy of the current user and commits it when fn succeeds.
// Listeners get one notification per committed update.
func (s *UserStore) Update(fn func(user *domain.UserState) error) (domain.UserState, error) {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return domain.UserState{}, domain.ErrNoUser
	}

	next := s.current.Clone()
	if err := fn(&next); err != nil {
		s.mu.Unlock()
		return domain.UserState{}, err
	}
	s.current = &next
	snapshot := next.Clone()
	s.enqueue(snapshot.Clone(), true)
	s.mu.Unlock()

	s.drain()
	return snapshot, nil
}

// Subscribe registers a listener and returns a function that removes it
func (s *UserStore) Subscribe(listener Listener) (unsubscribe func()) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, listener: listener})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subsMu.Lock()
			defer s.subsMu.Unlock()

			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// enqueue must be called with mu held so the queue follows mutation order
func (s *UserStore) enqueue(state domain.UserState, ok bool) {
	s.queueMu.Lock()
	s.queue = append(s.queue, notification{state: state, ok: ok})
	s.queueMu.Unlock()
}

// drain delivers queued notifications outside the state lock so listeners may read or
// mutate the store. A mutation made from inside a listener is delivered after it returns.
func (s *UserStore) drain() {
	s.queueMu.Lock()
	if s.draining {
		s.queueMu.Unlock()
		return
	}
	s.draining = true

	for {
		if len(s.queue) == 0 {
			// Reset under queueMu together with the empty check
			s.draining = false
			s.queueMu.Unlock()
			return
		}
		next := s.queue[0]
		s.queue = s.queue[1:]
		s.queueMu.Unlock()

		s.deliver(next)

		s.queueMu.Lock()
	}
}

func (s *UserStore) deliver(n notification) {
	s.subsMu.Lock()
	subs := append([]subscription(nil), s.subs...)
	s.subsMu.Unlock()

	for _, sub := range subs {
		sub.listener(n.state.Clone(), n.ok)
	}
}
