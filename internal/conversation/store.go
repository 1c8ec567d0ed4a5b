// Package conversation holds the in-memory session state and the
// transitions applied to it by the session controller.
package conversation

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/abhisek/eternal/internal/domain"
)

// Store is the single source of truth for one session. Every transition
// runs under the mutex; subscribers are notified after it is released.
type Store struct {
	mu sync.Mutex

	sessionID      string
	phase          Phase
	status         Status
	settings       domain.Settings
	profile        *domain.Profile
	latestAnalysis *domain.TurnResponse
	messages       []domain.Message

	subMu  sync.Mutex
	subs   map[int]func(Snapshot)
	nextID int
}

// NewStore returns an idle store with default settings.
func NewStore() *Store {
	return &Store{
		phase:    PhaseIdle,
		status:   StatusIdle,
		settings: domain.DefaultSettings(),
		subs:     make(map[int]func(Snapshot)),
	}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		SessionID:      s.sessionID,
		Phase:          s.phase,
		Status:         s.status,
		Settings:       s.settings,
		Profile:        s.profile.Clone(),
		LatestAnalysis: s.latestAnalysis.Clone(),
		Messages:       slices.Clone(s.messages),
	}
}

// Subscribe registers fn to receive a snapshot after every transition.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) (cancel func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

// mutate applies fn under the lock and, if it changed anything, notifies
// subscribers with the resulting snapshot.
func (s *Store) mutate(fn func() bool) bool {
	s.mu.Lock()
	changed := fn()
	var snap Snapshot
	if changed {
		snap = s.snapshotLocked()
	}
	s.mu.Unlock()

	if changed {
		s.notify(snap)
	}
	return changed
}

func (s *Store) notify(snap Snapshot) {
	s.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// StartSession replaces the settings, clears all session data and marks the
// profile as pending. It returns the new session's ID.
func (s *Store) StartSession(settings domain.Settings) string {
	id := uuid.NewString()
	s.mutate(func() bool {
		s.sessionID = id
		s.phase = PhaseProfilePending
		s.status = StatusIdle
		s.settings = settings
		s.profile = nil
		s.latestAnalysis = nil
		s.messages = nil
		return true
	})
	return id
}

// ProfileReady records a generated profile and seeds the greeting. Results
// for a session other than the current one are dropped.
func (s *Store) ProfileReady(sessionID string, profile *domain.Profile) bool {
	return s.mutate(func() bool {
		if !s.pendingLocked(sessionID) {
			return false
		}
		s.profile = profile.Clone()
		s.phase = PhaseReady
		s.messages = append(s.messages,
			domain.NewMessage(domain.RoleAssistant, fmt.Sprintf(greetingTemplate, profile.Name)))
		return true
	})
}

// ProfileFailed records the fallback profile without a greeting.
func (s *Store) ProfileFailed(sessionID string, fallback *domain.Profile) bool {
	return s.mutate(func() bool {
		if !s.pendingLocked(sessionID) {
			return false
		}
		s.profile = fallback.Clone()
		s.phase = PhaseReady
		return true
	})
}

func (s *Store) pendingLocked(sessionID string) bool {
	return sessionID == s.sessionID && s.phase == PhaseProfilePending
}

// AppendUserMessage appends a user message. It is a no-op when the trimmed
// content is empty or a turn is in flight.
func (s *Store) AppendUserMessage(content string) bool {
	return s.mutate(func() bool {
		if strings.TrimSpace(content) == "" || s.status == StatusLoading {
			return false
		}
		s.messages = append(s.messages, domain.NewMessage(domain.RoleUser, content))
		return true
	})
}

// BeginTurn marks a turn as in flight. It returns false if one already is.
func (s *Store) BeginTurn() bool {
	return s.mutate(func() bool {
		if s.status == StatusLoading {
			return false
		}
		s.status = StatusLoading
		return true
	})
}

// Submission is what a turn request needs, captured in the same step that
// appended the student's message.
type Submission struct {
	SessionID string
	// Prior is the history as it was before the new message.
	Prior    []domain.Message
	Settings domain.Settings
}

// Submit is the user-submit action: it checks every guard, captures the
// session ID, settings and prior history, appends the message and begins
// the turn, all in one step. ok is false when nothing changed.
func (s *Store) Submit(content string) (sub Submission, ok bool) {
	s.mutate(func() bool {
		if strings.TrimSpace(content) == "" || s.status == StatusLoading || s.phase != PhaseReady {
			return false
		}
		sub = Submission{
			SessionID: s.sessionID,
			Prior:     slices.Clone(s.messages),
			Settings:  s.settings,
		}
		s.messages = append(s.messages, domain.NewMessage(domain.RoleUser, content))
		s.status = StatusLoading
		ok = true
		return true
	})
	return sub, ok
}

// TurnSucceeded appends the reply and records the response as the latest
// analysis.
func (s *Store) TurnSucceeded(sessionID string, resp *domain.TurnResponse) bool {
	return s.mutate(func() bool {
		if !s.inFlightLocked(sessionID) {
			return false
		}
		s.messages = append(s.messages, domain.NewMessage(domain.RoleAssistant, resp.Reply))
		s.latestAnalysis = resp.Clone()
		s.status = StatusSuccess
		return true
	})
}

// TurnFailed appends the unreachable notice. The latest analysis is kept.
func (s *Store) TurnFailed(sessionID string) bool {
	return s.mutate(func() bool {
		if !s.inFlightLocked(sessionID) {
			return false
		}
		s.messages = append(s.messages, domain.NewMessage(domain.RoleAssistant, UnreachableText))
		s.status = StatusError
		return true
	})
}

func (s *Store) inFlightLocked(sessionID string) bool {
	return sessionID == s.sessionID && s.status == StatusLoading
}

// Reset asks the presentation layer to reopen setup. Session data stays
// until the next StartSession.
func (s *Store) Reset() {
	s.mutate(func() bool {
		s.phase = PhaseIdle
		return true
	})
}
