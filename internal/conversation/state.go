package conversation

import (
	"github.com/abhisek/eternal/internal/domain"
)

// Status is the connection state of the current turn.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Phase is the session lifecycle state.
type Phase string

const (
	// PhaseIdle means no session is active; the presentation layer shows setup.
	PhaseIdle Phase = "idle"
	// PhaseProfilePending means a session started and its profile is being generated.
	PhaseProfilePending Phase = "profile_pending"
	// PhaseReady means the profile is resolved and the session accepts input.
	PhaseReady Phase = "ready"
)

// Fixed assistant texts.
const (
	greetingTemplate = "Greetings. I am %s. I sense you come from a distant time. Speak, what brings you to my era?"
	// UnreachableText is appended when a turn fails.
	UnreachableText = "The annals of history are currently unreachable. Please try again."
)

// Snapshot is a self-consistent copy of the session state. It shares no
// memory with the Store.
type Snapshot struct {
	SessionID      string
	Phase          Phase
	Status         Status
	Settings       domain.Settings
	Profile        *domain.Profile
	LatestAnalysis *domain.TurnResponse
	Messages       []domain.Message
}

// Loading reports whether a turn is in flight.
func (s Snapshot) Loading() bool {
	return s.Status == StatusLoading
}
