// Package session binds user commands to generation calls and the
// conversation store.
package session

import (
	"context"

	"go.uber.org/zap"

	"github.com/abhisek/eternal/internal/conversation"
	"github.com/abhisek/eternal/internal/domain"
)

// Generator produces persona profiles and turn replies. It is satisfied by
// *generation.Client.
type Generator interface {
	GenerateProfile(ctx context.Context, targetPerson, language string) (*domain.Profile, error)
	SendTurn(ctx context.Context, message string, history []domain.Message, settings domain.Settings) (*domain.TurnResponse, error)
}

// Controller drives one session. StartSession and SendMessage block until
// their generation call resolves; observers follow progress through
// Subscribe or Snapshot.
type Controller struct {
	gen    Generator
	store  *conversation.Store
	logger *zap.Logger
}

// NewController creates a controller over gen and store. A nil logger
// discards log output.
func NewController(gen Generator, store *conversation.Store, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{gen: gen, store: store, logger: logger.Named("session")}
}

// StartSession validates settings, starts a fresh session and resolves its
// persona profile. Only a *domain.ValidationError is ever returned: profile
// generation failures fall back to domain.FallbackProfile.
func (c *Controller) StartSession(ctx context.Context, settings domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	sessionID := c.store.StartSession(settings)
	log := c.logger.With(zap.String("session_id", sessionID))
	log.Info("session started",
		zap.String("target_person", settings.TargetPerson),
		zap.String("grade", settings.StudentGrade),
		zap.String("language", settings.Language))

	profile, err := c.gen.GenerateProfile(ctx, settings.TargetPerson, settings.Language)
	if err != nil {
		log.Warn("profile generation failed, using fallback", zap.Error(err))
		if !c.store.ProfileFailed(sessionID, domain.FallbackProfile(settings.TargetPerson)) {
			log.Debug("dropped stale profile result")
		}
		return nil
	}

	if !c.store.ProfileReady(sessionID, profile) {
		log.Debug("dropped stale profile result")
	}
	return nil
}

// SendMessage submits text as the student's next message and waits for the
// reply. It returns false without touching state when text is blank, a
// turn is already in flight, or no session is ready.
func (c *Controller) SendMessage(ctx context.Context, text string) bool {
	sub, ok := c.store.Submit(text)
	if !ok {
		return false
	}
	log := c.logger.With(zap.String("session_id", sub.SessionID))

	resp, err := c.gen.SendTurn(ctx, text, sub.Prior, sub.Settings)
	if err != nil {
		log.Warn("turn generation failed", zap.Error(err))
		if !c.store.TurnFailed(sub.SessionID) {
			log.Debug("dropped stale turn result")
		}
		return true
	}

	if !c.store.TurnSucceeded(sub.SessionID, resp) {
		log.Debug("dropped stale turn result")
	}
	return true
}

// Reset asks the presentation layer to reopen setup.
func (c *Controller) Reset() {
	c.logger.Info("session reset")
	c.store.Reset()
}

// Snapshot returns the current session state.
func (c *Controller) Snapshot() conversation.Snapshot {
	return c.store.Snapshot()
}

// Subscribe registers fn to receive every state change.
func (c *Controller) Subscribe(fn func(conversation.Snapshot)) (cancel func()) {
	return c.store.Subscribe(fn)
}
