// Package session holds the guided-cooking state machine and the loop
// that drives it. The machine itself is pure: it consumes intents and
// returns narration, leaving all channel concerns to the Runner.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/YardenLiberman/Su-Chef/internal/domain"
	"github.com/YardenLiberman/Su-Chef/internal/logger"
	"github.com/YardenLiberman/Su-Chef/internal/speech"
)

// Reply is the session's reaction to one intent: what to say, and
// whether the session just ended.
type Reply struct {
	Text string
	Done bool
}

// Session walks a user through one recipe, step by step. It is not
// safe for concurrent use; one goroutine drives it.
type Session struct {
	state     domain.SessionState
	store     domain.RecipeStore
	assistant domain.Assistant // nil when the assistant is offline
	log       *logger.Logger
}

// New starts a session at the first step of the recipe. The store may
// be nil for recipes that were never saved.
func New(recipe *domain.Recipe, store domain.RecipeStore, assistant domain.Assistant, log *logger.Logger) *Session {
	s := &Session{
		state: domain.SessionState{
			ID:        uuid.NewString(),
			Recipe:    recipe,
			Step:      0,
			Status:    domain.SessionActive,
			StartedAt: time.Now(),
		},
		store:     store,
		assistant: assistant,
		log:       log,
	}
	log.Info("session %s: cooking %q (%d steps)", s.state.ID, recipe.Name, len(recipe.Steps))
	return s
}

// State returns a snapshot of the session.
func (s *Session) State() domain.SessionState { return s.state }

// StepLine is the narration for the current step. Arrival and repeat
// both go through here so the wording never drifts.
func (s *Session) StepLine() string {
	if len(s.state.Recipe.Steps) == 0 {
		return speech.LineCompleted()
	}
	return speech.LineStep(s.state.Step+1, len(s.state.Recipe.Steps), s.state.Recipe.Steps[s.state.Step])
}

// HandleIntent applies one user intent to the session and returns the
// narration to deliver. Once the session has reached a terminal
// status every further call returns domain.ErrSessionNotActive.
func (s *Session) HandleIntent(ctx context.Context, intent domain.Intent) (Reply, error) {
	if s.state.Status.Terminal() {
		return Reply{}, domain.ErrSessionNotActive
	}

	switch intent.Type {
	case domain.IntentNext:
		if s.state.Step+1 >= len(s.state.Recipe.Steps) {
			return s.finish(ctx, domain.SessionCompleted, speech.LineCompleted()), nil
		}
		s.state.Step++
		return Reply{Text: s.StepLine()}, nil

	case domain.IntentRepeat:
		return Reply{Text: s.StepLine()}, nil

	case domain.IntentIngredients:
		return Reply{Text: speech.LineIngredients(s.state.Recipe.Name, s.state.Recipe.Ingredients)}, nil

	case domain.IntentHelp:
		if s.assistant == nil {
			return Reply{Text: speech.LineAssistantDisabled()}, nil
		}
		tip, err := s.assistant.StepTip(ctx, s.state.Recipe, s.state.Step)
		if err != nil {
			s.log.Warn("session %s: step tip failed: %v", s.state.ID, err)
			return Reply{Text: speech.LineAssistantSorry()}, nil
		}
		return Reply{Text: tip}, nil

	case domain.IntentQuestion:
		if s.assistant == nil {
			return Reply{Text: speech.LineAssistantDisabled()}, nil
		}
		answer, err := s.assistant.Answer(ctx, intent.Payload, s.state.Recipe, s.state.Step)
		if err != nil {
			s.log.Warn("session %s: question failed: %v", s.state.ID, err)
			return Reply{Text: speech.LineAssistantSorry()}, nil
		}
		return Reply{Text: answer}, nil

	case domain.IntentStop:
		return s.finish(ctx, domain.SessionAborted, speech.LineAborted()), nil

	default:
		return Reply{Text: speech.LineUnknown()}, nil
	}
}

// finish moves the session to a terminal status and records the
// outcome. The store write happens exactly once; a failing store is
// logged, never fatal.
func (s *Session) finish(ctx context.Context, status domain.SessionStatus, text string) Reply {
	s.state.Status = status
	s.log.Info("session %s: %s at step %d/%d", s.state.ID, status, s.state.Step+1, len(s.state.Recipe.Steps))

	if s.store != nil && s.state.Recipe.ID != 0 {
		completed := status == domain.SessionCompleted
		if err := s.store.RecordOutcome(ctx, s.state.ID, s.state.Recipe.ID, completed); err != nil {
			s.log.Error("session %s: recording outcome: %v", s.state.ID, err)
		}
	}

	return Reply{Text: text, Done: true}
}
