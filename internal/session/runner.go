package session

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/YardenLiberman/Su-Chef/internal/classify"
	"github.com/YardenLiberman/Su-Chef/internal/domain"
	"github.com/YardenLiberman/Su-Chef/internal/logger"
	"github.com/YardenLiberman/Su-Chef/internal/speech"
)

// DefaultListenWindow bounds how long a single voice capture runs.
const DefaultListenWindow = 8 * time.Second

// RunnerOption configures the session runner.
type RunnerOption func(*Runner)

// WithListenWindow sets the voice capture window per turn.
func WithListenWindow(d time.Duration) RunnerOption {
	return func(r *Runner) {
		r.listenWindow = d
	}
}

// Runner drives one session over a channel: listen, classify, apply,
// narrate, repeat. It owns the voice-to-console fallback; the state
// machine never learns which channel is in use.
type Runner struct {
	session      *Session
	classifier   *classify.Classifier
	voice        domain.Channel // nil in text mode
	console      domain.Channel
	listenWindow time.Duration
	voiceDown    bool
	log          *logger.Logger
}

// NewRunner wires a runner. voice may be nil; console must not be.
func NewRunner(sess *Session, cls *classify.Classifier, voice, console domain.Channel, log *logger.Logger, opts ...RunnerOption) *Runner {
	r := &Runner{
		session:      sess,
		classifier:   cls,
		voice:        voice,
		console:      console,
		listenWindow: DefaultListenWindow,
		log:          log,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the session loop until the recipe completes, the user
// stops, or the context is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	r.emit(ctx, speech.LineWelcome(r.session.State().Recipe.Name))
	r.emit(ctx, r.session.StepLine())

	for {
		line, err := r.active().Listen(ctx, r.listenWindow)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			switch {
			case errors.Is(err, domain.ErrNoSpeechDetected):
				r.emit(ctx, speech.LineDidNotHear())
				continue
			case errors.Is(err, domain.ErrDeviceUnavailable) && !r.voiceDown && r.voice != nil:
				r.downgrade(err)
				continue
			case errors.Is(err, io.EOF):
				// Input stream closed under us. Wind the session down
				// so the outcome still gets recorded.
				if reply, herr := r.session.HandleIntent(ctx, domain.Intent{Type: domain.IntentStop}); herr == nil {
					r.emit(ctx, reply.Text)
				}
				return nil
			default:
				return err
			}
		}

		intent := r.classifier.Classify(ctx, line)
		reply, err := r.session.HandleIntent(ctx, intent)
		if err != nil {
			return err
		}
		r.emit(ctx, reply.Text)
		if reply.Done {
			return nil
		}
	}
}

// active returns the channel currently in use.
func (r *Runner) active() domain.Channel {
	if r.voice != nil && !r.voiceDown {
		return r.voice
	}
	return r.console
}

// downgrade switches the rest of the session to the console. Logged
// once; voice is never re-attempted within the session.
func (r *Runner) downgrade(reason error) {
	r.voiceDown = true
	r.log.Warn("voice channel unavailable, switching to typed input for the rest of the session: %v", reason)
}

// emit delivers one narration line over the active channel, falling
// back to the console when playback gives out.
func (r *Runner) emit(ctx context.Context, text string) {
	if text == "" {
		return
	}

	ch := r.active()
	err := ch.Speak(ctx, text)
	if err == nil {
		return
	}

	if errors.Is(err, domain.ErrDeviceUnavailable) && ch == r.voice && !r.voiceDown {
		r.downgrade(err)
		if perr := r.console.Speak(ctx, text); perr != nil {
			r.log.Error("narration failed on both channels: %v", perr)
		}
		return
	}
	r.log.Error("narration failed: %v", err)
}

// assistantResolver adapts the assistant's intent classification to
// the classifier, injecting live session context on every call.
type assistantResolver struct {
	assistant domain.Assistant
	sess      *Session
}

// NewResolver builds the classifier's language-model fallback for a
// session. Returns nil when no assistant is available, which leaves
// the classifier keyword-only.
func NewResolver(assistant domain.Assistant, sess *Session) classify.Resolver {
	if assistant == nil {
		return nil
	}
	return &assistantResolver{assistant: assistant, sess: sess}
}

func (a *assistantResolver) Resolve(ctx context.Context, utterance string) (domain.Intent, error) {
	st := a.sess.State()
	return a.assistant.Classify(ctx, utterance, st.Recipe, st.Step)
}
