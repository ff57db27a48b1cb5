package speech

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/YardenLiberman/Su-Chef/internal/domain"
	"github.com/YardenLiberman/Su-Chef/internal/logger"
)

// Voice is the spoken channel: microphone capture plus Azure STT on
// the way in, Azure TTS plus local playback on the way out. Audio
// failures surface as domain.ErrDeviceUnavailable so the caller can
// fall back to the console.
type Voice struct {
	synth  *Synthesizer
	rec    *Recognizer
	mic    *Recorder
	player *Player
	cache  *AudioCache
	echo   io.Writer // narration is printed here before playback
	log    *logger.Logger
}

var _ domain.Channel = (*Voice)(nil)

// NewVoice assembles the spoken channel from its parts.
func NewVoice(synth *Synthesizer, rec *Recognizer, mic *Recorder, player *Player, cache *AudioCache, echo io.Writer, log *logger.Logger) *Voice {
	return &Voice{
		synth:  synth,
		rec:    rec,
		mic:    mic,
		player: player,
		cache:  cache,
		echo:   echo,
		log:    log,
	}
}

// Listen records one utterance window and transcribes it.
func (v *Voice) Listen(ctx context.Context, timeout time.Duration) (string, error) {
	wav, err := v.mic.Record(ctx, timeout)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: %v", domain.ErrDeviceUnavailable, err)
	}

	text, err := v.rec.Recognize(ctx, wav)
	if err != nil {
		if errors.Is(err, domain.ErrNoSpeechDetected) {
			return "", err
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: %v", domain.ErrDeviceUnavailable, err)
	}

	v.log.Info("heard: %s", text)
	return text, nil
}

// Speak synthesizes and plays the text, echoing it to the console so
// the user can read along. Playback blocks until the line finishes.
func (v *Voice) Speak(ctx context.Context, text string) error {
	if v.echo != nil {
		fmt.Fprintln(v.echo, text)
	}

	audio, ok := v.cache.Get(text)
	if !ok {
		var err error
		audio, err = v.synth.Synthesize(ctx, text)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("%w: %v", domain.ErrDeviceUnavailable, err)
		}
		v.cache.Put(text, audio)
	}

	if err := v.player.Play(audio); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDeviceUnavailable, err)
	}
	return nil
}

// Warmup pre-synthesizes the canned lines so the first playback of
// each is instant. Failures are logged and ignored.
func (v *Voice) Warmup(ctx context.Context) {
	lines := []string{
		LineUnknown(),
		LineDidNotHear(),
		LineAssistantSorry(),
		LineCompleted(),
		LineAborted(),
		LineBye(),
	}
	for _, line := range lines {
		if _, ok := v.cache.Get(line); ok {
			continue
		}
		audio, err := v.synth.Synthesize(ctx, line)
		if err != nil {
			v.log.Warn("warmup: synthesis failed: %v", err)
			return
		}
		v.cache.Put(line, audio)
	}
	v.log.Debug("warmup: %d lines cached", v.cache.Len())
}

// Close releases the microphone and logs cache effectiveness.
func (v *Voice) Close() {
	v.mic.Close()
	hits, misses := v.cache.Stats()
	v.log.Debug("voice channel closed (cache hits=%d misses=%d)", hits, misses)
}
