// Package classify maps free-form utterances onto the fixed session
// command vocabulary.
package classify

import (
	"context"
	"regexp"
	"strings"

	"github.com/YardenLiberman/Su-Chef/internal/domain"
	"github.com/YardenLiberman/Su-Chef/internal/logger"
)

// Resolver is the language-model fallback for utterances the keyword
// table can't place. Implementations are expected to map the utterance
// onto one of the known intents or return IntentQuestion/IntentUnrecognized.
type Resolver interface {
	Resolve(ctx context.Context, utterance string) (domain.Intent, error)
}

// Classifier turns one utterance into one Intent. Keyword matching runs
// first; only unmatched non-empty input reaches the resolver. A nil
// resolver is fine — unmatched input then becomes a Question carrying
// the literal text.
type Classifier struct {
	log      *logger.Logger
	resolver Resolver
	patterns []patternRule
}

type patternRule struct {
	regex  *regexp.Regexp
	intent domain.IntentType
}

// New creates a keyword-first classifier. resolver may be nil.
func New(log *logger.Logger, resolver Resolver) *Classifier {
	c := &Classifier{log: log, resolver: resolver}
	// Keyword matching is substring-based with word boundaries so
	// filler words don't get in the way: "please go to the next step"
	// matches next, but "dice an onion" matches nothing.
	c.patterns = []patternRule{
		{regexp.MustCompile(`(?i)\b(next|continue)\b`), domain.IntentNext},
		{regexp.MustCompile(`(?i)\b(repeat|again)\b`), domain.IntentRepeat},
		{regexp.MustCompile(`(?i)\bingredients?\b`), domain.IntentIngredients},
		{regexp.MustCompile(`(?i)\b(help|tips?)\b`), domain.IntentHelp},
		{regexp.MustCompile(`(?i)\b(stop|quit|exit)\b`), domain.IntentStop},
	}
	return c
}

// Classify converts an utterance into an intent.
func (c *Classifier) Classify(ctx context.Context, utterance string) domain.Intent {
	trimmed := strings.TrimSpace(utterance)
	if trimmed == "" {
		return domain.Intent{Type: domain.IntentUnrecognized}
	}

	c.log.Debug("classifying: %q", trimmed)

	for _, rule := range c.patterns {
		if rule.regex.MatchString(trimmed) {
			c.log.Debug("keyword match: %s", rule.intent)
			return domain.Intent{Type: rule.intent}
		}
	}

	// No keyword matched. Ask the language model what the user meant;
	// a failed call is surfaced as Unrecognized, never retried here.
	if c.resolver != nil {
		intent, err := c.resolver.Resolve(ctx, trimmed)
		if err != nil {
			c.log.Warn("fallback classification failed: %v", err)
			return domain.Intent{Type: domain.IntentUnrecognized, Payload: trimmed}
		}
		if intent.Type != domain.IntentQuestion && intent.Type != domain.IntentUnrecognized {
			c.log.Debug("fallback classified %q -> %s", trimmed, intent.Type)
			return intent
		}
	}

	// Anything else is treated as a question for the assistant,
	// carrying the literal text for downstream answering.
	return domain.Intent{Type: domain.IntentQuestion, Payload: trimmed}
}
