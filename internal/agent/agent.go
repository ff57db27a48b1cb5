// Package agent is the AI side of a cooking session: answering
// questions, offering step tips, and classifying utterances the
// keyword parser couldn't place.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/YardenLiberman/Su-Chef/internal/domain"
	"github.com/YardenLiberman/Su-Chef/internal/logger"
)

// chatCompleter is the slice of the OpenAI client the agent needs.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Option configures the agent.
type Option func(*Agent)

// WithModel overrides the completion model.
func WithModel(model string) Option {
	return func(a *Agent) {
		a.model = model
	}
}

// Agent implements domain.Assistant on the OpenAI chat API.
type Agent struct {
	client chatCompleter
	model  string
	log    *logger.Logger
}

var _ domain.Assistant = (*Agent)(nil)

// New creates a cooking agent.
func New(client chatCompleter, log *logger.Logger, opts ...Option) *Agent {
	a := &Agent{
		client: client,
		model:  openai.GPT4oMini,
		log:    log,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Answer sends a free-form question to the model together with the
// cooking context and returns a spoken-ready answer.
func (a *Agent) Answer(ctx context.Context, question string, r *domain.Recipe, step int) (string, error) {
	reply, err := a.chat(ctx, PromptQuestion, question, r, step)
	if err != nil {
		return "", err
	}
	a.log.Debug("agent: answered %q (%d chars)", truncate(question, 40), len(reply))
	return reply, nil
}

// StepTip asks the model for one practical tip for the current step.
func (a *Agent) StepTip(ctx context.Context, r *domain.Recipe, step int) (string, error) {
	return a.chat(ctx, PromptTip, "Give me a tip for the step I'm on.", r, step)
}

// classifyResponse is the JSON the model returns for intent
// classification.
type classifyResponse struct {
	Intent  string `json:"intent"`
	Payload string `json:"payload"`
}

// Classify sends unrecognised user input to the model for intent
// classification. Unparseable replies come back as IntentUnrecognized
// rather than an error.
func (a *Agent) Classify(ctx context.Context, utterance string, r *domain.Recipe, step int) (domain.Intent, error) {
	raw, err := a.chat(ctx, PromptClassify, utterance, r, step)
	if err != nil {
		return domain.Intent{}, err
	}

	raw = stripCodeFence(raw)

	var resp classifyResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		a.log.Error("agent: failed to parse classify JSON: %v\nraw: %s", err, raw)
		return domain.Intent{Type: domain.IntentUnrecognized, Payload: utterance}, nil
	}

	intentType := domain.IntentFromString(resp.Intent)
	a.log.Debug("agent: classified %q -> %s (payload=%q)", utterance, intentType, resp.Payload)

	payload := resp.Payload
	if payload == "" {
		payload = utterance
	}
	return domain.Intent{Type: intentType, Payload: payload}, nil
}

// chat runs one completion with the cooking context injected.
func (a *Agent) chat(ctx context.Context, systemPrompt, userQuery string, r *domain.Recipe, step int) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
	}

	if ctxBlock := buildContext(r, step); ctxBlock != "" {
		messages = append(messages,
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: ctxBlock},
			// Fake an ack so the model treats context as established.
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: "Got it, I have the context."},
		)
	}

	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: userQuery})

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Temperature: 0.5,
		Messages:    messages,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// buildContext serializes the recipe and progress into a plain-text
// block the model can reason over.
func buildContext(r *domain.Recipe, step int) string {
	if r == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("[Current Recipe Context]\n")
	fmt.Fprintf(&b, "Recipe: %s\n", r.Name)
	if r.MealType != "" {
		fmt.Fprintf(&b, "Meal: %s\n", r.MealType)
	}
	if r.CookingTime > 0 {
		fmt.Fprintf(&b, "Total time: %d minutes\n", r.CookingTime)
	}
	if len(r.DietaryTags) > 0 {
		fmt.Fprintf(&b, "Dietary: %s\n", strings.Join(r.DietaryTags, ", "))
	}

	b.WriteString("\nIngredients:\n")
	for _, ing := range r.Ingredients {
		fmt.Fprintf(&b, "- %s\n", ing.String())
	}

	b.WriteString("\nSteps:\n")
	for i, instruction := range r.Steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, instruction)
	}

	if step >= 0 && step < len(r.Steps) {
		fmt.Fprintf(&b, "\n[Progress]\nThe user is on step %d of %d: %s\n", step+1, len(r.Steps), r.Steps[step])
	}
	return b.String()
}

// stripCodeFence removes ```json ... ``` wrappers that LLMs love to add.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		// Remove opening fence line.
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		// Remove closing fence.
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
	}
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
