package optimizer

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"
)

const agentName = "resume optimizer"

// AgentGenerator runs each prompt through an ADK llm agent. Every call gets
// its own session, deleted afterwards, so no conversation state leaks between
// pipeline steps or requests.
type AgentGenerator struct {
	runner   *runner.Runner
	sessions session.Service
	appName  string
}

// NewAgentGenerator fails with ErrMissingCredential before creating a model
// when no API key is configured.
func NewAgentGenerator(ctx context.Context, cfg GeminiConfig) (*AgentGenerator, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingCredential
	}

	model, err := gemini.NewModel(ctx, cfg.model(), &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create model: %v", err)
	}

	optimizerAgent, err := llmagent.New(llmagent.Config{
		Name:        agentName,
		Model:       model,
		Description: "Optimize resumes for a job description",
		Instruction: agentInstruction(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %v", err)
	}

	sessions := session.InMemoryService()
	r, err := runner.New(runner.Config{
		AppName:        optimizerAgent.Name(),
		Agent:          optimizerAgent,
		SessionService: sessions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create runner: %w", err)
	}

	return &AgentGenerator{runner: r, sessions: sessions, appName: optimizerAgent.Name()}, nil
}

func (g *AgentGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	created, err := g.sessions.Create(ctx, &session.CreateRequest{
		AppName:   g.appName,
		UserID:    "optimizer",
		SessionID: uuid.NewString(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	sess := created.Session
	defer func() {
		err := g.sessions.Delete(context.Background(), &session.DeleteRequest{
			AppName:   sess.AppName(),
			UserID:    sess.UserID(),
			SessionID: sess.ID(),
		})
		if err != nil {
			log.Printf("[Agent] failed to delete session %s: %v", sess.ID(), err)
		}
	}()

	stream := g.runner.Run(ctx, sess.UserID(), sess.ID(), &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			{Text: prompt},
		},
	}, agent.RunConfig{})

	var output string
	for event, err := range stream {
		if err != nil {
			return "", err
		}
		if event != nil && event.IsFinalResponse() {
			output = contentText(event.Content)
		}
	}
	return output, nil
}

// contentText joins the text parts of c, skipping thoughts.
func contentText(c *genai.Content) string {
	if c == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range c.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}
