// Package optimizer rewrites resume text for a job description through three
// prompts: keyword extraction, resume rewrite and change explanation.
package optimizer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"
)

var (
	ErrGenerationFailure = errors.New("text generation failed")
	ErrEmptyResponse     = errors.New("empty response from model")
)

// Step names one of the three pipeline calls.
type Step string

const (
	StepKeywords    Step = "keyword extraction"
	StepRewrite     Step = "resume rewrite"
	StepExplanation Step = "explanation"
)

// GenerationError reports the step whose call failed. It matches
// ErrGenerationFailure with errors.Is.
type GenerationError struct {
	Step Step
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

func (e *GenerationError) Is(target error) bool { return target == ErrGenerationFailure }

// Result is the rewritten resume and the explanation of what changed.
type Result struct {
	OptimizedText   string
	ExplanationText string
}

// Pipeline runs the three prompts against a Generator.
type Pipeline struct {
	gen        Generator
	concurrent bool
}

type Option func(*Pipeline)

// WithConcurrentFollowups runs the rewrite and explanation calls in parallel
// once keywords are known. Neither reads the other's output.
func WithConcurrentFollowups() Option {
	return func(p *Pipeline) { p.concurrent = true }
}

func New(gen Generator, opts ...Option) *Pipeline {
	p := &Pipeline{gen: gen}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Optimize extracts keywords from the job description, then rewrites the
// resume and explains the changes.
//
// On failure the returned Result is still non-nil: both fields carry the same
// error message. The error matches ErrGenerationFailure.
func (p *Pipeline) Optimize(ctx context.Context, rawText, jobDescription string) (*Result, error) {
	res, err := p.run(ctx, rawText, jobDescription)
	if err != nil {
		log.Printf("[Optimizer] pipeline aborted: %v", err)
		msg := FailureMessage(err)
		return &Result{OptimizedText: msg, ExplanationText: msg}, err
	}
	return res, nil
}

// FailureMessage is the text both Result fields carry when Optimize fails.
func FailureMessage(err error) string {
	return "Error during optimization: " + err.Error()
}

func (p *Pipeline) run(ctx context.Context, rawText, jobDescription string) (*Result, error) {
	keywords, err := p.call(ctx, StepKeywords, keywordPrompt(jobDescription))
	if err != nil {
		return nil, err
	}

	res := &Result{}
	rewrite := func(ctx context.Context) error {
		text, err := p.call(ctx, StepRewrite, rewritePrompt(rawText, jobDescription, keywords))
		res.OptimizedText = text
		return err
	}
	explain := func(ctx context.Context) error {
		text, err := p.call(ctx, StepExplanation, explanationPrompt(keywords))
		res.ExplanationText = text
		return err
	}

	if p.concurrent {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return rewrite(gctx) })
		g.Go(func() error { return explain(gctx) })
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return res, nil
	}

	if err := rewrite(ctx); err != nil {
		return nil, err
	}
	if err := explain(ctx); err != nil {
		return nil, err
	}
	return res, nil
}

func (p *Pipeline) call(ctx context.Context, step Step, prompt string) (string, error) {
	out, err := p.gen.Generate(ctx, prompt)
	if err != nil {
		return "", &GenerationError{Step: step, Err: err}
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", &GenerationError{Step: step, Err: ErrEmptyResponse}
	}
	return out, nil
}
