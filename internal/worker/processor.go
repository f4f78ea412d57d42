package worker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/diyaj1210/AI-Resume-Optimiser/internal/database"
	"github.com/diyaj1210/AI-Resume-Optimiser/internal/service"
)

// Store is the session metadata the worker reads and updates.
type Store interface {
	GetResumesBySession(ctx context.Context, sessionID uuid.UUID) ([]database.Resume, error)
	UpdateSessionStatus(ctx context.Context, arg database.UpdateSessionStatusParams) error
}

type ObjectStore interface {
	Download(ctx context.Context, key string) ([]byte, error)
}

type Publisher interface {
	Publish(update Update) error
}

type Runner interface {
	Run(ctx context.Context, upload service.Upload, jobDescription string) (*service.Outcome, error)
}

// Processor optimizes every resume of one session.
type Processor struct {
	store     Store
	objects   ObjectStore
	publisher Publisher
	runner    Runner

	attempts  int
	retryWait time.Duration
}

func NewProcessor(store Store, objects ObjectStore, publisher Publisher, runner Runner) *Processor {
	return &Processor{
		store:     store,
		objects:   objects,
		publisher: publisher,
		runner:    runner,
		attempts:  3,
		retryWait: 500 * time.Millisecond,
	}
}

// Process downloads and optimizes each resume of the job's session, publishing
// one update per resume. Failures of a single resume are reported in its
// update and do not stop the others. The session ends "completed" when at
// least one resume was optimized.
func (p *Processor) Process(ctx context.Context, job Job) error {
	p.setStatus(ctx, job.SessionID, StatusProcessing, "optimization started")

	err := p.process(ctx, job)

	// the terminal status must land even when shutdown canceled ctx
	final := context.WithoutCancel(ctx)
	if err != nil {
		p.setStatus(final, job.SessionID, StatusFailed, "optimization failed")
		return err
	}
	p.setStatus(final, job.SessionID, StatusCompleted, "optimization completed")
	return nil
}

func (p *Processor) process(ctx context.Context, job Job) error {
	resumes, err := retry(ctx, p.attempts, p.retryWait, func() ([]database.Resume, error) {
		return p.store.GetResumesBySession(ctx, job.SessionID)
	})
	if err != nil {
		return fmt.Errorf("error getting resumes for session: %v, err: %w", job.SessionID, err)
	}
	if len(resumes) == 0 {
		return fmt.Errorf("no uploaded resumes for session %v", job.SessionID)
	}

	succeeded := 0
	for _, resume := range resumes {
		result := p.optimizeResume(ctx, job, resume)
		if result.Error == "" {
			succeeded++
		}
		p.publish(Update{
			SessionID: job.SessionID,
			Status:    StatusResume,
			Message:   "resume processed",
			Timestamp: time.Now(),
			Resume:    result,
		})
	}

	log.Printf("session id: %s optimized %d/%d resumes", job.SessionID, succeeded, len(resumes))
	if succeeded == 0 {
		return errors.New("no resume could be optimized")
	}
	return nil
}

func (p *Processor) optimizeResume(ctx context.Context, job Job, resume database.Resume) *ResumeResult {
	result := &ResumeResult{ResumeID: resume.ID, Filename: resume.OriginalFilename}

	data, err := retry(ctx, p.attempts, p.retryWait, func() ([]byte, error) {
		return p.objects.Download(ctx, resume.ObjectKey)
	})
	if err != nil {
		log.Printf("Failed to download %s after retries: %v", resume.ObjectKey, err)
		result.Error = fmt.Sprintf("file download error: %v", err)
		return result
	}

	outcome, err := p.runner.Run(ctx, service.Upload{Filename: resume.OriginalFilename, Data: data}, job.JobDescription)
	if err != nil {
		log.Printf("Optimization failed for %s: %v", resume.ObjectKey, err)
		result.Error = service.Message(err)
		return result
	}

	result.DownloadName = outcome.DownloadName
	result.OptimizedResume = outcome.Result.OptimizedText
	result.Explanation = outcome.Result.ExplanationText
	return result
}

func (p *Processor) setStatus(ctx context.Context, sessionID uuid.UUID, status, msg string) {
	err := p.store.UpdateSessionStatus(ctx, database.UpdateSessionStatusParams{
		Status: status,
		ID:     sessionID,
	})
	if err != nil {
		log.Printf("error updating session %s status to %s: %v", sessionID, status, err)
	}
	p.publish(Update{
		SessionID: sessionID,
		Status:    status,
		Message:   msg,
		Timestamp: time.Now(),
	})
}

func (p *Processor) publish(update Update) {
	if err := p.publisher.Publish(update); err != nil {
		log.Println("failed to publish update:", err)
	}
}
