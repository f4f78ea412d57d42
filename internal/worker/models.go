package worker

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusProcessing = "processing"
	StatusResume     = "resume"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Job is the message body on the optimizations queue.
type Job struct {
	SessionID      uuid.UUID `json:"session_id"`
	UserID         uuid.UUID `json:"user_id"`
	Name           string    `json:"name"`
	JobTitle       string    `json:"job_title"`
	JobDescription string    `json:"job_description"`
}

// Update is published on the session_updates exchange. Optimized text only
// ever travels in these messages; it is not stored.
type Update struct {
	SessionID uuid.UUID     `json:"session_id"`
	Status    string        `json:"status"`
	Message   string        `json:"message"`
	Timestamp time.Time     `json:"timestamp"`
	Resume    *ResumeResult `json:"resume,omitempty"`
}

type ResumeResult struct {
	ResumeID        uuid.UUID `json:"resume_id"`
	Filename        string    `json:"filename"`
	DownloadName    string    `json:"download_name,omitempty"`
	OptimizedResume string    `json:"optimized_resume,omitempty"`
	Explanation     string    `json:"explanation,omitempty"`
	Error           string    `json:"error,omitempty"`
}
