package server

// OptimizeResponse is the optimized resume and the explanation of the changes.
type OptimizeResponse struct {
	OptimizedResume string `json:"optimized_resume"`
	Explanation     string `json:"explanation"`
	DownloadName    string `json:"download_name"`
	SourceSizeBytes int64  `json:"source_size_bytes"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Details string `json:"details,omitempty"`

	// set only when the model failed, both hold the error text
	OptimizedResume string `json:"optimized_resume,omitempty"`
	Explanation     string `json:"explanation,omitempty"`
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

type SampleResponse struct {
	JobDescription string `json:"job_description"`
}
