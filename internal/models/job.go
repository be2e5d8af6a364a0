package models

import "time"

const (
	JobKindGenerate = "generate"
	JobKindEnhance  = "enhance"
)

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// EditJob is a queued request against the remote image model: either a
// prompt-driven edit or an enhancement pass over an uploaded source.
type EditJob struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	SourceKey  string    `json:"source_key"`
	SourceURL  string    `json:"source_url"`
	SourceMIME string    `json:"source_mime"`
	Prompt     string    `json:"prompt,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	ResultURL  string    `json:"result_url,omitempty"`
	Error      string    `json:"error,omitempty"`
}
