package domain

import (
	"time"
)

// RunReport records what a single pipeline run did: which files fed it, how
// many rows each stage admitted or rejected, and how long the run took.
// It is serialized alongside the CSV outputs for audit purposes.
type RunReport struct {
	RunID       string    `json:"run_id" validate:"required,uuid"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
	SourceFiles []string  `json:"source_files"`

	RowsLoaded   int `json:"rows_loaded" validate:"min=0"`
	RowsDropped  int `json:"rows_dropped" validate:"min=0"`
	RowsImputed  int `json:"rows_imputed" validate:"min=0"`
	RowsRetained int `json:"rows_retained" validate:"min=0"`

	ProcessingTime int64  `json:"processing_time_ms"` // milliseconds
	Status         string `json:"status" validate:"required,oneof=completed failed"`
	ErrorMessage   string `json:"error_message,omitempty"`
}
