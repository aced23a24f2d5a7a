package label

import (
	"time"

	"github.com/techlabel/backend/internal/domain/shared"
)

// PrintJob represents one label print request moving through the
// render, backup and print pipeline.
type PrintJob struct {
	shared.BaseEntity
	Kind         Kind
	Status       JobStatus
	BackupFile   string
	Width        int
	Height       int
	ErrorMessage string
	PrintedAt    *time.Time
}

// NewPrintJob creates a new pending print job for the given label kind
func NewPrintJob(kind Kind) (*PrintJob, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Unknown label kind: "+kind.String())
	}
	return &PrintJob{
		BaseEntity: shared.NewBaseEntity(),
		Kind:       kind,
		Status:     JobStatusPending,
	}, nil
}

// StartRendering marks the job as rendering
func (j *PrintJob) StartRendering() error {
	if !j.Status.CanTransitionTo(JobStatusRendering) {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot start rendering from status: "+j.Status.String())
	}
	j.Status = JobStatusRendering
	j.Touch()
	return nil
}

// StartPrinting records the rendered raster dimensions and the backup
// file, then marks the job as printing.
func (j *PrintJob) StartPrinting(backupFile string, width, height int) error {
	if !j.Status.CanTransitionTo(JobStatusPrinting) {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot start printing from status: "+j.Status.String())
	}
	if width < 1 || height < 1 {
		return shared.NewDomainError("INVALID_RASTER", "Raster dimensions must be positive")
	}
	j.Status = JobStatusPrinting
	j.BackupFile = backupFile
	j.Width = width
	j.Height = height
	j.Touch()
	return nil
}

// Complete marks the job as completed
func (j *PrintJob) Complete() error {
	if !j.Status.CanTransitionTo(JobStatusCompleted) {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot complete from status: "+j.Status.String())
	}
	now := time.Now()
	j.Status = JobStatusCompleted
	j.PrintedAt = &now
	j.UpdatedAt = now
	return nil
}

// Fail marks the job as failed with an error message. The backup file
// recorded before the failure is kept so the render is not lost.
func (j *PrintJob) Fail(errorMessage string) error {
	if j.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot fail a job that is already in terminal status: "+j.Status.String())
	}
	j.Status = JobStatusFailed
	j.ErrorMessage = errorMessage
	j.Touch()
	return nil
}

// IsCompleted returns true if the job is completed
func (j *PrintJob) IsCompleted() bool {
	return j.Status == JobStatusCompleted
}

// IsFailed returns true if the job failed
func (j *PrintJob) IsFailed() bool {
	return j.Status == JobStatusFailed
}
