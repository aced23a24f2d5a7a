package models

import (
	"time"

	"github.com/techlabel/backend/internal/domain/label"
)

// PrintJobModel is the GORM model for the print_jobs table
type PrintJobModel struct {
	BaseModel
	Kind         string     `gorm:"type:varchar(20);not null;index"`
	Status       string     `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	BackupFile   string     `gorm:"column:backup_file;type:text"`
	Width        int        `gorm:"not null;default:0"`
	Height       int        `gorm:"not null;default:0"`
	ErrorMessage string     `gorm:"column:error_message;type:text"`
	PrintedAt    *time.Time `gorm:"column:printed_at"`
}

// TableName returns the table name for PrintJobModel
func (PrintJobModel) TableName() string {
	return "print_jobs"
}

// ToDomain converts PrintJobModel to domain PrintJob
func (m *PrintJobModel) ToDomain() *label.PrintJob {
	return &label.PrintJob{
		BaseEntity:   m.BaseModel.ToDomain(),
		Kind:         label.Kind(m.Kind),
		Status:       label.JobStatus(m.Status),
		BackupFile:   m.BackupFile,
		Width:        m.Width,
		Height:       m.Height,
		ErrorMessage: m.ErrorMessage,
		PrintedAt:    m.PrintedAt,
	}
}

// PrintJobModelFromDomain creates a PrintJobModel from domain PrintJob
func PrintJobModelFromDomain(j *label.PrintJob) *PrintJobModel {
	m := &PrintJobModel{
		Kind:         string(j.Kind),
		Status:       string(j.Status),
		BackupFile:   j.BackupFile,
		Width:        j.Width,
		Height:       j.Height,
		ErrorMessage: j.ErrorMessage,
		PrintedAt:    j.PrintedAt,
	}
	m.FromDomainBaseEntity(j.BaseEntity)
	return m
}
