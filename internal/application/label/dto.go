package label

import (
	"time"

	"github.com/techlabel/backend/internal/domain/label"
)

// =============================================================================
// Print Request DTOs
// =============================================================================

// CableLabelRequest represents a request to print a cable label
type CableLabelRequest struct {
	CableType   string `json:"cable_type" binding:"required,min=1,max=100"`
	Voltage     string `json:"voltage" binding:"max=50"`
	Destination string `json:"destination" binding:"max=100"`
	ColorCode   string `json:"color_code" binding:"max=200"`
}

// DeviceLabelRequest represents a request to print a device label
type DeviceLabelRequest struct {
	DeviceName string `json:"device_name" binding:"required,min=1,max=100"`
	IPAddress  string `json:"ip_address" binding:"omitempty,ip"`
	MACAddress string `json:"mac_address" binding:"omitempty,mac"`
	Model      string `json:"model" binding:"max=100"`
	RackUnit   string `json:"rack_unit" binding:"max=50"`
}

// WarningLabelRequest represents a request to print a warning label
type WarningLabelRequest struct {
	WarningText string `json:"warning_text" binding:"required,min=1,max=100"`
	Voltage     string `json:"voltage" binding:"max=50"`
	Icon        string `json:"icon" binding:"max=8"`
}

// TextLabelRequest represents a request to print a free text label
type TextLabelRequest struct {
	Text     string `json:"text" binding:"required,min=1,max=200"`
	FontSize int    `json:"font_size" binding:"omitempty,min=1,max=100"`
}

// BatchLabelRequest represents a request to print several text labels
// as one continuous band
type BatchLabelRequest struct {
	Texts    []string `json:"texts" binding:"required,min=1,dive,required"`
	FontSize int      `json:"font_size" binding:"omitempty,min=1,max=100"`
	// SeparatorMargin is accepted for compatibility; the band uses a
	// fixed 2px separator regardless of its value.
	SeparatorMargin int `json:"separator_margin" binding:"omitempty,min=0"`
}

// ElementDTO describes one drawable element on a custom canvas
type ElementDTO struct {
	Type        string     `json:"type" binding:"required"`
	ID          string     `json:"id"`
	X           int        `json:"x" binding:"min=0"`
	Y           int        `json:"y" binding:"min=0"`
	Text        string     `json:"text"`
	FontSize    int        `json:"font_size"`
	Bold        bool       `json:"bold"`
	Data        string     `json:"data"`
	Size        int        `json:"size"`
	Width       int        `json:"width"`
	Height      int        `json:"height"`
	Icon        string     `json:"icon"`
	X2          *int       `json:"x2"`
	Y2          *int       `json:"y2"`
	Thickness   int        `json:"thickness"`
	FillColor   string     `json:"fill_color"`
	BorderWidth int        `json:"border_width"`
	Rows        int        `json:"rows"`
	Cols        int        `json:"cols"`
	CellWidth   int        `json:"cell_width"`
	CellHeight  int        `json:"cell_height"`
	TableData   [][]string `json:"table_data"`
}

// CustomLabelRequest represents a request to print a custom canvas
type CustomLabelRequest struct {
	Width  int `json:"width" binding:"required,min=1,max=2048"`
	Height int `json:"height" binding:"required,min=1,max=2048"`
	// Margin overrides the feed margin for this print; zero keeps
	// the default.
	Margin   int          `json:"margin" binding:"min=0"`
	Elements []ElementDTO `json:"elements" binding:"required,min=1"`
}

// PreviewRequest represents a request to render a custom canvas
// without printing it
type PreviewRequest struct {
	CustomLabelRequest
	// Scale upscales the preview image, 1-8, default 1
	Scale int `json:"scale" binding:"omitempty,min=1,max=8"`
}

// =============================================================================
// Response DTOs
// =============================================================================

// PrintResponse is the result of a print operation
type PrintResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Filename string `json:"filename,omitempty"`
	JobID    string `json:"job_id,omitempty"`
}

// StatusResponse reports printer readiness and media
type StatusResponse struct {
	Ready         bool `json:"ready"`
	TapeWidthMM   int  `json:"tape_width_mm"`
	PrintHeightPx int  `json:"print_height_px"`
}

// ListJobsRequest represents a request to list print jobs
type ListJobsRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Kind     string `form:"kind"`
	Status   string `form:"status"`
}

// JobResponse represents a print job
type JobResponse struct {
	ID           string     `json:"id"`
	Kind         string     `json:"kind"`
	Status       string     `json:"status"`
	BackupFile   string     `json:"backup_file,omitempty"`
	Width        int        `json:"width,omitempty"`
	Height       int        `json:"height,omitempty"`
	ErrorMessage string     `json:"error_message,omitempty"`
	PrintedAt    *time.Time `json:"printed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// =============================================================================
// Mapping helpers
// =============================================================================

func toElementSpecs(elements []ElementDTO) []label.ElementSpec {
	specs := make([]label.ElementSpec, len(elements))
	for i, e := range elements {
		specs[i] = label.ElementSpec{
			Type:        e.Type,
			ID:          e.ID,
			X:           e.X,
			Y:           e.Y,
			Text:        e.Text,
			FontSize:    e.FontSize,
			Bold:        e.Bold,
			Data:        e.Data,
			Size:        e.Size,
			Width:       e.Width,
			Height:      e.Height,
			Icon:        e.Icon,
			X2:          e.X2,
			Y2:          e.Y2,
			Thickness:   e.Thickness,
			FillColor:   e.FillColor,
			BorderWidth: e.BorderWidth,
			Rows:        e.Rows,
			Cols:        e.Cols,
			CellWidth:   e.CellWidth,
			CellHeight:  e.CellHeight,
			TableData:   e.TableData,
		}
	}
	return specs
}

func toJobResponse(job *label.PrintJob) JobResponse {
	return JobResponse{
		ID:           job.ID.String(),
		Kind:         string(job.Kind),
		Status:       string(job.Status),
		BackupFile:   job.BackupFile,
		Width:        job.Width,
		Height:       job.Height,
		ErrorMessage: job.ErrorMessage,
		PrintedAt:    job.PrintedAt,
		CreatedAt:    job.CreatedAt,
		UpdatedAt:    job.UpdatedAt,
	}
}
