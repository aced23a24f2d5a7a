package label

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
	"go.uber.org/zap"

	"github.com/techlabel/backend/internal/domain/label"
	"github.com/techlabel/backend/internal/domain/shared"
	"github.com/techlabel/backend/internal/infrastructure/printer"
	"github.com/techlabel/backend/internal/infrastructure/render"
	"github.com/techlabel/backend/internal/infrastructure/storage"
)

// Print margins in head dots. Single labels are offset from the head
// edge; a band already encodes its own separators and prints flush.
const (
	singleLabelMarginPx = 50
	bandMarginPx        = 0
)

const backupTimestampLayout = "0102_150405"

// LabelService renders labels, persists PNG backups and dispatches
// rasters to the printer. The printer is a shared unreplicated
// resource, so sends are serialized through a mutex.
type LabelService struct {
	renderer *render.LabelRenderer
	canvas   *render.CanvasRenderer
	printer  printer.Printer
	backups  storage.BackupStore
	jobs     label.PrintJobRepository
	logger   *zap.Logger

	mu    sync.Mutex
	media printer.Media
	ready bool
}

// NewLabelService creates a new LabelService
func NewLabelService(
	renderer *render.LabelRenderer,
	canvas *render.CanvasRenderer,
	prt printer.Printer,
	backups storage.BackupStore,
	jobs label.PrintJobRepository,
	logger *zap.Logger,
) *LabelService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LabelService{
		renderer: renderer,
		canvas:   canvas,
		printer:  prt,
		backups:  backups,
		jobs:     jobs,
		logger:   logger,
		media: printer.Media{
			TapeWidthMM:   printer.DefaultTapeWidthMM,
			PrintHeightPx: printer.DefaultPrintHeightPx,
		},
	}
}

// InitializePrinter probes the printer with a bounded retry loop. When
// all attempts fail the service stays up with default media so the API
// remains reachable, and Status reports not ready.
func (s *LabelService) InitializePrinter(ctx context.Context, retries int, delay time.Duration) {
	for attempt := 1; attempt <= retries; attempt++ {
		media, err := s.printer.Initialize(ctx)
		if err == nil {
			s.mu.Lock()
			s.media = media
			s.ready = true
			s.mu.Unlock()
			s.logger.Info("printer ready",
				zap.Int("tape_width_mm", media.TapeWidthMM),
				zap.Int("print_height_px", media.PrintHeightPx))
			return
		}

		s.logger.Warn("printer initialization failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", retries),
			zap.Error(err))

		if attempt < retries {
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
		}
	}
	s.logger.Error("printer initialization failed after all retries, continuing without printer")
}

// Status reports printer readiness and the loaded media
func (s *LabelService) Status() StatusResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StatusResponse{
		Ready:         s.ready,
		TapeWidthMM:   s.media.TapeWidthMM,
		PrintHeightPx: s.media.PrintHeightPx,
	}
}

func (s *LabelService) printHeight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.media.PrintHeightPx
}

// =============================================================================
// Print Operations
// =============================================================================

// PrintCable renders and prints a cable label
func (s *LabelService) PrintCable(ctx context.Context, req CableLabelRequest) (*PrintResponse, error) {
	cable, err := label.NewCableLabel(req.CableType, req.Voltage, req.Destination, req.ColorCode)
	if err != nil {
		return nil, err
	}
	return s.renderAndPrint(ctx, label.KindCable, singleLabelMarginPx,
		func(printHeight int) (*render.Raster, error) {
			return s.renderer.RenderCable(cable, printHeight)
		})
}

// PrintDevice renders and prints a device label
func (s *LabelService) PrintDevice(ctx context.Context, req DeviceLabelRequest) (*PrintResponse, error) {
	device, err := label.NewDeviceLabel(req.DeviceName, req.IPAddress, req.MACAddress, req.Model, req.RackUnit)
	if err != nil {
		return nil, err
	}
	return s.renderAndPrint(ctx, label.KindDevice, singleLabelMarginPx,
		func(printHeight int) (*render.Raster, error) {
			return s.renderer.RenderDevice(device, printHeight)
		})
}

// PrintWarning renders and prints a warning label
func (s *LabelService) PrintWarning(ctx context.Context, req WarningLabelRequest) (*PrintResponse, error) {
	warning, err := label.NewWarningLabel(req.WarningText, req.Voltage, req.Icon)
	if err != nil {
		return nil, err
	}
	return s.renderAndPrint(ctx, label.KindWarning, singleLabelMarginPx,
		func(printHeight int) (*render.Raster, error) {
			return s.renderer.RenderWarning(warning, printHeight)
		})
}

// PrintText renders and prints a free text label
func (s *LabelService) PrintText(ctx context.Context, req TextLabelRequest) (*PrintResponse, error) {
	text, err := label.NewTextLabel(req.Text, req.FontSize)
	if err != nil {
		return nil, err
	}
	return s.renderAndPrint(ctx, label.KindText, singleLabelMarginPx,
		func(printHeight int) (*render.Raster, error) {
			return s.renderer.RenderText(text, printHeight)
		})
}

// PrintBatch renders each text as its own label and prints them as
// one continuous band with 2px separators.
func (s *LabelService) PrintBatch(ctx context.Context, req BatchLabelRequest) (*PrintResponse, error) {
	batch, err := label.NewBatchLabels(req.Texts, req.FontSize, req.SeparatorMargin)
	if err != nil {
		return nil, err
	}
	return s.renderAndPrint(ctx, label.KindBatch, bandMarginPx,
		func(printHeight int) (*render.Raster, error) {
			rasters := make([]*render.Raster, len(batch.Texts))
			for i, text := range batch.Texts {
				single, err := label.NewTextLabel(text, batch.FontSize)
				if err != nil {
					return nil, err
				}
				raster, err := s.renderer.RenderText(single, printHeight)
				if err != nil {
					return nil, err
				}
				rasters[i] = raster
			}
			return render.Combine(rasters)
		})
}

// PrintCustom renders a custom canvas and prints it. The canvas margin
// becomes the feed margin; zero keeps the single-label default.
func (s *LabelService) PrintCustom(ctx context.Context, req CustomLabelRequest) (*PrintResponse, error) {
	canvas, err := label.NewCustomCanvas(req.Width, req.Height, req.Margin, toElementSpecs(req.Elements))
	if err != nil {
		return nil, err
	}
	feedMargin := singleLabelMarginPx
	if canvas.Margin > 0 {
		feedMargin = canvas.Margin
	}
	return s.renderAndPrint(ctx, label.KindCustom, feedMargin,
		func(int) (*render.Raster, error) {
			return s.canvas.Render(canvas)
		})
}

// PreviewCustom renders a custom canvas and returns it as PNG without
// printing. Scale upscales the image for on-screen inspection.
func (s *LabelService) PreviewCustom(ctx context.Context, req PreviewRequest) ([]byte, error) {
	canvas, err := label.NewCustomCanvas(req.Width, req.Height, req.Margin, toElementSpecs(req.Elements))
	if err != nil {
		return nil, err
	}
	raster, err := s.canvas.Render(canvas)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	scale := req.Scale
	if scale <= 1 {
		if err := raster.EncodePNG(&buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	scaled := resize.Resize(
		uint(raster.Width()*scale), uint(raster.Height()*scale),
		raster, resize.NearestNeighbor)
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// =============================================================================
// Job Queries
// =============================================================================

// ListJobs returns a paginated list of print jobs
func (s *LabelService) ListJobs(ctx context.Context, req ListJobsRequest) (*shared.Paginated[JobResponse], error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	if req.Kind != "" {
		filter.Filters["kind"] = strings.ToUpper(req.Kind)
	}
	if req.Status != "" {
		filter.Filters["status"] = strings.ToUpper(req.Status)
	}

	jobs, err := s.jobs.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	total, err := s.jobs.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count jobs: %w", err)
	}

	items := make([]JobResponse, len(jobs))
	for i := range jobs {
		items[i] = toJobResponse(&jobs[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// GetJob returns a single print job by ID
func (s *LabelService) GetJob(ctx context.Context, id string) (*JobResponse, error) {
	jobID, err := uuid.Parse(id)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid job ID")
	}
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	resp := toJobResponse(job)
	return &resp, nil
}

// =============================================================================
// Pipeline
// =============================================================================

// renderAndPrint runs the shared pipeline: render, persist a PNG
// backup, send to the printer, tracking the job through its states.
// A backup written before a print failure is kept.
func (s *LabelService) renderAndPrint(
	ctx context.Context,
	kind label.Kind,
	marginPx int,
	renderFn func(printHeight int) (*render.Raster, error),
) (*PrintResponse, error) {
	job, err := label.NewPrintJob(kind)
	if err != nil {
		return nil, err
	}
	if err := s.jobs.Save(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	if err := job.StartRendering(); err != nil {
		return nil, err
	}
	if err := s.jobs.Save(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}

	raster, err := renderFn(s.printHeight())
	if err != nil {
		s.failJob(ctx, job, err)
		return nil, err
	}

	if !s.printer.Ready() {
		err := printer.NewPrintError(printer.ErrCodeNotReady, "printer not ready", nil)
		s.failJob(ctx, job, err)
		return nil, err
	}

	backupName := fmt.Sprintf("%s_%s.png",
		strings.ToLower(string(kind)), time.Now().Format(backupTimestampLayout))
	stored, err := s.backups.Store(ctx, raster, backupName)
	if err != nil {
		s.failJob(ctx, job, err)
		return nil, fmt.Errorf("failed to store backup: %w", err)
	}

	if err := job.StartPrinting(stored.Path, raster.Width(), raster.Height()); err != nil {
		return nil, err
	}
	if err := s.jobs.Save(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}

	s.mu.Lock()
	sendErr := s.printer.Send(raster, marginPx)
	s.mu.Unlock()
	if sendErr != nil {
		// No rollback: the backup stays on disk for inspection.
		s.failJob(ctx, job, sendErr)
		return nil, printer.NewPrintError(printer.ErrCodePrintFailed, "print failed", sendErr)
	}

	if err := job.Complete(); err != nil {
		return nil, err
	}
	if err := s.jobs.Save(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}

	s.logger.Info("label printed",
		zap.String("job_id", job.ID.String()),
		zap.String("kind", string(kind)),
		zap.String("backup", stored.Path),
		zap.Int("width", raster.Width()),
		zap.Int("height", raster.Height()))

	return &PrintResponse{
		Success:  true,
		Message:  kindMessage(kind),
		Filename: stored.Path,
		JobID:    job.ID.String(),
	}, nil
}

func (s *LabelService) failJob(ctx context.Context, job *label.PrintJob, cause error) {
	if err := job.Fail(cause.Error()); err != nil {
		s.logger.Error("failed to mark job failed",
			zap.String("job_id", job.ID.String()), zap.Error(err))
		return
	}
	if err := s.jobs.Save(ctx, job); err != nil {
		s.logger.Error("failed to persist failed job",
			zap.String("job_id", job.ID.String()), zap.Error(err))
	}

	var perr *printer.PrintError
	if errors.As(cause, &perr) && perr.Code == printer.ErrCodeNotReady {
		return
	}
	s.logger.Warn("print job failed",
		zap.String("job_id", job.ID.String()),
		zap.String("kind", string(job.Kind)),
		zap.Error(cause))
}

func kindMessage(kind label.Kind) string {
	name := strings.ToLower(string(kind))
	return strings.ToUpper(name[:1]) + name[1:] + " label printed successfully"
}
