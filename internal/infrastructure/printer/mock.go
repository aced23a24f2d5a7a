package printer

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/techlabel/backend/internal/infrastructure/render"
)

// SentJob records one raster delivered to the mock printer
type SentJob struct {
	Width    int
	Height   int
	MarginPx int
}

// Mock is a Printer for development and tests. It pretends a tape is
// loaded and records every raster it receives.
type Mock struct {
	mu     sync.Mutex
	media  Media
	ready  bool
	failed error
	jobs   []SentJob
	logger *zap.Logger
}

// NewMock creates a mock printer reporting the given tape width. A
// zero width selects the 9mm default.
func NewMock(tapeWidthMM int, logger *zap.Logger) *Mock {
	if tapeWidthMM == 0 {
		tapeWidthMM = DefaultTapeWidthMM
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mock{media: Media{TapeWidthMM: tapeWidthMM}, logger: logger}
}

// FailWith makes every subsequent Send return err
func (m *Mock) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failed = err
}

// Initialize resolves the printable height for the configured tape
func (m *Mock) Initialize(ctx context.Context) (Media, error) {
	if err := ctx.Err(); err != nil {
		return Media{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	printHeight, err := PrintHeightForTape(m.media.TapeWidthMM)
	if err != nil {
		return Media{}, err
	}
	m.media.PrintHeightPx = printHeight
	m.ready = true
	m.logger.Info("mock printer ready",
		zap.Int("tape_width_mm", m.media.TapeWidthMM),
		zap.Int("print_height_px", printHeight))
	return m.media, nil
}

// Send records the raster instead of printing it
func (m *Mock) Send(img *render.Raster, marginPx int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.ready {
		return NewPrintError(ErrCodeNotReady, "printer not initialized", nil)
	}
	if m.failed != nil {
		return m.failed
	}
	m.jobs = append(m.jobs, SentJob{Width: img.Width(), Height: img.Height(), MarginPx: marginPx})
	return nil
}

// Ready reports whether Initialize has been called
func (m *Mock) Ready() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ready
}

// Close marks the printer unavailable
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ready = false
	return nil
}

// Jobs returns the rasters sent so far
func (m *Mock) Jobs() []SentJob {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentJob, len(m.jobs))
	copy(out, m.jobs)
	return out
}
