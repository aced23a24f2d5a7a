package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	applabel "github.com/techlabel/backend/internal/application/label"
	"github.com/techlabel/backend/internal/interfaces/http/dto"
	"github.com/techlabel/backend/internal/interfaces/http/middleware"
)

// LabelHandler handles label rendering and printing endpoints
type LabelHandler struct {
	BaseHandler
	labelService *applabel.LabelService
}

// NewLabelHandler creates a new LabelHandler
func NewLabelHandler(labelService *applabel.LabelService) *LabelHandler {
	return &LabelHandler{
		labelService: labelService,
	}
}

// PrintCable renders and prints a cable label.
// POST /print/cable
func (h *LabelHandler) PrintCable(c *gin.Context) {
	var req applabel.CableLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.labelService.PrintCable(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// PrintDevice renders and prints a device label.
// POST /print/device
func (h *LabelHandler) PrintDevice(c *gin.Context) {
	var req applabel.DeviceLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.labelService.PrintDevice(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// PrintWarning renders and prints a warning label.
// POST /print/warning
func (h *LabelHandler) PrintWarning(c *gin.Context) {
	var req applabel.WarningLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.labelService.PrintWarning(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// PrintText renders and prints a free text label.
// POST /print/text
func (h *LabelHandler) PrintText(c *gin.Context) {
	var req applabel.TextLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.labelService.PrintText(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// PrintBatch renders several text labels into one band and prints it.
// POST /print/batch
func (h *LabelHandler) PrintBatch(c *gin.Context) {
	var req applabel.BatchLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.labelService.PrintBatch(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// PrintCustom renders an element canvas and prints it.
// POST /print/custom
func (h *LabelHandler) PrintCustom(c *gin.Context) {
	var req applabel.CustomLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.labelService.PrintCustom(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// PreviewCustom renders an element canvas and returns the PNG without
// printing. The scale query parameter upscales the image for display.
// POST /print/custom/preview?scale=N
func (h *LabelHandler) PreviewCustom(c *gin.Context) {
	var req applabel.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	if raw := c.Query("scale"); raw != "" {
		scale, err := strconv.Atoi(raw)
		if err != nil {
			h.BadRequest(c, "scale must be an integer")
			return
		}
		req.Scale = scale
	}
	if req.Scale != 0 && (req.Scale < 1 || req.Scale > 8) {
		h.BadRequest(c, "scale must be between 1 and 8")
		return
	}

	png, err := h.labelService.PreviewCustom(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// Status reports printer readiness and the loaded media.
// GET /status
func (h *LabelHandler) Status(c *gin.Context) {
	h.Success(c, h.labelService.Status())
}

// ListJobs returns the print job history.
// GET /print/jobs
func (h *LabelHandler) ListJobs(c *gin.Context) {
	var req applabel.ListJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.labelService.ListJobs(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetJob returns a single print job by ID.
// GET /print/jobs/:id
func (h *LabelHandler) GetJob(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid job ID")
		return
	}

	result, err := h.labelService.GetJob(c.Request.Context(), req.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
