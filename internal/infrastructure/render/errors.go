package render

// RenderError represents an error during raster rendering
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Error codes for rendering failures
const (
	ErrCodeRenderFailed  = "RENDER_FAILED"
	ErrCodeElementFailed = "ELEMENT_FAILED"
	ErrCodeEmptyInput    = "EMPTY_INPUT"
)

// NewRenderError creates a new RenderError
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewElementError creates a RenderError identifying the canvas element
// whose rendering failed. A failing element aborts the whole canvas.
func NewElementError(elementID string, cause error) *RenderError {
	return &RenderError{
		Code:    ErrCodeElementFailed,
		Message: "element " + elementID + " failed to render",
		Cause:   cause,
	}
}
