package handler

import (
	"github.com/techlabel/backend/internal/interfaces/http/router"
)

// LabelRoutes creates the route group for label printing endpoints
func LabelRoutes(handler *LabelHandler) *router.DomainGroup {
	group := router.NewDomainGroup("print", "/print")

	// Layout-specific print endpoints
	group.POST("/cable", handler.PrintCable)
	group.POST("/device", handler.PrintDevice)
	group.POST("/warning", handler.PrintWarning)
	group.POST("/text", handler.PrintText)
	group.POST("/batch", handler.PrintBatch)

	// Custom canvas
	group.POST("/custom", handler.PrintCustom)
	group.POST("/custom/preview", handler.PreviewCustom)

	// Print job history
	jobs := group.Group("jobs", "/jobs")
	jobs.GET("", handler.ListJobs)
	jobs.GET("/:id", handler.GetJob)

	return group
}

// StatusRoutes creates the route group for the printer status endpoint
func StatusRoutes(handler *LabelHandler) *router.DomainGroup {
	group := router.NewDomainGroup("status", "")
	group.GET("/status", handler.Status)
	return group
}
