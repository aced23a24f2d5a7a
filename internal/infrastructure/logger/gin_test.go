package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedRouter(level zapcore.Level) (*gin.Engine, *observer.ObservedLogs) {
	gin.SetMode(gin.TestMode)
	core, recorded := observer.New(level)
	router := gin.New()
	router.Use(GinMiddleware(zap.New(core)))
	return router, recorded
}

func findEntry(logs []observer.LoggedEntry, msg string) *observer.LoggedEntry {
	for i := range logs {
		if logs[i].Message == msg {
			return &logs[i]
		}
	}
	return nil
}

func TestGinMiddleware(t *testing.T) {
	router, recorded := newObservedRouter(zapcore.InfoLevel)
	router.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ready": true})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/status", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	entry := findEntry(recorded.All(), "request completed")
	require.NotNil(t, entry)
	assert.Equal(t, zapcore.InfoLevel, entry.Level)
}

func TestGinMiddleware_WithRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, recorded := observer.New(zapcore.InfoLevel)

	router := gin.New()
	// The RequestID middleware runs before the request logger.
	router.Use(func(c *gin.Context) {
		c.Set("request_id", "test-req-123")
		c.Next()
	})
	router.Use(GinMiddleware(zap.New(core)))
	router.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ready": true})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/status", nil)
	router.ServeHTTP(w, req)

	entry := findEntry(recorded.All(), "request completed")
	require.NotNil(t, entry)

	hasRequestID := false
	for _, field := range entry.Context {
		if field.Key == "request_id" {
			hasRequestID = true
			assert.Equal(t, "test-req-123", field.String)
		}
	}
	assert.True(t, hasRequestID, "request_id should be in log fields")
}

func TestGinMiddleware_ClientErrorLogsWarn(t *testing.T) {
	router, recorded := newObservedRouter(zapcore.WarnLevel)
	router.POST("/print/cable", func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/print/cable", nil)
	router.ServeHTTP(w, req)

	entry := findEntry(recorded.All(), "request rejected")
	require.NotNil(t, entry)
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
}

func TestGinMiddleware_ServerErrorLogsError(t *testing.T) {
	router, recorded := newObservedRouter(zapcore.ErrorLevel)
	router.POST("/print/text", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "print failed"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/print/text", nil)
	router.ServeHTTP(w, req)

	entry := findEntry(recorded.All(), "request failed")
	require.NotNil(t, entry)
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
}

func TestGinMiddleware_WithQuery(t *testing.T) {
	router, recorded := newObservedRouter(zapcore.InfoLevel)
	router.GET("/print/jobs", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"items": []string{}})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/print/jobs?kind=cable&page=1", nil)
	router.ServeHTTP(w, req)

	entry := findEntry(recorded.All(), "request completed")
	require.NotNil(t, entry)

	hasQuery := false
	for _, field := range entry.Context {
		if field.Key == "query" {
			hasQuery = true
			assert.Contains(t, field.String, "kind=cable")
		}
	}
	assert.True(t, hasQuery, "query should be in log fields")
}

func TestGinMiddleware_LogsRequestFields(t *testing.T) {
	router, recorded := newObservedRouter(zapcore.InfoLevel)
	router.POST("/print/device", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/print/device", nil)
	router.ServeHTTP(w, req)

	entry := findEntry(recorded.All(), "request completed")
	require.NotNil(t, entry)

	fieldMap := make(map[string]any)
	for _, field := range entry.Context {
		fieldMap[field.Key] = field
	}
	assert.Contains(t, fieldMap, "status")
	assert.Contains(t, fieldMap, "latency")
	assert.Contains(t, fieldMap, "client_ip")
	assert.Contains(t, fieldMap, "bytes")
	assert.Contains(t, fieldMap, "method")
	assert.Contains(t, fieldMap, "path")
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, recorded := observer.New(zapcore.ErrorLevel)

	router := gin.New()
	router.Use(Recovery(zap.New(core)))
	router.GET("/panic", func(c *gin.Context) {
		panic("broken handler")
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/panic", nil)

	assert.NotPanics(t, func() {
		router.ServeHTTP(w, req)
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	logs := recorded.All()
	require.NotEmpty(t, logs)
	assert.Equal(t, "panic recovered", logs[0].Message)
}

func TestGetGinLogger(t *testing.T) {
	router, _ := newObservedRouter(zapcore.InfoLevel)

	var retrieved *zap.Logger
	router.GET("/status", func(c *gin.Context) {
		retrieved = GetGinLogger(c)
		c.JSON(http.StatusOK, gin.H{"ready": true})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/status", nil)
	router.ServeHTTP(w, req)

	assert.NotNil(t, retrieved)
}

func TestGetGinLogger_NotSet(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var retrieved *zap.Logger
	router := gin.New()
	router.GET("/status", func(c *gin.Context) {
		retrieved = GetGinLogger(c)
		c.JSON(http.StatusOK, gin.H{"ready": true})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/status", nil)
	router.ServeHTTP(w, req)

	// A missing middleware yields a usable no-op logger.
	require.NotNil(t, retrieved)
	assert.NotPanics(t, func() {
		retrieved.Info("still alive")
	})
}
