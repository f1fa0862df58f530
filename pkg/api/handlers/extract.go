package handlers

import (
	"errors"
	"net/http"
	"time"

	"html-extract-go/pkg/cli/logger"
	"html-extract-go/pkg/extractor"
	"html-extract-go/pkg/models"
	"html-extract-go/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

// ExtractService runs extractions for the API, at most limit at a time.
type ExtractService struct {
	extractor extractor.Extractor
	timeout   time.Duration
	sem       *semaphore.Weighted
}

// NewExtractService caps concurrent browser sessions at limit (minimum 1).
func NewExtractService(ex extractor.Extractor, timeout time.Duration, limit int) *ExtractService {
	if limit < 1 {
		limit = 1
	}
	return &ExtractService{
		extractor: ex,
		timeout:   timeout,
		sem:       semaphore.NewWeighted(int64(limit)),
	}
}

// Extract handles POST /api/v1/extract
func Extract(service *ExtractService) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		c.Header("X-Request-ID", requestID)

		var req models.ExtractionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error(), "request_id": requestID})
			return
		}
		// Accept the same spellings as the CLI ("ID", "class").
		if s, err := models.ParseStrategy(string(req.Strategy)); err == nil {
			req.Strategy = s
		}
		if err := req.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error(), "request_id": requestID})
			return
		}
		if _, err := utils.ValidateURL(req.TargetURL); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error(), "request_id": requestID})
			return
		}

		ctx := c.Request.Context()
		if err := service.sem.Acquire(ctx, 1); err != nil {
			// Client went away while queued.
			c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "request cancelled", "request_id": requestID})
			return
		}
		defer service.sem.Release(1)

		logger.Log("api extraction started: request=%s url=%s %s=%q", requestID, req.TargetURL, req.Strategy, req.Value)
		result, err := extractor.Run(ctx, service.extractor, req, service.timeout, nil)
		if err != nil {
			logger.LogError(err, "api extraction failed: request=%s", requestID)
			status := http.StatusUnprocessableEntity
			var vErr *models.ValidationError
			if errors.As(err, &vErr) {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"success": false, "error": err.Error(), "request_id": requestID})
			return
		}

		result.RequestID = requestID
		logger.Log("api extraction succeeded: request=%s bytes=%d after %s", requestID, len(result.Markup), result.Duration)
		c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
	}
}
