package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-crisiswatch/crisis"
)

// ReportRequest is the submission body accepted from callers and feeds.
type ReportRequest struct {
	Text     string `json:"text" binding:"required"`
	Source   string `json:"source"`
	Location string `json:"location"`
}

// apiResponse is the envelope every endpoint answers with.
func apiResponse(code int, data interface{}, message string) gin.H {
	return gin.H{
		"statusCode": code,
		"data":       data,
		"message":    message,
		"success":    code < http.StatusBadRequest,
	}
}

// ProcessCrisisReport runs a submitted report through the ingestion
// pipeline and maps the outcome onto the response envelope.
func ProcessCrisisReport(c *gin.Context, pipeline *crisis.Pipeline) {
	var req ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiResponse(http.StatusBadRequest, nil, "Crisis report text is required"))
		return
	}
	if req.Source == "" {
		req.Source = "manual"
	}

	result, err := pipeline.Process(c.Request.Context(), req.Text, req.Source, req.Location)
	if err != nil {
		log.Printf("Crisis report processing failed: %v", err)
		if errors.Is(err, crisis.ErrAnalysisFailed) {
			c.JSON(http.StatusInternalServerError, apiResponse(http.StatusInternalServerError, nil, "Analysis failed"))
			return
		}
		c.JSON(http.StatusInternalServerError, apiResponse(http.StatusInternalServerError, nil, "Failed to process crisis report"))
		return
	}

	if !result.IsCrisis {
		c.JSON(http.StatusOK, apiResponse(http.StatusOK, gin.H{
			"issue": gin.H{
				"title":       "No Crisis Detected",
				"description": req.Text,
				"aiAnalysis":  result.Analysis,
			},
		}, "Report analyzed: Not a crisis, no action taken."))
		return
	}

	code := http.StatusOK
	message := "Crisis Report Updated Successfully"
	if result.Status == crisis.StatusCreated {
		code = http.StatusCreated
		message = "Crisis Report Created Successfully"
	}

	c.JSON(code, apiResponse(code, gin.H{
		"issue":  result.Issue,
		"status": result.Status,
	}, message))
}
