package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-crisiswatch/types"
)

// IssueGetter is the read side needed by the issue lookup endpoint.
type IssueGetter interface {
	GetByID(ctx context.Context, id string) (types.Issue, error)
}

// GetIssue returns a single tracked issue by ID.
func GetIssue(c *gin.Context, store IssueGetter) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, apiResponse(http.StatusBadRequest, nil, "Issue id is required"))
		return
	}

	issue, err := store.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apiResponse(http.StatusNotFound, nil, "Issue not found"))
		return
	}

	c.JSON(http.StatusOK, apiResponse(http.StatusOK, gin.H{"issue": issue}, "Issue retrieved"))
}
