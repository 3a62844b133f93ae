package handlers

import (
	"errors"
	"net/http"

	"gitstreet-core/internal/application/dto"
	"gitstreet-core/internal/domain/story"

	"github.com/gin-gonic/gin"
)

// SnapshotReader exposes read access to the current/next snapshot pair
type SnapshotReader interface {
	Snapshot(kind string) (*story.Snapshot, error)
}

// SnapshotHandler handles snapshot read requests
type SnapshotHandler struct {
	snapshots SnapshotReader
}

// NewSnapshotHandler creates a new snapshot handler
func NewSnapshotHandler(snapshots SnapshotReader) *SnapshotHandler {
	return &SnapshotHandler{snapshots: snapshots}
}

// GetCurrent handles GET /current
// @Summary Current repository snapshot
// @Description Returns the current repository with commits, surreal narrative and scene
// @Tags Snapshots
// @Accept json
// @Produce json
// @Success 200 {object} dto.SnapshotResponse
// @Failure 404 {object} ErrorResponse
// @Router /current [get]
func (h *SnapshotHandler) GetCurrent(c *gin.Context) {
	h.serve(c, "current")
}

// GetNext handles GET /next
// @Summary Next repository snapshot
// @Description Returns the upcoming repository with commits, surreal narrative and scene
// @Tags Snapshots
// @Accept json
// @Produce json
// @Success 200 {object} dto.SnapshotResponse
// @Failure 404 {object} ErrorResponse
// @Router /next [get]
func (h *SnapshotHandler) GetNext(c *gin.Context) {
	h.serve(c, "next")
}

func (h *SnapshotHandler) serve(c *gin.Context, kind string) {
	snapshot, err := h.snapshots.Snapshot(kind)
	if err != nil {
		var domainErr *story.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == "SNAPSHOT_NOT_AVAILABLE" {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_available",
				Message: domainErr.Message,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to read snapshot",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.NewSnapshotResponse(snapshot))
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
