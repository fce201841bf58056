package profile

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gradmatch-backend/internal/shared/server/middleware"
	"gradmatch-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// ProfileResponse is the outward-facing representation of a stored profile.
type ProfileResponse struct {
	Profile   StoredAcademicProfile `json:"profile"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

// RegisterRoutes attaches profile routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.PUT("/profile", h.put)
	rg.GET("/profile", h.get)
}

func (h *Handler) put(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var body StoredAcademicProfile
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid profile payload", nil)
		return
	}

	row, err := h.Svc.Save(c.Request.Context(), userID, body)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save profile", nil)
		return
	}

	respond.JSON(c, http.StatusOK, ProfileResponse{Profile: row.Profile, UpdatedAt: row.UpdatedAt})
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	row, err := h.Svc.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "no profile saved yet", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch profile", nil)
		return
	}

	respond.JSON(c, http.StatusOK, ProfileResponse{Profile: row.Profile, UpdatedAt: row.UpdatedAt})
}
