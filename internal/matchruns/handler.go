package matchruns

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gradmatch-backend/internal/documents"
	"gradmatch-backend/internal/shared/server/middleware"
	"gradmatch-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the match run service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches match run routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/documents/:id/match", h.start)
	rg.GET("/match-runs", h.list)
	rg.GET("/match-runs/:id", h.get)
}

func (h *Handler) start(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	documentID := c.Param("id")
	if documentID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "document id is required", nil)
		return
	}

	run, err := h.Svc.Create(c.Request.Context(), userID, documentID)
	if err != nil {
		switch {
		case errors.Is(err, documents.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		case errors.Is(err, ErrDocumentInvalid):
			respond.Error(c, http.StatusUnprocessableEntity, ErrorCodeValidation, "document did not pass CV validation", []map[string]string{
				{"field": "document", "issue": "not_a_cv"},
			})
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to start match run", nil)
		}
		return
	}

	respond.JSON(c, http.StatusAccepted, gin.H{
		"matchRunId": run.ID,
		"status":     run.Status,
	})
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	runID := c.Param("id")
	if runID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "match run id is required", nil)
		return
	}

	run, err := h.Svc.Get(c.Request.Context(), userID, runID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "match run not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch match run", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(run))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}
	if limit > 50 {
		limit = 50
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			offset = parsed
		}
	}

	runs, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list match runs", nil)
		return
	}

	resp := make([]gin.H, 0, len(runs))
	for _, run := range runs {
		item := gin.H{
			"matchRunId": run.ID,
			"documentId": run.DocumentID,
			"status":     run.Status,
			"createdAt":  run.CreatedAt,
		}
		if run.Status == StatusCompleted {
			item["source"] = run.Source
			item["resultCount"] = len(run.Results)
		}
		resp = append(resp, item)
	}
	respond.JSON(c, http.StatusOK, resp)
}
