package catalog

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gradmatch-backend/internal/shared/server/respond"
)

// Handler exposes read-only catalog browsing endpoints.
type Handler struct {
	Repo Repo
}

// RegisterRoutes attaches catalog routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/universities", h.list)
	rg.GET("/universities/:id", h.get)
}

func (h *Handler) list(c *gin.Context) {
	snap, err := h.Repo.Snapshot(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load catalog", nil)
		return
	}

	programCounts := make(map[string]int, len(snap.Universities))
	for _, p := range snap.Programs {
		programCounts[p.UniversityID]++
	}

	resp := make([]gin.H, 0, len(snap.Universities))
	for _, u := range snap.Universities {
		item := gin.H{
			"id":           u.ID,
			"name":         u.Name,
			"programCount": programCounts[u.ID],
		}
		if u.Country != "" {
			item["country"] = u.Country
		}
		if u.City != "" {
			item["city"] = u.City
		}
		if u.Type != "" {
			item["type"] = u.Type
		}
		if len(u.RankingScores) > 0 {
			item["rankingScores"] = u.RankingScores
		}
		if u.AdmissionRate != nil {
			item["admissionRate"] = *u.AdmissionRate
		}
		resp = append(resp, item)
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) get(c *gin.Context) {
	universityID := c.Param("id")

	u, err := h.Repo.GetUniversity(c.Request.Context(), universityID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "university not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load university", nil)
		return
	}

	snap, err := h.Repo.Snapshot(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load catalog", nil)
		return
	}

	var faculty []Faculty
	for _, f := range snap.Faculty {
		if f.UniversityID == u.ID {
			faculty = append(faculty, f)
		}
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"university": u,
		"programs":   snap.ProgramsOf(u.ID),
		"faculty":    faculty,
	})
}
