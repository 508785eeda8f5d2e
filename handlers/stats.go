package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jatinbuilds/trio/backend/go-services/internal/stats"
)

// StatsHandler serves the public coding-stats endpoints. These never fail:
// an unreachable or unconfigured provider degrades to demo data with
// isDemo set, so the portfolio page always renders.
type StatsHandler struct {
	svc *stats.Service
}

func NewStatsHandler(s *stats.Service) *StatsHandler {
	return &StatsHandler{svc: s}
}

// Register routes under /stats
func (h *StatsHandler) Register(rg *gin.RouterGroup) {
	s := rg.Group("/stats")
	s.GET("/github", h.GitHub)
	s.GET("/leetcode", h.LeetCode)
	s.GET("/linkedin", h.LinkedIn)
}

func (h *StatsHandler) GitHub(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.GitHub(c.Request.Context()))
}

func (h *StatsHandler) LeetCode(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.LeetCode(c.Request.Context()))
}

func (h *StatsHandler) LinkedIn(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.LinkedIn(c.Request.Context()))
}
