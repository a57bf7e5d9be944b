package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// handleHealthz godoc
// @Summary      Health check
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /healthz [get]
func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleListRuns godoc
// @Summary      List postprocessing runs
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  store.Run
// @Router       /runs [get]
func (s *Server) handleListRuns(c *gin.Context) {
	runs, err := s.store.ListRuns()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, runs)
}

// handleGetRun godoc
// @Summary      Get a single run
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "run id"
// @Success      200  {object}  store.Run
// @Failure      404  {object}  map[string]string
// @Router       /runs/{id} [get]
func (s *Server) handleGetRun(c *gin.Context) {
	run, err := s.store.GetRun(c.Param("id"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, run)
}

// handleListSessions godoc
// @Summary      List a run's session statistics
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "run id"
// @Success      200  {array}  store.SessionStat
// @Router       /runs/{id}/sessions [get]
func (s *Server) handleListSessions(c *gin.Context) {
	rows, err := s.store.ListSessionStats(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}
