package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drpaneas/repolens/internal/analyzer"
	"github.com/drpaneas/repolens/internal/ghcrawl"
	"github.com/drpaneas/repolens/internal/profile"
)

type linkRequest struct {
	Link string `json:"link" binding:"required"`
}

type analyzeRequest struct {
	Link          string `json:"link" binding:"required"`
	UseLLMScoring bool   `json:"use_llm_scoring"`
}

type request2Response struct {
	AIReport string `json:"ai_report"`
	Reco     string `json:"reco"`
}

func parseLink(c *gin.Context, link string) (owner, repo string, ok bool) {
	owner, repo, err := ghcrawl.ParseRepoLink(link)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", "", false
	}
	return owner, repo, true
}

func analyzeError(c *gin.Context, err error) {
	if errors.Is(err, analyzer.ErrRepoUnavailable) || errors.Is(err, profile.ErrProfileUnavailable) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	owner, repo, ok := parseLink(c, req.Link)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	report, err := s.analyzer.Analyze(ctx, owner, repo, req.UseLLMScoring)
	if err != nil {
		analyzeError(c, err)
		return
	}
	report.Narrative = s.analyzer.Narrate(ctx, report)
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleModernize(c *gin.Context) {
	var req linkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	owner, repo, ok := parseLink(c, req.Link)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.advisor.Analyze(c.Request.Context(), owner, repo))
}

// handleRequest2 runs a deterministic analysis and the modernization advice
// and returns only their narratives.
func (s *Server) handleRequest2(c *gin.Context) {
	var req linkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	owner, repo, ok := parseLink(c, req.Link)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	report, err := s.analyzer.Analyze(ctx, owner, repo, false)
	if err != nil {
		analyzeError(c, err)
		return
	}
	c.JSON(http.StatusOK, request2Response{
		AIReport: s.analyzer.Narrate(ctx, report),
		Reco:     s.advisor.Analyze(ctx, owner, repo).Narrative,
	})
}

func (s *Server) analyzeProfile(c *gin.Context) (*profile.Report, bool) {
	var req linkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	username, err := ghcrawl.ParseProfileLink(req.Link)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	ctx := c.Request.Context()
	report, err := s.profiles.Analyze(ctx, username)
	if err != nil {
		analyzeError(c, err)
		return nil, false
	}
	report.Narrative = s.profiles.Narrate(ctx, report)
	return report, true
}

func (s *Server) handleProfile(c *gin.Context) {
	if report, ok := s.analyzeProfile(c); ok {
		c.JSON(http.StatusOK, report)
	}
}

// handleRequest returns the profile feedback split into its headed
// sections.
func (s *Server) handleRequest(c *gin.Context) {
	if report, ok := s.analyzeProfile(c); ok {
		c.JSON(http.StatusOK, profile.Sections(report.Narrative))
	}
}
