package server

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/spigell/resume-radar/internal/ai"
	"github.com/spigell/resume-radar/internal/analysis"
	"github.com/spigell/resume-radar/internal/naukri"
	"github.com/spigell/resume-radar/internal/store"
)

type searchRequest struct {
	Keyword    string `form:"keyword" binding:"required"`
	Location   string `form:"location" binding:"required"`
	Experience string `form:"experience"`
	Skills     string `form:"skills"`
}

type chatRequest struct {
	Message string         `json:"message" binding:"required"`
	Context ai.ChatContext `json:"context"`
}

func detail(c *gin.Context, status int, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"detail": err.Error()})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) analyze(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxUploadMB<<20)

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			detail(c, http.StatusRequestEntityTooLarge, err)
			return
		}
		detail(c, http.StatusBadRequest, errors.New("multipart field \"file\" is required"))
		return
	}

	file, err := header.Open()
	if err != nil {
		detail(c, http.StatusBadRequest, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		detail(c, http.StatusBadRequest, err)
		return
	}

	res, err := s.deps.Analyzer.Analyze(c.Request.Context(), analysis.Request{
		Document: data,
		Filename: header.Filename,
		UserID:   strings.TrimSpace(c.GetHeader(UserIDHeader)),
	})
	if err != nil {
		detail(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, res.Profile)
}

func (s *Server) searchJobs(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		detail(c, http.StatusBadRequest, err)
		return
	}

	experience := strings.TrimSpace(req.Experience)
	if experience == "" {
		experience = "0"
	}

	jobs := s.deps.Jobs.Search(c.Request.Context(), naukri.SearchQuery{
		Keyword:    strings.TrimSpace(req.Keyword),
		Location:   strings.TrimSpace(req.Location),
		Experience: experience,
		Skills:     splitSkills(req.Skills),
	})

	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func (s *Server) getProfile(c *gin.Context) {
	rec, err := s.deps.Profiles.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		detail(c, http.StatusNotFound, err)
		return
	}
	if err != nil {
		detail(c, http.StatusInternalServerError, err)
		return
	}
	if len(rec.Profile) == 0 {
		detail(c, http.StatusNotFound, store.ErrNotFound)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", rec.Profile)
}

func (s *Server) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusBadRequest, err)
		return
	}

	reply, err := s.deps.Coach.Reply(c.Request.Context(), req.Context, req.Message)
	if errors.Is(err, ai.ErrEmptyMessage) {
		detail(c, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		detail(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": reply})
}

func splitSkills(raw string) []string {
	var skills []string
	for _, skill := range strings.Split(raw, ",") {
		if skill = strings.TrimSpace(skill); skill != "" {
			skills = append(skills, skill)
		}
	}
	return skills
}
