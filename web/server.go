// Package web serves the browser front end: a keyword form, a progress page
// that polls task status, and the CSV download of a finished task.
package web

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pevans/berita/enrich"
	"github.com/pevans/berita/export"
	"github.com/pevans/berita/tasks"
)

// DefaultMaxArticles is used when the form's max_articles is missing or not
// a non-negative integer.
const DefaultMaxArticles = 20

// Submitter starts a background task for a keyword and returns its id.
type Submitter interface {
	Submit(keyword string, max int) string
}

// Server is the HTTP front end over a task store.
type Server struct {
	store  *tasks.Store
	runner Submitter
	logger *slog.Logger
}

// NewServer creates a server that submits work to runner and reads progress
// from store.
func NewServer(store *tasks.Store, runner Submitter, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		store:  store,
		runner: runner,
		logger: logger.With("component", "web"),
	}
}

// SetupRouter configures the Gin router with every front end route.
func (s *Server) SetupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())
	router.SetHTMLTemplate(template.Must(template.New("pages").Parse(pageTemplates)))

	router.GET("/", s.HandleIndex)
	router.POST("/", s.HandleSubmit)
	router.GET("/progress/:id", s.HandleProgress)
	router.GET("/status/:id", s.HandleStatus)
	router.GET("/download/:id", s.HandleDownload)

	return router
}

// requestLogger logs one line per request through slog.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// errorResponse creates the JSON error body.
func errorResponse(message string) gin.H {
	return gin.H{"error": message}
}

// HandleIndex handles GET /.
func (s *Server) HandleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index", gin.H{"DefaultMax": DefaultMaxArticles})
}

// HandleSubmit handles POST /: it starts a task and redirects to its
// progress page.
func (s *Server) HandleSubmit(c *gin.Context) {
	keyword := strings.TrimSpace(c.PostForm("keyword"))
	max := parseMax(c.DefaultPostForm("max_articles", strconv.Itoa(DefaultMaxArticles)))

	id := s.runner.Submit(keyword, max)
	s.logger.Info("task submitted", "task", id, "keyword", keyword, "max_articles", max)

	c.Redirect(http.StatusFound, "/progress/"+id)
}

// parseMax accepts only a plain non-negative integer.
func parseMax(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.TrimLeft(raw, "0123456789") != "" {
		return DefaultMaxArticles
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return DefaultMaxArticles
	}
	return n
}

// HandleProgress handles GET /progress/{id}.
func (s *Server) HandleProgress(c *gin.Context) {
	id := c.Param("id")
	if !s.store.Exists(id) {
		c.String(http.StatusNotFound, "Task not found")
		return
	}
	c.HTML(http.StatusOK, "progress", gin.H{"TaskID": id, "Sectors": sectorLegend()})
}

// sector is one row of the category legend on the progress page.
type sector struct {
	Code string
	Name string
}

func sectorLegend() []sector {
	legend := []sector{}
	for _, code := range slices.Sorted(maps.Keys(enrich.Categories)) {
		legend = append(legend, sector{Code: code, Name: enrich.CategoryName(code)})
	}
	return legend
}

// HandleStatus handles GET /status/{id}.
func (s *Server) HandleStatus(c *gin.Context) {
	progress, err := s.store.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, errorResponse("task not found"))
		return
	}
	c.JSON(http.StatusOK, progress)
}

// HandleDownload handles GET /download/{id}. Only finished tasks can be
// downloaded.
func (s *Server) HandleDownload(c *gin.Context) {
	id := c.Param("id")
	rows, err := s.store.Results(id)
	if err != nil {
		if !errors.Is(err, tasks.ErrTaskNotFound) && !errors.Is(err, tasks.ErrTaskNotFinished) {
			s.logger.Error("failed to load results", "task", id, "error", err)
		}
		c.String(http.StatusNotFound, "Data belum siap atau task tidak ditemukan.")
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment;filename=berita_%s.csv", id))
	c.Status(http.StatusOK)
	if err := export.WriteCSV(c.Writer, rows); err != nil {
		s.logger.Error("failed to write CSV", "task", id, "error", err)
	}
}
