package ui

import (
	"bytes"
	"html/template"
	"log"
	"net/http"

	"goscores/domain/stats"
	"goscores/internal/analysis"
	"goscores/internal/report"

	"github.com/gin-gonic/gin"
)

type reportPage struct {
	Title string
	Body  template.HTML
}

func (s *Server) handleReport(c *gin.Context) {
	sel := selectionFromQuery(c)
	ds := s.sessions.Dataset()

	var snap stats.Snapshot
	if !s.withComputeSlot(c, "report", func() { snap = analysis.Compute(ds, sel) }) {
		return
	}
	md := report.Markdown(ds.Info(), snap)

	if c.Query("format") == "md" {
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(md))
		return
	}

	s.renderTemplate(c, "report.html", reportPage{
		Title: "Dashboard Educativo - " + sel.String(),
		Body:  template.HTML(report.HTML(md)),
	})
}

// renderTemplate executes into a buffer first so a failing template never
// leaves a half-written response
func (s *Server) renderTemplate(c *gin.Context, templateName string, data interface{}) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		log.Printf("Template error for %s: %v", templateName, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Template rendering failed", "code": "INTERNAL_ERROR"})
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Writer.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(c.Writer); err != nil {
		log.Printf("Error writing template response: %v", err)
	}
}
