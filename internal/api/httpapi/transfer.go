package httpapi

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/VinniZP/lingx-sub016/internal/domain"
	"github.com/VinniZP/lingx-sub016/internal/usecase/exporter"
	"github.com/VinniZP/lingx-sub016/internal/usecase/importer"
)

// handleImport loads a translation file into one branch and language.
func (s *Server) handleImport(c *gin.Context) {
	branchID, ok := pathID(c, "id")
	if !ok {
		return
	}
	branch, ok := s.branchAccess(c, branchID)
	if !ok {
		return
	}
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	content, err := base64.StdEncoding.DecodeString(req.Content)
	if err != nil {
		badRequest(c, fmt.Errorf("content must be base64: %w", err))
		return
	}
	language := strings.ToLower(strings.TrimSpace(req.Language))
	allowed, err := s.store.Spaces().LanguageAllowed(c.Request.Context(), branch.SpaceID, language)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if !allowed {
		s.respondError(c, domain.ErrLanguageNotDeclared)
		return
	}
	res, err := s.importer.Import(c.Request.Context(), importer.ImportArgs{
		BranchID: branchID,
		Language: language,
		Format:   req.Format,
		Content:  content,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// handleExport streams one branch and language as a file download.
func (s *Server) handleExport(c *gin.Context) {
	branchID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, ok := s.branchAccess(c, branchID); !ok {
		return
	}
	format := c.Query("format")
	language := strings.ToLower(c.Query("language"))
	if format == "" || language == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "format and language query parameters are required",
			Code:  "INVALID_INPUT",
		})
		return
	}
	res, err := s.exporter.Export(c.Request.Context(), exporter.ExportArgs{
		BranchID: branchID,
		Language: language,
		Format:   format,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	c.Data(http.StatusOK, contentType(format), res.Content)
}

func contentType(format string) string {
	switch format {
	case "json":
		return "application/json"
	case "csv":
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}
