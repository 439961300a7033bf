package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VinniZP/lingx-sub016/internal/domain"
)

// respondError translates a domain error into an HTTP status and code.
// Unrecognized errors are logged and reported as an opaque 500.
func (s *Server) respondError(c *gin.Context, err error) {
	type mapping struct {
		target error
		status int
		code   string
	}
	for _, m := range []mapping{
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrSlugTaken, http.StatusConflict, "SLUG_TAKEN"},
		{domain.ErrDuplicateKey, http.StatusConflict, "DUPLICATE_KEY"},
		{domain.ErrProtectedBranch, http.StatusConflict, "PROTECTED_BRANCH"},
		{domain.ErrConcurrentModification, http.StatusConflict, "RETRY_DIFF"},
		{domain.ErrSpaceMismatch, http.StatusBadRequest, "SPACE_MISMATCH"},
		{domain.ErrLanguageNotDeclared, http.StatusBadRequest, "LANGUAGE_NOT_DECLARED"},
		{domain.ErrUnknownFormat, http.StatusBadRequest, "UNKNOWN_FORMAT"},
		{domain.ErrValidation, http.StatusBadRequest, "INVALID_INPUT"},
		{domain.ErrAccessDenied, http.StatusForbidden, "ACCESS_DENIED"},
	} {
		if errors.Is(err, m.target) {
			c.JSON(m.status, ErrorResponse{Error: err.Error(), Code: m.code})
			return
		}
	}
	s.log.Error("request failed",
		"error", err,
		"path", c.Request.URL.Path,
		"request_id", c.GetString(ctxKeyRequestID),
	)
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error: "internal error",
		Code:  "INTERNAL",
	})
}

// badRequest reports a request that failed binding or basic parsing.
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "invalid request body",
		Code:    "INVALID_INPUT",
		Details: err.Error(),
	})
}
