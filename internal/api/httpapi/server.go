// Package httpapi exposes the translation service over HTTP.
package httpapi

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/VinniZP/lingx-sub016/internal/domain"
	"github.com/VinniZP/lingx-sub016/internal/ports"
	"github.com/VinniZP/lingx-sub016/internal/usecase/branching"
	"github.com/VinniZP/lingx-sub016/internal/usecase/exporter"
	"github.com/VinniZP/lingx-sub016/internal/usecase/importer"
)

var validatorsOnce sync.Once

// Deps are the collaborators the server needs.
type Deps struct {
	Store     ports.Store
	Branching *branching.Service
	Importer  *importer.Service
	Exporter  *exporter.Service
	Access    ports.AccessChecker
	Log       *slog.Logger
}

// Server holds the HTTP handlers. Plain CRUD goes straight to the store;
// branch creation, diff, merge, import and export go through their
// services.
type Server struct {
	store     ports.Store
	branching *branching.Service
	importer  *importer.Service
	exporter  *exporter.Service
	access    ports.AccessChecker
	log       *slog.Logger
}

func New(d Deps) *Server {
	validatorsOnce.Do(registerValidators)
	return &Server{
		store:     d.Store,
		branching: d.Branching,
		importer:  d.Importer,
		exporter:  d.Exporter,
		access:    d.Access,
		log:       d.Log,
	}
}

// Router builds the gin engine with middleware and all routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), Actor(), RequestLogger(s.log))

	r.GET("/healthz", s.handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		v1.POST("/projects", s.handleCreateProject)
		v1.GET("/projects", s.handleListProjects)
		v1.GET("/projects/:id", s.handleGetProject)
		v1.DELETE("/projects/:id", s.handleDeleteProject)
		v1.POST("/projects/:id/spaces", s.handleCreateSpace)
		v1.GET("/projects/:id/spaces", s.handleListSpaces)

		v1.GET("/spaces/:id", s.handleGetSpace)
		v1.DELETE("/spaces/:id", s.handleDeleteSpace)
		v1.POST("/spaces/:id/languages", s.handleAddLanguage)
		v1.GET("/spaces/:id/languages", s.handleListLanguages)
		v1.DELETE("/spaces/:id/languages/:code", s.handleRemoveLanguage)
		v1.GET("/spaces/:id/branches", s.handleListBranches)

		v1.POST("/branches", s.handleCreateBranch)
		v1.GET("/branches/:id", s.handleGetBranch)
		v1.DELETE("/branches/:id", s.handleDeleteBranch)
		v1.GET("/branches/:id/diff", s.handleDiff)
		v1.POST("/branches/:id/merge", s.handleMerge)
		v1.GET("/branches/:id/keys", s.handleListKeys)
		v1.POST("/branches/:id/keys", s.handleCreateKey)
		v1.POST("/branches/:id/import", s.handleImport)
		v1.GET("/branches/:id/export", s.handleExport)

		v1.PATCH("/keys/:id", s.handleUpdateKey)
		v1.DELETE("/keys/:id", s.handleDeleteKey)
		v1.PUT("/keys/:id/translations/:language", s.handlePutTranslation)
		v1.PATCH("/keys/:id/translations/:language", s.handleSetStatus)
		v1.DELETE("/keys/:id/translations/:language", s.handleDeleteTranslation)
	}
	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	if err := s.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// pathID parses the named int64 path parameter. A malformed id responds
// 400 and reports false.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: fmt.Sprintf("invalid %s parameter", name),
			Code:  "INVALID_INPUT",
		})
		return 0, false
	}
	return id, true
}

// checkProjectAccess consults the access checker for the acting user. On
// denial the 403 response is already written.
func (s *Server) checkProjectAccess(c *gin.Context, projectID int64) bool {
	actor := c.GetString(ctxKeyActor)
	if err := s.access.VerifyProjectAccess(c.Request.Context(), actor, projectID); err != nil {
		s.respondError(c, err)
		return false
	}
	return true
}

// spaceAccess loads the space and verifies project access through it.
func (s *Server) spaceAccess(c *gin.Context, spaceID int64) (*domain.Space, bool) {
	space, err := s.store.Spaces().Get(c.Request.Context(), spaceID)
	if err != nil {
		s.respondError(c, err)
		return nil, false
	}
	if !s.checkProjectAccess(c, space.ProjectID) {
		return nil, false
	}
	return space, true
}

// branchAccess loads the branch and verifies project access through its
// space.
func (s *Server) branchAccess(c *gin.Context, branchID int64) (*domain.Branch, bool) {
	branch, err := s.store.Branches().Get(c.Request.Context(), branchID)
	if err != nil {
		s.respondError(c, err)
		return nil, false
	}
	if _, ok := s.spaceAccess(c, branch.SpaceID); !ok {
		return nil, false
	}
	return branch, true
}

// keyAccess loads the key and verifies project access through its branch.
func (s *Server) keyAccess(c *gin.Context, keyID int64) (*domain.TranslationKey, bool) {
	key, err := s.store.Keys().Get(c.Request.Context(), keyID)
	if err != nil {
		s.respondError(c, err)
		return nil, false
	}
	if _, ok := s.branchAccess(c, key.BranchID); !ok {
		return nil, false
	}
	return key, true
}
