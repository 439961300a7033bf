package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/VinniZP/lingx-sub016/internal/domain"
	"github.com/VinniZP/lingx-sub016/internal/ports"
)

// handleCreateSpace creates a space together with its default branch, so
// a space is never observable without one.
func (s *Server) handleCreateSpace(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !s.checkProjectAccess(c, projectID) {
		return
	}
	var req createSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if _, err := s.store.Projects().Get(c.Request.Context(), projectID); err != nil {
		s.respondError(c, err)
		return
	}
	space := &domain.Space{
		ProjectID: projectID,
		Name:      strings.TrimSpace(req.Name),
	}
	var branch *domain.Branch
	err := s.store.WithinTx(c.Request.Context(), func(st ports.Store) error {
		if err := st.Spaces().Create(c.Request.Context(), space); err != nil {
			return err
		}
		branch = &domain.Branch{
			SpaceID:   space.ID,
			Name:      "main",
			Slug:      "main",
			IsDefault: true,
		}
		return st.Branches().Create(c.Request.Context(), branch)
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"space": space, "default_branch": branch})
}

func (s *Server) handleListSpaces(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !s.checkProjectAccess(c, projectID) {
		return
	}
	if _, err := s.store.Projects().Get(c.Request.Context(), projectID); err != nil {
		s.respondError(c, err)
		return
	}
	spaces, err := s.store.Spaces().ListByProject(c.Request.Context(), projectID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, spaces)
}

func (s *Server) handleGetSpace(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	space, ok := s.spaceAccess(c, id)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, space)
}

func (s *Server) handleDeleteSpace(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, ok := s.spaceAccess(c, id); !ok {
		return
	}
	if err := s.store.Spaces().Delete(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleAddLanguage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, ok := s.spaceAccess(c, id); !ok {
		return
	}
	var req addLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	sl := &domain.SpaceLanguage{
		SpaceID:  id,
		Language: strings.ToLower(strings.TrimSpace(req.Language)),
	}
	if err := s.store.Spaces().AddLanguage(c.Request.Context(), sl); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sl)
}

func (s *Server) handleListLanguages(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, ok := s.spaceAccess(c, id); !ok {
		return
	}
	langs, err := s.store.Spaces().ListLanguages(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, langs)
}

func (s *Server) handleRemoveLanguage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, ok := s.spaceAccess(c, id); !ok {
		return
	}
	code := strings.ToLower(c.Param("code"))
	if err := s.store.Spaces().RemoveLanguage(c.Request.Context(), id, code); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// handleListBranches lists the branches of a space with their key counts.
func (s *Server) handleListBranches(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, ok := s.spaceAccess(c, id); !ok {
		return
	}
	branches, err := s.store.Branches().ListBySpace(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	out := make([]branchResponse, 0, len(branches))
	for _, b := range branches {
		n, err := s.store.Branches().CountKeys(c.Request.Context(), b.ID)
		if err != nil {
			s.respondError(c, err)
			return
		}
		out = append(out, branchResponse{Branch: b, KeyCount: n})
	}
	c.JSON(http.StatusOK, out)
}
