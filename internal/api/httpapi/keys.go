package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/VinniZP/lingx-sub016/internal/domain"
)

// handleListKeys returns the branch's keys with their per-language values.
func (s *Server) handleListKeys(c *gin.Context) {
	branchID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, ok := s.branchAccess(c, branchID); !ok {
		return
	}
	ctx := c.Request.Context()
	keys, err := s.store.Keys().ListByBranch(ctx, branchID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	rows, err := s.store.Translations().ListByBranch(ctx, branchID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	values := make(map[int64]map[string]translationValue)
	for _, t := range rows {
		m := values[t.KeyID]
		if m == nil {
			m = make(map[string]translationValue)
			values[t.KeyID] = m
		}
		m[t.Language] = translationValue{Value: t.Value, Status: t.Status}
	}
	out := make([]keyResponse, 0, len(keys))
	for _, k := range keys {
		m := values[k.ID]
		if m == nil {
			m = map[string]translationValue{}
		}
		out = append(out, keyResponse{TranslationKey: k, Translations: m})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleCreateKey(c *gin.Context) {
	branchID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, ok := s.branchAccess(c, branchID); !ok {
		return
	}
	var req createKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	key := &domain.TranslationKey{
		BranchID:    branchID,
		Namespace:   strings.TrimSpace(req.Namespace),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	}
	if err := s.store.Keys().Create(c.Request.Context(), key); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, key)
}

func (s *Server) handleUpdateKey(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	key, ok := s.keyAccess(c, id)
	if !ok {
		return
	}
	var req updateKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Name != nil {
		key.Name = strings.TrimSpace(*req.Name)
	}
	if req.Namespace != nil {
		key.Namespace = strings.TrimSpace(*req.Namespace)
	}
	if req.Description != nil {
		key.Description = *req.Description
	}
	if key.Name == "" {
		s.respondError(c, domain.ErrValidation)
		return
	}
	if err := s.store.Keys().Update(c.Request.Context(), key); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, key)
}

func (s *Server) handleDeleteKey(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, ok := s.keyAccess(c, id); !ok {
		return
	}
	if err := s.store.Keys().Delete(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// handlePutTranslation writes one language value. The language must be
// declared for the space; the value always lands as pending.
func (s *Server) handlePutTranslation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	key, ok := s.keyAccess(c, id)
	if !ok {
		return
	}
	var req putTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ctx := c.Request.Context()
	language := strings.ToLower(c.Param("language"))
	branch, err := s.store.Branches().Get(ctx, key.BranchID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	allowed, err := s.store.Spaces().LanguageAllowed(ctx, branch.SpaceID, language)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if !allowed {
		s.respondError(c, domain.ErrLanguageNotDeclared)
		return
	}
	t := &domain.Translation{
		KeyID:    key.ID,
		Language: language,
		Value:    *req.Value,
		Status:   domain.StatusPending,
	}
	if err := s.store.Translations().Upsert(ctx, t); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (s *Server) handleSetStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	key, ok := s.keyAccess(c, id)
	if !ok {
		return
	}
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	language := strings.ToLower(c.Param("language"))
	if err := s.store.Translations().SetStatus(c.Request.Context(), key.ID, language, req.Status); err != nil {
		s.respondError(c, err)
		return
	}
	t, err := s.store.Translations().Get(c.Request.Context(), key.ID, language)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (s *Server) handleDeleteTranslation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	key, ok := s.keyAccess(c, id)
	if !ok {
		return
	}
	language := strings.ToLower(c.Param("language"))
	if err := s.store.Translations().Delete(c.Request.Context(), key.ID, language); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
