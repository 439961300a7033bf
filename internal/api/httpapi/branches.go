package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/VinniZP/lingx-sub016/internal/domain"
	"github.com/VinniZP/lingx-sub016/internal/usecase/branching"
)

func (s *Server) handleCreateBranch(c *gin.Context) {
	var req createBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if _, ok := s.spaceAccess(c, req.SpaceID); !ok {
		return
	}
	res, err := s.branching.CreateBranch(c.Request.Context(), branching.CreateBranchArgs{
		SpaceID:        req.SpaceID,
		Name:           req.Name,
		Slug:           req.Slug,
		SourceBranchID: req.SourceBranchID,
		Actor:          c.GetString(ctxKeyActor),
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, branchResponse{Branch: res.Branch, KeyCount: res.KeyCount})
}

func (s *Server) handleGetBranch(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	branch, ok := s.branchAccess(c, id)
	if !ok {
		return
	}
	n, err := s.store.Branches().CountKeys(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, branchResponse{Branch: branch, KeyCount: n})
}

func (s *Server) handleDeleteBranch(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	branch, ok := s.branchAccess(c, id)
	if !ok {
		return
	}
	if branch.IsDefault {
		s.respondError(c, domain.ErrProtectedBranch)
		return
	}
	if err := s.store.Branches().Delete(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// handleDiff compares the branch against ?target=<id>.
func (s *Server) handleDiff(c *gin.Context) {
	sourceID, ok := pathID(c, "id")
	if !ok {
		return
	}
	targetID, err := strconv.ParseInt(c.Query("target"), 10, 64)
	if err != nil || targetID <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "target query parameter is required",
			Code:  "INVALID_INPUT",
		})
		return
	}
	if _, ok := s.branchAccess(c, sourceID); !ok {
		return
	}
	diff, err := s.branching.Diff(c.Request.Context(), sourceID, targetID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, diff)
}

// handleMerge merges the branch into the target named in the body. An
// unresolved-conflict outcome is a successful request: 200 with success
// false and the conflict list.
func (s *Server) handleMerge(c *gin.Context) {
	sourceID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req mergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if _, ok := s.branchAccess(c, sourceID); !ok {
		return
	}
	resolutions := make([]domain.Resolution, 0, len(req.Resolutions))
	for _, r := range req.Resolutions {
		resolutions = append(resolutions, domain.Resolution{
			Key:    domain.KeyRef{Namespace: r.Key.Namespace, Name: r.Key.Name},
			Chosen: r.Chosen,
		})
	}
	res, err := s.branching.Merge(c.Request.Context(), branching.MergeArgs{
		SourceBranchID: sourceID,
		TargetBranchID: req.TargetBranchID,
		Resolutions:    resolutions,
		Actor:          c.GetString(ctxKeyActor),
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
