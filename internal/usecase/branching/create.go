package branching

import (
	"context"
	"fmt"
	"strings"

	"github.com/VinniZP/lingx-sub016/internal/domain"
	"github.com/VinniZP/lingx-sub016/internal/metrics"
	"github.com/VinniZP/lingx-sub016/internal/ports"
)

type CreateBranchArgs struct {
	SpaceID        int64
	Name           string
	Slug           string // optional, derived from Name when empty
	SourceBranchID int64
	Actor          string
}

type CreateBranchResult struct {
	Branch   *domain.Branch
	KeyCount int64
}

// CreateBranch copies the source branch into a new branch of the same
// space. Keys, translations and the divergence baseline are written in one
// transaction; copied values start over as pending.
func (s *Service) CreateBranch(ctx context.Context, in CreateBranchArgs) (CreateBranchResult, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return CreateBranchResult{}, fmt.Errorf("%w: branch name is required", domain.ErrValidation)
	}
	src, err := s.Store.Branches().Get(ctx, in.SourceBranchID)
	if err != nil {
		return CreateBranchResult{}, fmt.Errorf("load source branch: %w", err)
	}
	if src.SpaceID != in.SpaceID {
		return CreateBranchResult{}, fmt.Errorf("source branch %d: %w", src.ID, domain.ErrSpaceMismatch)
	}
	slug := strings.ToLower(strings.TrimSpace(in.Slug))
	if slug == "" {
		slug = domain.Slugify(name)
	}
	if slug == "" {
		return CreateBranchResult{}, fmt.Errorf("%w: cannot derive a slug from %q", domain.ErrValidation, name)
	}

	b := &domain.Branch{
		SpaceID:        in.SpaceID,
		Name:           name,
		Slug:           slug,
		SourceBranchID: &src.ID,
	}
	var copied int64
	err = s.Store.WithinTx(ctx, func(st ports.Store) error {
		if err := st.Branches().Create(ctx, b); err != nil {
			return err
		}
		n, err := st.Branches().CopyContent(ctx, src.ID, b.ID)
		if err != nil {
			return err
		}
		copied = n
		return st.Baselines().Capture(ctx, b.ID, src.ID)
	})
	if err != nil {
		return CreateBranchResult{}, err
	}

	metrics.BranchCreates.Inc()
	metrics.CopiedKeys.Observe(float64(copied))
	s.Log.Info("branch created",
		"branch_id", b.ID, "space_id", b.SpaceID, "slug", b.Slug,
		"source_branch_id", src.ID, "copied_keys", copied)
	s.publish(ctx, domain.NewEvent(domain.EventBranchCreated, in.Actor, domain.BranchCreatedData{
		SpaceID:        b.SpaceID,
		BranchID:       b.ID,
		Slug:           b.Slug,
		SourceBranchID: src.ID,
		CopiedKeys:     copied,
	}))
	return CreateBranchResult{Branch: b, KeyCount: copied}, nil
}
