package branching

import (
	"context"
	"fmt"
	"sort"

	"github.com/VinniZP/lingx-sub016/internal/domain"
	"github.com/VinniZP/lingx-sub016/internal/metrics"
	"github.com/VinniZP/lingx-sub016/internal/ports"
)

type MergeArgs struct {
	SourceBranchID int64
	TargetBranchID int64
	Resolutions    []domain.Resolution
	Actor          string
}

// Merge applies the source branch onto the target branch. Every current
// conflict needs a resolution or nothing at all is written and the full
// conflict list comes back with Success false. All writes happen in one
// transaction that re-validates the target against the diff before
// touching it; deleted keys are only removed on an explicit delete
// resolution.
func (s *Service) Merge(ctx context.Context, in MergeArgs) (*domain.MergeResult, error) {
	chosen, err := indexResolutions(in.Resolutions)
	if err != nil {
		return nil, err
	}
	out, err := s.diff(ctx, in.SourceBranchID, in.TargetBranchID)
	if err != nil {
		return nil, err
	}
	d := out.diff

	var unresolved int
	for _, c := range d.Conflicts {
		if _, ok := chosen[c.Key]; !ok {
			unresolved++
		}
	}
	if unresolved > 0 {
		metrics.Merges.WithLabelValues(metrics.OutcomeConflicts).Inc()
		s.Log.Info("merge blocked by conflicts",
			"source_branch_id", in.SourceBranchID, "target_branch_id", in.TargetBranchID,
			"conflicts", len(d.Conflicts), "unresolved", unresolved)
		return &domain.MergeResult{Success: false, Conflicts: d.Conflicts}, nil
	}

	plan, err := buildPlan(d, chosen)
	if err != nil {
		return nil, err
	}
	if plan.empty() {
		s.Log.Info("merge had nothing to apply",
			"source_branch_id", in.SourceBranchID, "target_branch_id", in.TargetBranchID)
		metrics.Merges.WithLabelValues(metrics.OutcomeApplied).Inc()
		return &domain.MergeResult{Success: true}, nil
	}

	err = s.Store.WithinTx(ctx, func(st ports.Store) error {
		cur, err := loadSnapshot(ctx, st, out.target.ID)
		if err != nil {
			return err
		}
		if err := plan.validate(cur); err != nil {
			return err
		}
		if err := plan.apply(ctx, st, out); err != nil {
			return err
		}
		return st.Branches().Touch(ctx, out.target.ID)
	})
	if err != nil {
		metrics.Merges.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, err
	}

	metrics.Merges.WithLabelValues(metrics.OutcomeApplied).Inc()
	s.Log.Info("branches merged",
		"source_branch_id", out.source.ID, "target_branch_id", out.target.ID,
		"added", len(plan.adds), "updated", len(plan.updates)+len(plan.replaces),
		"deleted", len(plan.removes), "conflicts_resolved", len(plan.replaces)+len(plan.keeps))
	s.publish(ctx, domain.NewEvent(domain.EventBranchMerged, in.Actor, domain.BranchMergedData{
		SpaceID:           out.target.SpaceID,
		SourceBranchID:    out.source.ID,
		TargetBranchID:    out.target.ID,
		KeysAdded:         len(plan.adds),
		KeysUpdated:       len(plan.updates) + len(plan.replaces),
		KeysDeleted:       len(plan.removes),
		ConflictsResolved: len(plan.replaces) + len(plan.keeps),
	}))
	return &domain.MergeResult{Success: true}, nil
}

func indexResolutions(rs []domain.Resolution) (map[domain.KeyRef]string, error) {
	out := make(map[domain.KeyRef]string, len(rs))
	for _, r := range rs {
		if !r.Valid() {
			return nil, fmt.Errorf("%w: invalid resolution for %q", domain.ErrValidation, r.Key.Label())
		}
		if prev, ok := out[r.Key]; ok && prev != r.Chosen {
			return nil, fmt.Errorf("%w: contradictory resolutions for %q", domain.ErrValidation, r.Key.Label())
		}
		out[r.Key] = r.Chosen
	}
	return out, nil
}

// mergePlan is the write set of a merge, grouped by how each key is
// applied. Resolutions that match no current diff entry are ignored so a
// repeated merge call with the same arguments stays valid.
type mergePlan struct {
	adds     []domain.DiffEntry // create key in target with source values
	updates  []domain.DiffEntry // upsert the changed languages
	replaces []domain.DiffEntry // conflict resolved to source: target becomes source
	keeps    []domain.DiffEntry // conflict resolved to target: values untouched
	removes  []domain.DiffEntry // deleted entry with explicit delete resolution
}

func buildPlan(d *domain.BranchDiff, chosen map[domain.KeyRef]string) (*mergePlan, error) {
	p := &mergePlan{adds: d.Added, updates: d.Modified}
	for _, c := range d.Conflicts {
		switch chosen[c.Key] {
		case domain.ResolveSource:
			p.replaces = append(p.replaces, c)
		case domain.ResolveTarget:
			p.keeps = append(p.keeps, c)
		case domain.ResolveDelete:
			return nil, fmt.Errorf("%w: conflict %q accepts source or target, not delete", domain.ErrValidation, c.Key.Label())
		}
	}
	for _, e := range d.Deleted {
		switch chosen[e.Key] {
		case domain.ResolveDelete:
			p.removes = append(p.removes, e)
		case domain.ResolveSource:
			return nil, fmt.Errorf("%w: %q has no source version to restore, use delete or target", domain.ErrValidation, e.Key.Label())
		}
	}
	return p, nil
}

func (p *mergePlan) empty() bool {
	return len(p.adds) == 0 && len(p.updates) == 0 && len(p.replaces) == 0 &&
		len(p.keeps) == 0 && len(p.removes) == 0
}

// validate compares the target's current state with what the diff saw.
// Any drift on a key the plan touches aborts the merge; the caller gets a
// retryable concurrent-modification error instead of silently overwriting
// someone's work.
func (p *mergePlan) validate(cur domain.BranchSnapshot) error {
	for _, e := range p.adds {
		if _, ok := cur.Keys[e.Key]; ok {
			return fmt.Errorf("key %q appeared in target: %w", e.Key.Label(), domain.ErrConcurrentModification)
		}
	}
	for _, group := range [][]domain.DiffEntry{p.updates, p.replaces, p.keeps, p.removes} {
		for _, e := range group {
			kc, ok := cur.Keys[e.Key]
			if !ok || !equalValues(kc.Values, e.TargetValues) {
				return fmt.Errorf("key %q changed in target: %w", e.Key.Label(), domain.ErrConcurrentModification)
			}
		}
	}
	return nil
}

func (p *mergePlan) apply(ctx context.Context, st ports.Store, out *diffOutcome) error {
	targetID := out.target.ID
	for _, e := range p.adds {
		k := &domain.TranslationKey{
			BranchID:    targetID,
			Namespace:   e.Key.Namespace,
			Name:        e.Key.Name,
			Description: out.sourceSnap.Keys[e.Key].Description,
		}
		if err := st.Keys().Create(ctx, k); err != nil {
			return err
		}
		if err := upsertValues(ctx, st, k.ID, e.SourceValues, sortedLangs(e.SourceValues)); err != nil {
			return err
		}
	}
	for _, e := range p.updates {
		k, err := st.Keys().GetByRef(ctx, targetID, e.Key)
		if err != nil {
			return err
		}
		if err := upsertValues(ctx, st, k.ID, e.SourceValues, e.ChangedLanguages); err != nil {
			return err
		}
	}
	for _, e := range p.replaces {
		k, err := st.Keys().GetByRef(ctx, targetID, e.Key)
		if err != nil {
			return err
		}
		if err := upsertValues(ctx, st, k.ID, e.SourceValues, sortedLangs(e.SourceValues)); err != nil {
			return err
		}
		// target-only languages go away: the key becomes the source version
		for _, lang := range sortedLangs(e.TargetValues) {
			if _, ok := e.SourceValues[lang]; ok {
				continue
			}
			if err := st.Translations().Delete(ctx, k.ID, lang); err != nil {
				return err
			}
		}
	}
	for _, e := range p.removes {
		if err := st.Keys().DeleteByRef(ctx, targetID, e.Key); err != nil {
			return err
		}
	}
	return p.advanceBaseline(ctx, st, out)
}

// advanceBaseline moves the recorded divergence point of the related pair
// onto the source side for every key the merge touched. This is what keeps
// a re-diff clean no matter how conflicts were resolved.
func (p *mergePlan) advanceBaseline(ctx context.Context, st ports.Store, out *diffOutcome) error {
	if out.baselineBranch == 0 {
		return nil
	}
	for _, group := range [][]domain.DiffEntry{p.adds, p.updates, p.replaces, p.keeps} {
		for _, e := range group {
			if err := st.Baselines().ReplaceKey(ctx, out.baselineBranch, e.Key, e.SourceValues); err != nil {
				return err
			}
		}
	}
	for _, e := range p.removes {
		if err := st.Baselines().DeleteKey(ctx, out.baselineBranch, e.Key); err != nil {
			return err
		}
	}
	return nil
}

func upsertValues(ctx context.Context, st ports.Store, keyID int64, values map[string]string, langs []string) error {
	for _, lang := range langs {
		v, ok := values[lang]
		if !ok {
			continue
		}
		t := &domain.Translation{KeyID: keyID, Language: lang, Value: v, Status: domain.StatusPending}
		if err := st.Translations().Upsert(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

func sortedLangs(m map[string]string) []string {
	langs := make([]string, 0, len(m))
	for l := range m {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs
}

func equalValues(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}
