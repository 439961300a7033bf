package branching

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/VinniZP/lingx-sub016/internal/domain"
	"github.com/VinniZP/lingx-sub016/internal/metrics"
)

// Diff compares the source branch against the target branch. It is a pure
// read: same state in, same diff out.
func (s *Service) Diff(ctx context.Context, sourceID, targetID int64) (*domain.BranchDiff, error) {
	out, err := s.diff(ctx, sourceID, targetID)
	if err != nil {
		return nil, err
	}
	return out.diff, nil
}

// diffOutcome carries everything a diff computed, so merge can reuse the
// snapshots and baseline ownership without re-reading.
type diffOutcome struct {
	source, target *domain.Branch
	sourceSnap     domain.BranchSnapshot
	diff           *domain.BranchDiff
	// baselineBranch is the branch holding the divergence baseline for this
	// pair (the one created from the other), 0 when the pair is unrelated.
	baselineBranch int64
}

func (s *Service) diff(ctx context.Context, sourceID, targetID int64) (*diffOutcome, error) {
	started := time.Now()
	if sourceID == targetID {
		return nil, fmt.Errorf("%w: source and target are the same branch", domain.ErrValidation)
	}
	src, err := s.Store.Branches().Get(ctx, sourceID)
	if err != nil {
		return nil, fmt.Errorf("load source branch: %w", err)
	}
	tgt, err := s.Store.Branches().Get(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("load target branch: %w", err)
	}
	if src.SpaceID != tgt.SpaceID {
		return nil, domain.ErrSpaceMismatch
	}

	srcSnap, err := loadSnapshot(ctx, s.Store, src.ID)
	if err != nil {
		return nil, fmt.Errorf("load source snapshot: %w", err)
	}
	tgtSnap, err := loadSnapshot(ctx, s.Store, tgt.ID)
	if err != nil {
		return nil, fmt.Errorf("load target snapshot: %w", err)
	}

	var baseline map[domain.KeyRef]map[string]string
	var baselineBranch int64
	switch {
	case src.CreatedFrom(tgt.ID):
		baselineBranch = src.ID
	case tgt.CreatedFrom(src.ID):
		baselineBranch = tgt.ID
	}
	if baselineBranch != 0 {
		baseline, err = s.Store.Baselines().ListByBranch(ctx, baselineBranch)
		if err != nil {
			return nil, fmt.Errorf("load baseline: %w", err)
		}
	}

	d := compare(src.ID, tgt.ID, srcSnap, tgtSnap, baseline)
	metrics.DiffDuration.Observe(time.Since(started).Seconds())
	metrics.DiffConflicts.Observe(float64(len(d.Conflicts)))
	return &diffOutcome{
		source:         src,
		target:         tgt,
		sourceSnap:     srcSnap,
		diff:           d,
		baselineBranch: baselineBranch,
	}, nil
}

// compare classifies every key of the union of both snapshots. With a
// baseline (one branch copied from the other) changes are judged per
// language against the recorded divergence values; without one the
// conservative rule applies.
func compare(sourceID, targetID int64, source, target domain.BranchSnapshot, baseline map[domain.KeyRef]map[string]string) *domain.BranchDiff {
	d := &domain.BranchDiff{SourceBranchID: sourceID, TargetBranchID: targetID}
	for _, ref := range unionRefs(source, target) {
		sc, inSource := source.Keys[ref]
		tc, inTarget := target.Keys[ref]
		switch {
		case inSource && !inTarget:
			d.Added = append(d.Added, domain.DiffEntry{
				Key:          ref,
				Type:         domain.DiffAdded,
				SourceValues: copyValues(sc.Values),
			})
		case !inSource && inTarget:
			d.Deleted = append(d.Deleted, domain.DiffEntry{
				Key:          ref,
				Type:         domain.DiffDeleted,
				TargetValues: copyValues(tc.Values),
			})
		default:
			entry, kind := classify(ref, sc.Values, tc.Values, baseline)
			switch kind {
			case domain.DiffModified:
				d.Modified = append(d.Modified, entry)
			case domain.DiffConflict:
				d.Conflicts = append(d.Conflicts, entry)
			}
		}
	}
	return d
}

// classify decides how a key present on both sides differs.
//
// With a baseline, each differing language is compared three ways: changed
// on both sides is a conflict, changed only in source is carried forward,
// changed only in target means target is ahead and nothing is reported. A
// value the source removed is not carried either; removals only travel
// through explicit resolutions.
//
// Without a baseline nothing proves which side moved, so the conservative
// rule applies: the source may only add languages. Any language the target
// has that disagrees with (or is missing from) the source is a conflict.
func classify(ref domain.KeyRef, src, tgt map[string]string, baseline map[domain.KeyRef]map[string]string) (domain.DiffEntry, string) {
	var forward, conflicting []string
	related := baseline != nil
	base := baseline[ref]
	for _, lang := range unionLangs(src, tgt) {
		sv, sok := src[lang]
		tv, tok := tgt[lang]
		if sok == tok && sv == tv {
			continue
		}
		if related {
			bv, bok := base[lang]
			changedSrc := sok != bok || sv != bv
			changedTgt := tok != bok || tv != bv
			switch {
			case changedSrc && changedTgt:
				conflicting = append(conflicting, lang)
			case changedSrc && sok:
				forward = append(forward, lang)
			}
			continue
		}
		if tok {
			conflicting = append(conflicting, lang)
			continue
		}
		forward = append(forward, lang)
	}
	if len(conflicting) > 0 {
		return domain.DiffEntry{
			Key:                  ref,
			Type:                 domain.DiffConflict,
			SourceValues:         copyValues(src),
			TargetValues:         copyValues(tgt),
			ConflictingLanguages: conflicting,
		}, domain.DiffConflict
	}
	if len(forward) > 0 {
		return domain.DiffEntry{
			Key:              ref,
			Type:             domain.DiffModified,
			SourceValues:     copyValues(src),
			TargetValues:     copyValues(tgt),
			ChangedLanguages: forward,
		}, domain.DiffModified
	}
	return domain.DiffEntry{}, ""
}

func unionRefs(a, b domain.BranchSnapshot) []domain.KeyRef {
	seen := make(map[domain.KeyRef]struct{}, len(a.Keys)+len(b.Keys))
	for r := range a.Keys {
		seen[r] = struct{}{}
	}
	for r := range b.Keys {
		seen[r] = struct{}{}
	}
	refs := make([]domain.KeyRef, 0, len(seen))
	for r := range seen {
		refs = append(refs, r)
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Less(refs[j]) })
	return refs
}

func unionLangs(a, b map[string]string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	for l := range a {
		seen[l] = struct{}{}
	}
	for l := range b {
		seen[l] = struct{}{}
	}
	langs := make([]string, 0, len(seen))
	for l := range seen {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs
}

func copyValues(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
