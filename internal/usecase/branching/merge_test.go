package branching

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/VinniZP/lingx-sub016/internal/domain"
)

// conflictFixture seeds "title" on main, branches off, then edits the key
// on both sides so the pair conflicts on en.
func conflictFixture(t *testing.T) (*fixture, *domain.Branch, domain.KeyRef) {
	t.Helper()
	f := newFixture(t)
	ref := domain.KeyRef{Name: "title"}
	f.seedKey(t, f.main.ID, "", "title", map[string]string{"en": "Hello"})
	feature := f.branchOff(t, "feature")
	f.drainEvent(t)
	f.setValue(t, feature.ID, ref, "en", "Feature")
	f.setValue(t, f.main.ID, ref, "en", "Main")
	return f, feature, ref
}

func (f *fixture) requireNoEvent(t *testing.T) {
	t.Helper()
	select {
	case ev := <-f.events.Events():
		t.Fatalf("unexpected event %s", ev.Type)
	default:
	}
}

func TestMergeFastForward(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	title := domain.KeyRef{Name: "title"}
	f.seedKey(t, f.main.ID, "", "title", map[string]string{"en": "Hello", "de": "Hallo"})
	feature := f.branchOff(t, "feature")
	f.drainEvent(t)

	f.setValue(t, feature.ID, title, "en", "Hi")
	cta := &domain.TranslationKey{BranchID: feature.ID, Namespace: "nav", Name: "cta", Description: "Button label"}
	require.NoError(t, f.st.Keys().Create(ctx, cta))
	require.NoError(t, f.st.Translations().Upsert(ctx, &domain.Translation{KeyID: cta.ID, Language: "en", Value: "Go"}))

	// The target moves ahead on its own language and approves it.
	f.setValue(t, f.main.ID, title, "de", "Hallo v2")
	mainTitle, err := f.st.Keys().GetByRef(ctx, f.main.ID, title)
	require.NoError(t, err)
	require.NoError(t, f.st.Translations().SetStatus(ctx, mainTitle.ID, "de", domain.StatusApproved))

	res, err := f.svc.Merge(ctx, MergeArgs{SourceBranchID: feature.ID, TargetBranchID: f.main.ID, Actor: "merger"})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Empty(t, res.Conflicts)

	en := f.value(t, f.main.ID, title, "en")
	require.Equal(t, "Hi", en.Value)
	require.Equal(t, domain.StatusPending, en.Status)
	de := f.value(t, f.main.ID, title, "de")
	require.Equal(t, "Hallo v2", de.Value)
	require.Equal(t, domain.StatusApproved, de.Status, "languages the merge does not touch keep their approval")

	added, err := f.st.Keys().GetByRef(ctx, f.main.ID, domain.KeyRef{Namespace: "nav", Name: "cta"})
	require.NoError(t, err)
	require.Equal(t, "Button label", added.Description)
	require.Equal(t, "Go", f.value(t, f.main.ID, added.Ref(), "en").Value)

	d, err := f.svc.Diff(ctx, feature.ID, f.main.ID)
	require.NoError(t, err)
	require.True(t, d.Clean(), "a merged pair diffs clean")

	ev := f.drainEvent(t)
	require.Equal(t, domain.EventBranchMerged, ev.Type)
	require.Equal(t, "merger", ev.Actor)
	data, ok := ev.Data.(domain.BranchMergedData)
	require.True(t, ok)
	require.Equal(t, 1, data.KeysAdded)
	require.Equal(t, 1, data.KeysUpdated)
	require.Equal(t, 0, data.KeysDeleted)
	require.Equal(t, 0, data.ConflictsResolved)
}

func TestMergeBlockedByConflicts(t *testing.T) {
	f, feature, ref := conflictFixture(t)
	ctx := context.Background()

	res, err := f.svc.Merge(ctx, MergeArgs{SourceBranchID: feature.ID, TargetBranchID: f.main.ID})
	require.NoError(t, err, "unresolved conflicts are an outcome, not an error")
	require.False(t, res.Success)
	require.Len(t, res.Conflicts, 1)
	require.Equal(t, ref, res.Conflicts[0].Key)
	require.Equal(t, []string{"en"}, res.Conflicts[0].ConflictingLanguages)

	require.Equal(t, "Main", f.value(t, f.main.ID, ref, "en").Value, "a blocked merge writes nothing")
	f.requireNoEvent(t)

	// A resolution for some other key does not unblock the merge.
	res, err = f.svc.Merge(ctx, MergeArgs{
		SourceBranchID: feature.ID,
		TargetBranchID: f.main.ID,
		Resolutions:    []domain.Resolution{{Key: domain.KeyRef{Name: "other"}, Chosen: domain.ResolveSource}},
	})
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Len(t, res.Conflicts, 1)
}

func TestMergeResolveSourceReplacesKey(t *testing.T) {
	f, feature, ref := conflictFixture(t)
	ctx := context.Background()
	// A language only the target has on the conflicted key.
	f.setValue(t, f.main.ID, ref, "de", "Nur hier")

	res, err := f.svc.Merge(ctx, MergeArgs{
		SourceBranchID: feature.ID,
		TargetBranchID: f.main.ID,
		Resolutions:    []domain.Resolution{{Key: ref, Chosen: domain.ResolveSource}},
		Actor:          "merger",
	})
	require.NoError(t, err)
	require.True(t, res.Success)

	en := f.value(t, f.main.ID, ref, "en")
	require.Equal(t, "Feature", en.Value)
	require.Equal(t, domain.StatusPending, en.Status)

	// The key became the source version, target-only languages included.
	mainKey, err := f.st.Keys().GetByRef(ctx, f.main.ID, ref)
	require.NoError(t, err)
	_, err = f.st.Translations().Get(ctx, mainKey.ID, "de")
	require.ErrorIs(t, err, domain.ErrNotFound)

	d, err := f.svc.Diff(ctx, feature.ID, f.main.ID)
	require.NoError(t, err)
	require.True(t, d.Clean())

	ev := f.drainEvent(t)
	data := ev.Data.(domain.BranchMergedData)
	require.Equal(t, 1, data.ConflictsResolved)
	require.Equal(t, 1, data.KeysUpdated)
}

func TestMergeResolveTargetSettles(t *testing.T) {
	f, feature, ref := conflictFixture(t)
	ctx := context.Background()
	mainKey, err := f.st.Keys().GetByRef(ctx, f.main.ID, ref)
	require.NoError(t, err)
	require.NoError(t, f.st.Translations().SetStatus(ctx, mainKey.ID, "en", domain.StatusApproved))

	res, err := f.svc.Merge(ctx, MergeArgs{
		SourceBranchID: feature.ID,
		TargetBranchID: f.main.ID,
		Resolutions:    []domain.Resolution{{Key: ref, Chosen: domain.ResolveTarget}},
		Actor:          "merger",
	})
	require.NoError(t, err)
	require.True(t, res.Success)

	en := f.value(t, f.main.ID, ref, "en")
	require.Equal(t, "Main", en.Value)
	require.Equal(t, domain.StatusApproved, en.Status, "keeping the target rewrites nothing")
	require.Equal(t, "Feature", f.value(t, feature.ID, ref, "en").Value, "merge never writes to the source")

	// The disagreement is settled: it does not resurface on the next diff.
	d, err := f.svc.Diff(ctx, feature.ID, f.main.ID)
	require.NoError(t, err)
	require.True(t, d.Clean())

	ev := f.drainEvent(t)
	data := ev.Data.(domain.BranchMergedData)
	require.Equal(t, 1, data.ConflictsResolved)
	require.Equal(t, 0, data.KeysUpdated)
}

func TestMergeDeleteResolution(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	obsolete := domain.KeyRef{Name: "obsolete"}
	f.seedKey(t, f.main.ID, "", "title", map[string]string{"en": "Hello"})
	f.seedKey(t, f.main.ID, "", "obsolete", map[string]string{"en": "Old"})
	feature := f.branchOff(t, "feature")
	f.drainEvent(t)
	f.removeKey(t, feature.ID, obsolete)

	// Without a resolution the target keeps the key.
	res, err := f.svc.Merge(ctx, MergeArgs{SourceBranchID: feature.ID, TargetBranchID: f.main.ID})
	require.NoError(t, err)
	require.True(t, res.Success)
	_, err = f.st.Keys().GetByRef(ctx, f.main.ID, obsolete)
	require.NoError(t, err)

	res, err = f.svc.Merge(ctx, MergeArgs{
		SourceBranchID: feature.ID,
		TargetBranchID: f.main.ID,
		Resolutions:    []domain.Resolution{{Key: obsolete, Chosen: domain.ResolveDelete}},
		Actor:          "merger",
	})
	require.NoError(t, err)
	require.True(t, res.Success)
	_, err = f.st.Keys().GetByRef(ctx, f.main.ID, obsolete)
	require.ErrorIs(t, err, domain.ErrNotFound)

	d, err := f.svc.Diff(ctx, feature.ID, f.main.ID)
	require.NoError(t, err)
	require.True(t, d.Clean())
	require.Empty(t, d.Deleted)

	ev := f.drainEvent(t)
	data := ev.Data.(domain.BranchMergedData)
	require.Equal(t, 1, data.KeysDeleted)
}

func TestMergeResolutionValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown choice", func(t *testing.T) {
		f, feature, ref := conflictFixture(t)
		_, err := f.svc.Merge(ctx, MergeArgs{
			SourceBranchID: feature.ID,
			TargetBranchID: f.main.ID,
			Resolutions:    []domain.Resolution{{Key: ref, Chosen: "overwrite"}},
		})
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("missing key name", func(t *testing.T) {
		f, feature, _ := conflictFixture(t)
		_, err := f.svc.Merge(ctx, MergeArgs{
			SourceBranchID: feature.ID,
			TargetBranchID: f.main.ID,
			Resolutions:    []domain.Resolution{{Chosen: domain.ResolveSource}},
		})
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("contradictory resolutions", func(t *testing.T) {
		f, feature, ref := conflictFixture(t)
		_, err := f.svc.Merge(ctx, MergeArgs{
			SourceBranchID: feature.ID,
			TargetBranchID: f.main.ID,
			Resolutions: []domain.Resolution{
				{Key: ref, Chosen: domain.ResolveSource},
				{Key: ref, Chosen: domain.ResolveTarget},
			},
		})
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("repeated identical resolution accepted", func(t *testing.T) {
		f, feature, ref := conflictFixture(t)
		res, err := f.svc.Merge(ctx, MergeArgs{
			SourceBranchID: feature.ID,
			TargetBranchID: f.main.ID,
			Resolutions: []domain.Resolution{
				{Key: ref, Chosen: domain.ResolveSource},
				{Key: ref, Chosen: domain.ResolveSource},
			},
		})
		require.NoError(t, err)
		require.True(t, res.Success)
	})

	t.Run("delete on a conflict", func(t *testing.T) {
		f, feature, ref := conflictFixture(t)
		_, err := f.svc.Merge(ctx, MergeArgs{
			SourceBranchID: feature.ID,
			TargetBranchID: f.main.ID,
			Resolutions:    []domain.Resolution{{Key: ref, Chosen: domain.ResolveDelete}},
		})
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("source on a deleted key", func(t *testing.T) {
		f := newFixture(t)
		obsolete := domain.KeyRef{Name: "obsolete"}
		f.seedKey(t, f.main.ID, "", "obsolete", map[string]string{"en": "Old"})
		feature := f.branchOff(t, "feature")
		f.removeKey(t, feature.ID, obsolete)
		_, err := f.svc.Merge(ctx, MergeArgs{
			SourceBranchID: feature.ID,
			TargetBranchID: f.main.ID,
			Resolutions:    []domain.Resolution{{Key: obsolete, Chosen: domain.ResolveSource}},
		})
		require.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestMergeRepeatedCallStaysValid(t *testing.T) {
	f, feature, ref := conflictFixture(t)
	ctx := context.Background()
	args := MergeArgs{
		SourceBranchID: feature.ID,
		TargetBranchID: f.main.ID,
		Resolutions:    []domain.Resolution{{Key: ref, Chosen: domain.ResolveSource}},
		Actor:          "merger",
	}

	res, err := f.svc.Merge(ctx, args)
	require.NoError(t, err)
	require.True(t, res.Success)
	f.drainEvent(t)

	// Same arguments again: the diff is clean now and the leftover
	// resolution matches nothing.
	res, err = f.svc.Merge(ctx, args)
	require.NoError(t, err)
	require.True(t, res.Success)
	f.requireNoEvent(t)
}

func TestMergeWithNothingToApply(t *testing.T) {
	f := newFixture(t)
	f.seedKey(t, f.main.ID, "", "title", map[string]string{"en": "Hello"})
	feature := f.branchOff(t, "feature")
	f.drainEvent(t)

	res, err := f.svc.Merge(context.Background(), MergeArgs{SourceBranchID: feature.ID, TargetBranchID: f.main.ID})
	require.NoError(t, err)
	require.True(t, res.Success)
	f.requireNoEvent(t)
}

func TestMergeArgumentErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Merge(ctx, MergeArgs{SourceBranchID: f.main.ID, TargetBranchID: f.main.ID})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.svc.Merge(ctx, MergeArgs{SourceBranchID: 999, TargetBranchID: f.main.ID})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMergePlanValidate(t *testing.T) {
	t.Parallel()
	ref := domain.KeyRef{Name: "title"}
	snap := func(values map[string]string) domain.BranchSnapshot {
		s := domain.BranchSnapshot{Keys: map[domain.KeyRef]domain.KeyContent{}}
		if values != nil {
			s.Keys[ref] = domain.KeyContent{Values: values}
		}
		return s
	}

	t.Run("unchanged target passes", func(t *testing.T) {
		p := &mergePlan{updates: []domain.DiffEntry{{Key: ref, TargetValues: map[string]string{"en": "Hello"}}}}
		require.NoError(t, p.validate(snap(map[string]string{"en": "Hello"})))
	})

	t.Run("target value drifted", func(t *testing.T) {
		p := &mergePlan{updates: []domain.DiffEntry{{Key: ref, TargetValues: map[string]string{"en": "Hello"}}}}
		err := p.validate(snap(map[string]string{"en": "edited meanwhile"}))
		require.ErrorIs(t, err, domain.ErrConcurrentModification)
	})

	t.Run("target grew a language", func(t *testing.T) {
		p := &mergePlan{keeps: []domain.DiffEntry{{Key: ref, TargetValues: map[string]string{"en": "Hello"}}}}
		err := p.validate(snap(map[string]string{"en": "Hello", "de": "Hallo"}))
		require.ErrorIs(t, err, domain.ErrConcurrentModification)
	})

	t.Run("planned add appeared", func(t *testing.T) {
		p := &mergePlan{adds: []domain.DiffEntry{{Key: ref, SourceValues: map[string]string{"en": "Hi"}}}}
		err := p.validate(snap(map[string]string{"en": "racing insert"}))
		require.ErrorIs(t, err, domain.ErrConcurrentModification)
	})

	t.Run("planned removal vanished", func(t *testing.T) {
		p := &mergePlan{removes: []domain.DiffEntry{{Key: ref, TargetValues: map[string]string{"en": "Old"}}}}
		err := p.validate(snap(nil))
		require.ErrorIs(t, err, domain.ErrConcurrentModification)
	})
}
