package importer

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/VinniZP/lingx-sub016/internal/adapters/db/sqlite"
	csvparser "github.com/VinniZP/lingx-sub016/internal/adapters/parser/csv"
	"github.com/VinniZP/lingx-sub016/internal/adapters/parser/flatjson"
	parreg "github.com/VinniZP/lingx-sub016/internal/adapters/parser/registry"
	"github.com/VinniZP/lingx-sub016/internal/domain"
	"github.com/VinniZP/lingx-sub016/internal/ports"
)

func newService(t *testing.T) (*Service, ports.Store, *domain.Branch) {
	t.Helper()
	db, err := sqlite.Init(filepath.Join(t.TempDir(), "lingx.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	st := sqlite.NewStore(db)

	ctx := context.Background()
	p := &domain.Project{Name: "docs"}
	require.NoError(t, st.Projects().Create(ctx, p))
	space := &domain.Space{ProjectID: p.ID, Name: "website"}
	require.NoError(t, st.Spaces().Create(ctx, space))
	branch := &domain.Branch{SpaceID: space.ID, Name: "main", Slug: "main", IsDefault: true}
	require.NoError(t, st.Branches().Create(ctx, branch))

	reg := parreg.New()
	reg.Register(flatjson.New())
	reg.Register(csvparser.New())
	return New(st, reg), st, branch
}

func requireValue(t *testing.T, st ports.Store, branchID int64, ref domain.KeyRef, lang, want, wantStatus string) {
	t.Helper()
	ctx := context.Background()
	k, err := st.Keys().GetByRef(ctx, branchID, ref)
	require.NoError(t, err)
	tr, err := st.Translations().Get(ctx, k.ID, lang)
	require.NoError(t, err)
	require.Equal(t, want, tr.Value)
	require.Equal(t, wantStatus, tr.Status)
}

func TestImportCreatesKeysAndValues(t *testing.T) {
	svc, st, branch := newService(t)

	res, err := svc.Import(context.Background(), ImportArgs{
		BranchID: branch.ID,
		Language: "en",
		Format:   "json",
		Content:  []byte(`{"title": "Hello", "nav:home": "Home"}`),
	})
	require.NoError(t, err)
	require.Equal(t, ImportResult{Keys: 2, Created: 2}, res)

	requireValue(t, st, branch.ID, domain.KeyRef{Name: "title"}, "en", "Hello", domain.StatusPending)
	requireValue(t, st, branch.ID, domain.KeyRef{Namespace: "nav", Name: "home"}, "en", "Home", domain.StatusPending)
}

func TestImportLeavesUnchangedValuesAlone(t *testing.T) {
	svc, st, branch := newService(t)
	ctx := context.Background()
	content := []byte(`{"title": "Hello"}`)

	_, err := svc.Import(ctx, ImportArgs{BranchID: branch.ID, Language: "en", Format: "json", Content: content})
	require.NoError(t, err)
	k, err := st.Keys().GetByRef(ctx, branch.ID, domain.KeyRef{Name: "title"})
	require.NoError(t, err)
	require.NoError(t, st.Translations().SetStatus(ctx, k.ID, "en", domain.StatusApproved))

	res, err := svc.Import(ctx, ImportArgs{BranchID: branch.ID, Language: "en", Format: "json", Content: content})
	require.NoError(t, err)
	require.Equal(t, ImportResult{}, res)
	requireValue(t, st, branch.ID, domain.KeyRef{Name: "title"}, "en", "Hello", domain.StatusApproved)
}

func TestImportOverwriteResetsApproval(t *testing.T) {
	svc, st, branch := newService(t)
	ctx := context.Background()

	_, err := svc.Import(ctx, ImportArgs{BranchID: branch.ID, Language: "en", Format: "json", Content: []byte(`{"title": "Hello"}`)})
	require.NoError(t, err)
	k, err := st.Keys().GetByRef(ctx, branch.ID, domain.KeyRef{Name: "title"})
	require.NoError(t, err)
	require.NoError(t, st.Translations().SetStatus(ctx, k.ID, "en", domain.StatusApproved))

	res, err := svc.Import(ctx, ImportArgs{BranchID: branch.ID, Language: "en", Format: "json", Content: []byte(`{"title": "Hello!"}`)})
	require.NoError(t, err)
	require.Equal(t, ImportResult{Updated: 1}, res)
	requireValue(t, st, branch.ID, domain.KeyRef{Name: "title"}, "en", "Hello!", domain.StatusPending)
}

func TestImportSecondLanguageReusesKeys(t *testing.T) {
	svc, _, branch := newService(t)
	ctx := context.Background()

	_, err := svc.Import(ctx, ImportArgs{BranchID: branch.ID, Language: "en", Format: "json", Content: []byte(`{"title": "Hello"}`)})
	require.NoError(t, err)

	res, err := svc.Import(ctx, ImportArgs{BranchID: branch.ID, Language: "de", Format: "json", Content: []byte(`{"title": "Hallo"}`)})
	require.NoError(t, err)
	require.Equal(t, ImportResult{Created: 1}, res)
}

func TestImportCSV(t *testing.T) {
	svc, st, branch := newService(t)

	res, err := svc.Import(context.Background(), ImportArgs{
		BranchID: branch.ID,
		Language: "de",
		Format:   "csv",
		Content:  []byte("key,value\ntitle,Hallo\nnav:home,Start\n"),
	})
	require.NoError(t, err)
	require.Equal(t, ImportResult{Keys: 2, Created: 2}, res)
	requireValue(t, st, branch.ID, domain.KeyRef{Namespace: "nav", Name: "home"}, "de", "Start", domain.StatusPending)
}

func TestImportUnknownFormat(t *testing.T) {
	svc, _, branch := newService(t)
	_, err := svc.Import(context.Background(), ImportArgs{BranchID: branch.ID, Language: "en", Format: "po", Content: []byte("x")})
	require.ErrorIs(t, err, domain.ErrUnknownFormat)
}

func TestImportParseFailureWritesNothing(t *testing.T) {
	svc, st, branch := newService(t)
	ctx := context.Background()

	_, err := svc.Import(ctx, ImportArgs{BranchID: branch.ID, Language: "en", Format: "json", Content: []byte(`{"title": 1}`)})
	require.Error(t, err)

	n, err := st.Branches().CountKeys(ctx, branch.ID)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestImportMissingBranch(t *testing.T) {
	svc, _, _ := newService(t)
	_, err := svc.Import(context.Background(), ImportArgs{BranchID: 999, Language: "en", Format: "json", Content: []byte(`{}`)})
	require.ErrorIs(t, err, domain.ErrNotFound)
}
