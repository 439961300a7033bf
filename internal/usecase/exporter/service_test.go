package exporter

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/VinniZP/lingx-sub016/internal/adapters/db/sqlite"
	expcsv "github.com/VinniZP/lingx-sub016/internal/adapters/exporter/csv"
	expjson "github.com/VinniZP/lingx-sub016/internal/adapters/exporter/flatjson"
	exreg "github.com/VinniZP/lingx-sub016/internal/adapters/exporter/registry"
	"github.com/VinniZP/lingx-sub016/internal/domain"
)

func newService(t *testing.T) (*Service, *domain.Branch) {
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

	seed := func(ns, name string, values map[string]string) {
		k := &domain.TranslationKey{BranchID: branch.ID, Namespace: ns, Name: name}
		require.NoError(t, st.Keys().Create(ctx, k))
		for lang, v := range values {
			require.NoError(t, st.Translations().Upsert(ctx, &domain.Translation{KeyID: k.ID, Language: lang, Value: v}))
		}
	}
	seed("", "title", map[string]string{"en": "Hello", "de": "Hallo"})
	seed("nav", "home", map[string]string{"en": "Home"})
	seed("", "untranslated", nil)

	reg := exreg.New()
	reg.Register(expjson.New())
	reg.Register(expcsv.New())
	return New(st, reg), branch
}

func TestExportJSON(t *testing.T) {
	svc, branch := newService(t)

	res, err := svc.Export(context.Background(), ExportArgs{BranchID: branch.ID, Language: "en", Format: "json"})
	require.NoError(t, err)
	require.Equal(t, "main_en.json", res.Filename)
	require.Equal(t, "{\n  \"nav:home\": \"Home\",\n  \"title\": \"Hello\"\n}", string(res.Content))
}

func TestExportFiltersByLanguage(t *testing.T) {
	svc, branch := newService(t)

	res, err := svc.Export(context.Background(), ExportArgs{BranchID: branch.ID, Language: "de", Format: "json"})
	require.NoError(t, err)
	require.Equal(t, "main_de.json", res.Filename)
	require.Equal(t, "{\n  \"title\": \"Hallo\"\n}", string(res.Content))
}

func TestExportCSVOrdersByRef(t *testing.T) {
	svc, branch := newService(t)

	res, err := svc.Export(context.Background(), ExportArgs{BranchID: branch.ID, Language: "en", Format: "csv"})
	require.NoError(t, err)
	require.Equal(t, "main_en.csv", res.Filename)
	require.Equal(t, "namespace,key,value\n,title,Hello\nnav,home,Home\n", string(res.Content))
}

func TestExportLanguageWithoutValues(t *testing.T) {
	svc, branch := newService(t)

	res, err := svc.Export(context.Background(), ExportArgs{BranchID: branch.ID, Language: "fr", Format: "json"})
	require.NoError(t, err)
	require.Equal(t, "{}", string(res.Content))
}

func TestExportUnknownFormat(t *testing.T) {
	svc, branch := newService(t)
	_, err := svc.Export(context.Background(), ExportArgs{BranchID: branch.ID, Language: "en", Format: "po"})
	require.ErrorIs(t, err, domain.ErrUnknownFormat)
}

func TestExportMissingBranch(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Export(context.Background(), ExportArgs{BranchID: 999, Language: "en", Format: "json"})
	require.ErrorIs(t, err, domain.ErrNotFound)
}
