package flatjson

import (
	"testing"

	"github.com/stretchr/testify/require"

	parserjson "github.com/VinniZP/lingx-sub016/internal/adapters/parser/flatjson"
	"github.com/VinniZP/lingx-sub016/internal/domain"
	"github.com/VinniZP/lingx-sub016/internal/ports"
)

func TestExportOrdersByLabel(t *testing.T) {
	t.Parallel()
	require.Equal(t, "json", New().Format())

	out, err := New().Export("en", []ports.ExportItem{
		{Key: domain.KeyRef{Name: "title"}, Value: "Hello"},
		{Key: domain.KeyRef{Namespace: "nav", Name: "home"}, Value: "Home"},
	})
	require.NoError(t, err)
	require.Equal(t, "{\n  \"nav:home\": \"Home\",\n  \"title\": \"Hello\"\n}", string(out))
}

func TestExportEmpty(t *testing.T) {
	t.Parallel()
	out, err := New().Export("en", nil)
	require.NoError(t, err)
	require.Equal(t, "{}", string(out))
}

func TestExportRoundTrip(t *testing.T) {
	t.Parallel()
	items := []ports.ExportItem{
		{Key: domain.KeyRef{Name: "title"}, Value: "Größe & <b>"},
		{Key: domain.KeyRef{Namespace: "nav", Name: "home"}, Value: "Home"},
	}
	out, err := New().Export("de", items)
	require.NoError(t, err)

	res, err := parserjson.New().Parse(out)
	require.NoError(t, err)
	require.ElementsMatch(t, []ports.ParsedEntry{
		{Key: domain.KeyRef{Name: "title"}, Value: "Größe & <b>"},
		{Key: domain.KeyRef{Namespace: "nav", Name: "home"}, Value: "Home"},
	}, res.Entries)
}
