package csv

import (
	"testing"

	"github.com/stretchr/testify/require"

	csvparser "github.com/VinniZP/lingx-sub016/internal/adapters/parser/csv"
	"github.com/VinniZP/lingx-sub016/internal/domain"
	"github.com/VinniZP/lingx-sub016/internal/ports"
)

func TestExportWritesHeaderAndRows(t *testing.T) {
	t.Parallel()
	require.Equal(t, "csv", New().Format())

	out, err := New().Export("en", []ports.ExportItem{
		{Key: domain.KeyRef{Name: "title"}, Value: "Hello"},
		{Key: domain.KeyRef{Namespace: "nav", Name: "home"}, Value: "Home"},
	})
	require.NoError(t, err)
	require.Equal(t, "namespace,key,value\n,title,Hello\nnav,home,Home\n", string(out))
}

func TestExportQuotesSpecialValues(t *testing.T) {
	t.Parallel()
	out, err := New().Export("en", []ports.ExportItem{
		{Key: domain.KeyRef{Name: "greeting"}, Value: "Hello, world"},
	})
	require.NoError(t, err)
	require.Equal(t, "namespace,key,value\n,greeting,\"Hello, world\"\n", string(out))
}

func TestExportRoundTrip(t *testing.T) {
	t.Parallel()
	items := []ports.ExportItem{
		{Key: domain.KeyRef{Name: "greeting"}, Value: "Hello, world"},
		{Key: domain.KeyRef{Namespace: "nav", Name: "home"}, Value: "line one\nline two"},
	}
	out, err := New().Export("en", items)
	require.NoError(t, err)

	res, err := csvparser.New().Parse(out)
	require.NoError(t, err)
	require.Equal(t, []ports.ParsedEntry{
		{Key: domain.KeyRef{Name: "greeting"}, Value: "Hello, world"},
		{Key: domain.KeyRef{Namespace: "nav", Name: "home"}, Value: "line one\nline two"},
	}, res.Entries)
}
