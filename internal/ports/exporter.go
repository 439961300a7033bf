package ports

import (
	"github.com/VinniZP/lingx-sub016/internal/domain"
)

// ExportItem is one key with its value in the exported language. Untranslated
// keys are not exported; absence of a value is never rendered as "".
type ExportItem struct {
	Key   domain.KeyRef
	Value string
}

type Exporter interface {
	Format() string
	Export(language string, items []ExportItem) ([]byte, error)
}
