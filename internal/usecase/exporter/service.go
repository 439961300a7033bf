// Package exporter renders one branch and language as a downloadable file.
package exporter

import (
	"context"
	"fmt"
	"sort"

	exreg "github.com/VinniZP/lingx-sub016/internal/adapters/exporter/registry"
	"github.com/VinniZP/lingx-sub016/internal/domain"
	"github.com/VinniZP/lingx-sub016/internal/ports"
)

type Service struct {
	Store ports.Store
	Reg   *exreg.Registry
}

func New(store ports.Store, reg *exreg.Registry) *Service {
	return &Service{Store: store, Reg: reg}
}

type ExportArgs struct {
	BranchID int64
	Language string
	Format   string
}

type ExportResult struct {
	Filename string
	Content  []byte
}

// Export writes the branch's values for one language, keys ordered by
// (namespace, name). Untranslated keys are omitted rather than rendered
// as empty strings.
func (s *Service) Export(ctx context.Context, a ExportArgs) (ExportResult, error) {
	exp, ok := s.Reg.Get(a.Format)
	if !ok {
		return ExportResult{}, fmt.Errorf("%w: %q", domain.ErrUnknownFormat, a.Format)
	}
	branch, err := s.Store.Branches().Get(ctx, a.BranchID)
	if err != nil {
		return ExportResult{}, err
	}
	rows, err := s.Store.Translations().ListByBranch(ctx, branch.ID)
	if err != nil {
		return ExportResult{}, err
	}
	var items []ports.ExportItem
	for _, row := range rows {
		if row.Language != a.Language {
			continue
		}
		items = append(items, ports.ExportItem{Key: row.Ref(), Value: row.Value})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Key.Less(items[j].Key) })

	content, err := exp.Export(a.Language, items)
	if err != nil {
		return ExportResult{}, fmt.Errorf("render %s: %w", a.Format, err)
	}
	name := fmt.Sprintf("%s_%s.%s", branch.Slug, a.Language, a.Format)
	return ExportResult{Filename: name, Content: content}, nil
}
