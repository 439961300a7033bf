// Package importer loads translation files into one branch and language.
package importer

import (
	"context"
	"errors"
	"fmt"

	parreg "github.com/VinniZP/lingx-sub016/internal/adapters/parser/registry"
	"github.com/VinniZP/lingx-sub016/internal/domain"
	"github.com/VinniZP/lingx-sub016/internal/ports"
)

type Service struct {
	Store   ports.Store
	Parsers *parreg.Registry
}

func New(store ports.Store, parsers *parreg.Registry) *Service {
	return &Service{Store: store, Parsers: parsers}
}

type ImportArgs struct {
	BranchID int64
	Language string
	Format   string
	Content  []byte
}

type ImportResult struct {
	Keys    int `json:"keys"`    // keys created
	Created int `json:"created"` // values written for the first time
	Updated int `json:"updated"` // values overwritten
}

// Import parses the file and upserts its entries into the branch. Missing
// keys are created; unchanged values are left alone so their approval state
// survives. Everything lands in one transaction.
func (s *Service) Import(ctx context.Context, in ImportArgs) (ImportResult, error) {
	parser, ok := s.Parsers.Get(in.Format)
	if !ok {
		return ImportResult{}, fmt.Errorf("%w: %q", domain.ErrUnknownFormat, in.Format)
	}
	pr, err := parser.Parse(in.Content)
	if err != nil {
		return ImportResult{}, fmt.Errorf("parse %s: %w", in.Format, err)
	}
	if _, err := s.Store.Branches().Get(ctx, in.BranchID); err != nil {
		return ImportResult{}, err
	}

	var res ImportResult
	err = s.Store.WithinTx(ctx, func(st ports.Store) error {
		for _, entry := range pr.Entries {
			k, err := st.Keys().GetByRef(ctx, in.BranchID, entry.Key)
			if err != nil {
				if !isNotFound(err) {
					return err
				}
				k = &domain.TranslationKey{
					BranchID:  in.BranchID,
					Namespace: entry.Key.Namespace,
					Name:      entry.Key.Name,
				}
				if err := st.Keys().Create(ctx, k); err != nil {
					return err
				}
				res.Keys++
			}
			existing, err := st.Translations().Get(ctx, k.ID, in.Language)
			if err != nil && !isNotFound(err) {
				return err
			}
			switch {
			case existing == nil:
				res.Created++
			case existing.Value == entry.Value:
				continue
			default:
				res.Updated++
			}
			t := &domain.Translation{
				KeyID:    k.ID,
				Language: in.Language,
				Value:    entry.Value,
				Status:   domain.StatusPending,
			}
			if err := st.Translations().Upsert(ctx, t); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}
	return res, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
