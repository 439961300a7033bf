package sqlite

import (
	"context"
	"database/sql"

	"github.com/VinniZP/lingx-sub016/internal/ports"
)

// Store implements ports.Store over SQLite. The root store wraps *sql.DB;
// WithinTx hands fn a store whose repositories share one *sql.Tx.
type Store struct {
	db *sql.DB // nil inside a transaction scope
	q  DBTX

	projects     *ProjectRepo
	spaces       *SpaceRepo
	branches     *BranchRepo
	keys         *KeyRepo
	translations *TranslationRepo
	baselines    *BaselineRepo
}

func NewStore(db *sql.DB) *Store {
	return newStore(db, db)
}

func newStore(db *sql.DB, q DBTX) *Store {
	return &Store{
		db:           db,
		q:            q,
		projects:     NewProjectRepo(q),
		spaces:       NewSpaceRepo(q),
		branches:     NewBranchRepo(q),
		keys:         NewKeyRepo(q),
		translations: NewTranslationRepo(q),
		baselines:    NewBaselineRepo(q),
	}
}

func (s *Store) Projects() ports.ProjectRepository         { return s.projects }
func (s *Store) Spaces() ports.SpaceRepository             { return s.spaces }
func (s *Store) Branches() ports.BranchRepository          { return s.branches }
func (s *Store) Keys() ports.KeyRepository                 { return s.keys }
func (s *Store) Translations() ports.TranslationRepository { return s.translations }
func (s *Store) Baselines() ports.BaselineRepository       { return s.baselines }

// WithinTx runs fn against a transaction-scoped view of the store. An error
// from fn rolls everything back. Nested calls join the open transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(ports.Store) error) error {
	if s.db == nil {
		return fn(s)
	}
	return WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return fn(newStore(nil, tx))
	})
}

func (s *Store) Ping(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return s.db.PingContext(ctx)
}
