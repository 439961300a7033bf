package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/VinniZP/lingx-sub016/internal/domain"
)

type KeyRepo struct{ *Repo }

func NewKeyRepo(db DBTX) *KeyRepo { return &KeyRepo{NewRepo(db)} }

func (r *KeyRepo) Create(ctx context.Context, k *domain.TranslationKey) error {
	now := time.Now().UTC()
	q := r.SQ.Insert("translation_keys").
		Columns("branch_id", "namespace", "name", "description", "created_at", "updated_at").
		Values(k.BranchID, k.Namespace, k.Name, k.Description, now.Format(time.RFC3339), now.Format(time.RFC3339))
	sqlStr, args, _ := q.ToSql()
	res, err := r.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("key %q in branch %d: %w", k.Ref().Label(), k.BranchID, domain.ErrDuplicateKey)
		}
		return fmt.Errorf("insert key: %w", err)
	}
	id, _ := res.LastInsertId()
	k.ID = id
	k.CreatedAt = now
	k.UpdatedAt = now
	return nil
}

func (r *KeyRepo) Get(ctx context.Context, id int64) (*domain.TranslationKey, error) {
	q := r.keySelect().Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	k, err := scanKey(r.DB.QueryRowContext(ctx, sqlStr, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("key %d: %w", id, domain.ErrNotFound)
	}
	return k, err
}

func (r *KeyRepo) GetByRef(ctx context.Context, branchID int64, ref domain.KeyRef) (*domain.TranslationKey, error) {
	q := r.keySelect().Where(sq.Eq{"branch_id": branchID, "namespace": ref.Namespace, "name": ref.Name})
	sqlStr, args, _ := q.ToSql()
	k, err := scanKey(r.DB.QueryRowContext(ctx, sqlStr, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("key %q in branch %d: %w", ref.Label(), branchID, domain.ErrNotFound)
	}
	return k, err
}

func (r *KeyRepo) ListByBranch(ctx context.Context, branchID int64) ([]*domain.TranslationKey, error) {
	q := r.keySelect().Where(sq.Eq{"branch_id": branchID}).OrderBy("namespace", "name")
	sqlStr, args, _ := q.ToSql()
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.TranslationKey
	for rows.Next() {
		k, err := scanKey(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

func (r *KeyRepo) Update(ctx context.Context, k *domain.TranslationKey) error {
	now := time.Now().UTC()
	q := r.SQ.Update("translation_keys").
		Set("namespace", k.Namespace).
		Set("name", k.Name).
		Set("description", k.Description).
		Set("updated_at", now.Format(time.RFC3339)).
		Where(sq.Eq{"id": k.ID})
	sqlStr, args, _ := q.ToSql()
	res, err := r.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("key %q in branch %d: %w", k.Ref().Label(), k.BranchID, domain.ErrDuplicateKey)
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("key %d: %w", k.ID, domain.ErrNotFound)
	}
	k.UpdatedAt = now
	return nil
}

func (r *KeyRepo) Delete(ctx context.Context, id int64) error {
	q := r.SQ.Delete("translation_keys").Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	res, err := r.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("key %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *KeyRepo) DeleteByRef(ctx context.Context, branchID int64, ref domain.KeyRef) error {
	q := r.SQ.Delete("translation_keys").
		Where(sq.Eq{"branch_id": branchID, "namespace": ref.Namespace, "name": ref.Name})
	sqlStr, args, _ := q.ToSql()
	res, err := r.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("key %q in branch %d: %w", ref.Label(), branchID, domain.ErrNotFound)
	}
	return nil
}

func (r *KeyRepo) keySelect() sq.SelectBuilder {
	return r.SQ.Select("id", "branch_id", "namespace", "name", "description", "created_at", "updated_at").
		From("translation_keys")
}

func scanKey(row rowScanner) (*domain.TranslationKey, error) {
	var k domain.TranslationKey
	var created, updated string
	if err := row.Scan(&k.ID, &k.BranchID, &k.Namespace, &k.Name, &k.Description, &created, &updated); err != nil {
		return nil, err
	}
	k.CreatedAt, _ = time.Parse(time.RFC3339, created)
	k.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return &k, nil
}
