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

type TranslationRepo struct{ *Repo }

func NewTranslationRepo(db DBTX) *TranslationRepo { return &TranslationRepo{NewRepo(db)} }

func (r *TranslationRepo) Upsert(ctx context.Context, t *domain.Translation) error {
	if t.Status == "" {
		t.Status = domain.StatusPending
	}
	now := time.Now().UTC().Format(time.RFC3339)
	q := r.SQ.Insert("translations").
		Columns("key_id", "language", "value", "status", "created_at", "updated_at").
		Values(t.KeyID, t.Language, t.Value, t.Status, now, now).
		Suffix("ON CONFLICT(key_id, language) DO UPDATE SET value=excluded.value, status=excluded.status, updated_at=excluded.updated_at")
	sqlStr, args, _ := q.ToSql()
	if _, err := r.DB.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("upsert translation: %w", err)
	}
	return nil
}

func (r *TranslationRepo) Get(ctx context.Context, keyID int64, language string) (*domain.Translation, error) {
	q := r.SQ.Select("id", "key_id", "language", "value", "status", "created_at", "updated_at").
		From("translations").Where(sq.Eq{"key_id": keyID, "language": language})
	sqlStr, args, _ := q.ToSql()
	row := r.DB.QueryRowContext(ctx, sqlStr, args...)
	t, err := scanTranslation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("translation %s of key %d: %w", language, keyID, domain.ErrNotFound)
	}
	return t, err
}

func (r *TranslationRepo) ListByKey(ctx context.Context, keyID int64) ([]*domain.Translation, error) {
	q := r.SQ.Select("id", "key_id", "language", "value", "status", "created_at", "updated_at").
		From("translations").Where(sq.Eq{"key_id": keyID}).OrderBy("language")
	sqlStr, args, _ := q.ToSql()
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Translation
	for rows.Next() {
		t, err := scanTranslation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TranslationRepo) ListByBranch(ctx context.Context, branchID int64) ([]*domain.BranchTranslation, error) {
	q := r.SQ.Select("t.key_id", "k.namespace", "k.name", "t.language", "t.value", "t.status").
		From("translations t").
		Join("translation_keys k ON k.id = t.key_id").
		Where(sq.Eq{"k.branch_id": branchID}).
		OrderBy("k.namespace", "k.name", "t.language")
	sqlStr, args, _ := q.ToSql()
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.BranchTranslation
	for rows.Next() {
		var t domain.BranchTranslation
		if err := rows.Scan(&t.KeyID, &t.Namespace, &t.Name, &t.Language, &t.Value, &t.Status); err != nil {
			return nil, err
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

func (r *TranslationRepo) SetStatus(ctx context.Context, keyID int64, language, status string) error {
	q := r.SQ.Update("translations").
		Set("status", status).
		Set("updated_at", time.Now().UTC().Format(time.RFC3339)).
		Where(sq.Eq{"key_id": keyID, "language": language})
	sqlStr, args, _ := q.ToSql()
	res, err := r.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("translation %s of key %d: %w", language, keyID, domain.ErrNotFound)
	}
	return nil
}

func (r *TranslationRepo) Delete(ctx context.Context, keyID int64, language string) error {
	q := r.SQ.Delete("translations").Where(sq.Eq{"key_id": keyID, "language": language})
	sqlStr, args, _ := q.ToSql()
	res, err := r.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("translation %s of key %d: %w", language, keyID, domain.ErrNotFound)
	}
	return nil
}

func scanTranslation(row rowScanner) (*domain.Translation, error) {
	var t domain.Translation
	var created, updated string
	if err := row.Scan(&t.ID, &t.KeyID, &t.Language, &t.Value, &t.Status, &created, &updated); err != nil {
		return nil, err
	}
	t.CreatedAt, _ = time.Parse(time.RFC3339, created)
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return &t, nil
}
