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

type BranchRepo struct{ *Repo }

func NewBranchRepo(db DBTX) *BranchRepo { return &BranchRepo{NewRepo(db)} }

func (r *BranchRepo) Create(ctx context.Context, b *domain.Branch) error {
	now := time.Now().UTC()
	var src any
	if b.SourceBranchID != nil {
		src = *b.SourceBranchID
	}
	q := r.SQ.Insert("branches").
		Columns("space_id", "name", "slug", "is_default", "source_branch_id", "created_at", "updated_at").
		Values(b.SpaceID, b.Name, b.Slug, b.IsDefault, src, now.Format(time.RFC3339), now.Format(time.RFC3339))
	sqlStr, args, _ := q.ToSql()
	res, err := r.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("slug %q in space %d: %w", b.Slug, b.SpaceID, domain.ErrSlugTaken)
		}
		return fmt.Errorf("insert branch: %w", err)
	}
	id, _ := res.LastInsertId()
	b.ID = id
	b.CreatedAt = now
	b.UpdatedAt = now
	return nil
}

func (r *BranchRepo) Get(ctx context.Context, id int64) (*domain.Branch, error) {
	q := r.branchSelect().Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	b, err := r.scanBranch(r.DB.QueryRowContext(ctx, sqlStr, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("branch %d: %w", id, domain.ErrNotFound)
	}
	return b, err
}

func (r *BranchRepo) GetDefault(ctx context.Context, spaceID int64) (*domain.Branch, error) {
	q := r.branchSelect().Where(sq.Eq{"space_id": spaceID, "is_default": true})
	sqlStr, args, _ := q.ToSql()
	b, err := r.scanBranch(r.DB.QueryRowContext(ctx, sqlStr, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("default branch of space %d: %w", spaceID, domain.ErrNotFound)
	}
	return b, err
}

func (r *BranchRepo) ListBySpace(ctx context.Context, spaceID int64) ([]*domain.Branch, error) {
	q := r.branchSelect().Where(sq.Eq{"space_id": spaceID}).OrderBy("is_default DESC", "slug")
	sqlStr, args, _ := q.ToSql()
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Branch
	for rows.Next() {
		b, err := r.scanBranch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BranchRepo) CountKeys(ctx context.Context, branchID int64) (int64, error) {
	sqlStr, args, _ := r.SQ.Select("COUNT(*)").From("translation_keys").
		Where(sq.Eq{"branch_id": branchID}).ToSql()
	var n int64
	if err := r.DB.QueryRowContext(ctx, sqlStr, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// CopyContent duplicates every key and translation of src into dst with a
// pair of INSERT..SELECT statements, resetting approval to pending. The
// caller wraps it in the branch-creation transaction.
func (r *BranchRepo) CopyContent(ctx context.Context, srcID, dstID int64) (int64, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := r.DB.ExecContext(ctx, `
        INSERT INTO translation_keys (branch_id, namespace, name, description, created_at, updated_at)
        SELECT ?, namespace, name, description, ?, ?
        FROM translation_keys WHERE branch_id = ?`, dstID, now, now, srcID)
	if err != nil {
		return 0, fmt.Errorf("copy keys: %w", err)
	}
	copied, _ := res.RowsAffected()
	_, err = r.DB.ExecContext(ctx, `
        INSERT INTO translations (key_id, language, value, status, created_at, updated_at)
        SELECT nk.id, t.language, t.value, 'pending', ?, ?
        FROM translations t
        JOIN translation_keys ok ON ok.id = t.key_id AND ok.branch_id = ?
        JOIN translation_keys nk ON nk.branch_id = ? AND nk.namespace = ok.namespace AND nk.name = ok.name`,
		now, now, srcID, dstID)
	if err != nil {
		return 0, fmt.Errorf("copy translations: %w", err)
	}
	return copied, nil
}

func (r *BranchRepo) Touch(ctx context.Context, id int64) error {
	q := r.SQ.Update("branches").
		Set("updated_at", time.Now().UTC().Format(time.RFC3339)).
		Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	_, err := r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *BranchRepo) Delete(ctx context.Context, id int64) error {
	q := r.SQ.Delete("branches").Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	res, err := r.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("branch %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *BranchRepo) branchSelect() sq.SelectBuilder {
	return r.SQ.Select("id", "space_id", "name", "slug", "is_default", "source_branch_id", "created_at", "updated_at").
		From("branches")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *BranchRepo) scanBranch(row rowScanner) (*domain.Branch, error) {
	var b domain.Branch
	var created, updated string
	var src sql.NullInt64
	if err := row.Scan(&b.ID, &b.SpaceID, &b.Name, &b.Slug, &b.IsDefault, &src, &created, &updated); err != nil {
		return nil, err
	}
	if src.Valid {
		v := src.Int64
		b.SourceBranchID = &v
	}
	b.CreatedAt, _ = time.Parse(time.RFC3339, created)
	b.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return &b, nil
}
