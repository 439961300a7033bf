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

type SpaceRepo struct{ *Repo }

func NewSpaceRepo(db DBTX) *SpaceRepo { return &SpaceRepo{NewRepo(db)} }

func (r *SpaceRepo) Create(ctx context.Context, s *domain.Space) error {
	now := time.Now().UTC()
	q := r.SQ.Insert("spaces").Columns("project_id", "name", "created_at", "updated_at").
		Values(s.ProjectID, s.Name, now.Format(time.RFC3339), now.Format(time.RFC3339))
	sqlStr, args, _ := q.ToSql()
	res, err := r.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("insert space: %w", err)
	}
	id, _ := res.LastInsertId()
	s.ID = id
	s.CreatedAt = now
	s.UpdatedAt = now
	return nil
}

func (r *SpaceRepo) Get(ctx context.Context, id int64) (*domain.Space, error) {
	q := r.SQ.Select("id", "project_id", "name", "created_at", "updated_at").
		From("spaces").Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	row := r.DB.QueryRowContext(ctx, sqlStr, args...)
	var s domain.Space
	var created, updated string
	if err := row.Scan(&s.ID, &s.ProjectID, &s.Name, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("space %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	s.CreatedAt, _ = time.Parse(time.RFC3339, created)
	s.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return &s, nil
}

func (r *SpaceRepo) ListByProject(ctx context.Context, projectID int64) ([]*domain.Space, error) {
	q := r.SQ.Select("id", "project_id", "name", "created_at", "updated_at").
		From("spaces").Where(sq.Eq{"project_id": projectID}).OrderBy("id")
	sqlStr, args, _ := q.ToSql()
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Space
	for rows.Next() {
		var s domain.Space
		var created, updated string
		if err := rows.Scan(&s.ID, &s.ProjectID, &s.Name, &created, &updated); err != nil {
			return nil, err
		}
		s.CreatedAt, _ = time.Parse(time.RFC3339, created)
		s.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
		out = append(out, &s)
	}
	return out, rows.Err()
}

func (r *SpaceRepo) Delete(ctx context.Context, id int64) error {
	q := r.SQ.Delete("spaces").Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	res, err := r.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("space %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *SpaceRepo) AddLanguage(ctx context.Context, sl *domain.SpaceLanguage) error {
	now := time.Now().UTC()
	q := r.SQ.Insert("space_languages").Columns("space_id", "language", "created_at").
		Values(sl.SpaceID, sl.Language, now.Format(time.RFC3339)).
		Suffix("ON CONFLICT(space_id, language) DO NOTHING")
	sqlStr, args, _ := q.ToSql()
	res, err := r.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("insert space language: %w", err)
	}
	id, _ := res.LastInsertId()
	sl.ID = id
	sl.CreatedAt = now
	return nil
}

func (r *SpaceRepo) ListLanguages(ctx context.Context, spaceID int64) ([]*domain.SpaceLanguage, error) {
	q := r.SQ.Select("id", "space_id", "language", "created_at").
		From("space_languages").Where(sq.Eq{"space_id": spaceID}).OrderBy("language")
	sqlStr, args, _ := q.ToSql()
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.SpaceLanguage
	for rows.Next() {
		var sl domain.SpaceLanguage
		var created string
		if err := rows.Scan(&sl.ID, &sl.SpaceID, &sl.Language, &created); err != nil {
			return nil, err
		}
		sl.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, &sl)
	}
	return out, rows.Err()
}

func (r *SpaceRepo) RemoveLanguage(ctx context.Context, spaceID int64, language string) error {
	q := r.SQ.Delete("space_languages").Where(sq.Eq{"space_id": spaceID, "language": language})
	sqlStr, args, _ := q.ToSql()
	res, err := r.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("language %q: %w", language, domain.ErrNotFound)
	}
	return nil
}

func (r *SpaceRepo) LanguageAllowed(ctx context.Context, spaceID int64, language string) (bool, error) {
	var total int
	sqlStr, args, _ := r.SQ.Select("COUNT(*)").From("space_languages").
		Where(sq.Eq{"space_id": spaceID}).ToSql()
	if err := r.DB.QueryRowContext(ctx, sqlStr, args...).Scan(&total); err != nil {
		return false, err
	}
	if total == 0 {
		return true, nil
	}
	var n int
	sqlStr, args, _ = r.SQ.Select("COUNT(*)").From("space_languages").
		Where(sq.Eq{"space_id": spaceID, "language": language}).ToSql()
	if err := r.DB.QueryRowContext(ctx, sqlStr, args...).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}
