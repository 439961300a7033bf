package sqlite

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/VinniZP/lingx-sub016/internal/domain"
)

// BaselineRepo stores the divergence point of copied branches: one row per
// (key, language) value shared with the source branch at creation time.
type BaselineRepo struct{ *Repo }

func NewBaselineRepo(db DBTX) *BaselineRepo { return &BaselineRepo{NewRepo(db)} }

func (r *BaselineRepo) Capture(ctx context.Context, branchID, fromBranchID int64) error {
	_, err := r.DB.ExecContext(ctx, `
        INSERT INTO branch_baselines (branch_id, namespace, key_name, language, value)
        SELECT ?, k.namespace, k.name, t.language, t.value
        FROM translations t
        JOIN translation_keys k ON k.id = t.key_id
        WHERE k.branch_id = ?`, branchID, fromBranchID)
	if err != nil {
		return fmt.Errorf("capture baseline: %w", err)
	}
	return nil
}

func (r *BaselineRepo) ListByBranch(ctx context.Context, branchID int64) (map[domain.KeyRef]map[string]string, error) {
	q := r.SQ.Select("namespace", "key_name", "language", "value").
		From("branch_baselines").Where(sq.Eq{"branch_id": branchID})
	sqlStr, args, _ := q.ToSql()
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[domain.KeyRef]map[string]string{}
	for rows.Next() {
		var ns, name, lang, value string
		if err := rows.Scan(&ns, &name, &lang, &value); err != nil {
			return nil, err
		}
		ref := domain.KeyRef{Namespace: ns, Name: name}
		if out[ref] == nil {
			out[ref] = map[string]string{}
		}
		out[ref][lang] = value
	}
	return out, rows.Err()
}

// ReplaceKey rewrites the baseline of one key to the given values. Merge
// uses it to advance the divergence point after applying the source side.
func (r *BaselineRepo) ReplaceKey(ctx context.Context, branchID int64, ref domain.KeyRef, values map[string]string) error {
	if err := r.DeleteKey(ctx, branchID, ref); err != nil {
		return err
	}
	if len(values) == 0 {
		return nil
	}
	q := r.SQ.Insert("branch_baselines").Columns("branch_id", "namespace", "key_name", "language", "value")
	for lang, v := range values {
		q = q.Values(branchID, ref.Namespace, ref.Name, lang, v)
	}
	sqlStr, args, _ := q.ToSql()
	if _, err := r.DB.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("replace baseline for %q: %w", ref.Label(), err)
	}
	return nil
}

func (r *BaselineRepo) DeleteKey(ctx context.Context, branchID int64, ref domain.KeyRef) error {
	q := r.SQ.Delete("branch_baselines").
		Where(sq.Eq{"branch_id": branchID, "namespace": ref.Namespace, "key_name": ref.Name})
	sqlStr, args, _ := q.ToSql()
	if _, err := r.DB.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("delete baseline for %q: %w", ref.Label(), err)
	}
	return nil
}
