package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/PAlucas/investsite/internal/domain/query"
)

// entityMeta describes how one entity maps to its table. The per-entity
// repositories are thin: each supplies a meta and delegates the shared CRUD
// surface to repo[T].
type entityMeta[T any] struct {
	table      string
	selectCols string   // column list matching T's db tags
	insertCols []string // columns written on insert, same order as insertVals
	insertVals func(*T) []any

	// queryable maps filter field names to columns; fields outside the map
	// fail with query.ErrUnknownField.
	queryable map[string]string
	// updatable maps partial-update attribute keys to columns; unknown keys
	// are ignored rather than rejected.
	updatable map[string]string

	errNotFound error
	// prepare assigns identity and timestamps before an insert.
	prepare func(*T, time.Time)
}

type repo[T any] struct {
	pool *Pool
	meta entityMeta[T]
}

func (r *repo[T]) create(ctx context.Context, e *T) error {
	r.meta.prepare(e, time.Now().UTC())

	placeholders := make([]string, len(r.meta.insertCols))
	for i := range r.meta.insertCols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	sql := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		r.meta.table,
		strings.Join(r.meta.insertCols, ", "),
		strings.Join(placeholders, ", "),
	)

	if _, err := r.pool.Exec(ctx, sql, r.meta.insertVals(e)...); err != nil {
		return fmt.Errorf("insert %s: %w", r.meta.table, err)
	}
	return nil
}

// createMany inserts the batch in a single multi-row statement. An empty
// batch is a no-op.
func (r *repo[T]) createMany(ctx context.Context, entities []*T) error {
	if len(entities) == 0 {
		return nil
	}

	now := time.Now().UTC()
	cols := len(r.meta.insertCols)
	rowsSQL := make([]string, 0, len(entities))
	args := make([]any, 0, len(entities)*cols)

	for i, e := range entities {
		r.meta.prepare(e, now)
		placeholders := make([]string, cols)
		for j := 0; j < cols; j++ {
			placeholders[j] = fmt.Sprintf("$%d", i*cols+j+1)
		}
		rowsSQL = append(rowsSQL, "("+strings.Join(placeholders, ", ")+")")
		args = append(args, r.meta.insertVals(e)...)
	}

	sql := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES %s",
		r.meta.table,
		strings.Join(r.meta.insertCols, ", "),
		strings.Join(rowsSQL, ", "),
	)

	if _, err := r.pool.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("batch insert %s: %w", r.meta.table, err)
	}
	return nil
}

func (r *repo[T]) findByID(ctx context.Context, id string) (*T, error) {
	sql := fmt.Sprintf(
		"SELECT %s FROM %s WHERE id = $1 AND deleted_at IS NULL",
		r.meta.selectCols, r.meta.table,
	)

	rows, err := r.pool.Query(ctx, sql, id)
	if err != nil {
		return nil, fmt.Errorf("query %s by id: %w", r.meta.table, err)
	}

	entity, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.meta.errNotFound
		}
		return nil, fmt.Errorf("scan %s: %w", r.meta.table, err)
	}
	return entity, nil
}

func (r *repo[T]) findBy(ctx context.Context, f *query.Filter) ([]*T, error) {
	tail, args, err := buildFilterSQL(f, r.meta.queryable)
	if err != nil {
		return nil, err
	}

	sql := fmt.Sprintf("SELECT %s FROM %s %s", r.meta.selectCols, r.meta.table, tail)

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", r.meta.table, err)
	}

	entities, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", r.meta.table, err)
	}
	return entities, nil
}

// findOneBy forces Limit(1) and maps an empty result to the entity's
// not-found sentinel.
func (r *repo[T]) findOneBy(ctx context.Context, f *query.Filter) (*T, error) {
	if f == nil {
		f = query.All()
	}
	entities, err := r.findBy(ctx, f.Limit(1))
	if err != nil {
		return nil, err
	}
	if len(entities) == 0 {
		return nil, r.meta.errNotFound
	}
	return entities[0], nil
}

// update applies a partial update. Attribute keys outside the updatable map
// are silently ignored; an update that ends up touching nothing still bumps
// updated_at. The row is re-read so callers observe the stored state.
func (r *repo[T]) update(ctx context.Context, id string, attrs map[string]any) (*T, error) {
	setClauses := []string{}
	args := []any{}
	argIndex := 1

	for key, value := range attrs {
		col, ok := r.meta.updatable[key]
		if !ok {
			continue
		}
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, argIndex))
		args = append(args, value)
		argIndex++
	}

	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", argIndex))
	args = append(args, time.Now().UTC())
	argIndex++

	sql := fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = $%d AND deleted_at IS NULL",
		r.meta.table, strings.Join(setClauses, ", "), argIndex,
	)
	args = append(args, id)

	tag, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", r.meta.table, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, r.meta.errNotFound
	}

	return r.findByID(ctx, id)
}

// softDelete marks the row deleted. Returns false when the row is absent or
// already deleted, so repeated calls are safe.
func (r *repo[T]) softDelete(ctx context.Context, id string) (bool, error) {
	now := time.Now().UTC()
	sql := fmt.Sprintf(
		"UPDATE %s SET deleted_at = $1, updated_at = $2 WHERE id = $3 AND deleted_at IS NULL",
		r.meta.table,
	)

	tag, err := r.pool.Exec(ctx, sql, now, now, id)
	if err != nil {
		return false, fmt.Errorf("soft delete %s: %w", r.meta.table, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repo[T]) delete(ctx context.Context, id string) (bool, error) {
	sql := fmt.Sprintf("DELETE FROM %s WHERE id = $1", r.meta.table)

	tag, err := r.pool.Exec(ctx, sql, id)
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", r.meta.table, err)
	}
	return tag.RowsAffected() > 0, nil
}
