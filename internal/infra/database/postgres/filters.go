package postgres

import (
	"fmt"
	"strings"

	"github.com/PAlucas/investsite/internal/domain/query"
)

// buildFilterSQL translates a filter specification into the WHERE/ORDER/LIMIT
// tail of a SELECT. columns maps filter field names to SQL columns; a field
// outside the map fails with query.ErrUnknownField so typos surface instead
// of silently matching everything. The soft-delete exclusion is ANDed in
// unconditionally and callers cannot opt out through this path.
func buildFilterSQL(f *query.Filter, columns map[string]string) (string, []any, error) {
	whereClauses := []string{"deleted_at IS NULL"}
	args := []any{}
	argIndex := 1

	if f != nil {
		for _, p := range f.Predicates {
			col, ok := columns[p.Field]
			if !ok {
				return "", nil, fmt.Errorf("%w: %s", query.ErrUnknownField, p.Field)
			}

			switch p.Cond.Op {
			case query.OpEquals:
				whereClauses = append(whereClauses, fmt.Sprintf("%s = $%d", col, argIndex))
				args = append(args, p.Cond.Value)
				argIndex++
			case query.OpIn:
				if len(p.Cond.Values) == 0 {
					// IN over an empty set matches nothing.
					whereClauses = append(whereClauses, "FALSE")
					continue
				}
				placeholders := make([]string, 0, len(p.Cond.Values))
				for _, v := range p.Cond.Values {
					placeholders = append(placeholders, fmt.Sprintf("$%d", argIndex))
					args = append(args, v)
					argIndex++
				}
				whereClauses = append(whereClauses, fmt.Sprintf("%s IN (%s)", col, strings.Join(placeholders, ", ")))
			case query.OpNotIn:
				if len(p.Cond.Values) == 0 {
					// NOT IN over an empty set excludes nothing.
					continue
				}
				placeholders := make([]string, 0, len(p.Cond.Values))
				for _, v := range p.Cond.Values {
					placeholders = append(placeholders, fmt.Sprintf("$%d", argIndex))
					args = append(args, v)
					argIndex++
				}
				whereClauses = append(whereClauses, fmt.Sprintf("%s NOT IN (%s)", col, strings.Join(placeholders, ", ")))
			case query.OpIsNull:
				whereClauses = append(whereClauses, fmt.Sprintf("%s IS NULL", col))
			case query.OpIsNotNull:
				whereClauses = append(whereClauses, fmt.Sprintf("%s IS NOT NULL", col))
			case query.OpAtLeast:
				whereClauses = append(whereClauses, fmt.Sprintf("%s >= $%d", col, argIndex))
				args = append(args, p.Cond.Value)
				argIndex++
			case query.OpAtMost:
				whereClauses = append(whereClauses, fmt.Sprintf("%s <= $%d", col, argIndex))
				args = append(args, p.Cond.Value)
				argIndex++
			default:
				return "", nil, fmt.Errorf("unsupported filter operator %d on field %s", p.Cond.Op, p.Field)
			}
		}
	}

	sql := "WHERE " + strings.Join(whereClauses, " AND ")

	if f != nil && f.Order != nil {
		col, ok := columns[f.Order.Field]
		if !ok {
			return "", nil, fmt.Errorf("%w: order by %s", query.ErrUnknownField, f.Order.Field)
		}
		direction := "ASC"
		if f.Order.Direction == query.Desc {
			direction = "DESC"
		}
		sql += fmt.Sprintf(" ORDER BY %s %s", col, direction)
	}

	if f != nil && f.LimitCount > 0 {
		sql += fmt.Sprintf(" LIMIT %d", f.LimitCount)
	}

	return sql, args, nil
}
