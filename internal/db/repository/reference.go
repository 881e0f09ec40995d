package repository

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/GoACL-Admin/GoACL-Admin/internal/db/models"
)

// Exists fails with ErrInvalidReference unless a live row of model matches conds.
func Exists(tx *gorm.DB, model models.Record, conds map[string]any) error {
	var n int64

	err := tx.Session(&gorm.Session{NewDB: true}).Model(model).Where(conds).Count(&n).Error
	if err != nil {
		return fmt.Errorf("lookup %s: %w", model.TableName(), err)
	}

	if n == 0 {
		return fmt.Errorf("%w: no %s with %s", ErrInvalidReference, strings.TrimPrefix(model.TableName(), "t_"), describe(conds))
	}

	return nil
}

// Rename rewrites column from "from" to "to" on the rows of model matching conds.
// Removed rows are rewritten too when unscoped is set.
func Rename(tx *gorm.DB, model models.Record, conds map[string]any, column, from, to string, unscoped bool) error {
	if from == to {
		return nil
	}

	where := make(map[string]any, len(conds)+1)
	for k, v := range conds {
		where[k] = v
	}

	where[column] = from

	q := tx.Session(&gorm.Session{NewDB: true}).Model(model)
	if unscoped {
		q = q.Unscoped()
	}

	err := q.Where(where).UpdateColumns(map[string]any{
		column:                  to,
		models.ColumnUpdateTime: tx.NowFunc().Unix(),
	}).Error

	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: renaming %s %q to %q collides in %s", ErrConflict, column, from, to, model.TableName())
	default:
		return fmt.Errorf("rename %s in %s: %w", column, model.TableName(), err)
	}
}

func describe(conds map[string]any) string {
	keys := make([]string, 0, len(conds))
	for k := range conds {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, conds[k]))
	}

	return strings.Join(parts, " ")
}
