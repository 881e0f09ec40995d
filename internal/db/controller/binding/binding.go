// Package binding implements the User-Role and Role-Permission Binding Stores.
//
// Bindings reference users, roles and resources by name inside their
// namespace. Every create and update checks, in the write transaction, that
// the namespace and each referenced record exist and are live. Removing a
// referenced record does not remove its bindings.
package binding

import (
	"gorm.io/gorm"

	"github.com/GoACL-Admin/GoACL-Admin/internal/db/models"
	"github.com/GoACL-Admin/GoACL-Admin/internal/db/repository"
)

const (
	columnUser     = "user"
	columnRole     = "role"
	columnResource = "resource"
)

// references checks the namespace and then each named record of it.
func references(tx *gorm.DB, namespace string, refs ...ref) error {
	if err := repository.Exists(tx, &models.Namespace{}, map[string]any{models.ColumnNamespace: namespace}); err != nil {
		return err
	}

	for _, r := range refs {
		err := repository.Exists(tx, r.model, map[string]any{
			models.ColumnNamespace: namespace,
			r.column:               r.value,
		})
		if err != nil {
			return err
		}
	}

	return nil
}

type ref struct {
	model  models.Record
	column string
	value  string
}
