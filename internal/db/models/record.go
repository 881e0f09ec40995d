// Package models defines the gorm models of the ACL tables.
//
// Every table carries create_time, update_time and delete_time as unix seconds.
// A delete_time of 0 marks a live row; removed rows are kept and hidden from
// default queries by the soft_delete plugin.
package models

import "gorm.io/plugin/soft_delete"

// Record is implemented by every ACL table model.
type Record interface {
	// TableName is the database table of the model.
	TableName() string
	// GetID returns the primary key.
	GetID() uint64
	// IsDeleted reports whether the row was soft deleted.
	IsDeleted() bool
}

// Times are the create and update stamps shared by all tables.
type Times struct {
	// CreateTime is set once on insert (unix seconds).
	CreateTime int64 `gorm:"column:create_time;not null;autoCreateTime" json:"createTime"`
	// UpdateTime is refreshed by every write (unix seconds).
	UpdateTime int64 `gorm:"column:update_time;not null;autoUpdateTime" json:"updateTime"`
}

// DeleteTime is the soft delete marker, 0 while the row is live.
type DeleteTime = soft_delete.DeletedAt

// Column names shared by all tables.
const (
	ColumnID         = "id"
	ColumnNamespace  = "namespace"
	ColumnCreateTime = "create_time"
	ColumnUpdateTime = "update_time"
	ColumnDeleteTime = "delete_time"
)

// All returns one zero value of every model, in migration order.
func All() []any {
	return []any{
		&Namespace{},
		&User{},
		&Role{},
		&Resource{},
		&UserRole{},
		&RolePermission{},
	}
}
