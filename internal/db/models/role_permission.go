package models

// RolePermission grants a resource to a role. Both sides are referenced by
// name within the namespace of the binding.
type RolePermission struct {
	ID          uint64 `gorm:"primaryKey" json:"id"`
	Namespace   string `gorm:"column:namespace;size:128;not null;uniqueIndex:udx_t_role_permission_live,priority:1" json:"namespace"`
	Role        string `gorm:"column:role;size:255;not null;uniqueIndex:udx_t_role_permission_live,priority:2" json:"role"`
	Resource    string `gorm:"column:resource;size:255;not null;uniqueIndex:udx_t_role_permission_live,priority:3;index" json:"resource"`
	Description string `gorm:"column:description;size:255" json:"description"`
	Times
	DeleteTime DeleteTime `gorm:"column:delete_time;not null;default:0;uniqueIndex:udx_t_role_permission_live,priority:4" json:"deleteTime"`
}

// TableName specifies the database table name for the RolePermission model.
func (RolePermission) TableName() string {
	return "t_role_permission"
}

// GetID implements Record.
func (b *RolePermission) GetID() uint64 { return b.ID }

// IsDeleted implements Record.
func (b *RolePermission) IsDeleted() bool { return b.DeleteTime != 0 }
