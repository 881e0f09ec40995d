package models

// Role is a named set of resource permissions within a namespace.
type Role struct {
	ID          uint64 `gorm:"primaryKey" json:"id"`
	Namespace   string `gorm:"column:namespace;size:128;not null;uniqueIndex:udx_t_role_live,priority:1" json:"namespace"`
	Role        string `gorm:"column:role;size:255;not null;uniqueIndex:udx_t_role_live,priority:2" json:"role"`
	Description string `gorm:"column:description;size:255" json:"description"`
	Times
	DeleteTime DeleteTime `gorm:"column:delete_time;not null;default:0;uniqueIndex:udx_t_role_live,priority:3" json:"deleteTime"`
}

// TableName specifies the database table name for the Role model.
func (Role) TableName() string {
	return "t_role"
}

// GetID implements Record.
func (r *Role) GetID() uint64 { return r.ID }

// IsDeleted implements Record.
func (r *Role) IsDeleted() bool { return r.DeleteTime != 0 }
