package models

// UserRole binds a user to a role. Both sides are referenced by name
// within the namespace of the binding.
type UserRole struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	Namespace string `gorm:"column:namespace;size:128;not null;uniqueIndex:udx_t_user_role_live,priority:1" json:"namespace"`
	User      string `gorm:"column:user;size:255;not null;uniqueIndex:udx_t_user_role_live,priority:2" json:"user"`
	Role      string `gorm:"column:role;size:255;not null;uniqueIndex:udx_t_user_role_live,priority:3;index" json:"role"`
	Times
	DeleteTime DeleteTime `gorm:"column:delete_time;not null;default:0;uniqueIndex:udx_t_user_role_live,priority:4" json:"deleteTime"`
}

// TableName specifies the database table name for the UserRole model.
func (UserRole) TableName() string {
	return "t_user_role"
}

// GetID implements Record.
func (b *UserRole) GetID() uint64 { return b.ID }

// IsDeleted implements Record.
func (b *UserRole) IsDeleted() bool { return b.DeleteTime != 0 }
