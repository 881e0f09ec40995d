package models

// Resource is a protectable capability, e.g. "user:read".
type Resource struct {
	ID          uint64 `gorm:"primaryKey" json:"id"`
	Namespace   string `gorm:"column:namespace;size:128;not null;uniqueIndex:udx_t_resource_live,priority:1" json:"namespace"`
	Resource    string `gorm:"column:resource;size:255;not null;uniqueIndex:udx_t_resource_live,priority:2" json:"resource"`
	Description string `gorm:"column:description;size:255" json:"description"`
	// Type is a free form classifier such as "api" or "menu".
	Type string `gorm:"column:type;size:64" json:"type"`
	Times
	DeleteTime DeleteTime `gorm:"column:delete_time;not null;default:0;uniqueIndex:udx_t_resource_live,priority:3" json:"deleteTime"`
}

// TableName specifies the database table name for the Resource model.
func (Resource) TableName() string {
	return "t_resource"
}

// GetID implements Record.
func (r *Resource) GetID() uint64 { return r.ID }

// IsDeleted implements Record.
func (r *Resource) IsDeleted() bool { return r.DeleteTime != 0 }
