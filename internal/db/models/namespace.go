package models

// Namespace is a tenant. Every other record belongs to exactly one namespace.
type Namespace struct {
	// ID is the unique identifier for the namespace.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// Namespace is the tenant name. It stays reserved after the namespace was removed.
	Namespace string `gorm:"column:namespace;size:128;not null;uniqueIndex:udx_t_namespace_namespace" json:"namespace"`
	// Description is a free text note.
	Description string `gorm:"column:description;size:255" json:"description"`
	Times
	// DeleteTime marks the namespace as removed.
	DeleteTime DeleteTime `gorm:"column:delete_time;not null;default:0" json:"deleteTime"`
}

// TableName specifies the database table name for the Namespace model.
func (Namespace) TableName() string {
	return "t_namespace"
}

// GetID implements Record.
func (n *Namespace) GetID() uint64 { return n.ID }

// IsDeleted implements Record.
func (n *Namespace) IsDeleted() bool { return n.DeleteTime != 0 }
