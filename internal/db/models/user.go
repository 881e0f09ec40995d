package models

// User is an identity scoped to a namespace.
// The password is stored as an argon2id hash and never serialised.
type User struct {
	// ID is the unique identifier for the user.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// OID is an optional external identifier, unique when set.
	OID *string `gorm:"column:o_id;size:255;uniqueIndex:udx_t_user_o_id" json:"oId"`
	// Namespace owning the user.
	Namespace string `gorm:"column:namespace;size:128;not null;uniqueIndex:udx_t_user_live,priority:1" json:"namespace"`
	// User is the login name, unique among the live users of a namespace.
	User string `gorm:"column:user;size:255;not null;uniqueIndex:udx_t_user_live,priority:2" json:"user"`
	// Name is the display name.
	Name string `gorm:"column:name;size:255;not null" json:"name"`
	// Job title.
	Job string `gorm:"column:job;size:255" json:"job"`
	// Password is the password hash.
	Password string `gorm:"column:password;size:255;not null" json:"-"`
	// PhoneNumber of the user.
	PhoneNumber string `gorm:"column:phone_number;size:64" json:"phoneNumber"`
	// Email address of the user.
	Email string `gorm:"column:email;size:255" json:"email"`
	Times
	// DeleteTime marks the user as removed.
	DeleteTime DeleteTime `gorm:"column:delete_time;not null;default:0;uniqueIndex:udx_t_user_live,priority:3" json:"deleteTime"`
}

// TableName specifies the database table name for the User model.
func (User) TableName() string {
	return "t_user"
}

// GetID implements Record.
func (u *User) GetID() uint64 { return u.ID }

// IsDeleted implements Record.
func (u *User) IsDeleted() bool { return u.DeleteTime != 0 }
