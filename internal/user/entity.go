// InstaBids | 2026
// entity.go

package user

import (
	"time"
)

type User struct {
	ID             string     `db:"id"`
	Email          string     `db:"email"`
	PasswordHash   string     `db:"password_hash"`
	FullName       string     `db:"full_name"`
	Phone          *string    `db:"phone"`
	UserType       string     `db:"user_type"`
	OrganizationID *string    `db:"organization_id"`
	EmailVerified  bool       `db:"email_verified"`
	PhoneVerified  bool       `db:"phone_verified"`
	TokenVersion   int        `db:"token_version"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
	DeletedAt      *time.Time `db:"deleted_at"`
}

func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

func (u *User) IsAdmin() bool {
	return u.UserType == TypeAdmin
}

func (u *User) OrgID() string {
	if u.OrganizationID == nil {
		return ""
	}
	return *u.OrganizationID
}

const (
	TypePropertyManager = "property_manager"
	TypeContractor      = "contractor"
	TypeTenant          = "tenant"
	TypeAdmin           = "admin"
)

// RegistrableTypes are the user types accepted at self-registration; admins
// are provisioned out of band.
var RegistrableTypes = []string{TypePropertyManager, TypeContractor, TypeTenant}
