package models

// Admin roles.
const (
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

// AdminAccount grants dashboard access to an email. Records are keyed by the
// lowercased email. A nil Active counts as active.
type AdminAccount struct {
	Meta `bson:",inline"`

	Email  string `bson:"email" json:"email" validate:"required,email"`
	Name   string `bson:"name,omitempty" json:"name,omitempty"`
	Role   string `bson:"role" json:"role" validate:"required,oneof=admin superadmin"`
	Active *bool  `bson:"active,omitempty" json:"active,omitempty"`
}

// IsActive reports whether the account may use the dashboard.
func (a AdminAccount) IsActive() bool {
	return a.Active == nil || *a.Active
}
