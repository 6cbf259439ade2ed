package entity

import "time"

// Role is the marketplace role of a user. It is an axis independent of the
// admin flag: an admin keeps holding BUYER or FREELANCER at the same time.
type Role string

const (
	RoleBuyer      Role = "BUYER"
	RoleFreelancer Role = "FREELANCER"
)

// Valid reports whether r is one of the known marketplace roles.
func (r Role) Valid() bool {
	return r == RoleBuyer || r == RoleFreelancer
}

// User is the aggregate root for the user domain.
// Passwords are stored as bcrypt hashes in Password.
// IsDeleted is a deactivation flag, not a hard delete.
type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Password   string    `json:"-"`
	Role       Role      `json:"role"`
	IsAdmin    bool      `json:"isAdmin"`
	Verified   bool      `json:"verified"`
	IsDeleted  bool      `json:"isDeleted"`
	DateJoined time.Time `json:"dateJoined"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
