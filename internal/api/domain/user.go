package domain

import "time"

// Role separates job seekers from employers.
type Role string

const (
	RoleJobSeeker Role = "job_seeker"
	RoleCompany   Role = "company"
)

// ParseRole converts a raw string to a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	switch r {
	case RoleJobSeeker, RoleCompany:
		return r, nil
	}
	return "", Validation("user type must be job_seeker or company", nil)
}

// User is the public user record. It never carries credentials.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Role        Role      `json:"user_type"`
	FullName    string    `json:"full_name"`
	CompanyName string    `json:"company_name,omitempty"`
	Avatar      string    `json:"avatar,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// DisplayName is the name shown on jobs an employer posts.
func (u *User) DisplayName() string {
	if u.Role == RoleCompany && u.CompanyName != "" {
		return u.CompanyName
	}
	return u.FullName
}

// Identity is the read-only authentication state handed to route guards and
// the application intake.
type Identity struct {
	IsAuthenticated bool  `json:"is_authenticated"`
	Role            Role  `json:"role,omitempty"`
	User            *User `json:"user,omitempty"`
}

// Anonymous is the identity of a request without a valid session.
func Anonymous() Identity {
	return Identity{}
}

// Authenticated builds the identity for a resolved user.
func Authenticated(u *User) Identity {
	return Identity{IsAuthenticated: true, Role: u.Role, User: u}
}
