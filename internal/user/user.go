package user

import "github.com/fintrackhq/fintrack/internal/auth"

// Profile is the authenticated user's own view of their account.
type Profile struct {
	ID        int64    `json:"id"`
	Email     string   `json:"email"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	FullName  string   `json:"full_name"`
	Roles     []string `json:"roles"`
}

func profileFromUser(u *auth.User) *Profile {
	fullName := u.FirstName
	if u.LastName != "" {
		if fullName != "" {
			fullName += " "
		}
		fullName += u.LastName
	}
	return &Profile{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  fullName,
		Roles:     u.Roles,
	}
}
