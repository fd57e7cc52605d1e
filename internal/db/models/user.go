package models

// User is an account listed in the dashboard.
// Role holds the role name, not its id, and is never rewritten when roles change.
type User struct {
	ID     uint64 `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status Status `json:"status"`
}

// UserID returns the user's id.
func UserID(u User) uint64 { return u.ID }
