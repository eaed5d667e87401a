package user

import "time"

// Credentials is a stored account of the local mock auth.
// The password is kept as entered, there is no real credential check.
type Credentials struct {
	ID        int64     `json:"id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Profile is what the session remembers about the current user.
type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
