package auth

import "time"

// User is the domain representation of an account. It mirrors the users
// table and carries no JSON annotations so it can be reused by different
// presentation layers. Accounts arrive two ways: email/password
// registration, or lookup-or-create from an external identity provider UID.
type User struct {
	ID           string
	ExternalUID  *string
	Email        *string
	FullName     string
	PasswordHash *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RegisterRequest contains user registration data supplied by callers.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// LoginRequest contains user login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult bundles the token and domain user returned after a
// successful authentication.
type LoginResult struct {
	Token string
	User  User
}
