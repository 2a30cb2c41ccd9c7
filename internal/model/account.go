package model

import "time"

// Account represents an application account record as stored in the
// `users` table.  The username doubles as the primary key and is
// immutable after signup.  Accounts created through the signup flow
// always carry the "user" role; the single "admin" account is seeded
// at first initialization.
//
// Fields:
//
//	Username     – unique account identifier (primary key).
//	PasswordHash – bcrypt hashed password.
//	Role         – "admin" or "user".
//	CreatedAt    – timestamp of creation.
type Account struct {
	Username     string    // users.username
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	CreatedAt    time.Time // users.created_at
}

// Account roles.  Stored lowercase; login compares the claimed role
// case-insensitively.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// RefreshToken models an entry in the `refresh_tokens` table.  Each refresh
// token belongs to an account and carries metadata for expiry and
// revocation.  The plain token is never stored, only its SHA-256 hash.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	Username  string     // refresh_tokens.username
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
