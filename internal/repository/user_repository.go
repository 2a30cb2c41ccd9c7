package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/cecosrail/reservation/internal/model"
	"github.com/cecosrail/reservation/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a new account with a bcrypt-hashed password.  The username
// is normalized to lower case before insertion.  A duplicate username is
// reported as ErrUsernameExists.
func (r *UserRepo) Create(ctx context.Context, username, password, role string, cost int) error {
	username = strings.ToLower(strings.TrimSpace(username))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, role) VALUES (?,?,?)",
		username, hash, role)
	if err != nil {
		// MySQL duplicate-key errors carry code 1062.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrUsernameExists
		}
		return err
	}
	return nil
}

// GetByUsername fetches an account by its normalized username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.Account, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	var a model.Account
	err := r.DB.QueryRowContext(ctx,
		"SELECT username,password_hash,role,created_at FROM users WHERE username=? LIMIT 1",
		username).Scan(&a.Username, &a.PasswordHash, &a.Role, &a.CreatedAt)
	return a, err
}
