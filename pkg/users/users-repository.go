package users

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/silvermint/pawtrack/pkg/auth"
)

type UserRepository interface {
	Register(data SignUpData) (*User, error)
	Login(data SignInData) (auth.Identity, error)
	ExistsUserId(id int64) bool
	GetUserById(id int64) (User, error)
}

type userRepository struct {
	Connection *sql.DB
}

var (
	ErrInvalidEmail  = errors.New("the email address is invalid")
	ErrEmailTaken    = errors.New("the email address is already registered")
	ErrUnknownEmail  = errors.New("no account matches the email address")
	ErrWrongPassword = errors.New("the password is incorrect")
)

func NewRepository(connection *sql.DB) UserRepository {
	return &userRepository{connection}
}

// Register creates a new account after vetting the email format and the password
// policy, in that order. The duplicate check and the insertion share one transaction;
// the unique constraint on emails remains the authoritative guard against two
// racing signups, with the pre-check merely producing a friendlier error.
func (ur *userRepository) Register(data SignUpData) (*User, error) {

	if !auth.ValidEmail(data.Email) {
		return nil, ErrInvalidEmail
	}
	if err := auth.ValidatePassword(data.Password); err != nil {
		return nil, err
	}

	var email = auth.NormaliseEmail(data.Email)

	tx, err := ur.Connection.Begin()
	if err != nil {
		return nil, err
	}

	// rolling back after a transaction commit results in a safe NOP
	defer func() {
		_ = tx.Rollback()
	}()

	var existingId int64
	switch err = tx.QueryRow("SELECT id FROM users WHERE email = ?", email).Scan(&existingId); {
	case err == nil:
		return nil, ErrEmailTaken
	case !errors.Is(err, sql.ErrNoRows):
		return nil, err
	}

	// hashing occurs within the transaction's span, but SQLite serialises writers,
	// not readers, so the spent milliseconds don't block other logins
	hash, err := auth.HashPassword(data.Password)
	if err != nil {
		return nil, err
	}

	var now = time.Now()
	result, err := tx.Exec(
		"INSERT INTO users (email, password_hash, created_at) VALUES (?, ?, ?)",
		email, hash, now,
	)

	// detects signups which slipped past the pre-check and hit the unique constraint
	if sqliteErr, ok := err.(sqlite3.Error); ok {
		if sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, ErrEmailTaken
		}
	}
	if err != nil {
		return nil, fmt.Errorf("couldn't add user %q: %w", email, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return &User{id, email, now}, nil
}

// Login verifies the given credentials and returns the account's identity.
// Unknown emails and mismatched passwords yield distinct errors, trading a minor
// enumeration aid for clearer feedback, as the original interface does.
func (ur *userRepository) Login(data SignInData) (identity auth.Identity, err error) {

	var hash []byte
	err = ur.Connection.QueryRow(
		"SELECT id, email, password_hash FROM users WHERE email = ?",
		auth.NormaliseEmail(data.Email),
	).Scan(&identity.Id, &identity.Email, &hash)

	if errors.Is(err, sql.ErrNoRows) {
		return auth.Identity{}, ErrUnknownEmail
	}
	if err != nil {
		return auth.Identity{}, err
	}

	if !auth.VerifyPassword(data.Password, hash) {
		return auth.Identity{}, ErrWrongPassword
	}

	return identity, nil
}

func (ur *userRepository) ExistsUserId(id int64) (exists bool) {
	// will return false in the absence of positive results
	err := ur.Connection.QueryRow("SELECT TRUE FROM users WHERE id = ?", id).Scan(&exists)
	return err == nil && exists
}

// GetUserById either returns a user matching the id, or an error (along with an ignorable empty struct).
func (ur *userRepository) GetUserById(id int64) (user User, err error) {
	// if the query selects no rows, *Row's `Scan` will return ErrNoRows
	if err = ur.Connection.QueryRow("SELECT id, email, created_at FROM users WHERE id = ?", id).Scan(
		&user.Id,
		&user.Email,
		&user.Created,
	); err != nil {
		return user, err
	}
	return user, nil
}
