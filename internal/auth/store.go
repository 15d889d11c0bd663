// Package auth implements user registration and login for the chat UI:
// a Postgres-backed account store with bcrypt password hashes and JWT
// access/refresh tokens.
package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrEmailTaken is returned when registering an email that already
	// has an account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned for unknown emails and wrong
	// passwords alike, so responses don't reveal which one it was.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// uniqueViolation is the Postgres error code for unique constraint breaches.
const uniqueViolation = "23505"

// User is a registered account.
type User struct {
	ID        uuid.UUID
	Email     string
	Username  string
	CreatedAt time.Time
}

// Store wraps account persistence on a single Postgres database.
type Store struct {
	db *sql.DB
}

// Open connects to Postgres and returns a Store. The caller owns the
// connection lifecycle through Close.
func Open(databaseURL string) (*Store, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	return NewStore(db), nil
}

// NewStore constructs a Store from an existing sql.DB.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Close releases the underlying connection pool.
func (s *Store) Close() error { return s.db.Close() }

// Migrate creates the users table when it does not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS users (
            id            UUID PRIMARY KEY,
            email         TEXT NOT NULL UNIQUE,
            username      TEXT NOT NULL,
            password_hash TEXT NOT NULL,
            created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`)
	return err
}

// Register creates an account. An empty username defaults to the local part
// of the email address.
func (s *Store) Register(ctx context.Context, email, username, password string) (*User, error) {
	if username == "" {
		username = emailLocalPart(email)
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &User{ID: uuid.New(), Email: email, Username: username}
	err = s.db.QueryRowContext(ctx,
		`INSERT INTO users (id, email, username, password_hash)
         VALUES ($1, $2, $3, $4)
         RETURNING created_at`,
		u.ID, u.Email, u.Username, hash,
	).Scan(&u.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// Authenticate verifies an email/password pair and returns the account.
func (s *Store) Authenticate(ctx context.Context, email, password string) (*User, error) {
	var (
		u    User
		hash string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, username, password_hash, created_at
         FROM users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Email, &u.Username, &hash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !checkPassword(hash, password) {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func emailLocalPart(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}
