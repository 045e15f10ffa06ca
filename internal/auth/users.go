// PantryChef - Ingredient-Driven Recipe Discovery
// Copyright 2026 PantryChef contributors
// SPDX-License-Identifier: MIT
// https://github.com/pantrychef/pantrychef

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pantrychef/pantrychef/internal/models"
)

// Key prefixes for BadgerDB storage.
const (
	userKeyPrefix  = "user:"
	emailKeyPrefix = "user_email:"
)

var (
	// ErrUserNotFound is returned for lookups of unknown accounts.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists is returned when registering a taken username.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials is returned when a password check fails.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserStore persists accounts in BadgerDB. Usernames are case-insensitive
// and unique; a secondary email key supports login by email.
type UserStore struct {
	db         *badger.DB
	bcryptCost int
}

// NewUserStore opens (or creates) the user database at the given path.
func NewUserStore(path string, bcryptCost int) (*UserStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open user database: %w", err)
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserStore{db: db, bcryptCost: bcryptCost}, nil
}

// NewUserStoreWithDB wraps an already-open BadgerDB, used by tests.
func NewUserStoreWithDB(db *badger.DB, bcryptCost int) *UserStore {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserStore{db: db, bcryptCost: bcryptCost}
}

// Close releases the underlying database.
func (s *UserStore) Close() error {
	return s.db.Close()
}

// Register creates a new account with a bcrypt-hashed password.
func (s *UserStore) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	return s.RegisterWithRole(ctx, username, email, password, "user")
}

// RegisterWithRole creates an account with an explicit role, used to seed
// the configured admin account.
func (s *UserStore) RegisterWithRole(ctx context.Context, username, email, password, role string) (*models.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" {
		return nil, fmt.Errorf("username must not be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().Unix(),
	}

	data, err := marshalUser(user)
	if err != nil {
		return nil, err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		userKey := []byte(userKeyPrefix + username)
		if _, err := txn.Get(userKey); err == nil {
			return ErrUserExists
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check username: %w", err)
		}

		if email != "" {
			emailKey := []byte(emailKeyPrefix + email)
			if _, err := txn.Get(emailKey); err == nil {
				return ErrUserExists
			} else if !errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("check email: %w", err)
			}
			if err := txn.Set(emailKey, []byte(username)); err != nil {
				return fmt.Errorf("set email mapping: %w", err)
			}
		}

		return txn.Set(userKey, data)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Get retrieves an account by username.
func (s *UserStore) Get(ctx context.Context, username string) (*models.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	var user models.User
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(userKeyPrefix + username))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}
		return item.Value(func(val []byte) error {
			return unmarshalUser(val, &user)
		})
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves an account through the email index.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var username string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(emailKeyPrefix + email))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("get email mapping: %w", err)
		}
		return item.Value(func(val []byte) error {
			username = string(val)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, username)
}

// Authenticate verifies a username (or email) and password pair. Returns
// ErrInvalidCredentials for both unknown accounts and wrong passwords so
// responses cannot be used to enumerate users.
func (s *UserStore) Authenticate(ctx context.Context, usernameOrEmail, password string) (*models.User, error) {
	user, err := s.Get(ctx, usernameOrEmail)
	if errors.Is(err, ErrUserNotFound) && strings.Contains(usernameOrEmail, "@") {
		user, err = s.GetByEmail(ctx, usernameOrEmail)
	}
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// storedUser is the persisted representation; unlike the wire type it
// carries the password hash.
type storedUser struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email,omitempty"`
	PasswordHash string `json:"password_hash"`
	Role         string `json:"role"`
	CreatedAt    int64  `json:"created_at"`
}

func marshalUser(u *models.User) ([]byte, error) {
	data, err := json.Marshal(storedUser{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal user: %w", err)
	}
	return data, nil
}

func unmarshalUser(data []byte, u *models.User) error {
	var su storedUser
	if err := json.Unmarshal(data, &su); err != nil {
		return fmt.Errorf("unmarshal user: %w", err)
	}
	u.ID = su.ID
	u.Username = su.Username
	u.Email = su.Email
	u.PasswordHash = su.PasswordHash
	u.Role = su.Role
	u.CreatedAt = su.CreatedAt
	return nil
}
