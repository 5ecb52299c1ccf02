// Package model defines domain entities for the application.
package model

import (
	"strconv"
	"time"
)

// User represents a registered user. The password hash never leaves the
// service/store boundary and is excluded from JSON serialization.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CachedUser represents user data stored in Redis cache.
// Uses string types for Redis hash compatibility. The password hash is
// never cached.
type CachedUser struct {
	Name      string `redis:"name"`
	Email     string `redis:"email"`
	CreatedAt string `redis:"created_at"` // Unix timestamp
	UpdatedAt string `redis:"updated_at"` // Unix timestamp
}

// ToCachedUser converts a User to its cache representation.
func (u *User) ToCachedUser() *CachedUser {
	return &CachedUser{
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: strconv.FormatInt(u.CreatedAt.Unix(), 10),
		UpdatedAt: strconv.FormatInt(u.UpdatedAt.Unix(), 10),
	}
}

// ToUser converts a cached entry back into a User with the given id.
// Timestamps that fail to parse are left zero.
func (c *CachedUser) ToUser(id string) *User {
	user := &User{
		ID:    id,
		Name:  c.Name,
		Email: c.Email,
	}

	if ts, err := strconv.ParseInt(c.CreatedAt, 10, 64); err == nil {
		user.CreatedAt = time.Unix(ts, 0).UTC()
	}
	if ts, err := strconv.ParseInt(c.UpdatedAt, 10, 64); err == nil {
		user.UpdatedAt = time.Unix(ts, 0).UTC()
	}

	return user
}
