// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/rosterd/rosterd/internal/cache"
	"github.com/rosterd/rosterd/internal/metrics"
	"github.com/rosterd/rosterd/internal/model"
	"github.com/rosterd/rosterd/internal/repository"
	"github.com/rosterd/rosterd/internal/validation"
)

// Service errors.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already in use")
)

// ValidationError carries the full set of field violations for a rejected
// candidate user.
type ValidationError struct {
	Violations []validation.Violation
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	fields := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		fields[i] = v.Field
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}

// UserStore is the persistence capability the service depends on.
// *repository.Repository satisfies it; implementations signal missing rows
// with repository.ErrUserNotFound and unique-index conflicts with
// repository.ErrEmailExists.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
	DeleteUser(ctx context.Context, id string) error
	EmailExists(ctx context.Context, email string) (bool, error)
}

// UserCache is the read-path cache capability. Lookups signal a miss with
// cache.ErrCacheMiss. All cache failures are treated as misses; the store
// stays authoritative.
type UserCache interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
	SetUser(ctx context.Context, user *model.User) error
	DeleteUser(ctx context.Context, id string) error
}

// ValidateFunc checks a candidate user and returns all rule violations.
type ValidateFunc func(validation.Candidate) []validation.Violation

// UserService handles user business logic.
type UserService struct {
	store    UserStore
	cache    UserCache
	validate ValidateFunc
	metrics  metrics.Recorder
}

// NewUserService creates a new UserService. A nil validate falls back to
// validation.Validate, a nil recorder to the no-op recorder.
func NewUserService(store UserStore, userCache UserCache, validate ValidateFunc, recorder metrics.Recorder) *UserService {
	if validate == nil {
		validate = validation.Validate
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &UserService{
		store:    store,
		cache:    userCache,
		validate: validate,
		metrics:  recorder,
	}
}

// GetUser retrieves a user by id, cache first.
func (s *UserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveLookupDuration(time.Since(start))
	}()

	cached, err := s.cache.GetUser(ctx, id)
	if err == nil {
		s.metrics.IncUserCacheHit()
		return cached, nil
	}
	if errors.Is(err, cache.ErrCacheMiss) {
		s.metrics.IncUserCacheMiss()
	}
	// Redis errors fall through to the store; the cache is never
	// authoritative.

	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// Backfill cache, best effort
	_ = s.cache.SetUser(ctx, user)

	return user, nil
}

// ListUsers retrieves all users in store order.
func (s *UserService) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.store.ListUsers(ctx)
}

// CreateUserInput defines input for creating a user.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
}

// CreateUser creates a new user. The duplicate-email check runs before
// validation and before any write; the unique index on users.email is the
// backstop for the window between check and insert.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*model.User, error) {
	taken, err := s.store.EmailExists(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	if violations := s.validate(validation.Candidate{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	}); len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &model.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The store assigns the id on insert.
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.metrics.IncUserCreated()

	_ = s.cache.SetUser(ctx, user)

	return user, nil
}

// UpdateUserInput defines input for updating a user. All three mutable
// fields are applied; the id never changes.
type UpdateUserInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateUser applies changes onto the current record and saves it whole.
// A user may keep their own email; claiming another user's email fails
// with ErrEmailTaken.
func (s *UserService) UpdateUser(ctx context.Context, id string, input UpdateUserInput) (*model.User, error) {
	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// Tie-break by id, not by fetched reference: the owner of the target
	// email may be this same user after a re-fetch.
	owner, err := s.store.GetUserByEmail(ctx, input.Email)
	if err == nil && owner.ID != id {
		return nil, ErrEmailTaken
	}
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	if violations := s.validate(validation.Candidate{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	}); len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user.Name = input.Name
	user.Email = input.Email
	user.PasswordHash = hash
	user.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailExists):
			return nil, ErrEmailTaken
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, ErrUserNotFound
		default:
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}

	s.metrics.IncUserUpdated()

	// Invalidate cache, best effort
	_ = s.cache.DeleteUser(ctx, id)

	return user, nil
}

// DeleteUser removes a user. The existence pre-check is the sole source of
// ErrUserNotFound; the store-level delete is idempotent.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if _, err := s.store.GetUserByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.store.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.metrics.IncUserDeleted()

	_ = s.cache.DeleteUser(ctx, id)

	return nil
}

// hashPassword hashes a plaintext password with bcrypt. Plaintext is never
// stored or cached.
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// checkPassword compares a plaintext password against a user's stored hash.
func checkPassword(user *model.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}
