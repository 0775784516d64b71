package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/alexanderramin/focustrack/internal/domain"
	"github.com/alexanderramin/focustrack/internal/repository"
)

// usernamePattern keeps usernames safe to embed in per-user file names.
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// BcryptHasher is the default PasswordHasher.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

func (BcryptHasher) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

type userService struct {
	users    repository.UserRepo
	hasher   PasswordHasher
	now      func() time.Time
	observer UseCaseObserver
}

// NewUserService creates a UserService. A nil hasher means bcrypt with the
// default cost.
func NewUserService(users repository.UserRepo, hasher PasswordHasher, observers ...UseCaseObserver) UserService {
	if hasher == nil {
		hasher = BcryptHasher{}
	}
	return &userService{
		users:    users,
		hasher:   hasher,
		now:      time.Now,
		observer: useCaseObserverOrNoop(observers),
	}
}

// ValidateUsername checks that username is non-empty and limited to letters,
// digits, '_', '.' and '-'.
func ValidateUsername(username string) error {
	if !usernamePattern.MatchString(username) || username == "." || username == ".." {
		return fmt.Errorf("%q may only contain letters, digits, '_', '.' and '-': %w", username, ErrInvalidUsername)
	}
	return nil
}

func (s *userService) Register(ctx context.Context, username, password string) (id domain.Identity, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"user": username}
	defer func() { observe(ctx, s.observer, "register", startedAt, fields, err) }()

	if err = ValidateUsername(username); err != nil {
		return domain.Identity{}, err
	}
	if password == "" {
		return domain.Identity{}, errors.New("password must not be empty")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return domain.Identity{}, err
	}
	u := &domain.User{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err = s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return domain.Identity{}, fmt.Errorf("registering %q: %w", username, ErrUserExists)
		}
		return domain.Identity{}, fmt.Errorf("registering %q: %w", username, err)
	}
	return u.Identity(), nil
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (id domain.Identity, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"user": username}
	defer func() { observe(ctx, s.observer, "login", startedAt, fields, err) }()

	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Identity{}, ErrInvalidCredentials
		}
		return domain.Identity{}, fmt.Errorf("looking up user: %w", err)
	}
	if !s.hasher.Verify(u.PasswordHash, password) {
		return domain.Identity{}, ErrInvalidCredentials
	}
	return u.Identity(), nil
}

func (s *userService) Resolve(ctx context.Context, username string) (domain.Identity, error) {
	if username == "" {
		return domain.Identity{}, repository.ErrMissingIdentity
	}
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("resolving user %q: %w", username, err)
	}
	return u.Identity(), nil
}
