package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/todosimple/taskboard/internal/clock"
	"github.com/todosimple/taskboard/internal/models"
	"github.com/todosimple/taskboard/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong
	// password; callers must not distinguish the two.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrAccountLocked      = errors.New("account temporarily locked")
)

// Principal is the authenticated identity: resolved once at login,
// carried through the session, and never re-derived mid-request.
type Principal struct {
	UserID uint64
	Name   string
	Email  string
	Role   string
}

// IsAdmin reports whether the principal holds the global Admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

// AuthService validates credentials and runs the lockout state machine.
type AuthService struct {
	userRepo    repository.UserRepository
	maxAttempts int
	lockWindow  time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, maxAttempts int, lockWindow time.Duration) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		maxAttempts: maxAttempts,
		lockWindow:  lockWindow,
	}
}

// Authenticate verifies credentials and returns the session principal.
//
// Checks run in a fixed order: unknown user, disabled account, active
// lock, then the password itself. The lock check happens before any
// counter mutation, so attempts against a locked account cannot churn
// its state. Lock expiry is evaluated against the current instant, so
// locks heal themselves without a background sweep.
func (s *AuthService) Authenticate(email, password string) (*Principal, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !user.Active {
		return nil, ErrAccountDisabled
	}

	if user.LockedUntil != nil && user.LockedUntil.After(clock.NowUTC()) {
		return nil, ErrAccountLocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if err := s.recordFailure(user); err != nil {
			return nil, fmt.Errorf("failed to record login failure: %w", err)
		}
		return nil, ErrInvalidCredentials
	}

	// Success always clears the lockout state, whatever came before.
	if err := s.userRepo.ClearLoginFailures(user.ID); err != nil {
		return nil, fmt.Errorf("failed to clear login failures: %w", err)
	}

	roles, err := s.userRepo.ListRoleNames(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve roles: %w", err)
	}

	role := models.RoleUser
	for _, name := range roles {
		if name == models.RoleAdmin {
			role = models.RoleAdmin
			break
		}
	}

	return &Principal{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   role,
	}, nil
}

// recordFailure advances the lockout state machine after a failed
// password check. Reaching the maximum sets the lock and resets the
// counter to zero: the lock, not the counter, is the defense.
func (s *AuthService) recordFailure(user *models.User) error {
	next := user.FailedAttempts + 1
	if next >= s.maxAttempts {
		until := clock.NowUTC().Add(s.lockWindow)
		return s.userRepo.RecordLoginFailure(user.ID, 0, &until)
	}
	return s.userRepo.RecordLoginFailure(user.ID, next, nil)
}
