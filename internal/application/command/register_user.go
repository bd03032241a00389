// Package command contains write operations (CQRS - Commands).
package command

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/studyspark/studyspark/internal/domain/user"
	"github.com/studyspark/studyspark/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// REGISTER USER COMMAND
// Creates an account with a fresh scoreboard: zero streak, zero points,
// no badges.
// ══════════════════════════════════════════════════════════════════════════════

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 4

// RegisterUserCommand contains the data to register a user.
type RegisterUserCommand struct {
	// Username is the desired unique username.
	Username string

	// Password is the plaintext password. It is hashed before storage
	// and never persisted.
	Password string
}

// Validate validates the command.
func (c RegisterUserCommand) Validate() error {
	if !user.Username(c.Username).IsValid() {
		return user.ErrInvalidUsername
	}
	if len(c.Password) < MinPasswordLength {
		return errors.New("register_user: password is too short")
	}
	return nil
}

// RegisterUserResult contains the result of registration.
type RegisterUserResult struct {
	// UserID is the internal ID of the new user.
	UserID string

	// Username is the registered username.
	Username string

	// CreatedAt is when the account was created.
	CreatedAt time.Time
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// RegisterUserHandler handles the RegisterUserCommand.
type RegisterUserHandler struct {
	users  user.Repository
	logger *logger.Logger
}

// NewRegisterUserHandler creates the handler.
func NewRegisterUserHandler(users user.Repository, log *logger.Logger) *RegisterUserHandler {
	if log == nil {
		log = logger.Default()
	}
	return &RegisterUserHandler{users: users, logger: log}
}

// Handle executes the command.
func (h *RegisterUserHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*RegisterUserResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u, err := user.NewUser(user.NewUserParams{
		ID:           uuid.NewString(),
		Username:     user.Username(cmd.Username),
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, err
	}

	if err := h.users.Create(ctx, u); err != nil {
		return nil, err
	}

	h.logger.Info("user registered", logger.Fields{
		"user_id":  u.ID,
		"username": u.Username.String(),
	})

	return &RegisterUserResult{
		UserID:    u.ID,
		Username:  u.Username.String(),
		CreatedAt: u.CreatedAt,
	}, nil
}
