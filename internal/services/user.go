package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/quillshop/apiserver/internal/events"
	"github.com/quillshop/apiserver/types"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id int) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	GetByUsername(ctx context.Context, username string) (types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	Update(ctx context.Context, user types.User) (types.User, error)
}

// RegisterInput carries the fields needed to create an account.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// ProfileUpdate carries partial profile changes. Nil fields keep
// their current values.
type ProfileUpdate struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
}

// UserService encapsulates account use-cases.
type UserService struct {
	repo UserRepository
	bus  *events.Bus
}

func NewUserService(repo UserRepository, bus *events.Bus) *UserService {
	return &UserService{repo: repo, bus: bus}
}

// Register creates an account with a bcrypt password hash. Duplicate
// usernames or emails surface store.ErrConflict from the database
// uniqueness constraint, so concurrent duplicates race safely.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (types.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return types.User{}, fmt.Errorf("%w: username, email, and password are required", ErrValidation)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return types.User{}, err
	}

	user, err := s.repo.Create(ctx, types.User{
		Username:     input.Username,
		Email:        input.Email,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		PasswordHash: string(hashed),
	})
	if err != nil {
		return types.User{}, err
	}

	s.bus.Emit(ctx, events.UserRegistered, map[string]any{"user_id": user.ID, "username": user.Username})
	return user, nil
}

// Authenticate verifies an email/password pair. Unknown emails and
// wrong passwords both return ErrInvalidCredentials; a bcrypt compare
// runs in both cases so timing does not reveal which one failed.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (types.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return types.User{}, ErrInvalidCredentials
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return types.User{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return types.User{}, ErrInvalidCredentials
	}

	return user, nil
}

// GetByID fetches an account by id.
func (s *UserService) GetByID(ctx context.Context, id int) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateProfile applies a partial update to an account. Username and
// email collisions with other accounts surface store.ErrConflict.
func (s *UserService) UpdateProfile(ctx context.Context, userID int, update ProfileUpdate) (types.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return types.User{}, err
	}

	if update.Username != nil {
		username := strings.TrimSpace(*update.Username)
		if username == "" {
			return types.User{}, fmt.Errorf("%w: username cannot be empty", ErrValidation)
		}
		user.Username = username
	}
	if update.Email != nil {
		email := strings.TrimSpace(*update.Email)
		if email == "" {
			return types.User{}, fmt.Errorf("%w: email cannot be empty", ErrValidation)
		}
		user.Email = email
	}
	if update.FirstName != nil {
		user.FirstName = strings.TrimSpace(*update.FirstName)
	}
	if update.LastName != nil {
		user.LastName = strings.TrimSpace(*update.LastName)
	}

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return types.User{}, err
	}

	s.bus.Emit(ctx, events.UserUpdated, map[string]any{"user_id": updated.ID})
	return updated, nil
}

// dummyHash keeps the bcrypt cost of a failed lookup in line with a
// real comparison. Hash of an empty string at the default cost.
var dummyHash = func() []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte(""), bcrypt.DefaultCost)
	if err != nil {
		return []byte("$2a$10$0000000000000000000000000000000000000000000000000000")
	}
	return hash
}()
