// Package service contains the application's business logic.
package service

import (
	"context"
	"strings"

	"taskhub/internal/models"
	"taskhub/internal/repository"
	"taskhub/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer creates a new session token for a user. Implemented by
// auth.TokenService.
type TokenIssuer interface {
	Issue(ctx context.Context, userID uint) (string, error)
}

// UserService handles registration, login, profile updates, and account
// deletion.
type UserService struct {
	users  repository.UserRepository
	tokens TokenIssuer
}

// RegisterInput carries the signup fields. Age is optional and defaults to 0.
type RegisterInput struct {
	Name     string
	Age      int
	Email    string
	Password string
}

// allowedProfileFields is the full set of keys a profile update may carry.
// One unknown key rejects the entire update.
var allowedProfileFields = map[string]bool{
	"name":     true,
	"age":      true,
	"email":    true,
	"password": true,
}

// NewUserService returns a new UserService.
func NewUserService(users repository.UserRepository, tokens TokenIssuer) *UserService {
	return &UserService{users: users, tokens: tokens}
}

// Register validates input, hashes the password, creates the user, and
// issues the account's first session token.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	name := strings.TrimSpace(in.Name)
	if err := validation.ValidateName(name); err != nil {
		return nil, "", models.NewValidationError(err.Error())
	}
	if err := validation.ValidateAge(in.Age); err != nil {
		return nil, "", models.NewValidationError(err.Error())
	}

	email := validation.NormalizeEmail(in.Email)
	if err := validation.ValidateEmail(email); err != nil {
		return nil, "", models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, "", models.NewValidationError(err.Error())
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", models.NewValidationError("Email is already in use")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}

	user := &models.User{
		Name:     name,
		Age:      in.Age,
		Email:    email,
		Password: string(hashed),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login authenticates by email and password and issues a token. Unknown
// email and wrong password produce the same error; callers cannot tell
// which credential was bad.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.GetByEmail(ctx, validation.NormalizeEmail(email))
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", models.NewUnauthorizedError("Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", models.NewUnauthorizedError("Invalid credentials")
	}

	token, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GetProfile returns the user's own record.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateProfile applies a wholesale-validated field map. If any key is
// outside the allowed set the whole update fails and nothing is applied.
// Changed emails and passwords re-run the same validators as Register.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, fields map[string]any) (*models.User, error) {
	if len(fields) == 0 {
		return nil, models.NewValidationError("No fields to update")
	}

	columns := make(map[string]any, len(fields))
	for key, value := range fields {
		if !allowedProfileFields[key] {
			return nil, models.NewValidationError("Field \"" + key + "\" cannot be updated")
		}

		switch key {
		case "name":
			name, ok := value.(string)
			if !ok {
				return nil, models.NewValidationError("Name must be a string")
			}
			name = strings.TrimSpace(name)
			if err := validation.ValidateName(name); err != nil {
				return nil, models.NewValidationError(err.Error())
			}
			columns["name"] = name
		case "age":
			age, ok := toInt(value)
			if !ok {
				return nil, models.NewValidationError("Age must be an integer")
			}
			if err := validation.ValidateAge(age); err != nil {
				return nil, models.NewValidationError(err.Error())
			}
			columns["age"] = age
		case "email":
			email, ok := value.(string)
			if !ok {
				return nil, models.NewValidationError("Email must be a string")
			}
			email = validation.NormalizeEmail(email)
			if err := validation.ValidateEmail(email); err != nil {
				return nil, models.NewValidationError(err.Error())
			}
			columns["email"] = email
		case "password":
			password, ok := value.(string)
			if !ok {
				return nil, models.NewValidationError("Password must be a string")
			}
			if err := validation.ValidatePassword(password); err != nil {
				return nil, models.NewValidationError(err.Error())
			}
			hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return nil, models.NewInternalError(err)
			}
			columns["password"] = string(hashed)
		}
	}

	// Existence check before the column update.
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	if err := s.users.UpdateFields(ctx, userID, columns); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, userID)
}

// DeleteAccount removes the user and everything they own: tasks first,
// then sessions, then the user record, atomically.
func (s *UserService) DeleteAccount(ctx context.Context, userID uint) error {
	return s.users.DeleteCascade(ctx, userID)
}

// toInt accepts the integer shapes a JSON body or typed caller produces.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}
