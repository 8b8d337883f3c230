package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/polkiloo/smartxerox/internal/config"
	domainErrors "github.com/polkiloo/smartxerox/internal/domain/errors"
	"github.com/polkiloo/smartxerox/internal/domain/model"
	"github.com/polkiloo/smartxerox/internal/domain/repository"
	pkgAuth "github.com/polkiloo/smartxerox/internal/pkg/auth"
)

// AuthUseCase handles student accounts, admin login and token management.
type AuthUseCase struct {
	students      repository.StudentRepository
	hasher        pkgAuth.PasswordHasher
	tokens        pkgAuth.Strategy
	adminEmail    string
	adminPassword string
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(students repository.StudentRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy, cfg *config.Config) *AuthUseCase {
	return &AuthUseCase{
		students:      students,
		hasher:        hasher,
		tokens:        strategy,
		adminEmail:    strings.ToLower(strings.TrimSpace(cfg.AdminEmail)),
		adminPassword: cfg.AdminPassword,
	}
}

// Register creates a student account. Email and phone must be unused.
func (u *AuthUseCase) Register(ctx context.Context, in Registration) (*model.Student, error) {
	in = normalizeRegistration(in)
	if err := validateRegistration(in); err != nil {
		return nil, err
	}

	if err := u.ensureUnused(ctx, u.students.GetByEmail, in.Email, "email", "Email already registered"); err != nil {
		return nil, err
	}
	if err := u.ensureUnused(ctx, u.students.GetByPhone, in.Phone, "phone", "Phone number already registered"); err != nil {
		return nil, err
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, pkgAuth.ErrPasswordTooLong) {
			return nil, domainErrors.NewValidationError("password", passwordTooLongMessage)
		}
		return nil, err
	}

	return u.students.Create(ctx, model.NewStudent{
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hash,
	})
}

func (u *AuthUseCase) ensureUnused(
	ctx context.Context,
	lookup func(context.Context, string) (*model.Student, error),
	value, field, message string,
) error {
	_, err := lookup(ctx, value)
	switch {
	case err == nil:
		return domainErrors.NewValidationError(field, message)
	case errors.Is(err, domainErrors.ErrNotFound):
		return nil
	default:
		return err
	}
}

// Login validates student credentials and returns a week long token.
func (u *AuthUseCase) Login(ctx context.Context, email, password string) (*model.Student, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", domainErrors.NewValidationError("form", "Email and password are required")
	}

	student, err := u.students.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(student.PasswordHash, password); err != nil {
		if errors.Is(err, pkgAuth.ErrPasswordMismatch) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("student %d: %w", student.ID, err)
	}

	token, err := u.tokens.IssueToken(pkgAuth.Claims{
		Subject: strconv.FormatInt(student.ID, 10),
		Email:   student.Email,
		Role:    pkgAuth.RoleStudent,
	}, pkgAuth.StudentTokenTTL)
	if err != nil {
		return nil, "", err
	}

	return student, token, nil
}

// Profile returns the student behind claims.
func (u *AuthUseCase) Profile(ctx context.Context, claims *pkgAuth.Claims) (*model.Student, error) {
	if claims == nil || claims.Role != pkgAuth.RoleStudent {
		return nil, domainErrors.ErrForbidden
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, domainErrors.ErrUnauthorized
	}
	return u.students.GetByID(ctx, id)
}

// AdminLogin checks the configured admin credentials and returns a day long token.
func (u *AuthUseCase) AdminLogin(email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", domainErrors.NewValidationError("form", "Email and password are required")
	}
	if u.adminEmail == "" || u.adminPassword == "" {
		return "", domainErrors.ErrInvalidCredentials
	}

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(u.adminEmail)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(u.adminPassword)) == 1
	if !emailOK || !passwordOK {
		return "", domainErrors.ErrInvalidCredentials
	}

	return u.tokens.IssueToken(pkgAuth.Claims{Email: email, Role: pkgAuth.RoleAdmin}, pkgAuth.AdminTokenTTL)
}

// ParseToken extracts claims from provided token.
func (u *AuthUseCase) ParseToken(token string) (*pkgAuth.Claims, error) {
	if token == "" {
		return nil, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}
