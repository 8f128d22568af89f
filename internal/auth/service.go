package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Felipeysz/teste/internal/domain"
	apperrors "github.com/Felipeysz/teste/internal/errors"
	"github.com/Felipeysz/teste/internal/metrics"
)

// invalidCredentialsMsg is deliberately the same for unknown email and wrong
// password so responses cannot be used to enumerate accounts.
const invalidCredentialsMsg = "invalid credentials"

// Service orchestrates policy checks, the account store, the hasher, the
// token codec, and the session registry. It is the only component that
// references more than one of them.
type Service struct {
	accounts domain.AccountRepository
	hasher   PasswordHasher
	codec    *TokenCodec
	registry *SessionRegistry
}

// NewService creates the authentication service.
func NewService(accounts domain.AccountRepository, hasher PasswordHasher, codec *TokenCodec, registry *SessionRegistry) *Service {
	return &Service{
		accounts: accounts,
		hasher:   hasher,
		codec:    codec,
		registry: registry,
	}
}

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// LoginInput carries the fields of a login request.
type LoginInput struct {
	Email    string
	Password string
}

// UpdateInput carries the fields of an account update. Password is optional;
// when empty the stored hash is kept.
type UpdateInput struct {
	Name     string
	Email    string
	Role     string
	Password string
}

// AccountSummary is the public projection of an account. The password hash
// never leaves the service.
type AccountSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Register validates and persists a new account. All validation runs before
// any store access, so a policy failure leaves no trace.
func (s *Service) Register(ctx context.Context, in RegisterInput) error {
	if err := ValidateRegisterRequired(in.Name, in.Email, in.Password); err != nil {
		return err
	}
	if err := ValidateNameFormat(in.Name); err != nil {
		return err
	}
	if err := ValidateEmailFormat(in.Email); err != nil {
		return err
	}
	if err := ValidatePasswordComplexity(in.Password); err != nil {
		return err
	}

	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}

	// Pre-checks give friendly errors; the store's unique constraints are
	// what actually guarantee uniqueness under concurrent registration.
	if err := s.checkUniqueness(ctx, in.Email, in.Name, uuid.Nil); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return apperrors.InternalError("failed to hash password", err)
	}

	account := &domain.Account{
		ID:           uuid.New(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
	}

	if err := s.accounts.Insert(ctx, account); err != nil {
		metrics.AccountMutationsTotal.WithLabelValues("insert", "error").Inc()
		return mapStoreError(err, "failed to create account")
	}

	metrics.AccountMutationsTotal.WithLabelValues("insert", "ok").Inc()
	metrics.RegistrationsTotal.Inc()
	slog.Info("Account registered", "subject", account.Email)
	return nil
}

// Login verifies credentials and issues a session token. At most one session
// per subject may be active; the registry enforces this atomically.
func (s *Service) Login(ctx context.Context, in LoginInput) (string, error) {
	if err := ValidateLoginRequired(in.Email, in.Password); err != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.LoginOutcomeValidationError).Inc()
		return "", err
	}
	if err := ValidateEmailFormat(in.Email); err != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.LoginOutcomeValidationError).Inc()
		return "", err
	}

	account, err := s.accounts.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			metrics.LoginsTotal.WithLabelValues(metrics.LoginOutcomeInvalidCredentials).Inc()
			return "", apperrors.UnauthorizedError(invalidCredentialsMsg)
		}
		metrics.LoginsTotal.WithLabelValues(metrics.LoginOutcomeInternalError).Inc()
		return "", apperrors.InternalError("failed to look up account", err)
	}

	ok, err := s.hasher.Verify(in.Password, account.PasswordHash)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.LoginOutcomeInternalError).Inc()
		return "", apperrors.InternalError("failed to verify password", err)
	}
	if !ok {
		metrics.LoginsTotal.WithLabelValues(metrics.LoginOutcomeInvalidCredentials).Inc()
		return "", apperrors.UnauthorizedError(invalidCredentialsMsg)
	}

	token, err := s.registry.LoginForSubject(account.Email, func() (string, error) {
		return s.codec.Issue(account.Email, account.Role)
	})
	if err != nil {
		if errors.Is(err, domain.ErrSessionActive) {
			metrics.LoginsTotal.WithLabelValues(metrics.LoginOutcomeSessionConflict).Inc()
			return "", apperrors.ConflictError("active session already exists")
		}
		metrics.LoginsTotal.WithLabelValues(metrics.LoginOutcomeInternalError).Inc()
		return "", apperrors.InternalError("failed to issue token", err)
	}

	metrics.LoginsTotal.WithLabelValues(metrics.LoginOutcomeSuccess).Inc()
	slog.Info("Login succeeded", "subject", account.Email)
	return token, nil
}

// Logout removes the token from the registry. It is idempotent and never
// fails: an unknown, expired, or tampered token is simply not there anymore.
func (s *Service) Logout(token string) {
	s.registry.Remove(token)
}

// ActiveSessionCount returns the number of currently active sessions.
func (s *Service) ActiveSessionCount() int {
	return s.registry.Count()
}

// ListAccounts returns public projections of every account.
func (s *Service) ListAccounts(ctx context.Context) ([]AccountSummary, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, apperrors.InternalError("failed to list accounts", err)
	}

	summaries := make([]AccountSummary, 0, len(accounts))
	for _, a := range accounts {
		summaries = append(summaries, AccountSummary{Name: a.Name, Email: a.Email, Role: a.Role})
	}
	return summaries, nil
}

// UpdateAccount updates the account currently named name. Uniqueness checks
// exclude the account being updated. The password is rehashed only when a
// new one is supplied.
func (s *Service) UpdateAccount(ctx context.Context, name string, in UpdateInput) error {
	if err := ValidateUpdateRequired(in.Name, in.Email, in.Role); err != nil {
		return err
	}
	if err := ValidateNameFormat(in.Name); err != nil {
		return err
	}
	if err := ValidateEmailFormat(in.Email); err != nil {
		return err
	}
	if in.Password != "" {
		if err := ValidatePasswordComplexity(in.Password); err != nil {
			return err
		}
	}

	account, err := s.accounts.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return apperrors.NotFoundError("account not found").WithField("name", name)
		}
		return apperrors.InternalError("failed to look up account", err)
	}

	if err := s.checkUniqueness(ctx, in.Email, in.Name, account.ID); err != nil {
		return err
	}

	account.Name = in.Name
	account.Email = in.Email
	account.Role = in.Role
	if in.Password != "" {
		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return apperrors.InternalError("failed to hash password", err)
		}
		account.PasswordHash = hash
	}

	if err := s.accounts.Update(ctx, account); err != nil {
		metrics.AccountMutationsTotal.WithLabelValues("update", "error").Inc()
		return mapStoreError(err, "failed to update account")
	}

	metrics.AccountMutationsTotal.WithLabelValues("update", "ok").Inc()
	return nil
}

// DeleteAccount removes the account with the given name.
func (s *Service) DeleteAccount(ctx context.Context, name string) error {
	account, err := s.accounts.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return apperrors.NotFoundError("account not found").WithField("name", name)
		}
		return apperrors.InternalError("failed to look up account", err)
	}

	if err := s.accounts.Delete(ctx, account.ID); err != nil {
		metrics.AccountMutationsTotal.WithLabelValues("delete", "error").Inc()
		return apperrors.InternalError("failed to delete account", err)
	}

	metrics.AccountMutationsTotal.WithLabelValues("delete", "ok").Inc()
	slog.Info("Account deleted", "subject", account.Email)
	return nil
}

// checkUniqueness verifies that neither email nor name is taken by another
// account. excludeID skips the account being updated (uuid.Nil excludes none).
func (s *Service) checkUniqueness(ctx context.Context, email, name string, excludeID uuid.UUID) error {
	existing, err := s.accounts.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.ID != excludeID {
			return apperrors.ConflictError("email already in use").WithField("field", "email")
		}
	case !errors.Is(err, domain.ErrAccountNotFound):
		return apperrors.InternalError("failed to check email uniqueness", err)
	}

	existing, err = s.accounts.GetByName(ctx, name)
	switch {
	case err == nil:
		if existing.ID != excludeID {
			return apperrors.ConflictError("name already in use").WithField("field", "name")
		}
	case !errors.Is(err, domain.ErrAccountNotFound):
		return apperrors.InternalError("failed to check name uniqueness", err)
	}

	return nil
}

// mapStoreError converts store-level duplicate errors, which catch races the
// pre-checks cannot see, into the same conflict errors the pre-checks return.
func mapStoreError(err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		return apperrors.ConflictError("email already in use").WithField("field", "email")
	case errors.Is(err, domain.ErrDuplicateName):
		return apperrors.ConflictError("name already in use").WithField("field", "name")
	default:
		return apperrors.InternalError(fallback, err)
	}
}
