package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Felipeysz/teste/internal/domain"
)

// accountColumns must match the Scan order in scanAccount.
const accountColumns = `id, name, email, password_hash, role, created_at, updated_at`

// AccountRepo implements domain.AccountRepository backed by PostgreSQL.
type AccountRepo struct {
	db *pgxpool.Pool
}

// NewAccountRepo creates an AccountRepo from the shared connection pool.
func NewAccountRepo(db *pgxpool.Pool) *AccountRepo {
	return &AccountRepo{db: db}
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Role, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return scanAccount(r.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE LOWER(email) = LOWER($1)`, email))
}

func (r *AccountRepo) GetByName(ctx context.Context, name string) (*domain.Account, error) {
	return scanAccount(r.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE LOWER(name) = LOWER($1)`, name))
}

func (r *AccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	return scanAccount(r.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id))
}

func (r *AccountRepo) List(ctx context.Context) ([]*domain.Account, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+accountColumns+` FROM accounts ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}
	return accounts, nil
}

func (r *AccountRepo) Insert(ctx context.Context, account *domain.Account) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO accounts (id, name, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at
	`, account.ID, account.Name, account.Email, account.PasswordHash, account.Role).
		Scan(&account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return mapUniqueViolation(err, "failed to insert account")
	}
	return nil
}

func (r *AccountRepo) Update(ctx context.Context, account *domain.Account) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE accounts
		SET name = $1, email = $2, password_hash = $3, role = $4, updated_at = NOW()
		WHERE id = $5
	`, account.Name, account.Email, account.PasswordHash, account.Role, account.ID)
	if err != nil {
		return mapUniqueViolation(err, "failed to update account")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// mapUniqueViolation converts Postgres unique-violation errors on the email
// and name indexes into the matching domain errors. This is the boundary
// where concurrent duplicate registration is actually caught.
func mapUniqueViolation(err error, fallback string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		switch {
		case strings.Contains(pgErr.ConstraintName, "email"):
			return domain.ErrDuplicateEmail
		case strings.Contains(pgErr.ConstraintName, "name"):
			return domain.ErrDuplicateName
		}
	}
	return fmt.Errorf("%s: %w", fallback, err)
}
