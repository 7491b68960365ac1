package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/apartment_fee_app/internal/apperrors"
	"github.com/SscSPs/apartment_fee_app/internal/core/domain"
	portsrepo "github.com/SscSPs/apartment_fee_app/internal/core/ports/repositories"
	"github.com/SscSPs/apartment_fee_app/internal/models"
	"github.com/SscSPs/apartment_fee_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, name, username, email, password, phone, role::text, status::text, refresh_token_version`

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func scanUser(row pgx.Row) (models.User, error) {
	var m models.User
	err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Username,
		&m.Email,
		&m.PasswordHash,
		&m.Phone,
		&m.Role,
		&m.Status,
		&m.RefreshTokenVersion,
	)
	return m, err
}

func (r *PgxUserRepository) findOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where + ` LIMIT 1;`
	m, err := scanUser(r.DB(ctx).QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	return r.findOne(ctx, `id = $1`, userID)
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, `username = $1`, username)
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, `email = $1`, email)
}

func (r *PgxUserRepository) FindUserByContact(ctx context.Context, contact string) (*domain.User, error) {
	return r.findOne(ctx, `(username = $1 OR email = $1 OR phone = $1)`, contact)
}

func (r *PgxUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	// Default limit if not specified or invalid
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY id LIMIT $1 OFFSET $2;`
	rows, err := r.DB(ctx).Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	modelUsers := []models.User{}
	for rows.Next() {
		m, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		modelUsers = append(modelUsers, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", rows.Err())
	}

	return mapping.ToDomainUserSlice(modelUsers), nil
}

func (r *PgxUserRepository) FindUserIDsByRole(ctx context.Context, role domain.UserRole) ([]int64, error) {
	rows, err := r.DB(ctx).Query(ctx, `SELECT id FROM users WHERE role = $1::user_role ORDER BY id;`, string(role))
	if err != nil {
		return nil, fmt.Errorf("failed to query users by role: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("failed to collect user ids: %w", err)
	}
	return ids, nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user *domain.User) error {
	m := mapping.ToModelUser(*user)
	query := `
		INSERT INTO users (name, username, email, password, phone, role, status)
		VALUES ($1, $2, $3, $4, $5, $6::user_role, $7::user_status)
		RETURNING id, refresh_token_version;
	`
	err := r.DB(ctx).QueryRow(ctx, query,
		m.Name,
		m.Username,
		m.Email,
		m.PasswordHash,
		m.Phone,
		string(m.Role),
		string(m.Status),
	).Scan(&user.ID, &user.RefreshTokenVersion)
	if err != nil {
		return mapWriteError(err, "failed to save user")
	}
	return nil
}

func (r *PgxUserRepository) UpdateUserInfo(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	cmdTag, err := r.DB(ctx).Exec(ctx,
		`UPDATE users SET name = $1, email = $2, phone = $3 WHERE id = $4;`,
		m.Name, m.Email, m.Phone, m.ID)
	if err != nil {
		return mapWriteError(err, "failed to update user")
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", user.ID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error {
	cmdTag, err := r.DB(ctx).Exec(ctx, `UPDATE users SET password = $1 WHERE id = $2;`, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) UpdateUserStatus(ctx context.Context, userID int64, status domain.UserStatus) error {
	cmdTag, err := r.DB(ctx).Exec(ctx, `UPDATE users SET status = $1::user_status WHERE id = $2;`, string(status), userID)
	if err != nil {
		return fmt.Errorf("failed to update user status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) IncrementRefreshTokenVersion(ctx context.Context, userID int64) (int, error) {
	var version int
	err := r.DB(ctx).QueryRow(ctx,
		`UPDATE users SET refresh_token_version = refresh_token_version + 1 WHERE id = $1 RETURNING refresh_token_version;`,
		userID).Scan(&version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrNotFound
		}
		return 0, fmt.Errorf("failed to increment refresh token version: %w", err)
	}
	return version, nil
}
