package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/apartment_fee_app/internal/apperrors"
	"github.com/SscSPs/apartment_fee_app/internal/core/domain"
	portsrepo "github.com/SscSPs/apartment_fee_app/internal/core/ports/repositories"
	"github.com/SscSPs/apartment_fee_app/internal/models"
	"github.com/SscSPs/apartment_fee_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxNotificationRepository struct {
	BaseRepository
}

func newPgxNotificationRepository(pool *pgxpool.Pool) *PgxNotificationRepository {
	return &PgxNotificationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

type PgxFamilyRepository struct {
	BaseRepository
}

func newPgxFamilyRepository(pool *pgxpool.Pool) *PgxFamilyRepository {
	return &PgxFamilyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

type PgxPasswordRecoveryRepository struct {
	BaseRepository
}

func newPgxPasswordRecoveryRepository(pool *pgxpool.Pool) *PgxPasswordRecoveryRepository {
	return &PgxPasswordRecoveryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.NotificationRepository     = (*PgxNotificationRepository)(nil)
	_ portsrepo.FamilyRepository           = (*PgxFamilyRepository)(nil)
	_ portsrepo.PasswordRecoveryRepository = (*PgxPasswordRecoveryRepository)(nil)
)

func (r *PgxNotificationRepository) SaveNotifications(ctx context.Context, notifications []domain.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO notifications (title, message, created_at, from_user, to_user)
		VALUES ($1, $2, $3, $4, $5);
	`
	for _, n := range notifications {
		m := mapping.ToModelNotification(n)
		batch.Queue(query, m.Title, m.Message, m.CreatedAt, m.FromUser, m.ToUser)
	}

	br := r.DB(ctx).SendBatch(ctx, batch)
	defer br.Close()
	for i := range notifications {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert notification %d of batch: %w", i, err)
		}
	}
	return nil
}

func (r *PgxNotificationRepository) FindNotificationsForUser(ctx context.Context, userID int64, before *time.Time, beforeID int64, limit int) ([]domain.NotificationView, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT n.id, n.title, n.message, n.created_at, n.from_user, n.to_user, fu.name, tu.name
		FROM notifications n
		JOIN users fu ON fu.id = n.from_user
		JOIN users tu ON tu.id = n.to_user
		WHERE (n.to_user = $1 OR n.from_user = $1)
		  AND ($2::timestamptz IS NULL OR (n.created_at, n.id) < ($2, $3))
		ORDER BY n.created_at DESC, n.id DESC
		LIMIT $4;
	`
	rows, err := r.DB(ctx).Query(ctx, query, userID, before, beforeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	views := []domain.NotificationView{}
	for rows.Next() {
		var m models.Notification
		var v domain.NotificationView
		if err := rows.Scan(&m.ID, &m.Title, &m.Message, &m.CreatedAt, &m.FromUser, &m.ToUser, &v.FromName, &v.ToName); err != nil {
			return nil, fmt.Errorf("failed to scan notification row: %w", err)
		}
		v.Notification = mapping.ToDomainNotification(m)
		views = append(views, v)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating notification rows: %w", rows.Err())
	}
	return views, nil
}

// --- family ---

func (r *PgxFamilyRepository) SaveFamilyMember(ctx context.Context, member *domain.FamilyMember) error {
	query := `INSERT INTO family (name, birthday, account_id) VALUES ($1, $2, $3) RETURNING id;`
	if err := r.DB(ctx).QueryRow(ctx, query, member.Name, member.Birthday, member.AccountID).Scan(&member.ID); err != nil {
		return mapWriteError(err, "failed to save family member")
	}
	return nil
}

func (r *PgxFamilyRepository) FindFamilyMembers(ctx context.Context, accountID int64) ([]domain.FamilyMember, error) {
	rows, err := r.DB(ctx).Query(ctx,
		`SELECT id, name, birthday, account_id FROM family WHERE account_id = $1 ORDER BY id;`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query family members: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.FamilyMember])
	if err != nil {
		return nil, fmt.Errorf("failed to collect family members: %w", err)
	}
	members := make([]domain.FamilyMember, len(ms))
	for i, m := range ms {
		members[i] = mapping.ToDomainFamilyMember(m)
	}
	return members, nil
}

// --- password recovery ---

func (r *PgxPasswordRecoveryRepository) SavePasswordRecovery(ctx context.Context, recovery domain.PasswordRecovery) error {
	query := `INSERT INTO password_recovery_requests (id, user_id, recovery_time, expires_at) VALUES ($1::text::uuid, $2, $3, $4);`
	if _, err := r.DB(ctx).Exec(ctx, query, recovery.ID, recovery.UserID, recovery.RecoveryTime, recovery.ExpiresAt); err != nil {
		return mapWriteError(err, "failed to save password recovery request")
	}
	return nil
}

func (r *PgxPasswordRecoveryRepository) FindPasswordRecovery(ctx context.Context, id string) (*domain.PasswordRecovery, error) {
	var m models.PasswordRecoveryRequest
	err := r.DB(ctx).QueryRow(ctx,
		`SELECT id::text, user_id, recovery_time, expires_at FROM password_recovery_requests WHERE id = $1::text::uuid;`, id).
		Scan(&m.ID, &m.UserID, &m.RecoveryTime, &m.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find password recovery request: %w", err)
	}
	recovery := mapping.ToDomainPasswordRecovery(m)
	return &recovery, nil
}

func (r *PgxPasswordRecoveryRepository) DeletePasswordRecoveries(ctx context.Context, userID int64) error {
	if _, err := r.DB(ctx).Exec(ctx, `DELETE FROM password_recovery_requests WHERE user_id = $1;`, userID); err != nil {
		return fmt.Errorf("failed to delete password recovery requests: %w", err)
	}
	return nil
}
