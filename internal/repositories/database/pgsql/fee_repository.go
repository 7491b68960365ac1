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

const feeColumns = `id, name, amount, is_required, created_at, due_date, is_recurring, recurrence_type::text`

type PgxFeeRepository struct {
	BaseRepository
}

func newPgxFeeRepository(pool *pgxpool.Pool) *PgxFeeRepository {
	return &PgxFeeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.FeeRepositoryFacade     = (*PgxFeeRepository)(nil)
	_ portsrepo.FeeRecurrenceRepository = (*PgxFeeRepository)(nil)
)

func scanFee(row pgx.Row) (models.Fee, error) {
	var m models.Fee
	err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Amount,
		&m.IsRequired,
		&m.CreatedAt,
		&m.DueDate,
		&m.IsRecurring,
		&m.RecurrenceType,
	)
	return m, err
}

func (r *PgxFeeRepository) FindFeeByID(ctx context.Context, feeID int64) (*domain.Fee, error) {
	m, err := scanFee(r.DB(ctx).QueryRow(ctx, `SELECT `+feeColumns+` FROM fees WHERE id = $1;`, feeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fee %d: %w", feeID, err)
	}
	fee := mapping.ToDomainFee(m)
	return &fee, nil
}

func (r *PgxFeeRepository) FindFees(ctx context.Context) ([]domain.Fee, error) {
	rows, err := r.DB(ctx).Query(ctx, `SELECT `+feeColumns+` FROM fees ORDER BY due_date ASC, id ASC;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query fees: %w", err)
	}
	defer rows.Close()

	fees := []domain.Fee{}
	for rows.Next() {
		m, err := scanFee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fee row: %w", err)
		}
		fees = append(fees, mapping.ToDomainFee(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating fee rows: %w", rows.Err())
	}
	return fees, nil
}

func (r *PgxFeeRepository) FindFeeCollection(ctx context.Context, feeID int64) (int, int, int64, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE a.is_paid),
			COALESCE((SELECT SUM(t.amount)
			          FROM transactions t
			          JOIN fees_room_assignment ta ON ta.assignment_id = t.assignment_id
			          WHERE ta.fee_id = $1), 0)::BIGINT
		FROM fees_room_assignment a
		WHERE a.fee_id = $1;
	`
	var assigned, paid int
	var collected int64
	if err := r.DB(ctx).QueryRow(ctx, query, feeID).Scan(&assigned, &paid, &collected); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to aggregate fee %d: %w", feeID, err)
	}
	return assigned, paid, collected, nil
}

func (r *PgxFeeRepository) SaveFee(ctx context.Context, fee *domain.Fee) error {
	m := mapping.ToModelFee(*fee)
	query := `
		INSERT INTO fees (name, amount, is_required, created_at, due_date, is_recurring, recurrence_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7::recurrence_type)
		RETURNING id;
	`
	err := r.DB(ctx).QueryRow(ctx, query,
		m.Name,
		m.Amount,
		m.IsRequired,
		m.CreatedAt,
		m.DueDate,
		m.IsRecurring,
		m.RecurrenceType,
	).Scan(&fee.ID)
	if err != nil {
		return mapWriteError(err, "failed to save fee")
	}
	return nil
}

func (r *PgxFeeRepository) UpdateFee(ctx context.Context, fee domain.Fee) error {
	m := mapping.ToModelFee(fee)
	query := `
		UPDATE fees
		SET name = $1, amount = $2, is_required = $3, due_date = $4, is_recurring = $5, recurrence_type = $6::recurrence_type
		WHERE id = $7;
	`
	cmdTag, err := r.DB(ctx).Exec(ctx, query,
		m.Name, m.Amount, m.IsRequired, m.DueDate, m.IsRecurring, m.RecurrenceType, m.ID)
	if err != nil {
		return fmt.Errorf("failed to update fee %d: %w", fee.ID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("fee %d: %w", fee.ID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxFeeRepository) DeleteFee(ctx context.Context, feeID int64) error {
	cmdTag, err := r.DB(ctx).Exec(ctx, `DELETE FROM fees WHERE id = $1;`, feeID)
	if err != nil {
		return fmt.Errorf("failed to delete fee %d: %w", feeID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("fee %d: %w", feeID, apperrors.ErrNotFound)
	}
	return nil
}

// --- fee_recurrence ---

func (r *PgxFeeRepository) findRecurrence(ctx context.Context, where string, feeID int64) (*domain.FeeRecurrence, error) {
	var m models.FeeRecurrence
	query := `SELECT recurrence_id, fee_id, previous_fee_id, due_date FROM fee_recurrence WHERE ` + where + ` LIMIT 1;`
	err := r.DB(ctx).QueryRow(ctx, query, feeID).Scan(&m.RecurrenceID, &m.FeeID, &m.PreviousFeeID, &m.DueDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find recurrence for fee %d: %w", feeID, err)
	}
	link := mapping.ToDomainFeeRecurrence(m)
	return &link, nil
}

func (r *PgxFeeRepository) FindRecurrenceByFeeID(ctx context.Context, feeID int64) (*domain.FeeRecurrence, error) {
	return r.findRecurrence(ctx, `fee_id = $1`, feeID)
}

func (r *PgxFeeRepository) FindNextRecurrence(ctx context.Context, feeID int64) (*domain.FeeRecurrence, error) {
	return r.findRecurrence(ctx, `previous_fee_id = $1 AND fee_id <> $1`, feeID)
}

func (r *PgxFeeRepository) SaveRecurrence(ctx context.Context, link *domain.FeeRecurrence) error {
	query := `
		INSERT INTO fee_recurrence (fee_id, previous_fee_id, due_date)
		VALUES ($1, $2, $3)
		RETURNING recurrence_id;
	`
	if err := r.DB(ctx).QueryRow(ctx, query, link.FeeID, link.PreviousFeeID, link.DueDate).Scan(&link.ID); err != nil {
		return mapWriteError(err, "failed to save fee recurrence")
	}
	return nil
}

func (r *PgxFeeRepository) UpdateRecurrenceDueDate(ctx context.Context, feeID int64, dueDate time.Time) error {
	if _, err := r.DB(ctx).Exec(ctx, `UPDATE fee_recurrence SET due_date = $1 WHERE fee_id = $2;`, dueDate, feeID); err != nil {
		return fmt.Errorf("failed to update recurrence due date for fee %d: %w", feeID, err)
	}
	return nil
}

// deleteRecurrenceSQL leaves successor rows (previous_fee_id = $1) in place so
// periods minted earlier keep advancing.
const deleteRecurrenceSQL = `DELETE FROM fee_recurrence WHERE fee_id = $1;`

func (r *PgxFeeRepository) DeleteRecurrence(ctx context.Context, feeID int64) error {
	if _, err := r.DB(ctx).Exec(ctx, deleteRecurrenceSQL, feeID); err != nil {
		return fmt.Errorf("failed to delete recurrence link for fee %d: %w", feeID, err)
	}
	return nil
}
