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

const assignmentColumns = `assignment_id, room_number, fee_id, due_date, payment_date, is_paid`

type PgxAssignmentRepository struct {
	BaseRepository
}

func newPgxAssignmentRepository(pool *pgxpool.Pool) *PgxAssignmentRepository {
	return &PgxAssignmentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.AssignmentRepositoryFacade = (*PgxAssignmentRepository)(nil)
	_ portsrepo.TransactionRepository      = (*PgxAssignmentRepository)(nil)
	_ portsrepo.TransactionLogRepository   = (*PgxAssignmentRepository)(nil)
)

func scanAssignment(row pgx.Row) (models.FeeRoomAssignment, error) {
	var m models.FeeRoomAssignment
	err := row.Scan(&m.AssignmentID, &m.RoomNumber, &m.FeeID, &m.DueDate, &m.PaymentDate, &m.IsPaid)
	return m, err
}

func (r *PgxAssignmentRepository) findOne(ctx context.Context, query string, args ...any) (*domain.FeeAssignment, error) {
	m, err := scanAssignment(r.DB(ctx).QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fee assignment: %w", err)
	}
	a := mapping.ToDomainAssignment(m)
	return &a, nil
}

func (r *PgxAssignmentRepository) FindAssignmentByID(ctx context.Context, assignmentID int64) (*domain.FeeAssignment, error) {
	return r.findOne(ctx, `SELECT `+assignmentColumns+` FROM fees_room_assignment WHERE assignment_id = $1;`, assignmentID)
}

func (r *PgxAssignmentRepository) FindAssignmentForUpdate(ctx context.Context, assignmentID int64) (*domain.FeeAssignment, error) {
	return r.findOne(ctx, `SELECT `+assignmentColumns+` FROM fees_room_assignment WHERE assignment_id = $1 FOR UPDATE;`, assignmentID)
}

func (r *PgxAssignmentRepository) FindAssignmentByFeeAndRoom(ctx context.Context, feeID int64, roomNumber int) (*domain.FeeAssignment, error) {
	return r.findOne(ctx,
		`SELECT `+assignmentColumns+` FROM fees_room_assignment WHERE fee_id = $1 AND room_number = $2;`,
		feeID, roomNumber)
}

func (r *PgxAssignmentRepository) FindAssignmentsByFee(ctx context.Context, feeID int64) ([]domain.FeeAssignment, error) {
	rows, err := r.DB(ctx).Query(ctx,
		`SELECT `+assignmentColumns+` FROM fees_room_assignment WHERE fee_id = $1 ORDER BY room_number;`, feeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments for fee %d: %w", feeID, err)
	}
	defer rows.Close()

	assignments := []domain.FeeAssignment{}
	for rows.Next() {
		m, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment row: %w", err)
		}
		assignments = append(assignments, mapping.ToDomainAssignment(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating assignment rows: %w", rows.Err())
	}
	return assignments, nil
}

func (r *PgxAssignmentRepository) FindHouseholdFees(ctx context.Context, roomNumber int) ([]domain.HouseholdFee, error) {
	query := `
		SELECT a.assignment_id, a.room_number, a.fee_id, a.due_date, a.payment_date, a.is_paid,
		       f.name, f.amount, f.is_required
		FROM fees_room_assignment a
		JOIN fees f ON f.id = a.fee_id
		WHERE a.room_number = $1
		ORDER BY a.due_date DESC, a.assignment_id DESC;
	`
	rows, err := r.DB(ctx).Query(ctx, query, roomNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to query household fees: %w", err)
	}
	defer rows.Close()

	fees := []domain.HouseholdFee{}
	for rows.Next() {
		var m models.FeeRoomAssignment
		var hf domain.HouseholdFee
		if err := rows.Scan(&m.AssignmentID, &m.RoomNumber, &m.FeeID, &m.DueDate, &m.PaymentDate, &m.IsPaid,
			&hf.FeeName, &hf.Amount, &hf.IsRequired); err != nil {
			return nil, fmt.Errorf("failed to scan household fee row: %w", err)
		}
		hf.FeeAssignment = mapping.ToDomainAssignment(m)
		fees = append(fees, hf)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating household fee rows: %w", rows.Err())
	}
	return fees, nil
}

func (r *PgxAssignmentRepository) SaveAssignment(ctx context.Context, assignment *domain.FeeAssignment) (bool, error) {
	m := mapping.ToModelAssignment(*assignment)
	query := `
		INSERT INTO fees_room_assignment (room_number, fee_id, due_date, payment_date, is_paid)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (room_number, fee_id) DO NOTHING
		RETURNING assignment_id;
	`
	err := r.DB(ctx).QueryRow(ctx, query, m.RoomNumber, m.FeeID, m.DueDate, m.PaymentDate, m.IsPaid).Scan(&assignment.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, mapWriteError(err, "failed to save fee assignment")
	}
	return true, nil
}

func (r *PgxAssignmentRepository) MarkAssignmentPaid(ctx context.Context, assignmentID int64, paidAt time.Time) error {
	cmdTag, err := r.DB(ctx).Exec(ctx,
		`UPDATE fees_room_assignment SET is_paid = TRUE, payment_date = $1 WHERE assignment_id = $2 AND NOT is_paid;`,
		paidAt, assignmentID)
	if err != nil {
		return fmt.Errorf("failed to mark assignment %d paid: %w", assignmentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("assignment %d: %w", assignmentID, apperrors.ErrAlreadySettled)
	}
	return nil
}

// --- transactions ---

func (r *PgxAssignmentRepository) SaveTransaction(ctx context.Context, txn *domain.Transaction) error {
	query := `INSERT INTO transactions (amount, created_at, assignment_id) VALUES ($1, $2, $3) RETURNING id;`
	if err := r.DB(ctx).QueryRow(ctx, query, txn.Amount, txn.CreatedAt, txn.AssignmentID).Scan(&txn.ID); err != nil {
		return mapWriteError(err, "failed to save transaction")
	}
	return nil
}

func (r *PgxAssignmentRepository) FindTransactionsByAssignment(ctx context.Context, assignmentID int64) ([]domain.Transaction, error) {
	rows, err := r.DB(ctx).Query(ctx,
		`SELECT id, amount, created_at, assignment_id FROM transactions WHERE assignment_id = $1 ORDER BY id;`,
		assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.Transaction])
	if err != nil {
		return nil, fmt.Errorf("failed to collect transactions: %w", err)
	}
	txns := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		txns[i] = mapping.ToDomainTransaction(m)
	}
	return txns, nil
}

// --- transaction_logs ---

func (r *PgxAssignmentRepository) SaveTransactionLog(ctx context.Context, log domain.TransactionLog) (bool, error) {
	m := mapping.ToModelTransactionLog(log)
	query := `
		INSERT INTO transaction_logs (
			id, gateway, transaction_date, account_number, sub_account,
			transfer_amount, accumulated, code, content, reference_code, description
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO NOTHING;
	`
	cmdTag, err := r.DB(ctx).Exec(ctx, query,
		m.ID,
		m.Gateway,
		m.TransactionDate,
		m.AccountNumber,
		m.SubAccount,
		m.TransferAmount,
		m.Accumulated,
		m.Code,
		m.Content,
		m.ReferenceCode,
		m.Description,
	)
	if err != nil {
		return false, fmt.Errorf("failed to save transaction log %d: %w", log.ID, err)
	}
	return cmdTag.RowsAffected() == 1, nil
}
