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

type PgxRoomRepository struct {
	BaseRepository
}

func newPgxRoomRepository(pool *pgxpool.Pool) *PgxRoomRepository {
	return &PgxRoomRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.RoomRepository = (*PgxRoomRepository)(nil)

func (r *PgxRoomRepository) findOne(ctx context.Context, where string, arg any) (*domain.Room, error) {
	var m models.Room
	err := r.DB(ctx).QueryRow(ctx, `SELECT room_number, tenant FROM rooms WHERE `+where+`;`, arg).
		Scan(&m.RoomNumber, &m.Tenant)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find room: %w", err)
	}
	room := mapping.ToDomainRoom(m)
	return &room, nil
}

func (r *PgxRoomRepository) FindRoomByNumber(ctx context.Context, roomNumber int) (*domain.Room, error) {
	return r.findOne(ctx, `room_number = $1`, roomNumber)
}

func (r *PgxRoomRepository) FindRoomByTenant(ctx context.Context, userID int64) (*domain.Room, error) {
	return r.findOne(ctx, `tenant = $1`, userID)
}

func (r *PgxRoomRepository) queryRooms(ctx context.Context, query string, args ...any) ([]domain.Room, error) {
	rows, err := r.DB(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query rooms: %w", err)
	}
	defer rows.Close()

	rooms := []domain.Room{}
	for rows.Next() {
		var m models.Room
		if err := rows.Scan(&m.RoomNumber, &m.Tenant); err != nil {
			return nil, fmt.Errorf("failed to scan room row: %w", err)
		}
		rooms = append(rooms, mapping.ToDomainRoom(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating room rows: %w", rows.Err())
	}
	return rooms, nil
}

func (r *PgxRoomRepository) FindRoomsByNumbers(ctx context.Context, roomNumbers []int) ([]domain.Room, error) {
	return r.queryRooms(ctx,
		`SELECT room_number, tenant FROM rooms WHERE room_number = ANY($1) ORDER BY room_number;`,
		roomNumbers)
}

func (r *PgxRoomRepository) FindRooms(ctx context.Context) ([]domain.Room, error) {
	return r.queryRooms(ctx, `SELECT room_number, tenant FROM rooms ORDER BY room_number;`)
}

func (r *PgxRoomRepository) FindRoomDetails(ctx context.Context) ([]domain.RoomDetail, error) {
	query := `
		SELECT r.room_number, r.tenant, u.name, u.email, u.phone
		FROM rooms r
		LEFT JOIN users u ON u.id = r.tenant
		ORDER BY r.room_number;
	`
	rows, err := r.DB(ctx).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query room details: %w", err)
	}
	defer rows.Close()

	details := []domain.RoomDetail{}
	for rows.Next() {
		var m models.RoomDetail
		if err := rows.Scan(&m.RoomNumber, &m.Tenant, &m.TenantName, &m.TenantEmail, &m.TenantPhone); err != nil {
			return nil, fmt.Errorf("failed to scan room detail row: %w", err)
		}
		details = append(details, mapping.ToDomainRoomDetail(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating room detail rows: %w", rows.Err())
	}
	return details, nil
}

func (r *PgxRoomRepository) SaveRoom(ctx context.Context, room domain.Room) error {
	m := mapping.ToModelRoom(room)
	query := `
		INSERT INTO rooms (room_number, tenant)
		VALUES ($1, $2)
		ON CONFLICT (room_number) DO UPDATE SET tenant = EXCLUDED.tenant
		WHERE rooms.tenant IS NULL OR rooms.tenant = EXCLUDED.tenant;
	`
	cmdTag, err := r.DB(ctx).Exec(ctx, query, m.RoomNumber, m.Tenant)
	if err != nil {
		return mapWriteError(err, "failed to save room")
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("room %d is occupied: %w", room.RoomNumber, apperrors.ErrDuplicate)
	}
	return nil
}
