package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"kidcheck/internal/domain/attendance"
	"kidcheck/internal/infra/db"
	"kidcheck/internal/pkg/pgconv"
	"kidcheck/internal/usecase/commands"
)

const insertAttendanceRecordSQL = `
	INSERT INTO attendance_records (
		id, child_id, service_id, request_id, check_in_time,
		approved_by_staff, requester_name, note
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING id
`

const countActiveAttendanceByServiceSQL = `
	SELECT COUNT(*)
	FROM attendance_records
	WHERE service_id = $1 AND check_out_time IS NULL
`

// Same calendar day in the database session's time zone; the schema
// pins the cluster to UTC.
const existsAttendanceOnDaySQL = `
	SELECT EXISTS (
		SELECT 1
		FROM attendance_records
		WHERE child_id = $1
		  AND service_id = $2
		  AND check_in_time >= date_trunc('day', $3::timestamptz)
		  AND check_in_time < date_trunc('day', $3::timestamptz) + interval '1 day'
	)
`

type AttendanceRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewAttendanceRepository(pool *pgxpool.Pool) commands.AttendanceRepository {
	return &AttendanceRepositoryImpl{pool: pool}
}

func (r *AttendanceRepositoryImpl) Create(ctx context.Context, tx db.DBTX, rec *attendance.Record) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, insertAttendanceRecordSQL,
		pgconv.UUIDToPgtype(rec.ID()),
		pgconv.UUIDToPgtype(rec.ChildID()),
		pgconv.UUIDToPgtype(rec.ServiceID()),
		pgconv.UUIDPtrToPgtype(rec.RequestID()),
		pgconv.TimeToPgtype(rec.CheckInTime()),
		rec.ApprovedByStaff(),
		rec.RequesterName(),
		rec.Note(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, classifyErr("failed to insert attendance record", err)
	}
	return id, nil
}

func (r *AttendanceRepositoryImpl) CountActiveByService(ctx context.Context, tx db.DBTX, serviceID uuid.UUID) (int64, error) {
	var count int64
	err := tx.QueryRow(ctx, countActiveAttendanceByServiceSQL, pgconv.UUIDToPgtype(serviceID)).Scan(&count)
	if err != nil {
		return 0, classifyErr("failed to count active attendance", err)
	}
	return count, nil
}

func (r *AttendanceRepositoryImpl) ExistsForChildAndServiceOnDay(ctx context.Context, tx db.DBTX, childID, serviceID uuid.UUID, day time.Time) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx, existsAttendanceOnDaySQL,
		pgconv.UUIDToPgtype(childID),
		pgconv.UUIDToPgtype(serviceID),
		pgconv.TimeToPgtype(day),
	).Scan(&exists)
	if err != nil {
		return false, classifyErr("failed to check same-day attendance", err)
	}
	return exists, nil
}
