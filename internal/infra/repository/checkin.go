package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"kidcheck/internal/domain/checkin"
	"kidcheck/internal/infra"
	"kidcheck/internal/infra/db"
	"kidcheck/internal/pkg/pgconv"
	"kidcheck/internal/usecase/commands"
)

const checkinRequestColumns = `
	id, child_id, service_id, requester_id, token, status, note,
	created_at, expires_at, processed_by, processed_at, rejection_reason
`

const insertCheckinRequestSQL = `
	INSERT INTO checkin_requests (
		id, child_id, service_id, requester_id, token, status, note,
		created_at, expires_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING id
`

const selectCheckinRequestByIDSQL = `
	SELECT ` + checkinRequestColumns + `
	FROM checkin_requests
	WHERE id = $1
`

const selectCheckinRequestByTokenSQL = `
	SELECT ` + checkinRequestColumns + `
	FROM checkin_requests
	WHERE token = $1
`

const selectPendingByChildAndServiceSQL = `
	SELECT ` + checkinRequestColumns + `
	FROM checkin_requests
	WHERE child_id = $1 AND service_id = $2 AND status = 'pending'
`

const updateCheckinRequestIfPendingSQL = `
	UPDATE checkin_requests
	SET status = $2,
	    processed_by = $3,
	    processed_at = $4,
	    rejection_reason = $5
	WHERE id = $1 AND status = 'pending'
`

const selectPendingExpiredBeforeSQL = `
	SELECT id
	FROM checkin_requests
	WHERE status = 'pending' AND expires_at < $1
	ORDER BY expires_at
	LIMIT $2
`

const expireCheckinRequestsSQL = `
	UPDATE checkin_requests
	SET status = 'expired', processed_at = $2
	WHERE id = ANY($1) AND status = 'pending'
`

type CheckInRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewCheckInRepository(pool *pgxpool.Pool) commands.CheckInRepository {
	return &CheckInRepositoryImpl{pool: pool}
}

func (r *CheckInRepositoryImpl) Create(ctx context.Context, tx db.DBTX, req *checkin.Request) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, insertCheckinRequestSQL,
		pgconv.UUIDToPgtype(req.ID()),
		pgconv.UUIDToPgtype(req.ChildID()),
		pgconv.UUIDToPgtype(req.ServiceID()),
		pgconv.UUIDToPgtype(req.RequesterID()),
		req.Token(),
		req.Status().String(),
		req.Note().String(),
		pgconv.TimeToPgtype(req.CreatedAt()),
		pgconv.TimeToPgtype(req.ExpiresAt()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, classifyErr("failed to insert check-in request", err)
	}
	return id, nil
}

func (r *CheckInRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*checkin.Request, error) {
	return r.scanRequest(ctx, selectCheckinRequestByIDSQL, pgconv.UUIDToPgtype(id))
}

func (r *CheckInRepositoryImpl) FindByToken(ctx context.Context, token string) (*checkin.Request, error) {
	return r.scanRequest(ctx, selectCheckinRequestByTokenSQL, token)
}

func (r *CheckInRepositoryImpl) FindPendingByChildAndService(ctx context.Context, childID, serviceID uuid.UUID) (*checkin.Request, error) {
	return r.scanRequest(ctx, selectPendingByChildAndServiceSQL,
		pgconv.UUIDToPgtype(childID), pgconv.UUIDToPgtype(serviceID))
}

func (r *CheckInRepositoryImpl) UpdateIfPending(ctx context.Context, tx db.DBTX, req *checkin.Request) error {
	tag, err := tx.Exec(ctx, updateCheckinRequestIfPendingSQL,
		pgconv.UUIDToPgtype(req.ID()),
		req.Status().String(),
		pgconv.UUIDPtrToPgtype(req.ProcessedBy()),
		pgconv.TimePtrToPgtype(req.ProcessedAt()),
		pgconv.StringPtrToPgtype(req.RejectionReason()),
	)
	if err != nil {
		return classifyErr("failed to update check-in request", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("check-in request is no longer pending", nil, infra.KindConflict)
	}
	return nil
}

func (r *CheckInRepositoryImpl) FindPendingExpiredBefore(ctx context.Context, cutoff time.Time, limit int32) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, selectPendingExpiredBeforeSQL, pgconv.TimeToPgtype(cutoff), limit)
	if err != nil {
		return nil, classifyErr("failed to query stale check-in requests", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, classifyErr("failed to scan stale check-in request id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyErr("failed to read stale check-in request ids", err)
	}
	return ids, nil
}

func (r *CheckInRepositoryImpl) ExpireBatch(ctx context.Context, ids []uuid.UUID, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, expireCheckinRequestsSQL, ids, pgconv.TimeToPgtype(now))
	if err != nil {
		return 0, classifyErr("failed to expire check-in requests", err)
	}
	return tag.RowsAffected(), nil
}

func (r *CheckInRepositoryImpl) scanRequest(ctx context.Context, sql string, args ...any) (*checkin.Request, error) {
	var (
		id, childID, serviceID, requesterID uuid.UUID
		rawToken, rawStatus, rawNote        string
		createdAt, expiresAt                time.Time
		processedBy                         *uuid.UUID
		processedAt                         *time.Time
		rejectionReason                     *string
	)

	err := r.pool.QueryRow(ctx, sql, args...).Scan(
		&id, &childID, &serviceID, &requesterID, &rawToken, &rawStatus, &rawNote,
		&createdAt, &expiresAt, &processedBy, &processedAt, &rejectionReason,
	)
	if err != nil {
		return nil, classifyErr("failed to find check-in request", err)
	}

	note, err := checkin.NewNote(rawNote)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid note in check-in request row", err, infra.KindDBFailure)
	}

	return checkin.ReconstructRequest(
		id, childID, serviceID, requesterID,
		rawToken,
		checkin.Status(rawStatus),
		note,
		createdAt, expiresAt,
		processedBy, processedAt, rejectionReason,
	), nil
}
