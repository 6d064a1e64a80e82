package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kidcheck/internal/infra/db"
	"kidcheck/internal/pkg/pgconv"
	"kidcheck/internal/usecase/commands"
)

const selectServiceByIDSQL = `
	SELECT id, name, is_active, start_time, end_time,
	       checkin_lead_min, min_age, max_age, max_capacity
	FROM services
	WHERE id = $1
`

// FOR UPDATE serializes concurrent approvals on the same service so the
// capacity count cannot be read stale.
const selectServiceByIDForUpdateSQL = selectServiceByIDSQL + `
	FOR UPDATE
`

type ServiceRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewServiceRepository(pool *pgxpool.Pool) commands.ServiceRepository {
	return &ServiceRepositoryImpl{pool: pool}
}

func (r *ServiceRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*commands.ServiceSnapshot, error) {
	return scanService(r.pool.QueryRow(ctx, selectServiceByIDSQL, pgconv.UUIDToPgtype(id)))
}

func (r *ServiceRepositoryImpl) FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*commands.ServiceSnapshot, error) {
	return scanService(tx.QueryRow(ctx, selectServiceByIDForUpdateSQL, pgconv.UUIDToPgtype(id)))
}

func scanService(row pgx.Row) (*commands.ServiceSnapshot, error) {
	var snap commands.ServiceSnapshot
	err := row.Scan(
		&snap.ID, &snap.Name, &snap.IsActive, &snap.StartTime, &snap.EndTime,
		&snap.CheckinLeadMin, &snap.MinAge, &snap.MaxAge, &snap.MaxCapacity,
	)
	if err != nil {
		return nil, classifyErr("failed to find service", err)
	}
	return &snap, nil
}
