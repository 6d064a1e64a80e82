package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"kidcheck/internal/pkg/pgconv"
	"kidcheck/internal/usecase/queries"
)

const selectChildrenByParentSQL = `
	SELECT id, display_name, birth_date
	FROM children
	WHERE primary_parent_id = $1 OR secondary_parent_id = $1
	ORDER BY display_name
`

const selectActiveServicesSQL = `
	SELECT id, name, start_time, end_time, checkin_lead_min,
	       min_age, max_age, max_capacity, is_active
	FROM services
	WHERE is_active = true
	ORDER BY start_time
`

type DirectoryReadStoreImpl struct {
	pool *pgxpool.Pool
}

func NewDirectoryReadStore(pool *pgxpool.Pool) queries.DirectoryReadStore {
	return &DirectoryReadStoreImpl{pool: pool}
}

func (s *DirectoryReadStoreImpl) FindChildrenByParent(ctx context.Context, parentID uuid.UUID) ([]*queries.ChildView, error) {
	rows, err := s.pool.Query(ctx, selectChildrenByParentSQL, pgconv.UUIDToPgtype(parentID))
	if err != nil {
		return nil, classifyErr("failed to query children", err)
	}
	defer rows.Close()

	children := make([]*queries.ChildView, 0)
	for rows.Next() {
		var view queries.ChildView
		if err := rows.Scan(&view.ID, &view.DisplayName, &view.BirthDate); err != nil {
			return nil, classifyErr("failed to scan child", err)
		}
		children = append(children, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyErr("failed to read children", err)
	}
	return children, nil
}

func (s *DirectoryReadStoreImpl) FindActiveServices(ctx context.Context) ([]*queries.ServiceView, error) {
	rows, err := s.pool.Query(ctx, selectActiveServicesSQL)
	if err != nil {
		return nil, classifyErr("failed to query services", err)
	}
	defer rows.Close()

	services := make([]*queries.ServiceView, 0)
	for rows.Next() {
		var view queries.ServiceView
		if err := rows.Scan(
			&view.ID, &view.Name, &view.StartTime, &view.EndTime, &view.CheckinLeadMin,
			&view.MinAge, &view.MaxAge, &view.MaxCapacity, &view.IsActive,
		); err != nil {
			return nil, classifyErr("failed to scan service", err)
		}
		services = append(services, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyErr("failed to read services", err)
	}
	return services, nil
}
