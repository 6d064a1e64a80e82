package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"kidcheck/internal/pkg/pgconv"
	"kidcheck/internal/usecase/commands"
)

const selectChildByIDSQL = `
	SELECT id, display_name, birth_date, primary_parent_id, secondary_parent_id,
	       medical_notes, allergies, special_needs
	FROM children
	WHERE id = $1
`

type ChildRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewChildRepository(pool *pgxpool.Pool) commands.ChildRepository {
	return &ChildRepositoryImpl{pool: pool}
}

func (r *ChildRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*commands.ChildSnapshot, error) {
	var snap commands.ChildSnapshot
	err := r.pool.QueryRow(ctx, selectChildByIDSQL, pgconv.UUIDToPgtype(id)).Scan(
		&snap.ID, &snap.DisplayName, &snap.BirthDate,
		&snap.PrimaryParentID, &snap.SecondaryParentID,
		&snap.MedicalNotes, &snap.Allergies, &snap.SpecialNeeds,
	)
	if err != nil {
		return nil, classifyErr("failed to find child", err)
	}
	return &snap, nil
}
