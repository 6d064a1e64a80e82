package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kidcheck/internal/pkg/pgconv"
	"kidcheck/internal/usecase/queries"
)

const selectRequestViewSQL = `
	SELECT r.id, r.child_id, c.display_name, r.service_id, s.name,
	       r.requester_id, r.token, r.status, r.note,
	       r.created_at, r.expires_at,
	       r.processed_by, r.processed_at, r.rejection_reason
	FROM checkin_requests r
	JOIN children c ON c.id = r.child_id
	JOIN services s ON s.id = r.service_id
`

const selectRequestViewByIDSQL = selectRequestViewSQL + `
	WHERE r.id = $1
`

const selectActiveRequestViewsSQL = selectRequestViewSQL + `
	WHERE r.requester_id = $1 AND r.status = 'pending' AND r.expires_at > $2
	ORDER BY r.created_at DESC
`

const selectScanDetailsByTokenSQL = `
	SELECT r.id, r.status, r.note, r.created_at, r.expires_at,
	       c.id, c.display_name, c.birth_date,
	       c.medical_notes, c.allergies, c.special_needs,
	       u.id, u.display_name,
	       s.id, s.name
	FROM checkin_requests r
	JOIN children c ON c.id = r.child_id
	JOIN users u ON u.id = r.requester_id
	JOIN services s ON s.id = r.service_id
	WHERE r.token = $1
`

type CheckInReadStoreImpl struct {
	pool *pgxpool.Pool
}

func NewCheckInReadStore(pool *pgxpool.Pool) queries.CheckInReadStore {
	return &CheckInReadStoreImpl{pool: pool}
}

func (s *CheckInReadStoreImpl) FindByID(ctx context.Context, id uuid.UUID) (*queries.RequestView, error) {
	return scanRequestView(s.pool.QueryRow(ctx, selectRequestViewByIDSQL, pgconv.UUIDToPgtype(id)))
}

func (s *CheckInReadStoreImpl) FindActiveByRequester(ctx context.Context, requesterID uuid.UUID, now time.Time) ([]*queries.RequestView, error) {
	rows, err := s.pool.Query(ctx, selectActiveRequestViewsSQL,
		pgconv.UUIDToPgtype(requesterID), pgconv.TimeToPgtype(now))
	if err != nil {
		return nil, classifyErr("failed to query active check-in requests", err)
	}
	defer rows.Close()

	views := make([]*queries.RequestView, 0)
	for rows.Next() {
		view, scanErr := scanRequestView(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyErr("failed to read active check-in requests", err)
	}
	return views, nil
}

func (s *CheckInReadStoreImpl) FindScanDetailsByToken(ctx context.Context, token string) (*queries.ScanDetailsView, error) {
	var (
		view                                 queries.ScanDetailsView
		note                                 *string
		medicalNotes, allergies, specialNeed *string
	)

	err := s.pool.QueryRow(ctx, selectScanDetailsByTokenSQL, token).Scan(
		&view.RequestID, &view.Status, &note, &view.CreatedAt, &view.ExpiresAt,
		&view.ChildID, &view.ChildName, &view.ChildBirthDate,
		&medicalNotes, &allergies, &specialNeed,
		&view.RequesterID, &view.RequesterName,
		&view.ServiceID, &view.ServiceName,
	)
	if err != nil {
		return nil, classifyErr("failed to find scan details", err)
	}

	if note != nil && *note != "" {
		view.Note = note
	}
	view.Safety = queries.ChildSafetyView{
		HasMedicalNotes: medicalNotes != nil && *medicalNotes != "",
		HasAllergies:    allergies != nil && *allergies != "",
		HasSpecialNeeds: specialNeed != nil && *specialNeed != "",
		MedicalNotes:    medicalNotes,
		Allergies:       allergies,
		SpecialNeeds:    specialNeed,
	}
	return &view, nil
}

func scanRequestView(row pgx.Row) (*queries.RequestView, error) {
	var (
		view queries.RequestView
		note *string
	)

	err := row.Scan(
		&view.ID, &view.ChildID, &view.ChildName, &view.ServiceID, &view.ServiceName,
		&view.RequesterID, &view.Token, &view.Status, &note,
		&view.CreatedAt, &view.ExpiresAt,
		&view.ProcessedBy, &view.ProcessedAt, &view.RejectionReason,
	)
	if err != nil {
		return nil, classifyErr("failed to scan check-in request view", err)
	}

	if note != nil && *note != "" {
		view.Note = note
	}
	return &view, nil
}
