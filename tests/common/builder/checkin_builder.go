//go:build unit || e2e

package builder

import (
	"time"

	"kidcheck/internal/domain/checkin"
	reqdto "kidcheck/internal/handler/dto/request"
	"kidcheck/internal/usecase/queries"

	"github.com/google/uuid"
)

type CheckinBuilder struct {
	ID            uuid.UUID
	ChildID       uuid.UUID
	ChildName     string
	ServiceID     uuid.UUID
	ServiceName   string
	RequesterID   uuid.UUID
	RequesterName string
	Token         string
	Status        string
	Note          string
	CreatedAt     time.Time
	ExpiresAt     time.Time
	BirthDate     time.Time
}

func NewCheckinBuilder() *CheckinBuilder {
	now := time.Now().UTC().Truncate(time.Second)
	return &CheckinBuilder{
		ID:            uuid.New(),
		ChildID:       uuid.New(),
		ChildName:     "Kim Kid",
		ServiceID:     uuid.New(),
		ServiceName:   "Morning Care",
		RequesterID:   uuid.New(),
		RequesterName: "Pat Parent",
		Token:         "dGVzdC10b2tlbi1mb3ItY2hlY2tpbi1yZXF1ZXN0cw",
		Status:        "pending",
		Note:          "Picks up at noon",
		CreatedAt:     now,
		ExpiresAt:     now.Add(checkin.RequestTTL),
		BirthDate:     now.AddDate(-6, -3, 0),
	}
}

func (b *CheckinBuilder) With(mutate func(*CheckinBuilder)) *CheckinBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *CheckinBuilder) BuildDomain() (*checkin.Request, error) {
	note, err := checkin.NewNote(b.Note)
	if err != nil {
		return nil, err
	}
	return checkin.NewRequest(b.ChildID, b.ServiceID, b.RequesterID, b.Token, note, b.CreatedAt)
}

// BuildReconstructed bypasses creation-time validation so tests can put
// the entity into any stored state.
func (b *CheckinBuilder) BuildReconstructed() *checkin.Request {
	note, _ := checkin.NewNote(b.Note)
	return checkin.ReconstructRequest(
		b.ID, b.ChildID, b.ServiceID, b.RequesterID,
		b.Token,
		checkin.Status(b.Status),
		note,
		b.CreatedAt, b.ExpiresAt,
		nil, nil, nil,
	)
}

func (b *CheckinBuilder) BuildCreateRequestDTO() reqdto.CreateCheckinRequest {
	note := b.Note
	return reqdto.CreateCheckinRequest{
		ChildID:   b.ChildID,
		ServiceID: b.ServiceID,
		Note:      &note,
	}
}

func (b *CheckinBuilder) BuildViewQuery() *queries.RequestView {
	note := b.Note
	return &queries.RequestView{
		ID:               b.ID,
		ChildID:          b.ChildID,
		ChildName:        b.ChildName,
		ServiceID:        b.ServiceID,
		ServiceName:      b.ServiceName,
		RequesterID:      b.RequesterID,
		Token:            b.Token,
		Status:           b.Status,
		Note:             &note,
		CreatedAt:        b.CreatedAt,
		ExpiresAt:        b.ExpiresAt,
		ExpiresInSeconds: int64(checkin.RequestTTL.Seconds()),
	}
}

func (b *CheckinBuilder) BuildScanDetails() *queries.ScanDetailsView {
	note := b.Note
	allergies := "peanuts"
	return &queries.ScanDetailsView{
		RequestID:        b.ID,
		Status:           b.Status,
		Note:             &note,
		CreatedAt:        b.CreatedAt,
		ExpiresAt:        b.ExpiresAt,
		ExpiresInSeconds: int64(checkin.RequestTTL.Seconds()),
		ChildID:          b.ChildID,
		ChildName:        b.ChildName,
		ChildAgeYears:    6,
		ChildBirthDate:   b.BirthDate,
		Safety: queries.ChildSafetyView{
			HasAllergies: true,
			Allergies:    &allergies,
		},
		RequesterID:   b.RequesterID,
		RequesterName: b.RequesterName,
		ServiceID:     b.ServiceID,
		ServiceName:   b.ServiceName,
	}
}

// Fluent builder methods
func (b *CheckinBuilder) WithStatus(status string) *CheckinBuilder {
	b.Status = status
	return b
}

func (b *CheckinBuilder) WithToken(token string) *CheckinBuilder {
	b.Token = token
	return b
}

func (b *CheckinBuilder) WithNote(note string) *CheckinBuilder {
	b.Note = note
	return b
}

func (b *CheckinBuilder) WithExpiresAt(t time.Time) *CheckinBuilder {
	b.ExpiresAt = t
	return b
}

func (b *CheckinBuilder) AsExpiredAt(now time.Time) *CheckinBuilder {
	b.CreatedAt = now.Add(-checkin.RequestTTL - time.Minute)
	b.ExpiresAt = now.Add(-time.Minute)
	return b
}
