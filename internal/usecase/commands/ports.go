package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	"kidcheck/internal/domain/attendance"
	"kidcheck/internal/domain/checkin"
	"kidcheck/internal/infra/db"
)

// Write-side snapshots prevent dependency on Read-side query types (CQRS separation)
type UserSnapshot struct {
	ID          uuid.UUID
	Email       string
	DisplayName string
	Role        string
	IsActive    bool
}

type ChildSnapshot struct {
	ID                uuid.UUID
	DisplayName       string
	BirthDate         time.Time
	PrimaryParentID   uuid.UUID
	SecondaryParentID *uuid.UUID
	MedicalNotes      *string
	Allergies         *string
	SpecialNeeds      *string
}

type ServiceSnapshot struct {
	ID             uuid.UUID
	Name           string
	IsActive       bool
	StartTime      time.Time
	EndTime        time.Time
	CheckinLeadMin int
	MinAge         int
	MaxAge         int
	MaxCapacity    int
}

type CheckInRepository interface {
	Create(ctx context.Context, tx db.DBTX, req *checkin.Request) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*checkin.Request, error)
	FindByToken(ctx context.Context, token string) (*checkin.Request, error)
	FindPendingByChildAndService(ctx context.Context, childID, serviceID uuid.UUID) (*checkin.Request, error)
	// UpdateIfPending persists the entity's transition with a guard on
	// the stored status still being pending. A lost race surfaces as
	// infra.KindConflict.
	UpdateIfPending(ctx context.Context, tx db.DBTX, req *checkin.Request) error
	FindPendingExpiredBefore(ctx context.Context, cutoff time.Time, limit int32) ([]uuid.UUID, error)
	// ExpireBatch flips the given requests to expired, skipping any that
	// are no longer pending. Returns the number of rows transitioned.
	ExpireBatch(ctx context.Context, ids []uuid.UUID, now time.Time) (int64, error)
}

type AttendanceRepository interface {
	Create(ctx context.Context, tx db.DBTX, rec *attendance.Record) (uuid.UUID, error)
	CountActiveByService(ctx context.Context, tx db.DBTX, serviceID uuid.UUID) (int64, error)
	ExistsForChildAndServiceOnDay(ctx context.Context, tx db.DBTX, childID, serviceID uuid.UUID, day time.Time) (bool, error)
}

type ChildRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ChildSnapshot, error)
}

type ServiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ServiceSnapshot, error)
	// FindByIDForUpdate locks the service row for the lifetime of the
	// surrounding transaction, serializing concurrent approvals against
	// the same service.
	FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*ServiceSnapshot, error)
}

type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*UserSnapshot, error)
}

// StatusNotification is pushed to the requester when their request is
// processed. Delivery is best-effort and never blocks the transition.
// Approval carries the attendance record and the approver's display
// name; rejection carries the reason.
type StatusNotification struct {
	RequestID    uuid.UUID  `json:"request_id"`
	ChildID      uuid.UUID  `json:"child_id"`
	ServiceID    uuid.UUID  `json:"service_id"`
	Status       string     `json:"status"`
	ProcessedAt  time.Time  `json:"processed_at"`
	AttendanceID *uuid.UUID `json:"attendance_id,omitempty"`
	ApproverName *string    `json:"approver_name,omitempty"`
	Reason       *string    `json:"reason,omitempty"`
}

type NotificationPort interface {
	PublishStatusChange(ctx context.Context, requesterID uuid.UUID, n StatusNotification) error
}
