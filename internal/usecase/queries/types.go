package queries

import (
	"time"

	"github.com/google/uuid"
)

// RequestView represents read-optimized check-in request data
type RequestView struct {
	ID               uuid.UUID  `json:"id"`
	ChildID          uuid.UUID  `json:"child_id"`
	ChildName        string     `json:"child_name"`
	ServiceID        uuid.UUID  `json:"service_id"`
	ServiceName      string     `json:"service_name"`
	RequesterID      uuid.UUID  `json:"requester_id"`
	Token            string     `json:"token"`
	Status           string     `json:"status"`
	Note             *string    `json:"note,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	ExpiresAt        time.Time  `json:"expires_at"`
	ExpiresInSeconds int64      `json:"expires_in_seconds"`
	ProcessedBy      *uuid.UUID `json:"processed_by,omitempty"`
	ProcessedAt      *time.Time `json:"processed_at,omitempty"`
	RejectionReason  *string    `json:"rejection_reason,omitempty"`
}

// ChildSafetyView carries the fields staff must see before admitting a
// child. Free-text values are included verbatim alongside the flags.
type ChildSafetyView struct {
	HasMedicalNotes bool    `json:"has_medical_notes"`
	HasAllergies    bool    `json:"has_allergies"`
	HasSpecialNeeds bool    `json:"has_special_needs"`
	MedicalNotes    *string `json:"medical_notes,omitempty"`
	Allergies       *string `json:"allergies,omitempty"`
	SpecialNeeds    *string `json:"special_needs,omitempty"`
}

// ScanDetailsView is what a staff member sees after scanning a QR token.
type ScanDetailsView struct {
	RequestID        uuid.UUID       `json:"request_id"`
	Status           string          `json:"status"`
	Note             *string         `json:"note,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	ExpiresAt        time.Time       `json:"expires_at"`
	ExpiresInSeconds int64           `json:"expires_in_seconds"`
	ChildID          uuid.UUID       `json:"child_id"`
	ChildName        string          `json:"child_name"`
	ChildAgeYears    int             `json:"child_age_years"`
	ChildBirthDate   time.Time       `json:"child_birth_date"`
	Safety           ChildSafetyView `json:"safety"`
	RequesterID      uuid.UUID       `json:"requester_id"`
	RequesterName    string          `json:"requester_name"`
	ServiceID        uuid.UUID       `json:"service_id"`
	ServiceName      string          `json:"service_name"`
}

// AuthorizedUserView represents read-optimized user data with authorization info
type AuthorizedUserView struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	IsActive    bool      `json:"is_active"`
}

// ChildView represents a child as listed to its parent
type ChildView struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	BirthDate   time.Time `json:"birth_date"`
	AgeYears    int       `json:"age_years"`
}

// ServiceView represents a service session open for check-in requests
type ServiceView struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	CheckinLeadMin int       `json:"checkin_lead_min"`
	MinAge         int       `json:"min_age"`
	MaxAge         int       `json:"max_age"`
	MaxCapacity    int       `json:"max_capacity"`
	IsActive       bool      `json:"is_active"`
}
