package response

import (
	"time"

	"github.com/google/uuid"

	"kidcheck/internal/usecase/queries"
)

type CheckinRequestResponse struct {
	ID               uuid.UUID  `json:"id"`
	ChildID          uuid.UUID  `json:"childId"`
	ChildName        string     `json:"childName"`
	ServiceID        uuid.UUID  `json:"serviceId"`
	ServiceName      string     `json:"serviceName"`
	Token            string     `json:"token"`
	Status           string     `json:"status"`
	Note             *string    `json:"note,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	ExpiresAt        time.Time  `json:"expiresAt"`
	ExpiresInSeconds int64      `json:"expiresInSeconds"`
	ProcessedAt      *time.Time `json:"processedAt,omitempty"`
	RejectionReason  *string    `json:"rejectionReason,omitempty"`
}

type ChildSafetyResponse struct {
	HasMedicalNotes bool    `json:"hasMedicalNotes"`
	HasAllergies    bool    `json:"hasAllergies"`
	HasSpecialNeeds bool    `json:"hasSpecialNeeds"`
	MedicalNotes    *string `json:"medicalNotes,omitempty"`
	Allergies       *string `json:"allergies,omitempty"`
	SpecialNeeds    *string `json:"specialNeeds,omitempty"`
}

type ScanDetailsResponse struct {
	RequestID        uuid.UUID           `json:"requestId"`
	Status           string              `json:"status"`
	Note             *string             `json:"note,omitempty"`
	CreatedAt        time.Time           `json:"createdAt"`
	ExpiresAt        time.Time           `json:"expiresAt"`
	ExpiresInSeconds int64               `json:"expiresInSeconds"`
	ChildID          uuid.UUID           `json:"childId"`
	ChildName        string              `json:"childName"`
	ChildAgeYears    int                 `json:"childAgeYears"`
	Safety           ChildSafetyResponse `json:"safety"`
	RequesterName    string              `json:"requesterName"`
	ServiceID        uuid.UUID           `json:"serviceId"`
	ServiceName      string              `json:"serviceName"`
}

type ApprovalResponse struct {
	AttendanceID uuid.UUID               `json:"attendanceId"`
	Request      *CheckinRequestResponse `json:"request"`
}

func FromRequestView(v *queries.RequestView) *CheckinRequestResponse {
	return &CheckinRequestResponse{
		ID:               v.ID,
		ChildID:          v.ChildID,
		ChildName:        v.ChildName,
		ServiceID:        v.ServiceID,
		ServiceName:      v.ServiceName,
		Token:            v.Token,
		Status:           v.Status,
		Note:             v.Note,
		CreatedAt:        v.CreatedAt,
		ExpiresAt:        v.ExpiresAt,
		ExpiresInSeconds: v.ExpiresInSeconds,
		ProcessedAt:      v.ProcessedAt,
		RejectionReason:  v.RejectionReason,
	}
}

func FromRequestViewList(views []*queries.RequestView) []*CheckinRequestResponse {
	out := make([]*CheckinRequestResponse, len(views))
	for i, v := range views {
		out[i] = FromRequestView(v)
	}
	return out
}

func FromScanDetailsView(v *queries.ScanDetailsView) *ScanDetailsResponse {
	return &ScanDetailsResponse{
		RequestID:        v.RequestID,
		Status:           v.Status,
		Note:             v.Note,
		CreatedAt:        v.CreatedAt,
		ExpiresAt:        v.ExpiresAt,
		ExpiresInSeconds: v.ExpiresInSeconds,
		ChildID:          v.ChildID,
		ChildName:        v.ChildName,
		ChildAgeYears:    v.ChildAgeYears,
		Safety: ChildSafetyResponse{
			HasMedicalNotes: v.Safety.HasMedicalNotes,
			HasAllergies:    v.Safety.HasAllergies,
			HasSpecialNeeds: v.Safety.HasSpecialNeeds,
			MedicalNotes:    v.Safety.MedicalNotes,
			Allergies:       v.Safety.Allergies,
			SpecialNeeds:    v.Safety.SpecialNeeds,
		},
		RequesterName: v.RequesterName,
		ServiceID:     v.ServiceID,
		ServiceName:   v.ServiceName,
	}
}
