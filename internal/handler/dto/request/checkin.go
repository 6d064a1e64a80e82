package request

import (
	"strings"

	"github.com/google/uuid"
)

type CreateCheckinRequest struct {
	ChildID   uuid.UUID `json:"child_id" binding:"required"`
	ServiceID uuid.UUID `json:"service_id" binding:"required"`
	Note      *string   `json:"note,omitempty" binding:"omitempty,max=500"`
}

func (r CreateCheckinRequest) GetNote() string {
	if r.Note == nil {
		return ""
	}
	return strings.TrimSpace(*r.Note)
}

type RejectCheckinRequest struct {
	Reason string `json:"reason" binding:"required"`
}
