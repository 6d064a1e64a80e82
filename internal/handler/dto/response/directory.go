package response

import (
	"time"

	"github.com/google/uuid"

	"kidcheck/internal/usecase/queries"
)

type ChildResponse struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"displayName"`
	BirthDate   time.Time `json:"birthDate"`
	AgeYears    int       `json:"ageYears"`
}

type ServiceResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	StartTime      time.Time `json:"startTime"`
	EndTime        time.Time `json:"endTime"`
	CheckinLeadMin int       `json:"checkinLeadMin"`
	MinAge         int       `json:"minAge"`
	MaxAge         int       `json:"maxAge"`
	MaxCapacity    int       `json:"maxCapacity"`
}

func FromChildViewList(views []*queries.ChildView) []*ChildResponse {
	out := make([]*ChildResponse, len(views))
	for i, v := range views {
		out[i] = &ChildResponse{
			ID:          v.ID,
			DisplayName: v.DisplayName,
			BirthDate:   v.BirthDate,
			AgeYears:    v.AgeYears,
		}
	}
	return out
}

func FromServiceViewList(views []*queries.ServiceView) []*ServiceResponse {
	out := make([]*ServiceResponse, len(views))
	for i, v := range views {
		out[i] = &ServiceResponse{
			ID:             v.ID,
			Name:           v.Name,
			StartTime:      v.StartTime,
			EndTime:        v.EndTime,
			CheckinLeadMin: v.CheckinLeadMin,
			MinAge:         v.MinAge,
			MaxAge:         v.MaxAge,
			MaxCapacity:    v.MaxCapacity,
		}
	}
	return out
}
