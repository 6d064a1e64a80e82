package child

import (
	"time"

	"github.com/google/uuid"
)

// Child is a read-only snapshot from the child directory: identity,
// guardianship and the safety flags staff must see before admitting.
type Child struct {
	id              uuid.UUID
	displayName     string
	birthDate       time.Time
	primaryParent   uuid.UUID
	secondaryParent *uuid.UUID
	medicalNotes    *string
	allergies       *string
	specialNeeds    *string
}

func NewChild(
	id uuid.UUID,
	displayName string,
	birthDate time.Time,
	primaryParent uuid.UUID,
	secondaryParent *uuid.UUID,
	medicalNotes, allergies, specialNeeds *string,
) *Child {
	return &Child{
		id:              id,
		displayName:     displayName,
		birthDate:       birthDate,
		primaryParent:   primaryParent,
		secondaryParent: secondaryParent,
		medicalNotes:    medicalNotes,
		allergies:       allergies,
		specialNeeds:    specialNeeds,
	}
}

// IsParent reports whether userID is the primary or secondary parent of
// record.
func (c *Child) IsParent(userID uuid.UUID) bool {
	if c.primaryParent == userID {
		return true
	}
	return c.secondaryParent != nil && *c.secondaryParent == userID
}

// AgeAt returns the child's age in whole years at the given instant.
func (c *Child) AgeAt(now time.Time) int {
	years := now.Year() - c.birthDate.Year()
	anniversary := c.birthDate.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}

func hasText(s *string) bool {
	return s != nil && *s != ""
}

func (c *Child) HasMedicalNotes() bool { return hasText(c.medicalNotes) }
func (c *Child) HasAllergies() bool    { return hasText(c.allergies) }
func (c *Child) HasSpecialNeeds() bool { return hasText(c.specialNeeds) }

func (c *Child) ID() uuid.UUID             { return c.id }
func (c *Child) DisplayName() string       { return c.displayName }
func (c *Child) BirthDate() time.Time      { return c.birthDate }
func (c *Child) PrimaryParent() uuid.UUID  { return c.primaryParent }
func (c *Child) SecondaryParent() *uuid.UUID { return c.secondaryParent }
func (c *Child) MedicalNotes() *string     { return c.medicalNotes }
func (c *Child) Allergies() *string        { return c.allergies }
func (c *Child) SpecialNeeds() *string     { return c.specialNeeds }
