package repository

import (
	"context"

	"github.com/wellnest/wellnest-api/internal/domain/entity"
)

// DirectoryFilter narrows the public practitioner listing. Zero values mean
// no filtering on that field.
type DirectoryFilter struct {
	Specialization string // substring match, case-insensitive
	Method         string // consultation method membership
	AvailableOnly  bool
}

// DirectoryEntry is the public projection of a practitioner for listings.
type DirectoryEntry struct {
	ID                  string
	Name                string
	AvatarURL           string
	Specialization      string
	ProfessionalTitle   string
	Bio                 string
	IsAvailable         bool
	ConsultationFee     float64
	ConsultationMethods []string
	AreasOfExpertise    []string
}

// PractitionerRepository defines database operations on professional profiles
// and their availability templates.
type PractitionerRepository interface {
	GetProfile(ctx context.Context, accountID string) (*entity.PractitionerProfile, error)
	// ReplaceProfile full-replaces the profile fields and, when the profile
	// carries an availability template, the template itself.
	ReplaceProfile(ctx context.Context, p *entity.PractitionerProfile) error

	// GetTemplate loads the weekly availability template, days in weekday
	// order and slots in stored position order.
	GetTemplate(ctx context.Context, accountID string) ([]entity.AvailabilityDay, error)
	// ReplaceDaySlots swaps the slot list of an existing weekday entry.
	// Returns ErrNotFound when the weekday is not enabled.
	ReplaceDaySlots(ctx context.Context, accountID, day string, slots []entity.TimeSlot) error
	// EnableDay inserts a weekday entry with the given slots. No-op when the
	// entry already exists.
	EnableDay(ctx context.Context, accountID, day string, slots []entity.TimeSlot) error
	// DisableDay removes a weekday entry and all its slots.
	DisableDay(ctx context.Context, accountID, day string) error

	ListDirectory(ctx context.Context, f DirectoryFilter) ([]DirectoryEntry, error)
	GetDirectoryEntry(ctx context.Context, accountID string) (*DirectoryEntry, error)
}
