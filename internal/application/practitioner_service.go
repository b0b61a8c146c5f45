package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/wellnest/wellnest-api/internal/domain/entity"
	repo "github.com/wellnest/wellnest-api/internal/domain/repository"
)

// PractitionerService manages professional profiles, the weekly availability
// template, and the public directory projection.
type PractitionerService struct {
	Accounts repo.AccountRepository
	Repo     repo.PractitionerRepository
	Posts    repo.PostRepository
	Logger   *logrus.Logger
}

func NewPractitionerService(accounts repo.AccountRepository, r repo.PractitionerRepository, posts repo.PostRepository, logger *logrus.Logger) *PractitionerService {
	return &PractitionerService{Accounts: accounts, Repo: r, Posts: posts, Logger: logger}
}

// ProfileView is the practitioner dashboard payload: the professional
// profile, the account's basic identity, and the account's blog posts.
type ProfileView struct {
	Profile   *entity.PractitionerProfile
	Name      string
	Email     string
	AvatarURL string
	Posts     []entity.Post
}

func (s *PractitionerService) practitioner(ctx context.Context, id string) (*entity.Account, error) {
	a, err := s.Accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !a.IsPractitioner() {
		return nil, ErrNotFound
	}
	return a, nil
}

// GetProfile returns the professional profile merged with the account's blog
// posts. A practitioner who has never saved a profile gets the empty default
// so no nested field is ever undefined.
func (s *PractitionerService) GetProfile(ctx context.Context, practitionerID string) (*ProfileView, error) {
	a, err := s.practitioner(ctx, practitionerID)
	if err != nil {
		return nil, err
	}

	p, err := s.Repo.GetProfile(ctx, practitionerID)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
		p = &entity.PractitionerProfile{AccountID: practitionerID}
		p.ApplyDefaults()
	}

	posts, err := s.Posts.ListByAuthor(ctx, practitionerID)
	if err != nil {
		return nil, err
	}

	return &ProfileView{
		Profile:   p,
		Name:      a.Name,
		Email:     a.Email,
		AvatarURL: a.AvatarURL,
		Posts:     posts,
	}, nil
}

// UpdateProfile full-replaces the professional profile. Omitted nested
// fields default to empty/zero values; the availability template contained in
// the profile is validated and replaced as part of the same update.
func (s *PractitionerService) UpdateProfile(ctx context.Context, practitionerID string, p *entity.PractitionerProfile) (*entity.PractitionerProfile, error) {
	if _, err := s.practitioner(ctx, practitionerID); err != nil {
		return nil, err
	}

	if len(p.Bio) > 500 {
		return nil, Validationf("bio must be at most 500 characters")
	}
	if p.YearsOfExperience < 0 || p.YearsOfExperience > 50 {
		return nil, Validationf("years of experience must be between 0 and 50")
	}
	for _, m := range p.Consultation.ConsultationMethods {
		if !entity.ValidConsultationMethod(m) {
			return nil, Validationf("invalid consultation method: " + m)
		}
	}
	seen := map[string]bool{}
	for _, d := range p.Consultation.AvailableDays {
		if !entity.ValidWeekday(d.Day) {
			return nil, Validationf("invalid weekday: " + d.Day)
		}
		if seen[d.Day] {
			return nil, Validationf("duplicate weekday entry: " + d.Day)
		}
		seen[d.Day] = true
		if err := validateSlots(d.TimeSlots); err != nil {
			return nil, err
		}
	}

	p.AccountID = practitionerID
	p.ApplyDefaults()
	if err := s.Repo.ReplaceProfile(ctx, p); err != nil {
		return nil, err
	}
	return s.Repo.GetProfile(ctx, practitionerID)
}

// SetDaySlots replaces the slot list of an already-enabled weekday. Enabling
// a day is a separate operation; setting slots on a disabled day fails.
func (s *PractitionerService) SetDaySlots(ctx context.Context, practitionerID, day string, slots []entity.TimeSlot) ([]entity.AvailabilityDay, error) {
	if _, err := s.practitioner(ctx, practitionerID); err != nil {
		return nil, err
	}
	if !entity.ValidWeekday(day) {
		return nil, Validationf("invalid weekday: " + day)
	}
	if err := validateSlots(slots); err != nil {
		return nil, err
	}

	if err := s.Repo.ReplaceDaySlots(ctx, practitionerID, day, slots); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.Repo.GetTemplate(ctx, practitionerID)
}

// ToggleDay enables a weekday (inserting the given slots, or the default
// hourly 09:00-17:00 set when none are given) or disables it, removing the
// entry and discarding any booked-state history for that day. Appointments
// already taken against a removed day keep their record; the documented gap
// is that they are not retroactively invalidated.
func (s *PractitionerService) ToggleDay(ctx context.Context, practitionerID, day string, enabled bool, initialSlots []entity.TimeSlot) ([]entity.AvailabilityDay, error) {
	if _, err := s.practitioner(ctx, practitionerID); err != nil {
		return nil, err
	}
	if !entity.ValidWeekday(day) {
		return nil, Validationf("invalid weekday: " + day)
	}

	if enabled {
		slots := initialSlots
		if len(slots) == 0 {
			slots = entity.DefaultDaySlots()
		}
		if err := validateSlots(slots); err != nil {
			return nil, err
		}
		if err := s.Repo.EnableDay(ctx, practitionerID, day, slots); err != nil {
			return nil, err
		}
	} else {
		if err := s.Repo.DisableDay(ctx, practitionerID, day); err != nil && !errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
	}
	return s.Repo.GetTemplate(ctx, practitionerID)
}

func validateSlots(slots []entity.TimeSlot) error {
	for _, sl := range slots {
		if !sl.Valid() {
			return Validationf("invalid time slot " + sl.Start + "-" + sl.End + ": use 24-hour HH:MM with start before end")
		}
	}
	return nil
}

// ListDirectory returns the public practitioner directory with optional
// filters and defaulted fields.
func (s *PractitionerService) ListDirectory(ctx context.Context, f repo.DirectoryFilter) ([]repo.DirectoryEntry, error) {
	return s.Repo.ListDirectory(ctx, f)
}

// GetDirectoryDetail returns one practitioner's public detail: directory
// entry plus full professional profile including the availability template.
func (s *PractitionerService) GetDirectoryDetail(ctx context.Context, practitionerID string) (*repo.DirectoryEntry, *entity.PractitionerProfile, error) {
	e, err := s.Repo.GetDirectoryEntry(ctx, practitionerID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	p, err := s.Repo.GetProfile(ctx, practitionerID)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			return nil, nil, err
		}
		p = &entity.PractitionerProfile{AccountID: practitionerID}
		p.ApplyDefaults()
	}
	return e, p, nil
}
