package application

import (
	"context"
	"errors"
	"testing"

	"github.com/wellnest/wellnest-api/internal/domain/entity"
	repo "github.com/wellnest/wellnest-api/internal/domain/repository"
)

func practitionerFixture(t *testing.T) (*PractitionerService, *entity.Account) {
	t.Helper()
	accounts := newFakeAccounts()
	practitioners := newFakePractitioners()
	posts := newFakePosts()

	p := accounts.add("Dr. Sari Wijaya", "sari@example.com", entity.RolePractitioner)
	practitioners.profiles[p.ID] = &entity.PractitionerProfile{AccountID: p.ID, Specialization: "Mindfulness"}

	return NewPractitionerService(accounts, practitioners, posts, nil), p
}

func TestToggleDayEnableUsesDefaultSlots(t *testing.T) {
	svc, p := practitionerFixture(t)

	template, err := svc.ToggleDay(context.Background(), p.ID, "Wednesday", true, nil)
	if err != nil {
		t.Fatalf("ToggleDay: %v", err)
	}
	if len(template) != 1 {
		t.Fatalf("template has %d days, want 1", len(template))
	}
	slots := template[0].TimeSlots
	if len(slots) != 8 {
		t.Fatalf("default template has %d slots, want 8", len(slots))
	}
	if slots[0].Start != "09:00" || slots[0].End != "10:00" {
		t.Errorf("first default slot = %s-%s, want 09:00-10:00", slots[0].Start, slots[0].End)
	}
	if slots[7].Start != "16:00" || slots[7].End != "17:00" {
		t.Errorf("last default slot = %s-%s, want 16:00-17:00", slots[7].Start, slots[7].End)
	}
}

func TestToggleDayDisableRemovesEntry(t *testing.T) {
	svc, p := practitionerFixture(t)

	if _, err := svc.ToggleDay(context.Background(), p.ID, "Wednesday", true, nil); err != nil {
		t.Fatalf("enable: %v", err)
	}
	template, err := svc.ToggleDay(context.Background(), p.ID, "Wednesday", false, nil)
	if err != nil {
		t.Fatalf("disable: %v", err)
	}
	if len(template) != 0 {
		t.Errorf("template has %d days after disable, want 0", len(template))
	}

	// Disabling an absent day is idempotent.
	if _, err := svc.ToggleDay(context.Background(), p.ID, "Wednesday", false, nil); err != nil {
		t.Errorf("second disable: %v", err)
	}
}

func TestToggleDayEnableIsIdempotent(t *testing.T) {
	svc, p := practitionerFixture(t)

	if _, err := svc.ToggleDay(context.Background(), p.ID, "Friday", true, []entity.TimeSlot{{Start: "09:00", End: "12:00"}}); err != nil {
		t.Fatalf("enable: %v", err)
	}
	// Re-enabling must not replace the existing slot list.
	template, err := svc.ToggleDay(context.Background(), p.ID, "Friday", true, nil)
	if err != nil {
		t.Fatalf("re-enable: %v", err)
	}
	if len(template) != 1 || len(template[0].TimeSlots) != 1 {
		t.Fatalf("template changed on re-enable: %+v", template)
	}
	if template[0].TimeSlots[0].End != "12:00" {
		t.Errorf("slot end = %s, want original 12:00", template[0].TimeSlots[0].End)
	}
}

func TestSetDaySlotsReplacesList(t *testing.T) {
	svc, p := practitionerFixture(t)

	if _, err := svc.ToggleDay(context.Background(), p.ID, "Monday", true, nil); err != nil {
		t.Fatalf("enable: %v", err)
	}
	template, err := svc.SetDaySlots(context.Background(), p.ID, "Monday", []entity.TimeSlot{
		{Start: "14:00", End: "15:00"},
		{Start: "15:30", End: "16:30"},
	})
	if err != nil {
		t.Fatalf("SetDaySlots: %v", err)
	}
	slots := template[0].TimeSlots
	if len(slots) != 2 {
		t.Fatalf("day has %d slots, want 2", len(slots))
	}
	if slots[0].Start != "14:00" || slots[1].Start != "15:30" {
		t.Errorf("slot order %s, %s; want stored order preserved", slots[0].Start, slots[1].Start)
	}
}

func TestSetDaySlotsDisabledDay(t *testing.T) {
	svc, p := practitionerFixture(t)

	_, err := svc.SetDaySlots(context.Background(), p.ID, "Sunday", []entity.TimeSlot{{Start: "09:00", End: "10:00"}})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSetDaySlotsValidation(t *testing.T) {
	svc, p := practitionerFixture(t)

	cases := []struct {
		name  string
		day   string
		slots []entity.TimeSlot
	}{
		{"bad weekday", "Funday", []entity.TimeSlot{{Start: "09:00", End: "10:00"}}},
		{"bad time format", "Monday", []entity.TimeSlot{{Start: "9:00", End: "10:00"}}},
		{"start not before end", "Monday", []entity.TimeSlot{{Start: "10:00", End: "10:00"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.SetDaySlots(context.Background(), p.ID, tc.day, tc.slots); !IsValidation(err) {
				t.Errorf("err = %v, want validation error", err)
			}
		})
	}
}

func TestUpdateProfileFullReplace(t *testing.T) {
	svc, p := practitionerFixture(t)

	updated, err := svc.UpdateProfile(context.Background(), p.ID, &entity.PractitionerProfile{
		Specialization:    "Sleep Coaching",
		ProfessionalTitle: "Sleep Coach",
		Bio:               "Ten years helping people rest.",
		YearsOfExperience: 10,
		Consultation: entity.ConsultationDetails{
			IsAvailable:         true,
			ConsultationFee:     80,
			ConsultationMethods: []string{"Online"},
			AvailableDays: []entity.AvailabilityDay{
				{Day: "Monday", TimeSlots: []entity.TimeSlot{{Start: "09:00", End: "10:00"}}},
			},
		},
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Specialization != "Sleep Coaching" {
		t.Errorf("specialization = %q", updated.Specialization)
	}
	// Omitted collections come back empty, never nil.
	if updated.AreasOfExpertise == nil || updated.Qualifications == nil || updated.Certifications == nil {
		t.Error("expected empty defaults for omitted collections")
	}
	if len(updated.Consultation.AvailableDays) != 1 {
		t.Errorf("template has %d days, want 1", len(updated.Consultation.AvailableDays))
	}
}

func TestUpdateProfileValidation(t *testing.T) {
	svc, p := practitionerFixture(t)

	long := make([]byte, 501)
	for i := range long {
		long[i] = 'x'
	}

	cases := []struct {
		name    string
		profile entity.PractitionerProfile
	}{
		{"long bio", entity.PractitionerProfile{Bio: string(long)}},
		{"experience out of range", entity.PractitionerProfile{YearsOfExperience: 51}},
		{"bad method", entity.PractitionerProfile{Consultation: entity.ConsultationDetails{ConsultationMethods: []string{"Fax"}}}},
		{"duplicate weekday", entity.PractitionerProfile{Consultation: entity.ConsultationDetails{AvailableDays: []entity.AvailabilityDay{
			{Day: "Monday"}, {Day: "Monday"},
		}}}},
		{"bad slot", entity.PractitionerProfile{Consultation: entity.ConsultationDetails{AvailableDays: []entity.AvailabilityDay{
			{Day: "Monday", TimeSlots: []entity.TimeSlot{{Start: "25:00", End: "26:00"}}},
		}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.UpdateProfile(context.Background(), p.ID, &tc.profile); !IsValidation(err) {
				t.Errorf("err = %v, want validation error", err)
			}
		})
	}
}

func TestGetProfileDefaultsWhenUnsaved(t *testing.T) {
	accounts := newFakeAccounts()
	practitioners := newFakePractitioners()
	svc := NewPractitionerService(accounts, practitioners, newFakePosts(), nil)

	p := accounts.add("Dr. Baru", "baru@example.com", entity.RolePractitioner)

	v, err := svc.GetProfile(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if v.Profile.AreasOfExpertise == nil || v.Profile.Consultation.AvailableDays == nil {
		t.Error("expected defaulted empty collections for unsaved profile")
	}
	if v.Name != "Dr. Baru" {
		t.Errorf("name = %q", v.Name)
	}
}

func TestPractitionerOperationsRejectConsumers(t *testing.T) {
	accounts := newFakeAccounts()
	svc := NewPractitionerService(accounts, newFakePractitioners(), newFakePosts(), nil)

	c := accounts.add("Budi", "budi@example.com", entity.RoleConsumer)

	if _, err := svc.GetProfile(context.Background(), c.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetProfile err = %v, want ErrNotFound", err)
	}
	if _, err := svc.ToggleDay(context.Background(), c.ID, "Monday", true, nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("ToggleDay err = %v, want ErrNotFound", err)
	}
}

func TestDirectoryFilter(t *testing.T) {
	accounts := newFakeAccounts()
	practitioners := newFakePractitioners()
	svc := NewPractitionerService(accounts, practitioners, newFakePosts(), nil)

	a := accounts.add("A", "a@example.com", entity.RolePractitioner)
	b := accounts.add("B", "b@example.com", entity.RolePractitioner)
	practitioners.profiles[a.ID] = &entity.PractitionerProfile{AccountID: a.ID, Specialization: "Nutrition",
		Consultation: entity.ConsultationDetails{IsAvailable: true, ConsultationMethods: []string{"Online", "Phone"}}}
	practitioners.profiles[b.ID] = &entity.PractitionerProfile{AccountID: b.ID, Specialization: "Yoga Therapy",
		Consultation: entity.ConsultationDetails{ConsultationMethods: []string{"In-Person"}}}

	all, err := svc.ListDirectory(context.Background(), repo.DirectoryFilter{})
	if err != nil {
		t.Fatalf("ListDirectory: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("unfiltered directory has %d entries, want 2", len(all))
	}

	avail, err := svc.ListDirectory(context.Background(), repo.DirectoryFilter{AvailableOnly: true})
	if err != nil {
		t.Fatalf("ListDirectory available: %v", err)
	}
	if len(avail) != 1 || avail[0].ID != a.ID {
		t.Errorf("available filter returned %+v, want only %s", avail, a.ID)
	}

	inPerson, err := svc.ListDirectory(context.Background(), repo.DirectoryFilter{Method: "In-Person"})
	if err != nil {
		t.Fatalf("ListDirectory method: %v", err)
	}
	if len(inPerson) != 1 || inPerson[0].ID != b.ID {
		t.Errorf("method filter returned %+v, want only %s", inPerson, b.ID)
	}
	if none, _ := svc.ListDirectory(context.Background(), repo.DirectoryFilter{Method: "Carrier Pigeon"}); len(none) != 0 {
		t.Errorf("unlisted method returned %+v, want none", none)
	}
}
