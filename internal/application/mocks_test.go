package application

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/wellnest/wellnest-api/internal/domain/entity"
	repo "github.com/wellnest/wellnest-api/internal/domain/repository"
)

// In-memory repository fakes shared by the service tests.

type fakeAccounts struct {
	seq      int
	accounts map[string]*entity.Account
	profiles map[string]*entity.ConsumerProfile

	// readErr, when set, makes every lookup fail with it, simulating a
	// storage outage.
	readErr error
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{
		accounts: map[string]*entity.Account{},
		profiles: map[string]*entity.ConsumerProfile{},
	}
}

func (f *fakeAccounts) add(name, email string, role entity.Role) *entity.Account {
	f.seq++
	a := &entity.Account{
		ID:    fmt.Sprintf("acct-%d", f.seq),
		Email: email,
		Name:  name,
		Role:  role,
	}
	f.accounts[a.ID] = a
	return a
}

func (f *fakeAccounts) Create(_ context.Context, a *entity.Account) error {
	for _, e := range f.accounts {
		if e.Email == a.Email {
			return repo.ErrDuplicateEmail
		}
	}
	f.seq++
	a.ID = fmt.Sprintf("acct-%d", f.seq)
	f.accounts[a.ID] = a
	return nil
}

func (f *fakeAccounts) GetByID(_ context.Context, id string) (*entity.Account, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	a, ok := f.accounts[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return a, nil
}

func (f *fakeAccounts) GetByEmail(_ context.Context, email string) (*entity.Account, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	for _, a := range f.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeAccounts) Update(_ context.Context, a *entity.Account) error {
	if _, ok := f.accounts[a.ID]; !ok {
		return repo.ErrNotFound
	}
	f.accounts[a.ID] = a
	return nil
}

func (f *fakeAccounts) GetConsumerProfile(_ context.Context, accountID string) (*entity.ConsumerProfile, error) {
	p, ok := f.profiles[accountID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return p, nil
}

func (f *fakeAccounts) UpsertConsumerProfile(_ context.Context, p *entity.ConsumerProfile) error {
	f.profiles[p.AccountID] = p
	return nil
}

type fakePractitioners struct {
	profiles  map[string]*entity.PractitionerProfile
	templates map[string][]entity.AvailabilityDay
	slotSeq   int
}

func newFakePractitioners() *fakePractitioners {
	return &fakePractitioners{
		profiles:  map[string]*entity.PractitionerProfile{},
		templates: map[string][]entity.AvailabilityDay{},
	}
}

func (f *fakePractitioners) assignIDs(day *entity.AvailabilityDay) {
	if day.ID == "" {
		day.ID = "day-" + day.Day
	}
	for i := range day.TimeSlots {
		if day.TimeSlots[i].ID == "" {
			f.slotSeq++
			day.TimeSlots[i].ID = fmt.Sprintf("slot-%d", f.slotSeq)
		}
	}
}

func (f *fakePractitioners) GetProfile(_ context.Context, accountID string) (*entity.PractitionerProfile, error) {
	p, ok := f.profiles[accountID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *p
	cp.Consultation.AvailableDays = f.templates[accountID]
	return &cp, nil
}

func (f *fakePractitioners) ReplaceProfile(_ context.Context, p *entity.PractitionerProfile) error {
	cp := *p
	days := cp.Consultation.AvailableDays
	cp.Consultation.AvailableDays = nil
	f.profiles[p.AccountID] = &cp

	stored := make([]entity.AvailabilityDay, len(days))
	copy(stored, days)
	for i := range stored {
		f.assignIDs(&stored[i])
	}
	f.templates[p.AccountID] = stored
	return nil
}

func (f *fakePractitioners) GetTemplate(_ context.Context, accountID string) ([]entity.AvailabilityDay, error) {
	out := make([]entity.AvailabilityDay, len(f.templates[accountID]))
	copy(out, f.templates[accountID])
	return out, nil
}

func (f *fakePractitioners) ReplaceDaySlots(_ context.Context, accountID, day string, slots []entity.TimeSlot) error {
	tpl := f.templates[accountID]
	for i := range tpl {
		if tpl[i].Day == day {
			tpl[i].TimeSlots = append([]entity.TimeSlot(nil), slots...)
			f.assignIDs(&tpl[i])
			return nil
		}
	}
	return repo.ErrNotFound
}

func (f *fakePractitioners) EnableDay(_ context.Context, accountID, day string, slots []entity.TimeSlot) error {
	for _, d := range f.templates[accountID] {
		if d.Day == day {
			return nil
		}
	}
	entry := entity.AvailabilityDay{Day: day, TimeSlots: append([]entity.TimeSlot(nil), slots...)}
	f.assignIDs(&entry)
	f.templates[accountID] = append(f.templates[accountID], entry)
	return nil
}

func (f *fakePractitioners) DisableDay(_ context.Context, accountID, day string) error {
	tpl := f.templates[accountID]
	for i := range tpl {
		if tpl[i].Day == day {
			f.templates[accountID] = append(tpl[:i], tpl[i+1:]...)
			return nil
		}
	}
	return repo.ErrNotFound
}

func (f *fakePractitioners) ListDirectory(_ context.Context, filter repo.DirectoryFilter) ([]repo.DirectoryEntry, error) {
	out := []repo.DirectoryEntry{}
	for id, p := range f.profiles {
		if filter.AvailableOnly && !p.Consultation.IsAvailable {
			continue
		}
		if filter.Specialization != "" &&
			!strings.Contains(strings.ToLower(p.Specialization), strings.ToLower(filter.Specialization)) {
			continue
		}
		if filter.Method != "" && !methodListed(p.Consultation.ConsultationMethods, filter.Method) {
			continue
		}
		out = append(out, repo.DirectoryEntry{
			ID:                  id,
			Specialization:      p.Specialization,
			ConsultationMethods: append([]string(nil), p.Consultation.ConsultationMethods...),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func methodListed(methods []string, method string) bool {
	for _, m := range methods {
		if m == method {
			return true
		}
	}
	return false
}

func (f *fakePractitioners) GetDirectoryEntry(_ context.Context, accountID string) (*repo.DirectoryEntry, error) {
	p, ok := f.profiles[accountID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &repo.DirectoryEntry{ID: accountID, Specialization: p.Specialization}, nil
}

// fakeAppointments resolves slots out of the fakePractitioners templates so
// booked state is shared between the two fakes, like the real schema.
type fakeAppointments struct {
	pract *fakePractitioners
	seq   int
	appts map[string]*entity.Appointment
}

func newFakeAppointments(p *fakePractitioners) *fakeAppointments {
	return &fakeAppointments{pract: p, appts: map[string]*entity.Appointment{}}
}

func (f *fakeAppointments) slotByID(id string) *entity.TimeSlot {
	for _, tpl := range f.pract.templates {
		for i := range tpl {
			for j := range tpl[i].TimeSlots {
				if tpl[i].TimeSlots[j].ID == id {
					return &tpl[i].TimeSlots[j]
				}
			}
		}
	}
	return nil
}

func (f *fakeAppointments) FindSlot(_ context.Context, practitionerID, day, start, end string) (*entity.TimeSlot, error) {
	for _, d := range f.pract.templates[practitionerID] {
		if d.Day != day {
			continue
		}
		for _, s := range d.TimeSlots {
			if s.Start == start && s.End == end {
				cp := s
				return &cp, nil
			}
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeAppointments) CreateBooked(_ context.Context, a *entity.Appointment) error {
	slot := f.slotByID(a.SlotID)
	if slot == nil {
		return repo.ErrNotFound
	}
	if slot.IsBooked {
		return repo.ErrSlotTaken
	}
	slot.IsBooked = true
	f.seq++
	a.ID = fmt.Sprintf("appt-%d", f.seq)
	cp := *a
	f.appts[a.ID] = &cp
	return nil
}

func (f *fakeAppointments) GetByID(_ context.Context, id string) (*entity.Appointment, error) {
	a, ok := f.appts[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAppointments) UpdateStatusOwned(_ context.Context, id, practitionerID string, from, to entity.AppointmentStatus) (*entity.Appointment, error) {
	a, ok := f.appts[id]
	if !ok || a.PractitionerID != practitionerID || a.Status != from {
		return nil, repo.ErrNotFound
	}
	a.Status = to
	if to == entity.AppointmentCancelled {
		if slot := f.slotByID(a.SlotID); slot != nil {
			slot.IsBooked = false
		}
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAppointments) ListByPractitioner(_ context.Context, practitionerID string) ([]entity.AppointmentWithConsumer, error) {
	out := []entity.AppointmentWithConsumer{}
	for _, a := range f.appts {
		if a.PractitionerID == practitionerID {
			out = append(out, entity.AppointmentWithConsumer{Appointment: *a})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].SlotStart < out[j].SlotStart
	})
	return out, nil
}

func (f *fakeAppointments) ListByConsumer(_ context.Context, consumerID string) ([]entity.AppointmentWithPractitioner, error) {
	out := []entity.AppointmentWithPractitioner{}
	for _, a := range f.appts {
		if a.ConsumerID == consumerID {
			out = append(out, entity.AppointmentWithPractitioner{Appointment: *a})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].SlotStart > out[j].SlotStart
	})
	return out, nil
}

type fakePosts struct {
	seq   int
	posts map[string]*entity.Post
}

func newFakePosts() *fakePosts { return &fakePosts{posts: map[string]*entity.Post{}} }

func (f *fakePosts) Create(_ context.Context, p *entity.Post) error {
	f.seq++
	p.ID = fmt.Sprintf("post-%d", f.seq)
	cp := *p
	f.posts[p.ID] = &cp
	return nil
}

func (f *fakePosts) GetByID(_ context.Context, id string) (*entity.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePosts) Update(_ context.Context, p *entity.Post) error {
	if _, ok := f.posts[p.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *p
	f.posts[p.ID] = &cp
	return nil
}

func (f *fakePosts) List(_ context.Context, limit, offset int) ([]entity.Post, error) {
	out := []entity.Post{}
	for _, p := range f.posts {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if offset >= len(out) {
		return []entity.Post{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakePosts) ListByAuthor(_ context.Context, authorID string) ([]entity.Post, error) {
	out := []entity.Post{}
	for _, p := range f.posts {
		if p.AuthorID == authorID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type fakeNotifier struct {
	jobs []any
}

func (f *fakeNotifier) PublishJSON(_ context.Context, body any) error {
	f.jobs = append(f.jobs, body)
	return nil
}

var (
	_ repo.AccountRepository      = (*fakeAccounts)(nil)
	_ repo.PractitionerRepository = (*fakePractitioners)(nil)
	_ repo.AppointmentRepository  = (*fakeAppointments)(nil)
	_ repo.PostRepository         = (*fakePosts)(nil)
)
