package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wellnest/wellnest-api/internal/domain/entity"
	repo "github.com/wellnest/wellnest-api/internal/domain/repository"
	"github.com/wellnest/wellnest-api/pkg/mailer"
)

// Notifier publishes notification jobs for asynchronous delivery. Satisfied
// by *helpers.RabbitPublisher.
type Notifier interface {
	PublishJSON(ctx context.Context, body any) error
}

// BookingService books appointments against practitioner availability
// templates and drives the appointment lifecycle.
type BookingService struct {
	Accounts      repo.AccountRepository
	Practitioners repo.PractitionerRepository
	Appointments  repo.AppointmentRepository
	Notify        Notifier // optional; nil disables email jobs
	Logger        *logrus.Logger
}

func NewBookingService(accounts repo.AccountRepository, practitioners repo.PractitionerRepository, appointments repo.AppointmentRepository, notify Notifier, logger *logrus.Logger) *BookingService {
	return &BookingService{
		Accounts:      accounts,
		Practitioners: practitioners,
		Appointments:  appointments,
		Notify:        notify,
		Logger:        logger,
	}
}

// BookingRequest is the consumer's ask: a practitioner, a calendar date, and
// the exact start/end of one of that practitioner's template slots.
type BookingRequest struct {
	PractitionerID string
	Date           time.Time
	Start          string
	End            string
	Type           string
	Notes          string
}

// Book creates a pending appointment for consumerID. The requested date's
// weekday must be enabled in the practitioner's template and the named slot
// must exist and be free; marking the slot booked and inserting the
// appointment happen atomically, so a concurrent request for the same slot
// loses with ErrSlotUnavailable.
func (s *BookingService) Book(ctx context.Context, consumerID string, req BookingRequest) (*entity.Appointment, error) {
	if !entity.ValidClockTime(req.Start) || !entity.ValidClockTime(req.End) || req.Start >= req.End {
		return nil, Validationf("invalid slot times: use 24-hour HH:MM with start before end")
	}
	if !entity.ValidConsultationType(req.Type) {
		return nil, Validationf("invalid consultation type: " + req.Type)
	}
	if len(req.Notes) > 500 {
		return nil, Validationf("notes must be at most 500 characters")
	}
	if req.Date.IsZero() {
		return nil, Validationf("date is required")
	}

	practitioner, err := s.Accounts.GetByID(ctx, req.PractitionerID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !practitioner.IsPractitioner() {
		return nil, ErrNotFound
	}
	consumer, err := s.Accounts.GetByID(ctx, consumerID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	day := req.Date.Weekday().String()
	slot, err := s.Appointments.FindSlot(ctx, req.PractitionerID, day, req.Start, req.End)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			if s.dayEnabled(ctx, req.PractitionerID, day) {
				return nil, ErrSlotUnavailable
			}
			return nil, ErrDayUnavailable
		}
		return nil, err
	}
	if slot.IsBooked {
		return nil, ErrSlotUnavailable
	}

	appt := &entity.Appointment{
		PractitionerID: req.PractitionerID,
		ConsumerID:     consumerID,
		Date:           req.Date,
		SlotID:         slot.ID,
		SlotStart:      req.Start,
		SlotEnd:        req.End,
		Type:           entity.ConsultationType(req.Type),
		Notes:          strings.TrimSpace(req.Notes),
		Status:         entity.AppointmentPending,
	}
	if err := s.Appointments.CreateBooked(ctx, appt); err != nil {
		if errors.Is(err, repo.ErrSlotTaken) {
			return nil, ErrSlotUnavailable
		}
		return nil, err
	}

	s.queueEmail(ctx, consumer.Email, mailer.TemplateBookingReceived, practitioner.Name, consumer.Name, appt)
	return appt, nil
}

func (s *BookingService) dayEnabled(ctx context.Context, practitionerID, day string) bool {
	template, err := s.Practitioners.GetTemplate(ctx, practitionerID)
	if err != nil {
		return false
	}
	for _, d := range template {
		if d.Day == day {
			return true
		}
	}
	return false
}

// SetStatus lets the owning practitioner confirm or cancel a pending
// appointment. Only pending appointments may transition; cancelling frees the
// slot for rebooking in the same transaction. An appointment owned by another
// practitioner surfaces as ErrNotFound rather than revealing its existence.
func (s *BookingService) SetStatus(ctx context.Context, practitionerID, appointmentID, status string) (*entity.Appointment, error) {
	to := entity.AppointmentStatus(status)
	if to != entity.AppointmentConfirmed && to != entity.AppointmentCancelled {
		return nil, Validationf("status must be confirmed or cancelled")
	}

	current, err := s.Appointments.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if current.PractitionerID != practitionerID {
		return nil, ErrNotFound
	}
	if current.Status != entity.AppointmentPending {
		return nil, ErrInvalidTransition
	}

	appt, err := s.Appointments.UpdateStatusOwned(ctx, appointmentID, practitionerID, entity.AppointmentPending, to)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// Lost a race with another transition on the same row.
			return nil, ErrInvalidTransition
		}
		return nil, err
	}

	template := mailer.TemplateBookingConfirmed
	if to == entity.AppointmentCancelled {
		template = mailer.TemplateBookingCancelled
	}
	practitioner, perr := s.Accounts.GetByID(ctx, practitionerID)
	consumer, cerr := s.Accounts.GetByID(ctx, appt.ConsumerID)
	if perr == nil && cerr == nil {
		s.queueEmail(ctx, consumer.Email, template, practitioner.Name, consumer.Name, appt)
	}
	return appt, nil
}

// ListForPractitioner returns the practitioner's schedule in ascending date
// order, each row carrying the booking consumer's identity.
func (s *BookingService) ListForPractitioner(ctx context.Context, practitionerID string) ([]entity.AppointmentWithConsumer, error) {
	return s.Appointments.ListByPractitioner(ctx, practitionerID)
}

// ListForConsumer returns the consumer's bookings newest-first, each row
// carrying the practitioner's public identity.
func (s *BookingService) ListForConsumer(ctx context.Context, consumerID string) ([]entity.AppointmentWithPractitioner, error) {
	return s.Appointments.ListByConsumer(ctx, consumerID)
}

func (s *BookingService) queueEmail(ctx context.Context, to, template, practitionerName, consumerName string, a *entity.Appointment) {
	if s.Notify == nil {
		return
	}
	job := mailer.EmailJob{
		To:       to,
		Template: template,
		Data: map[string]any{
			"PractitionerName": practitionerName,
			"ConsumerName":     consumerName,
			"Date":             a.Date.Format("Monday, 2 January 2006"),
			"Start":            a.SlotStart,
			"End":              a.SlotEnd,
			"Type":             string(a.Type),
		},
	}
	if err := s.Notify.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("appointment_id", a.ID).Warn("failed to queue notification email")
	}
}
