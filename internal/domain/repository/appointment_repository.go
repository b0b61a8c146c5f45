package repository

import (
	"context"
	"errors"

	"github.com/wellnest/wellnest-api/internal/domain/entity"
)

// ErrNotFound is returned by repositories when the requested row is missing.
var ErrNotFound = errors.New("not found")

// ErrSlotTaken is returned by CreateBooked when the conditional slot update
// finds the slot already booked. The check and the flip happen in one
// statement inside the booking transaction, so two concurrent bookings for
// the same slot cannot both succeed.
var ErrSlotTaken = errors.New("slot already booked")

// AppointmentRepository defines database operations on appointments and the
// booked state of time slots.
type AppointmentRepository interface {
	// FindSlot resolves a practitioner's slot by weekday and exact start/end
	// match. Returns ErrNotFound when the day is not enabled or no slot
	// matches; the returned slot may already be booked.
	FindSlot(ctx context.Context, practitionerID, day, start, end string) (*entity.TimeSlot, error)

	// CreateBooked atomically marks the appointment's slot booked (only if
	// currently free) and inserts the appointment row, in one transaction.
	CreateBooked(ctx context.Context, a *entity.Appointment) error

	GetByID(ctx context.Context, id string) (*entity.Appointment, error)

	// UpdateStatusOwned transitions an appointment owned by practitionerID
	// from one status to another, releasing the slot when the new status is
	// cancelled. Returns ErrNotFound when no row matches id, owner and the
	// expected current status.
	UpdateStatusOwned(ctx context.Context, id, practitionerID string, from, to entity.AppointmentStatus) (*entity.Appointment, error)

	// ListByPractitioner returns the practitioner's appointments joined with
	// consumer identity, ascending by date.
	ListByPractitioner(ctx context.Context, practitionerID string) ([]entity.AppointmentWithConsumer, error)
	// ListByConsumer returns the consumer's appointments joined with
	// practitioner identity, descending by date.
	ListByConsumer(ctx context.Context, consumerID string) ([]entity.AppointmentWithPractitioner, error)
}
