package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wellnest/wellnest-api/internal/domain/entity"
	"github.com/wellnest/wellnest-api/internal/domain/repository"
)

type AppointmentRepository struct {
	pool *pgxpool.Pool
}

func NewAppointmentRepository(pool *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

func (r *AppointmentRepository) FindSlot(ctx context.Context, practitionerID, day, start, end string) (*entity.TimeSlot, error) {
	s := &entity.TimeSlot{}

	row := r.pool.QueryRow(ctx, `
		SELECT s.id, s.start_time, s.end_time, s.is_booked
		FROM availability_days d
		JOIN time_slots s ON s.day_id = d.id
		WHERE d.practitioner_id = $1 AND d.weekday = $2
		  AND s.start_time = $3 AND s.end_time = $4
	`, practitionerID, day, start, end)

	if err := row.Scan(&s.ID, &s.Start, &s.End, &s.IsBooked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

// CreateBooked flips the slot's booked flag and inserts the appointment in a
// single transaction. The conditional update is the only place the flag goes
// from free to booked, so a concurrent booking for the same slot loses with
// ErrSlotTaken instead of double-booking.
func (r *AppointmentRepository) CreateBooked(ctx context.Context, a *entity.Appointment) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	res, err := tx.Exec(ctx, `
		UPDATE time_slots SET is_booked = TRUE
		WHERE id = $1 AND is_booked = FALSE
	`, a.SlotID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrSlotTaken
	}

	row := tx.QueryRow(ctx, `
		INSERT INTO appointments
			(practitioner_id, consumer_id, date, slot_id, slot_start, slot_end,
			 consultation_type, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, a.PractitionerID, a.ConsumerID, a.Date, a.SlotID, a.SlotStart, a.SlotEnd,
		string(a.Type), a.Notes, string(a.Status))
	if err := row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id string) (*entity.Appointment, error) {
	a := &entity.Appointment{}
	var slotID *string
	var typ, status string

	row := r.pool.QueryRow(ctx, `
		SELECT id, practitioner_id, consumer_id, date, slot_id, slot_start, slot_end,
		       consultation_type, notes, status, created_at, updated_at
		FROM appointments
		WHERE id = $1
	`, id)

	if err := row.Scan(&a.ID, &a.PractitionerID, &a.ConsumerID, &a.Date, &slotID,
		&a.SlotStart, &a.SlotEnd, &typ, &a.Notes, &status, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if slotID != nil {
		a.SlotID = *slotID
	}
	a.Type = entity.ConsultationType(typ)
	a.Status = entity.AppointmentStatus(status)
	return a, nil
}

func (r *AppointmentRepository) UpdateStatusOwned(ctx context.Context, id, practitionerID string, from, to entity.AppointmentStatus) (*entity.Appointment, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	a := &entity.Appointment{}
	var slotID *string
	var typ, status string

	row := tx.QueryRow(ctx, `
		UPDATE appointments
		SET status = $1, updated_at = $2
		WHERE id = $3 AND practitioner_id = $4 AND status = $5
		RETURNING id, practitioner_id, consumer_id, date, slot_id, slot_start, slot_end,
		          consultation_type, notes, status, created_at, updated_at
	`, string(to), time.Now(), id, practitionerID, string(from))

	if err := row.Scan(&a.ID, &a.PractitionerID, &a.ConsumerID, &a.Date, &slotID,
		&a.SlotStart, &a.SlotEnd, &typ, &a.Notes, &status, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if slotID != nil {
		a.SlotID = *slotID
	}
	a.Type = entity.ConsultationType(typ)
	a.Status = entity.AppointmentStatus(status)

	// A cancelled appointment releases the slot it held.
	if to == entity.AppointmentCancelled && slotID != nil {
		if _, err := tx.Exec(ctx, `
			UPDATE time_slots SET is_booked = FALSE WHERE id = $1
		`, *slotID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AppointmentRepository) ListByPractitioner(ctx context.Context, practitionerID string) ([]entity.AppointmentWithConsumer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT ap.id, ap.practitioner_id, ap.consumer_id, ap.date, ap.slot_start, ap.slot_end,
		       ap.consultation_type, ap.notes, ap.status, ap.created_at, ap.updated_at,
		       c.name, c.email
		FROM appointments ap
		JOIN accounts c ON c.id = ap.consumer_id
		WHERE ap.practitioner_id = $1
		ORDER BY ap.date ASC, ap.slot_start ASC
	`, practitionerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.AppointmentWithConsumer{}
	for rows.Next() {
		var a entity.AppointmentWithConsumer
		var typ, status string
		if err := rows.Scan(&a.ID, &a.PractitionerID, &a.ConsumerID, &a.Date,
			&a.SlotStart, &a.SlotEnd, &typ, &a.Notes, &status,
			&a.CreatedAt, &a.UpdatedAt, &a.ConsumerName, &a.ConsumerEmail); err != nil {
			return nil, err
		}
		a.Type = entity.ConsultationType(typ)
		a.Status = entity.AppointmentStatus(status)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AppointmentRepository) ListByConsumer(ctx context.Context, consumerID string) ([]entity.AppointmentWithPractitioner, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT ap.id, ap.practitioner_id, ap.consumer_id, ap.date, ap.slot_start, ap.slot_end,
		       ap.consultation_type, ap.notes, ap.status, ap.created_at, ap.updated_at,
		       pa.name, COALESCE(pp.title, '')
		FROM appointments ap
		JOIN accounts pa ON pa.id = ap.practitioner_id
		LEFT JOIN practitioner_profiles pp ON pp.account_id = ap.practitioner_id
		WHERE ap.consumer_id = $1
		ORDER BY ap.date DESC, ap.slot_start DESC
	`, consumerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.AppointmentWithPractitioner{}
	for rows.Next() {
		var a entity.AppointmentWithPractitioner
		var typ, status string
		if err := rows.Scan(&a.ID, &a.PractitionerID, &a.ConsumerID, &a.Date,
			&a.SlotStart, &a.SlotEnd, &typ, &a.Notes, &status,
			&a.CreatedAt, &a.UpdatedAt, &a.PractitionerName, &a.PractitionerTitle); err != nil {
			return nil, err
		}
		a.Type = entity.ConsultationType(typ)
		a.Status = entity.AppointmentStatus(status)
		out = append(out, a)
	}
	return out, rows.Err()
}

var _ repository.AppointmentRepository = (*AppointmentRepository)(nil)
