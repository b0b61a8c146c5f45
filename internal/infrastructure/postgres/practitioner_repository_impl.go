package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wellnest/wellnest-api/internal/domain/entity"
	"github.com/wellnest/wellnest-api/internal/domain/repository"
)

type PractitionerRepository struct {
	pool *pgxpool.Pool
}

func NewPractitionerRepository(pool *pgxpool.Pool) *PractitionerRepository {
	return &PractitionerRepository{pool: pool}
}

const weekdayOrder = `array_position(ARRAY['Monday','Tuesday','Wednesday','Thursday','Friday','Saturday','Sunday'], d.weekday)`

func (r *PractitionerRepository) GetProfile(ctx context.Context, accountID string) (*entity.PractitionerProfile, error) {
	p := &entity.PractitionerProfile{AccountID: accountID}
	var quals, certs, contact []byte

	row := r.pool.QueryRow(ctx, `
		SELECT specialization, title, bio, years_experience, expertise,
		       qualifications, certifications, contact,
		       is_available, consultation_fee, methods
		FROM practitioner_profiles
		WHERE account_id = $1
	`, accountID)

	if err := row.Scan(&p.Specialization, &p.ProfessionalTitle, &p.Bio,
		&p.YearsOfExperience, &p.AreasOfExpertise, &quals, &certs, &contact,
		&p.Consultation.IsAvailable, &p.Consultation.ConsultationFee,
		&p.Consultation.ConsultationMethods); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(quals, &p.Qualifications); err != nil {
		return nil, fmt.Errorf("decode qualifications: %w", err)
	}
	if err := json.Unmarshal(certs, &p.Certifications); err != nil {
		return nil, fmt.Errorf("decode certifications: %w", err)
	}
	if err := json.Unmarshal(contact, &p.Contact); err != nil {
		return nil, fmt.Errorf("decode contact: %w", err)
	}

	days, err := r.GetTemplate(ctx, accountID)
	if err != nil {
		return nil, err
	}
	p.Consultation.AvailableDays = days
	p.ApplyDefaults()
	return p, nil
}

func (r *PractitionerRepository) ReplaceProfile(ctx context.Context, p *entity.PractitionerProfile) error {
	quals, err := json.Marshal(p.Qualifications)
	if err != nil {
		return err
	}
	certs, err := json.Marshal(p.Certifications)
	if err != nil {
		return err
	}
	contact, err := json.Marshal(p.Contact)
	if err != nil {
		return err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO practitioner_profiles
			(account_id, specialization, title, bio, years_experience, expertise,
			 qualifications, certifications, contact, is_available, consultation_fee, methods)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (account_id) DO UPDATE SET
			specialization = EXCLUDED.specialization,
			title = EXCLUDED.title,
			bio = EXCLUDED.bio,
			years_experience = EXCLUDED.years_experience,
			expertise = EXCLUDED.expertise,
			qualifications = EXCLUDED.qualifications,
			certifications = EXCLUDED.certifications,
			contact = EXCLUDED.contact,
			is_available = EXCLUDED.is_available,
			consultation_fee = EXCLUDED.consultation_fee,
			methods = EXCLUDED.methods
	`, p.AccountID, p.Specialization, p.ProfessionalTitle, p.Bio,
		p.YearsOfExperience, p.AreasOfExpertise, quals, certs, contact,
		p.Consultation.IsAvailable, p.Consultation.ConsultationFee,
		p.Consultation.ConsultationMethods)
	if err != nil {
		return err
	}

	// Full replace covers the availability template too.
	if _, err := tx.Exec(ctx,
		`DELETE FROM availability_days WHERE practitioner_id = $1`, p.AccountID); err != nil {
		return err
	}
	for _, day := range p.Consultation.AvailableDays {
		if err := insertDay(ctx, tx, p.AccountID, day.Day, day.TimeSlots); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func insertDay(ctx context.Context, tx pgx.Tx, accountID, day string, slots []entity.TimeSlot) error {
	var dayID string
	err := tx.QueryRow(ctx, `
		INSERT INTO availability_days (practitioner_id, weekday)
		VALUES ($1, $2)
		RETURNING id
	`, accountID, day).Scan(&dayID)
	if err != nil {
		return err
	}
	for i, s := range slots {
		if _, err := tx.Exec(ctx, `
			INSERT INTO time_slots (day_id, start_time, end_time, is_booked, position)
			VALUES ($1, $2, $3, $4, $5)
		`, dayID, s.Start, s.End, s.IsBooked, i); err != nil {
			return err
		}
	}
	return nil
}

func (r *PractitionerRepository) GetTemplate(ctx context.Context, accountID string) ([]entity.AvailabilityDay, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT d.id, d.weekday, s.id, s.start_time, s.end_time, s.is_booked
		FROM availability_days d
		LEFT JOIN time_slots s ON s.day_id = d.id
		WHERE d.practitioner_id = $1
		ORDER BY `+weekdayOrder+`, s.position
	`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	days := []entity.AvailabilityDay{}
	for rows.Next() {
		var dayID, weekday string
		var slotID, start, end *string
		var booked *bool
		if err := rows.Scan(&dayID, &weekday, &slotID, &start, &end, &booked); err != nil {
			return nil, err
		}
		if len(days) == 0 || days[len(days)-1].ID != dayID {
			days = append(days, entity.AvailabilityDay{ID: dayID, Day: weekday, TimeSlots: []entity.TimeSlot{}})
		}
		if slotID != nil {
			d := &days[len(days)-1]
			d.TimeSlots = append(d.TimeSlots, entity.TimeSlot{
				ID:       *slotID,
				Start:    strings.TrimSpace(*start),
				End:      strings.TrimSpace(*end),
				IsBooked: *booked,
			})
		}
	}
	return days, rows.Err()
}

func (r *PractitionerRepository) ReplaceDaySlots(ctx context.Context, accountID, day string, slots []entity.TimeSlot) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var dayID string
	err = tx.QueryRow(ctx, `
		SELECT id FROM availability_days
		WHERE practitioner_id = $1 AND weekday = $2
	`, accountID, day).Scan(&dayID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrNotFound
		}
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM time_slots WHERE day_id = $1`, dayID); err != nil {
		return err
	}
	for i, s := range slots {
		if _, err := tx.Exec(ctx, `
			INSERT INTO time_slots (day_id, start_time, end_time, is_booked, position)
			VALUES ($1, $2, $3, $4, $5)
		`, dayID, s.Start, s.End, s.IsBooked, i); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *PractitionerRepository) EnableDay(ctx context.Context, accountID, day string, slots []entity.TimeSlot) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var exists bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM availability_days
			WHERE practitioner_id = $1 AND weekday = $2
		)
	`, accountID, day).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	if err := insertDay(ctx, tx, accountID, day, slots); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PractitionerRepository) DisableDay(ctx context.Context, accountID, day string) error {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM availability_days
		WHERE practitioner_id = $1 AND weekday = $2
	`, accountID, day)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PractitionerRepository) ListDirectory(ctx context.Context, f repository.DirectoryFilter) ([]repository.DirectoryEntry, error) {
	q := `
		SELECT a.id, a.name, COALESCE(a.avatar_url, ''),
		       COALESCE(p.specialization, ''), COALESCE(p.title, ''), COALESCE(p.bio, ''),
		       COALESCE(p.is_available, FALSE), COALESCE(p.consultation_fee, 0),
		       COALESCE(p.methods, '{}'), COALESCE(p.expertise, '{}')
		FROM accounts a
		LEFT JOIN practitioner_profiles p ON p.account_id = a.id
		WHERE a.role = 'practitioner'`
	args := []any{}
	if f.Specialization != "" {
		args = append(args, "%"+f.Specialization+"%")
		q += fmt.Sprintf(" AND p.specialization ILIKE $%d", len(args))
	}
	if f.Method != "" {
		args = append(args, f.Method)
		q += fmt.Sprintf(" AND $%d = ANY(p.methods)", len(args))
	}
	if f.AvailableOnly {
		q += " AND p.is_available"
	}
	q += " ORDER BY a.name"

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []repository.DirectoryEntry{}
	for rows.Next() {
		var e repository.DirectoryEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.AvatarURL, &e.Specialization, &e.ProfessionalTitle,
			&e.Bio, &e.IsAvailable, &e.ConsultationFee,
			&e.ConsultationMethods, &e.AreasOfExpertise); err != nil {
			return nil, err
		}
		applyDirectoryDefaults(&e)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *PractitionerRepository) GetDirectoryEntry(ctx context.Context, accountID string) (*repository.DirectoryEntry, error) {
	e := &repository.DirectoryEntry{}

	row := r.pool.QueryRow(ctx, `
		SELECT a.id, a.name, COALESCE(a.avatar_url, ''),
		       COALESCE(p.specialization, ''), COALESCE(p.title, ''), COALESCE(p.bio, ''),
		       COALESCE(p.is_available, FALSE), COALESCE(p.consultation_fee, 0),
		       COALESCE(p.methods, '{}'), COALESCE(p.expertise, '{}')
		FROM accounts a
		LEFT JOIN practitioner_profiles p ON p.account_id = a.id
		WHERE a.role = 'practitioner' AND a.id = $1
	`, accountID)

	if err := row.Scan(&e.ID, &e.Name, &e.AvatarURL, &e.Specialization, &e.ProfessionalTitle,
		&e.Bio, &e.IsAvailable, &e.ConsultationFee,
		&e.ConsultationMethods, &e.AreasOfExpertise); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	applyDirectoryDefaults(e)
	return e, nil
}

func applyDirectoryDefaults(e *repository.DirectoryEntry) {
	if e.Specialization == "" {
		e.Specialization = "General Wellness"
	}
	if e.ProfessionalTitle == "" {
		e.ProfessionalTitle = "Wellness Practitioner"
	}
	if e.ConsultationMethods == nil {
		e.ConsultationMethods = []string{}
	}
	if e.AreasOfExpertise == nil {
		e.AreasOfExpertise = []string{}
	}
}

var _ repository.PractitionerRepository = (*PractitionerRepository)(nil)
