package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"github.com/brianvoe/gofakeit/v6"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/wellnest/wellnest-api/config"
	"github.com/wellnest/wellnest-api/internal/domain/entity"
	"github.com/wellnest/wellnest-api/pkg/helpers"
)

// seed populates a development database with a demo consumer, a handful of
// practitioners with availability templates, and a few blog posts.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	gofakeit.Seed(42)

	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	consumerID := upsertAccount(db, "demo.consumer@wellnest.dev", hash, "Demo Consumer", "consumer")
	fmt.Printf("seeded consumer: id=%s email=demo.consumer@wellnest.dev password=%s\n", consumerID, password)

	if _, err := db.Exec(`
		INSERT INTO consumer_profiles (account_id, age, gender, about, health_goals, interests)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (account_id) DO NOTHING
	`, consumerID, 31, "Other", "Trying to sleep better and stress less.",
		[]string{"Better sleep", "Stress management"}, []string{"Yoga", "Nutrition"}); err != nil {
		log.Fatalf("failed to seed consumer profile: %v", err)
	}

	specializations := []string{"Nutrition", "Mindfulness", "Physiotherapy", "Sleep Coaching", "Yoga Therapy"}
	for i, spec := range specializations {
		name := gofakeit.Name()
		email := fmt.Sprintf("practitioner%d@wellnest.dev", i+1)
		pid := upsertAccount(db, email, hash, name, "practitioner")

		quals, _ := json.Marshal([]entity.Qualification{{
			Degree:      gofakeit.RandomString([]string{"BSc", "MSc", "PhD"}),
			Institution: gofakeit.Company(),
			Year:        gofakeit.Number(1995, 2018),
		}})
		certs, _ := json.Marshal([]entity.Certification{{
			Name:     "Certified " + spec + " Specialist",
			IssuedBy: gofakeit.Company(),
			Year:     gofakeit.Number(2015, 2024),
		}})
		contact, _ := json.Marshal(entity.ContactInformation{Phone: gofakeit.Phone()})

		if _, err := db.Exec(`
			INSERT INTO practitioner_profiles
				(account_id, specialization, title, bio, years_experience,
				 expertise, qualifications, certifications, contact,
				 is_available, consultation_fee, methods)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE, $10, $11)
			ON CONFLICT (account_id) DO NOTHING
		`, pid, spec, spec+" Practitioner", gofakeit.Paragraph(1, 3, 12, " "),
			gofakeit.Number(2, 25), []string{spec, gofakeit.Hobby()},
			quals, certs, contact, float64(gofakeit.Number(30, 150)),
			[]string{"Online", "In-Person"}); err != nil {
			log.Fatalf("failed to seed practitioner profile: %v", err)
		}

		seedAvailability(db, pid)
		seedPost(db, pid, spec)
		fmt.Printf("seeded practitioner: id=%s email=%s name=%q specialization=%s\n", pid, email, name, spec)
	}
}

func upsertAccount(db *sql.DB, email, hash, name, role string) string {
	var id string
	err := db.QueryRow(`
		INSERT INTO accounts (email, password_hash, name, role, avatar_url)
		VALUES ($1, $2, $3, $4, '')
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, email, hash, name, role).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed account %s: %v", email, err)
	}
	return id
}

// seedAvailability enables Monday through Friday with the default hourly
// template.
func seedAvailability(db *sql.DB, practitionerID string) {
	for _, day := range []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"} {
		var dayID string
		err := db.QueryRow(`
			INSERT INTO availability_days (practitioner_id, weekday)
			VALUES ($1, $2)
			ON CONFLICT (practitioner_id, weekday) DO UPDATE SET weekday = EXCLUDED.weekday
			RETURNING id
		`, practitionerID, day).Scan(&dayID)
		if err != nil {
			log.Fatalf("failed to seed availability day: %v", err)
		}
		for pos, slot := range entity.DefaultDaySlots() {
			if _, err := db.Exec(`
				INSERT INTO time_slots (day_id, start_time, end_time, position)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (day_id, start_time, end_time) DO NOTHING
			`, dayID, slot.Start, slot.End, pos); err != nil {
				log.Fatalf("failed to seed time slot: %v", err)
			}
		}
	}
}

func seedPost(db *sql.DB, authorID, topic string) {
	if _, err := db.Exec(`
		INSERT INTO posts (author_id, title, content, tags)
		VALUES ($1, $2, $3, $4)
	`, authorID,
		fmt.Sprintf("Getting started with %s", topic),
		gofakeit.Paragraph(3, 4, 20, "\n\n"),
		[]string{topic, "wellness"}); err != nil {
		log.Fatalf("failed to seed post: %v", err)
	}
}
