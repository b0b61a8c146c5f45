package entity

import (
	"regexp"
	"strings"
)

// Weekday names as used in availability templates. Stored as plain strings,
// matching time.Weekday.String().
var Weekdays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// ValidWeekday reports whether day is one of the seven weekday names.
func ValidWeekday(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// Gender options for consumer profiles.
var Genders = []string{"Male", "Female", "Other", "Prefer not to say"}

// ValidGender reports whether g is an accepted gender value. Empty is allowed.
func ValidGender(g string) bool {
	if g == "" {
		return true
	}
	for _, v := range Genders {
		if v == g {
			return true
		}
	}
	return false
}

// ConsumerProfile holds the wellness-seeker side of an account.
type ConsumerProfile struct {
	AccountID   string
	Age         *int // nil when not provided
	Gender      string
	About       string   // free text, max 500 chars
	HealthGoals []string // max 5, unique, trimmed
	Interests   []string // max 5, unique, trimmed
}

// NormalizeTags trims, drops empties and duplicates, and caps the list at max.
func NormalizeTags(in []string, max int) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, t := range in {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
		if len(out) == max {
			break
		}
	}
	return out
}

// hhmmRe matches 24-hour HH:MM times.
var hhmmRe = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// ValidClockTime reports whether s is a 24-hour HH:MM time.
func ValidClockTime(s string) bool { return hhmmRe.MatchString(s) }

// TimeSlot is a bookable window within a weekday. Start and End are HH:MM
// strings; the fixed-width format makes lexicographic order chronological.
type TimeSlot struct {
	ID       string `json:"id,omitempty"`
	Start    string `json:"start"`
	End      string `json:"end"`
	IsBooked bool   `json:"isBooked"`
}

// Valid reports whether the slot has well-formed times with Start before End.
func (s TimeSlot) Valid() bool {
	return ValidClockTime(s.Start) && ValidClockTime(s.End) && s.Start < s.End
}

// AvailabilityDay is one weekday entry of a practitioner's template.
type AvailabilityDay struct {
	ID        string     `json:"id,omitempty"`
	Day       string     `json:"day"`
	TimeSlots []TimeSlot `json:"timeSlots"`
}

// DefaultDaySlots returns the conventional hourly slots 09:00-17:00 used when
// a weekday is enabled without an explicit slot list.
func DefaultDaySlots() []TimeSlot {
	starts := []string{"09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00"}
	ends := []string{"10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00", "17:00"}
	slots := make([]TimeSlot, len(starts))
	for i := range starts {
		slots[i] = TimeSlot{Start: starts[i], End: ends[i]}
	}
	return slots
}

// Consultation methods offered by practitioners.
var ConsultationMethods = []string{"Online", "In-Person", "Phone"}

// ValidConsultationMethod reports whether m is a known consultation method.
func ValidConsultationMethod(m string) bool {
	for _, v := range ConsultationMethods {
		if v == m {
			return true
		}
	}
	return false
}

// ConsultationDetails describes how and when a practitioner consults.
type ConsultationDetails struct {
	IsAvailable         bool              `json:"isAvailable"`
	ConsultationFee     float64           `json:"consultationFee"`
	ConsultationMethods []string          `json:"consultationMethods"`
	AvailableDays       []AvailabilityDay `json:"availableDays"`
}

// Qualification is a formal degree held by a practitioner.
type Qualification struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        int    `json:"year"`
}

// Certification is a professional certificate held by a practitioner.
type Certification struct {
	Name     string `json:"name"`
	IssuedBy string `json:"issuedBy"`
	Year     int    `json:"year"`
}

// ContactInformation is the public contact block of a practitioner profile.
type ContactInformation struct {
	Phone               string `json:"phone,omitempty"`
	AlternateEmail      string `json:"alternateEmail,omitempty"`
	ProfessionalWebsite string `json:"professionalWebsite,omitempty"`
}

// PractitionerProfile is the professional side of a practitioner account.
type PractitionerProfile struct {
	AccountID         string
	Specialization    string
	ProfessionalTitle string
	Bio               string // max 500 chars
	YearsOfExperience int    // 0-50
	AreasOfExpertise  []string
	Qualifications    []Qualification
	Certifications    []Certification
	Contact           ContactInformation
	Consultation      ConsultationDetails
}

// ApplyDefaults fills every nil nested collection so callers never see
// undefined fields, mirroring the full-replace update semantics.
func (p *PractitionerProfile) ApplyDefaults() {
	if p.AreasOfExpertise == nil {
		p.AreasOfExpertise = []string{}
	}
	if p.Qualifications == nil {
		p.Qualifications = []Qualification{}
	}
	if p.Certifications == nil {
		p.Certifications = []Certification{}
	}
	if p.Consultation.ConsultationMethods == nil {
		p.Consultation.ConsultationMethods = []string{}
	}
	if p.Consultation.AvailableDays == nil {
		p.Consultation.AvailableDays = []AvailabilityDay{}
	}
	if p.Consultation.ConsultationFee < 0 {
		p.Consultation.ConsultationFee = 0
	}
}

// FindDay returns the template entry for day, or nil when the weekday is not
// enabled. The template holds at most one entry per weekday.
func (c *ConsultationDetails) FindDay(day string) *AvailabilityDay {
	for i := range c.AvailableDays {
		if c.AvailableDays[i].Day == day {
			return &c.AvailableDays[i]
		}
	}
	return nil
}
