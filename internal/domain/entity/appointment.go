package entity

import (
	"time"
)

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// ConsultationType is how a booked consultation takes place.
type ConsultationType string

const (
	ConsultationOnline   ConsultationType = "online"
	ConsultationInPerson ConsultationType = "in-person"
	ConsultationPhone    ConsultationType = "phone"
)

// ValidConsultationType reports whether t is a known consultation type.
func ValidConsultationType(t string) bool {
	switch ConsultationType(t) {
	case ConsultationOnline, ConsultationInPerson, ConsultationPhone:
		return true
	}
	return false
}

// Appointment is a consumer's booking against one of a practitioner's slots.
// Appointments are a historical record and are never deleted; cancelled
// appointments release the slot they held.
type Appointment struct {
	ID             string
	PractitionerID string
	ConsumerID     string
	Date           time.Time // calendar date of the consultation
	SlotID         string    // the time_slots row this booking holds
	SlotStart      string    // HH:MM copy taken at booking time
	SlotEnd        string
	Type           ConsultationType
	Notes          string // max 500 chars, optional
	Status         AppointmentStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AppointmentWithConsumer is a practitioner-side listing row, joined with the
// booking consumer's identity.
type AppointmentWithConsumer struct {
	Appointment
	ConsumerName  string
	ConsumerEmail string
}

// AppointmentWithPractitioner is a consumer-side listing row, joined with the
// practitioner's public identity.
type AppointmentWithPractitioner struct {
	Appointment
	PractitionerName  string
	PractitionerTitle string
}
